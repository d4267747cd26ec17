package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	zAxis = r3.Vec{Z: 1}
	xAxis = r3.Vec{X: 1}
)

// Camera projects world points (Z up) onto a plane for a fixed viewing
// angle. Points are first normalized into the unit cube spanned by Frame so
// that every axis takes the same share of the figure regardless of units.
type Camera struct {
	Frame Bounds

	turn r3.Rotation
	tilt r3.Rotation
}

// NewCamera returns a camera using the usual 30° elevation and -60° azimuth.
func NewCamera(frame Bounds) *Camera {
	const (
		elevation = 30 * math.Pi / 180
		azimuth   = -60 * math.Pi / 180
	)
	return &Camera{
		Frame: frame,
		turn:  r3.NewRotation(-azimuth, zAxis),
		tilt:  r3.NewRotation(elevation, xAxis),
	}
}

func (c *Camera) normalize(p Vec3) Vec3 {
	size := c.Frame.Size()
	q := r3.Sub(p, c.Frame.Center())
	if size.X != 0 {
		q.X /= size.X
	}
	if size.Y != 0 {
		q.Y /= size.Y
	}
	if size.Z != 0 {
		q.Z /= size.Z
	}
	return q
}

// Project returns screen coordinates and depth (larger is further away).
func (c *Camera) Project(p Vec3) (x, y, depth float64) {
	q := c.tilt.Rotate(c.turn.Rotate(c.normalize(p)))
	return q.X, q.Z, q.Y
}

// Extent returns the screen-space rectangle covering the projected frame
// box. It does not depend on the points being drawn, so it can be used to
// fix axis ranges for a whole animation.
func (c *Camera) Extent() (minX, maxX, minY, maxY float64) {
	for i, p := range c.Frame.Vertices() {
		x, y, _ := c.Project(p)
		if i == 0 {
			minX, maxX, minY, maxY = x, x, y, y
			continue
		}
		minX, maxX = minMax(minX, maxX, x)
		minY, maxY = minMax(minY, maxY, y)
	}
	return minX, maxX, minY, maxY
}
