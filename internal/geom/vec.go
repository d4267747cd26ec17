package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a particle position.
type Vec3 = r3.Vec

// Dist is the Euclidean distance between a and b.
func Dist(a, b Vec3) float64 { return r3.Norm(r3.Sub(a, b)) }

// Finite reports whether no component of v is NaN or infinite.
func Finite(v Vec3) bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
