package render

import (
	"fmt"

	"github.com/san-kum/ropestate/internal/geom"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	ropeColor  = withAlpha(Red, 0.6)
	pointColor = withAlpha(Blue, 0.8)
	boxColor   = Gray
)

// Scene holds everything about the 3D animation that is fixed across
// frames: the projection, the bounding box and the plot ranges.
type Scene struct {
	Title  string
	Camera *geom.Camera

	box    []plotter.XYs
	labels plotter.XYLabels
	minX   float64
	maxX   float64
	minY   float64
	maxY   float64
}

// NewScene prepares a scene framing bounds, which should already include
// any padding.
func NewScene(title string, bounds geom.Bounds) *Scene {
	cam := geom.NewCamera(bounds)
	s := &Scene{Title: title, Camera: cam}

	corners := bounds.Vertices()
	for _, e := range geom.Edges {
		a, b := corners[e[0]], corners[e[1]]
		s.box = append(s.box, plotter.XYs{s.project(a), s.project(b)})
	}

	// label the three edges leaving the min corner
	for i, axis := range []int{geom.VertexX, geom.VertexY, geom.VertexZ} {
		mid := r3.Scale(0.5, r3.Add(corners[0], corners[axis]))
		s.labels.XYs = append(s.labels.XYs, s.project(mid))
		s.labels.Labels = append(s.labels.Labels, axisLabels[i])
	}

	minX, maxX, minY, maxY := cam.Extent()
	mx, my := 0.08*(maxX-minX), 0.08*(maxY-minY)
	s.minX, s.maxX = minX-mx, maxX+mx
	s.minY, s.maxY = minY-my, maxY+my
	return s
}

func (s *Scene) project(p geom.Vec3) plotter.XY {
	x, y, _ := s.Camera.Project(p)
	return plotter.XY{X: x, Y: y}
}

// Frame draws the rope at one step. Particles are joined in index order.
func (s *Scene) Frame(step int, rope []geom.Vec3) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (Step %d)", s.Title, step)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()

	for _, edge := range s.box {
		l, err := plotter.NewLine(edge)
		if err != nil {
			return nil, err
		}
		l.Color = boxColor
		l.Width = vg.Points(0.75)
		p.Add(l)
	}

	labels, err := plotter.NewLabels(s.labels)
	if err != nil {
		return nil, err
	}
	p.Add(labels)

	pts := make(plotter.XYs, len(rope))
	for i, v := range rope {
		pts[i] = s.project(v)
	}

	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = ropeColor
		line.Width = vg.Points(2)
		p.Add(line)

		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = pointColor
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(scatter)
	}

	p.X.Min, p.X.Max = s.minX, s.maxX
	p.Y.Min, p.Y.Max = s.minY, s.maxY
	return p, nil
}
