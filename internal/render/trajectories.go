package render

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one particle's trajectory as drawn on the three axis charts.
// Label, when set, is shown in the legend of the X chart.
type Series struct {
	Label string
	Color color.Color
	X     []float64
	Y     []float64
	Z     []float64
}

var axisLabels = [3]string{"X Position", "Y Position", "Z Position"}

// Trajectories builds three stacked charts (X, Y and Z position against
// simulation step) overlaying every series.
func Trajectories(title string, series []Series) (*Stack, error) {
	plots := make([]*plot.Plot, 3)
	for i := range plots {
		p := plot.New()
		stylePlot(p)
		p.Y.Label.Text = axisLabels[i]
		plots[i] = p
	}
	plots[2].X.Label.Text = "Simulation Step"

	for _, s := range series {
		for axis, values := range [3][]float64{s.X, s.Y, s.Z} {
			line, err := plotter.NewLine(stepXYs(values))
			if err != nil {
				return nil, err
			}
			line.Color = s.Color
			line.Width = vg.Points(2)
			plots[axis].Add(line)
			if axis == 0 && s.Label != "" {
				plots[axis].Legend.Add(s.Label, line)
			}
		}
	}

	return &Stack{Title: title, Plots: plots}, nil
}

// stepXYs pairs each value with its step index.
func stepXYs(values []float64) plotter.XYs {
	pts := make(plotter.XYs, len(values))
	for i, v := range values {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	return pts
}

// Role names the particles picked for trajectory plots.
type Role struct {
	Name     string
	Particle int
	Color    color.Color
}

// Roles returns the first, middle and last particle of an n-particle rope.
func Roles(n int) []Role {
	return []Role{
		{Name: "Initial", Particle: 0, Color: Red},
		{Name: "Middle", Particle: n / 2, Color: Blue},
		{Name: "End", Particle: n - 1, Color: Green},
	}
}

// CombinedAlpha is the opacity of lines in the combined figure.
const CombinedAlpha = 0.8

// Faded returns c at the combined-figure opacity.
func Faded(c color.Color) color.Color {
	return withAlpha(c, CombinedAlpha)
}
