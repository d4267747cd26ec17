package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// LengthChart plots rope length against step with a dashed reference line
// at the mean.
func LengthChart(title string, lengths []float64, mean float64) (*plot.Plot, error) {
	p := plot.New()
	stylePlot(p)
	p.Title.Text = title
	p.X.Label.Text = "Simulation Step"
	p.Y.Label.Text = "Rope Length"

	line, err := plotter.NewLine(stepXYs(lengths))
	if err != nil {
		return nil, err
	}
	line.Color = Blue
	line.Width = vg.Points(2)
	p.Add(line)

	ref := plotter.NewFunction(func(float64) float64 { return mean })
	ref.Color = withAlpha(Red, 0.7)
	ref.Width = vg.Points(1.5)
	ref.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(ref)
	p.Legend.Add(fmt.Sprintf("Mean: %.3f", mean), ref)

	// a flat series would otherwise collapse the Y range
	if p.Y.Min == p.Y.Max {
		p.Y.Min -= 0.5
		p.Y.Max += 0.5
	}
	if len(lengths) == 1 {
		p.X.Min, p.X.Max = -0.5, 0.5
	}
	return p, nil
}
