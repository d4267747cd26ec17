package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// LengthPreview draws the rope length series as a terminal chart, with the
// mean as a second flat series.
func LengthPreview(name string, lengths []float64, mean float64) string {
	if len(lengths) == 0 {
		return ""
	}
	data := lengths
	meanLine := make([]float64, len(lengths))
	for i := range meanLine {
		meanLine[i] = mean
	}
	// asciigraph needs two points to draw a line
	if len(data) == 1 {
		data = []float64{data[0], data[0]}
		meanLine = []float64{mean, mean}
	}

	return asciigraph.PlotMany([][]float64{data, meanLine},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(fmt.Sprintf("rope length - %s (mean %.3f)", name, mean)),
	)
}
