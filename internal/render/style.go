package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Named colors used by the figures.
var (
	Red    = color.RGBA{R: 0xff, A: 0xff}
	Blue   = color.RGBA{B: 0xff, A: 0xff}
	Green  = color.RGBA{G: 0x80, A: 0xff}
	Orange = color.RGBA{R: 0xff, G: 0xa5, A: 0xff}
	Purple = color.RGBA{R: 0x80, B: 0x80, A: 0xff}
	Brown  = color.RGBA{R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff}
	Pink   = color.RGBA{R: 0xff, G: 0xc0, B: 0xcb, A: 0xff}
	Gray   = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

// Palette colors simulations in the combined plot, cycled by file index.
var Palette = []color.Color{Red, Blue, Green, Orange, Purple, Brown, Pink, Gray}

// PaletteColor returns the palette entry for the i-th file.
func PaletteColor(i int) color.Color {
	return Palette[i%len(Palette)]
}

// withAlpha returns c at the given opacity in [0, 1].
func withAlpha(c color.Color, alpha float64) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(math.Round(alpha * 255))}
}

var gridColor = color.Gray{Y: 220}

// limitedTicker returns a tick generator that produces at most maxLabels
// evenly spaced ticks labeled with labelFmt.
func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)

		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

// stylePlot applies the common look: readable fonts, a light grid and at
// most eight labeled ticks per axis.
func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(15)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.X.Tick.Marker = limitedTicker(8, "%.0f")
	p.Y.Tick.Marker = limitedTicker(8, "%.3g")

	p.Legend.Top = true
	p.Legend.TextStyle.Font.Size = vg.Points(9)

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)
}
