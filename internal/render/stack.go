package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const titleHeight = vg.Length(36)

// Stack is a column of plots under one figure title.
type Stack struct {
	Title string
	Plots []*plot.Plot
}

func (s *Stack) Draw(dc draw.Canvas) {
	body := dc
	if s.Title != "" {
		sty := plot.New().Title.TextStyle
		sty.Font.Size = vg.Points(16)
		sty.XAlign = draw.XCenter
		sty.YAlign = draw.YTop
		dc.FillText(sty, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Points(8)}, s.Title)
		body = draw.Crop(dc, 0, 0, 0, -titleHeight)
	}
	if len(s.Plots) == 0 {
		return
	}

	rows := make([][]*plot.Plot, len(s.Plots))
	for i, p := range s.Plots {
		rows[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(s.Plots),
		Cols:      1,
		PadX:      vg.Points(4),
		PadY:      vg.Points(12),
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(8),
	}
	canvases := plot.Align(rows, tiles, body)
	for i := range rows {
		rows[i][0].Draw(canvases[i][0])
	}
}
