package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Drawer is anything that can draw itself onto a canvas. *plot.Plot and
// *Stack both qualify.
type Drawer interface {
	Draw(dc draw.Canvas)
}

// Size is a figure size in inches.
type Size struct {
	Width, Height float64
}

func (s Size) lengths() (vg.Length, vg.Length) {
	return vg.Length(s.Width) * vg.Inch, vg.Length(s.Height) * vg.Inch
}

// Figure sizes, matching the layouts of the individual figures.
var (
	TrajectorySize = Size{12, 10}
	CombinedSize   = Size{15, 12}
	LengthSize     = Size{10, 6}
	FrameSize      = Size{12, 8}
)

func newCanvas(format string, size Size, dpi int) (vg.CanvasWriterTo, error) {
	w, h := size.lengths()
	switch strings.ToLower(format) {
	case "png":
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
		return vgimg.PngCanvas{Canvas: c}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	default:
		return nil, fmt.Errorf("render: unsupported format %q", format)
	}
}

// Write draws d and encodes it to w. dpi only applies to raster formats.
func Write(w io.Writer, format string, d Drawer, size Size, dpi int) error {
	c, err := newCanvas(format, size, dpi)
	if err != nil {
		return err
	}
	d.Draw(draw.New(c))
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("render: encode %s: %w", format, err)
	}
	return nil
}

// Save writes d to path, choosing the format from the extension and
// creating the parent directory if needed.
func Save(path string, d Drawer, size Size, dpi int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: cannot create directory: %w", err)
	}
	format := strings.TrimPrefix(filepath.Ext(path), ".")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: cannot create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := Write(bw, format, d, size, dpi); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return f.Close()
}
