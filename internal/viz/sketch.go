package viz

import (
	"math"
	"strings"

	"github.com/san-kum/ropestate/internal/geom"
)

const brailleBlank = 0x2800

// Braille cells hold 2x4 dots; dotBits maps a dot row and column to its bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleCanvas is a dot grid of (2*cols) x (4*rows) packed into Braille
// characters.
type brailleCanvas struct {
	cols, rows int
	cells      []rune
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	cells := make([]rune, cols*rows)
	for i := range cells {
		cells[i] = brailleBlank
	}
	return &brailleCanvas{cols: cols, rows: rows, cells: cells}
}

func (c *brailleCanvas) dots() (w, h int) { return 2 * c.cols, 4 * c.rows }

func (c *brailleCanvas) set(x, y int) {
	w, h := c.dots()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	c.cells[(y/4)*c.cols+x/2] |= dotBits[y%4][x%2]
}

// line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *brailleCanvas) line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *brailleCanvas) String() string {
	var b strings.Builder
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		if r < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// RopeSketch draws rope as seen by cam in cols x rows terminal cells. The
// drawing is scaled to the camera's frame box, so sketches of different
// steps of one run line up.
func RopeSketch(cam *geom.Camera, rope []geom.Vec3, cols, rows int) string {
	c := newBrailleCanvas(cols, rows)
	if len(rope) == 0 || cols <= 0 || rows <= 0 {
		return c.String()
	}

	minX, maxX, minY, maxY := cam.Extent()
	w, h := c.dots()
	sx := float64(w-1) / math.Max(maxX-minX, 1e-12)
	sy := float64(h-1) / math.Max(maxY-minY, 1e-12)

	toDots := func(p geom.Vec3) (int, int) {
		x, y, _ := cam.Project(p)
		// screen Y grows downwards
		return int(math.Round((x - minX) * sx)), int(math.Round((maxY - y) * sy))
	}

	px, py := toDots(rope[0])
	c.set(px, py)
	for _, p := range rope[1:] {
		if !geom.Finite(p) {
			continue
		}
		x, y := toDots(p)
		c.line(px, py, x, y)
		px, py = x, y
	}
	return c.String()
}
