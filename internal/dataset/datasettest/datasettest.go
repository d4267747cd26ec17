// Package datasettest writes simulation traces for tests.
package datasettest

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/san-kum/ropestate/internal/dataset"
	"github.com/san-kum/ropestate/internal/geom"
)

// TB is the part of testing.TB the helpers need. GinkgoT satisfies it.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// WriteFrames writes frames ([step][particle]) as a trace named name in dir
// and returns its path. Extra columns are appended after the particle
// columns with a constant value of 0.
func WriteFrames(t TB, dir, name string, frames [][]geom.Vec3, extra ...string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	n := 0
	if len(frames) > 0 {
		n = len(frames[0])
	}

	w := csv.NewWriter(f)
	header := make([]string, 0, 3*n+len(extra))
	for p := 0; p < n; p++ {
		header = append(header,
			dataset.ColumnName(p, 'X'),
			dataset.ColumnName(p, 'Y'),
			dataset.ColumnName(p, 'Z'),
		)
	}
	header = append(header, extra...)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}

	for _, frame := range frames {
		row := make([]string, 0, len(header))
		for _, v := range frame {
			row = append(row, format(v.X), format(v.Y), format(v.Z))
		}
		for range extra {
			row = append(row, "0")
		}
		if err := w.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush %s: %v", path, err)
	}
	return path
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// HangingRope returns a rope of n particles spaced one unit apart along X
// that swings in Z over steps frames.
func HangingRope(steps, n int) [][]geom.Vec3 {
	frames := make([][]geom.Vec3, steps)
	for s := range frames {
		phase := float64(s) / float64(max(steps, 1)) * 2 * math.Pi
		frames[s] = make([]geom.Vec3, n)
		for p := range frames[s] {
			frames[s][p] = geom.Vec3{
				X: float64(p),
				Y: 0.1 * float64(p) * math.Sin(phase),
				Z: -0.05 * float64(p*p) * math.Cos(phase),
			}
		}
	}
	return frames
}
