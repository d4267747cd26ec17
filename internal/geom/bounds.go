package geom

import "gonum.org/v1/gonum/spatial/r3"

// Bounds is an axis-aligned box. Its Vertices are ordered counter-clockwise
// in the XY plane, 0-3 at minimum Z and 4-7 at maximum Z.
type Bounds = r3.Box

// BoundsOf returns the extent of every finite point in frames. ok is false
// when there are none.
func BoundsOf(frames [][]Vec3) (b Bounds, ok bool) {
	for _, frame := range frames {
		for _, p := range frame {
			if !Finite(p) {
				continue
			}
			if !ok {
				b = Bounds{Min: p, Max: p}
				ok = true
				continue
			}
			b.Min.X, b.Max.X = minMax(b.Min.X, b.Max.X, p.X)
			b.Min.Y, b.Max.Y = minMax(b.Min.Y, b.Max.Y, p.Y)
			b.Min.Z, b.Max.Z = minMax(b.Min.Z, b.Max.Z, p.Z)
		}
	}
	return b, ok
}

func minMax(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// Pad grows every axis of b by frac of its range on both sides. A
// degenerate axis is treated as having range 1.
func Pad(b Bounds, frac float64) Bounds {
	pad := func(lo, hi float64) (float64, float64) {
		r := hi - lo
		if r == 0 {
			r = 1
		}
		return lo - frac*r, hi + frac*r
	}
	b.Min.X, b.Max.X = pad(b.Min.X, b.Max.X)
	b.Min.Y, b.Max.Y = pad(b.Min.Y, b.Max.Y)
	b.Min.Z, b.Max.Z = pad(b.Min.Z, b.Max.Z)
	return b
}

// Edges lists the twelve box edges as pairs of Bounds.Vertices indices.
var Edges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Vertices leaving vertex 0 along X, Y and Z.
const (
	VertexX = 1
	VertexY = 3
	VertexZ = 4
)
