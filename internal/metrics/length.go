package metrics

import (
	"errors"
	"math"

	"github.com/san-kum/ropestate/internal/geom"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrEmptySeries = errors.New("metrics: empty series")

// RopeLength sums the distances between consecutive particles.
func RopeLength(rope []geom.Vec3) float64 {
	total := 0.0
	for i := 0; i+1 < len(rope); i++ {
		total += geom.Dist(rope[i], rope[i+1])
	}
	return total
}

// LengthSeries returns the rope length at every step.
func LengthSeries(frames [][]geom.Vec3) []float64 {
	lengths := make([]float64, len(frames))
	for i, frame := range frames {
		lengths[i] = RopeLength(frame)
	}
	return lengths
}

// Stats summarizes a series. Std is the population standard deviation.
type Stats struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

func Summarize(series []float64) (Stats, error) {
	if len(series) == 0 {
		return Stats{}, ErrEmptySeries
	}
	mean, std := stat.PopMeanStdDev(series, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Stats{
		Mean: mean,
		Std:  std,
		Min:  floats.Min(series),
		Max:  floats.Max(series),
	}, nil
}

// MaxDrift is the largest relative deviation of series from its first
// value. An inextensible rope keeps this near zero. It is zero when the
// series is empty or starts at zero.
func MaxDrift(series []float64) float64 {
	if len(series) == 0 || series[0] == 0 {
		return 0
	}
	l0 := math.Abs(series[0])
	drift := 0.0
	for _, l := range series[1:] {
		drift = math.Max(drift, math.Abs(l-series[0])/l0)
	}
	return drift
}
