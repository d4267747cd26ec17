package metrics

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of the real FFT of series after its
// mean is removed. Index k holds the component at k/len(series) cycles
// per step.
func PowerSpectrum(series []float64) ([]float64, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(len(centered))
	coeff := fft.Coefficients(nil, centered)

	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps, nil
}

// DominantPeriod returns the period, in steps, of the strongest non-constant
// component of series. It reports false for series too short or too flat
// to oscillate.
func DominantPeriod(series []float64) (float64, bool) {
	if len(series) < 4 {
		return 0, false
	}
	ps, err := PowerSpectrum(series)
	if err != nil {
		return 0, false
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] < 1e-12 {
		return 0, false
	}
	return float64(len(series)) / float64(best), true
}
