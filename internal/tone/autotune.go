package tone

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// autoTune recomputes a dominant-frequency estimate from a Hann-windowed FFT
// of one frame, restricted to a target band. Grounded on
// audio_extensions/morse/spectrum_analyzer.go's window + gonum fourier.FFT +
// parabolic peak refinement, simplified to a single best-bin search since C2
// only needs one dominant frequency per scan, not a peak list.
type autoTune struct {
	minHz, maxHz float64
	fft          *fourier.FFT
	window       []float64
	size         int
}

func newAutoTune(sampleRate int, minHz, maxHz float64) *autoTune {
	return &autoTune{minHz: minHz, maxHz: maxHz}
}

// dominant returns the frequency of the strongest bin within [minHz, maxHz],
// or false if the frame was too short or no bin fell in the band.
func (a *autoTune) dominant(frame []float32, sampleRate int) (float64, bool) {
	n := len(frame)
	if n < 8 {
		return 0, false
	}
	if a.fft == nil || a.size != n {
		a.size = n
		a.fft = fourier.NewFFT(n)
		a.window = make([]float64, n)
		for i := 0; i < n; i++ {
			a.window[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
		}
	}

	windowed := make([]float64, n)
	for i, s := range frame {
		windowed[i] = float64(s) * a.window[i]
	}
	coeffs := a.fft.Coefficients(nil, windowed)

	df := float64(sampleRate) / float64(n)
	minBin := int(a.minHz / df)
	maxBin := int(a.maxHz / df)
	if minBin < 1 {
		minBin = 1
	}
	if maxBin >= len(coeffs) {
		maxBin = len(coeffs) - 1
	}

	bestBin, bestPower := -1, 0.0
	for i := minBin; i <= maxBin; i++ {
		re, im := real(coeffs[i]), imag(coeffs[i])
		power := re*re + im*im
		if power > bestPower {
			bestPower = power
			bestBin = i
		}
	}
	if bestBin < 0 {
		return 0, false
	}
	return float64(bestBin) * df, true
}
