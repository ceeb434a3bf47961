// Package tone implements C2, the per-frame tone power estimator: a
// Goertzel recurrence at the target frequency with one-pole smoothing, plus
// an optional periodic FFT-based dominant-frequency tracker.
//
// Grounded on audio_extensions/morse/signal_processing.go's GoertzelFilter
// and spectrum_analyzer.go's gonum-backed peak finder.
package tone

import "math"

// Estimator computes smoothed tone power for one frame at a time and can
// optionally retune its target frequency from a periodic FFT scan.
type Estimator struct {
	sampleRate int
	frameLen   int

	freq  float64
	alpha float64

	smoothed float64

	auto       *autoTune
	frameCount int
}

// Config mirrors the decoder.* fields of spec.md §6.
type Config struct {
	SampleRate        int
	FrameLen          int
	TargetToneHz      float64
	PowerSmoothAlpha  float64
	AutoTone          bool
	AutoToneMinHz     float64
	AutoToneMaxHz     float64
}

// New builds an Estimator from config, clamping PowerSmoothAlpha to [0.01,1.0]
// per spec.md §4.1.
func New(cfg Config) *Estimator {
	alpha := cfg.PowerSmoothAlpha
	if alpha < 0.01 {
		alpha = 0.01
	}
	if alpha > 1.0 {
		alpha = 1.0
	}
	e := &Estimator{
		sampleRate: cfg.SampleRate,
		frameLen:   cfg.FrameLen,
		freq:       cfg.TargetToneHz,
		alpha:      alpha,
	}
	if cfg.AutoTone {
		minHz, maxHz := cfg.AutoToneMinHz, cfg.AutoToneMaxHz
		if minHz <= 0 {
			minHz = 300
		}
		if maxHz <= minHz {
			maxHz = 1200
		}
		e.auto = newAutoTune(cfg.SampleRate, minHz, maxHz)
	}
	return e
}

// Frequency returns the estimator's current target tone, which may have
// drifted if auto-tone is enabled.
func (e *Estimator) Frequency() float64 { return e.freq }

// Process consumes exactly one frame of samples and returns the smoothed
// power estimate. Every 5th frame, if auto-tone is enabled, it recomputes
// the dominant frequency and nudges the target tone toward it.
func (e *Estimator) Process(frame []float32) float64 {
	p := e.goertzelPower(frame)
	e.smoothed = (1-e.alpha)*e.smoothed + e.alpha*p

	e.frameCount++
	if e.auto != nil && e.frameCount%5 == 0 {
		if dom, ok := e.auto.dominant(frame, e.sampleRate); ok {
			e.freq = 0.8*e.freq + 0.2*dom
		}
	}
	return e.smoothed
}

// goertzelPower computes the single-bin Goertzel power at e.freq, normalized
// by frame length squared so it is independent of F (spec.md §4.1).
func (e *Estimator) goertzelPower(frame []float32) float64 {
	n := len(frame)
	if n == 0 {
		return 0
	}
	k := float64(n) * e.freq / float64(e.sampleRate)
	omega := 2.0 * math.Pi * k / float64(n)
	coeff := 2.0 * math.Cos(omega)

	var s1, s2 float64
	for _, sample := range frame {
		s0 := float64(sample) + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	real := s1*math.Cos(omega) - s2
	imag := s1 * math.Sin(omega)
	mag2 := real*real + imag*imag
	return mag2 / float64(n*n)
}
