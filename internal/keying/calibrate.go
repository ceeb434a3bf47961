package keying

import "sort"

// Calibrate sets the noise floor from the 75th percentile of a captured
// noise-only buffer's per-frame tone-power values, per spec.md §4.2's
// offline noise calibration and the percentile-based testable property in
// spec.md §8 invariant 5.
func (d *Detector) Calibrate(framePowers []float64) {
	if len(framePowers) == 0 {
		return
	}
	d.noiseFloor = percentile(framePowers, 75)
}

// Flush returns the currently-accumulating confirmed segment as a final
// Transition, for use at decoder shutdown (spec.md §4.3's finalize
// operation). It does not reset the detector's state.
func (d *Detector) Flush() Transition {
	return Transition{State: d.confirmedState, Duration: d.confirmedDuration + d.candidateDuration}
}

// percentile returns the p-th percentile (0..100) of data, copying and
// sorting it first. Mirrors audio_extensions/morse/signal_processing.go's
// percentile helper.
func percentile(data []float64, p float64) float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	idx := int(float64(len(sorted)-1) * p / 100.0)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
