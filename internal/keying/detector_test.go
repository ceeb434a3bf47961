package keying

import (
	"math"
	"math/rand"
	"testing"
)

func TestCalibrateSetsThresholdsFromPercentile(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	sigma := 0.05
	powers := make([]float64, 2000)
	for i := range powers {
		powers[i] = math.Abs(rnd.NormFloat64() * sigma)
	}

	d := New(Config{ThresholdOnMult: 4.0, ThresholdOffMult: 2.4}, 0)
	d.Calibrate(powers)

	wantN := percentile(powers, 75)
	thOn, thOff := d.thresholds()

	if thOn <= 0 || thOff <= 0 {
		t.Fatalf("expected strictly positive thresholds, got on=%v off=%v", thOn, thOff)
	}
	if math.Abs(thOn-wantN*4.0) > 1e-9 {
		t.Fatalf("th_on = %v, want %v", thOn, wantN*4.0)
	}
	if math.Abs(thOff-wantN*2.4) > 1e-9 {
		t.Fatalf("th_off = %v, want %v", thOff, wantN*2.4)
	}
}

func TestDebounceSwallowsShortBlip(t *testing.T) {
	d := New(Config{MinKeyDownSeconds: 0.02, MinKeyUpSeconds: 0.02}, 0.01)
	dt := 0.005
	dotSeconds := 0.06

	// Key up, strong tone arrives and immediately drops for one short frame
	// (a spurious blip), then resumes: no transition should ever fire for
	// the blip itself.
	confirmed := false
	for i := 0; i < 10 && !confirmed; i++ {
		_, confirmed = d.Update(1.0, dt, dotSeconds)
	}
	if !confirmed {
		t.Fatalf("expected the first sustained key-down to eventually confirm")
	}
	_, ok := d.Update(0.0, dt, dotSeconds) // one low frame, below debounce floor
	if ok {
		t.Fatalf("a single low frame should not confirm a transition")
	}
	if d.CurrentState() != Down {
		t.Fatalf("expected state to remain Down through the blip")
	}
}

func TestElapsedInStateGrowsWhileUp(t *testing.T) {
	d := New(Config{}, 1e-6)
	dt := 0.01
	for i := 0; i < 5; i++ {
		d.Update(0.0, dt, 0.06)
	}
	if d.CurrentState() != Up {
		t.Fatalf("expected Up")
	}
	if got := d.ElapsedInState(); got < 0.04 {
		t.Fatalf("expected elapsed >= 0.04, got %v", got)
	}
}
