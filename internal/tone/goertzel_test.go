package tone

import (
	"math"
	"testing"
)

func sineFrame(freq float64, sampleRate, n int, amplitude float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amplitude * float32(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return out
}

func TestEstimatorRespondsToToneAtTarget(t *testing.T) {
	e := New(Config{SampleRate: 8000, FrameLen: 160, TargetToneHz: 650, PowerSmoothAlpha: 1.0})
	silence := make([]float32, 160)
	tone := sineFrame(650, 8000, 160, 0.8)

	quiet := e.Process(silence)
	loud := e.Process(tone)

	if loud <= quiet {
		t.Fatalf("expected tone power %v to exceed silence power %v", loud, quiet)
	}
}

func TestEstimatorOffTargetIsQuieter(t *testing.T) {
	e1 := New(Config{SampleRate: 8000, FrameLen: 160, TargetToneHz: 650, PowerSmoothAlpha: 1.0})
	e2 := New(Config{SampleRate: 8000, FrameLen: 160, TargetToneHz: 650, PowerSmoothAlpha: 1.0})

	onTarget := sineFrame(650, 8000, 160, 0.8)
	offTarget := sineFrame(1800, 8000, 160, 0.8)

	pOn := e1.Process(onTarget)
	pOff := e2.Process(offTarget)

	if pOff >= pOn {
		t.Fatalf("expected off-target power %v to be less than on-target power %v", pOff, pOn)
	}
}
