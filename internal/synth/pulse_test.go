package synth

import (
	"math"
	"testing"
)

func gaps(pulses []Pulse) []float64 {
	var out []float64
	for _, p := range pulses {
		if p.State == Space {
			out = append(out, p.Seconds)
		}
	}
	return out
}

func within(a, b, tolFrac float64) bool {
	return math.Abs(a-b) <= tolFrac*b
}

func TestProsignHasNoInterLetterGap(t *testing.T) {
	e := New(Config{WPM: 20, ProsignLiteral: "KN"})
	dot := 1.2 / 20.0

	pulses := e.Encode("<KN>")
	for _, g := range gaps(pulses) {
		if within(g, 3*dot, 0.2) {
			t.Fatalf("found a 3-dot gap %v inside a prosign, want only 1-dot element gaps", g)
		}
	}
}

func TestPlainLettersHaveThreeDotInterLetterGap(t *testing.T) {
	e := New(Config{WPM: 20})
	dot := 1.2 / 20.0

	pulses := e.Encode("SOS")
	found := false
	for _, g := range gaps(pulses) {
		if within(g, 3*dot, 0.2) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a 3-dot inter-letter gap between plain letters")
	}
}

func TestFarnsworthStretchesInterLetterGapNotElementTiming(t *testing.T) {
	wpm, fwpm := 25.0, 10.0
	e := New(Config{WPM: wpm, FarnsworthWPM: fwpm})
	dot := 1.2 / wpm
	spaceDot := 1.2 / fwpm

	pulses := e.Encode("SOS")

	sawStretched := false
	for _, p := range pulses {
		if p.State == Mark {
			// element timing still at full wpm
			if !within(p.Seconds, dot, 0.2) && !within(p.Seconds, 3*dot, 0.2) {
				t.Fatalf("mark %v is not at the %v wpm element timing", p.Seconds, wpm)
			}
			continue
		}
		if p.State == Space && within(p.Seconds, 3*spaceDot, 0.2) {
			sawStretched = true
		}
	}
	if !sawStretched {
		t.Fatalf("expected an inter-letter gap stretched to 3x the Farnsworth dot basis")
	}
}

func TestEncodeProducesNonEmptyPulseList(t *testing.T) {
	e := New(Config{WPM: 20})
	if len(e.Encode("CQ POTA DE N0CALL K")) == 0 {
		t.Fatalf("expected a non-empty pulse list")
	}
}
