package stations

import (
	"math/rand"
	"testing"
)

func TestProfileIsMemoizedPerCallsign(t *testing.T) {
	reg := New(Config{WPMRange: Range{Start: 15, End: 25}, ToneRange: Range{Start: 500, End: 800}}, rand.New(rand.NewSource(1)))

	first := reg.Profile("N1MM")
	second := reg.Profile("N1MM")
	if first != second {
		t.Fatalf("expected the same profile on repeated reference, got %v then %v", first, second)
	}
	if first.WPM < 15 || first.WPM > 25 {
		t.Fatalf("wpm %v out of configured range", first.WPM)
	}
	if first.ToneHz < 500 || first.ToneHz > 800 {
		t.Fatalf("tone %v out of configured range", first.ToneHz)
	}
}

func TestFixedRangeSamplesTheFixedValue(t *testing.T) {
	reg := New(Config{WPMRange: Range{Start: 18, End: 18}, ToneRange: Range{Start: 600, End: 600}}, rand.New(rand.NewSource(1)))
	p := reg.Profile("W1AW")
	if p.WPM != 18 || p.ToneHz != 600 {
		t.Fatalf("expected fixed range to always sample its single value, got %v", p)
	}
}

func TestSetParkRefUpdatesStoredProfile(t *testing.T) {
	reg := New(Config{WPMRange: Range{Start: 18, End: 18}, ToneRange: Range{Start: 600, End: 600}}, rand.New(rand.NewSource(1)))
	reg.SetParkRef("EA1AFV", "US-0001")
	if got := reg.Profile("EA1AFV").ParkRef; got != "US-0001" {
		t.Fatalf("expected stored park ref, got %q", got)
	}
}

func TestClearDropsAllStoredProfiles(t *testing.T) {
	reg := New(Config{WPMRange: Range{Start: 18, End: 18}, ToneRange: Range{Start: 600, End: 600}}, rand.New(rand.NewSource(1)))
	reg.SetParkRef("EA1AFV", "US-0001")
	reg.Clear()
	if got := reg.Profile("EA1AFV").ParkRef; got != "" {
		t.Fatalf("expected Clear to drop the stored park ref, got %q", got)
	}
}
