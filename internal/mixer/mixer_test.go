package mixer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwsl/cwtrainer/internal/stations"
	"github.com/cwsl/cwtrainer/internal/synth"
)

func TestMixReturnsNilForNoTracks(t *testing.T) {
	if got := Mix(nil, Config{SampleRate: 8000, Volume: 1}, rand.New(rand.NewSource(1))); got != nil {
		t.Fatalf("expected nil for an empty track list, got %d samples", len(got))
	}
}

func TestMixProducesNonEmptyBufferAndSoftLimits(t *testing.T) {
	tracks := []Track{
		{Text: "E", Profile: stations.Profile{WPM: 20, ToneHz: 600}},
		{Text: "E", Profile: stations.Profile{WPM: 20, ToneHz: 600}},
		{Text: "E", Profile: stations.Profile{WPM: 20, ToneHz: 600}},
	}
	cfg := Config{SampleRate: 8000, Volume: 1.0, AttackMs: 4, ReleaseMs: 6}
	out := Mix(tracks, cfg, rand.New(rand.NewSource(1)))
	if len(out) == 0 {
		t.Fatalf("expected a non-empty mixed buffer")
	}
	peak := float32(0)
	for _, s := range out {
		if abs := float32(math.Abs(float64(s))); abs > peak {
			peak = abs
		}
	}
	if peak > 1.0001 {
		t.Fatalf("expected the mix to be soft-limited to a peak of 1.0, got %v", peak)
	}
}

func TestMixPadsShorterTracksToTheLongest(t *testing.T) {
	tracks := []Track{
		{Text: "E", Profile: stations.Profile{WPM: 20, ToneHz: 600}},
		{Text: "CQ POTA DE N0CALL K", Profile: stations.Profile{WPM: 20, ToneHz: 600}},
	}
	cfg := Config{SampleRate: 8000, Volume: 1.0}
	out := Mix(tracks, cfg, rand.New(rand.NewSource(1)))
	if len(out) == 0 {
		t.Fatalf("expected a non-empty mixed buffer")
	}
	long := synth.NewRenderer(synth.RenderConfig{SampleRate: 8000, ToneHz: 600, Volume: 1.0}).
		Render(synth.New(synth.Config{WPM: 20}).Encode("CQ POTA DE N0CALL K"))
	if len(out) < len(long) {
		t.Fatalf("expected the mix to span the longest track (%d samples), got %d", len(long), len(out))
	}
}
