// Package mixer implements C9, the parallel mixer: when a group of caller
// replies is emitted together, each is rendered with its own station
// profile at a random absolute delay and summed into one playback buffer.
//
// Grounded on audio_extensions/morse/signal_processing.go's preference for
// small pure functions over sample slices; summation and soft-limiting has
// no teacher analogue (the teacher never mixes multiple CW sources) and is
// built directly from spec.md §4.9.
package mixer

import (
	"math"
	"math/rand"

	"github.com/cwsl/cwtrainer/internal/stations"
	"github.com/cwsl/cwtrainer/internal/synth"
)

// Track is one caller's text to render before mixing.
type Track struct {
	Text    string
	Profile stations.Profile
}

// Config carries the fields of RenderConfig that are common across the
// group; ToneHz and WPM are overridden per track from its station profile.
type Config struct {
	SampleRate     int
	Volume         float64
	AttackMs       float64
	ReleaseMs      float64
	FarnsworthWPM  float64
	ProsignTokens  []string
	ProsignLiteral string
}

// Mix renders each track at its own profile's WPM/tone, gives each a
// uniform random absolute delay in [0, 2] seconds, pads to a common length,
// sums sample-wise, and soft-limits if the peak exceeds 1.0.
func Mix(tracks []Track, cfg Config, rnd *rand.Rand) []float32 {
	if len(tracks) == 0 {
		return nil
	}

	rendered := make([][]float32, len(tracks))
	maxLen := 0
	for i, tr := range tracks {
		enc := synth.New(synth.Config{
			WPM:            tr.Profile.WPM,
			FarnsworthWPM:  cfg.FarnsworthWPM,
			ProsignTokens:  cfg.ProsignTokens,
			ProsignLiteral: cfg.ProsignLiteral,
		})
		renderer := synth.NewRenderer(synth.RenderConfig{
			SampleRate: cfg.SampleRate,
			ToneHz:     tr.Profile.ToneHz,
			Volume:     cfg.Volume,
			AttackMs:   cfg.AttackMs,
			ReleaseMs:  cfg.ReleaseMs,
		})
		samples := renderer.Render(enc.Encode(tr.Text))

		delaySamples := int(rnd.Float64() * 2.0 * float64(cfg.SampleRate))
		padded := make([]float32, delaySamples+len(samples))
		copy(padded[delaySamples:], samples)

		rendered[i] = padded
		if len(padded) > maxLen {
			maxLen = len(padded)
		}
	}

	mixed := make([]float32, maxLen)
	for _, r := range rendered {
		for i, s := range r {
			mixed[i] += s
		}
	}

	peak := float32(0)
	for _, s := range mixed {
		if abs := float32(math.Abs(float64(s))); abs > peak {
			peak = abs
		}
	}
	if peak > 1.0 {
		for i := range mixed {
			mixed[i] /= peak
		}
	}
	return mixed
}
