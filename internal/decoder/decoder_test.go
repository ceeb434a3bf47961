package decoder

import (
	"strings"
	"testing"

	"github.com/cwsl/cwtrainer/internal/keying"
	"github.com/cwsl/cwtrainer/internal/synth"
	"github.com/cwsl/cwtrainer/internal/tone"
)

// similarity returns a character-level similarity ratio in [0,1] based on
// Levenshtein edit distance.
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	da := levenshtein(a, b)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return 1 - float64(da)/float64(maxLen)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur := make([]int, len(rb)+1)
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = cur
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func decodeRoundTrip(t *testing.T, wpm float64) string {
	t.Helper()
	const sampleRate = 8000
	const toneHz = 650

	enc := synth.New(synth.Config{WPM: wpm, ProsignLiteral: "KN"})
	renderer := synth.NewRenderer(synth.RenderConfig{SampleRate: sampleRate, ToneHz: toneHz, Volume: 1.0, AttackMs: 4, ReleaseMs: 6})
	text := "CQ POTA DE N0CALL K"
	samples := renderer.Render(enc.Encode(text))

	d := New(Config{
		SampleRate: sampleRate,
		FrameLen:   80, // 10ms
		Tone:       tone.Config{SampleRate: sampleRate, FrameLen: 80, TargetToneHz: toneHz, PowerSmoothAlpha: 1.0},
		Keying:     keying.Config{ThresholdOnMult: 4.0, ThresholdOffMult: 2.4, AGCAlpha: 0.03},
		WPMTarget:  wpm,
		AutoWPM:    true,
		ProsignLiteral: "KN",
	})

	var decoded []string
	decoded = append(decoded, d.ProcessSamples(samples)...)
	if msg, ok := d.Finalize(); ok {
		decoded = append(decoded, msg)
	}
	return strings.Join(decoded, " ")
}

func TestRoundTripSimilarityAcrossSpeeds(t *testing.T) {
	for _, wpm := range []float64{15, 20, 25} {
		got := decodeRoundTrip(t, wpm)
		want := "CQ POTA DE N0CALL K"
		if s := similarity(got, want); s < 0.95 {
			t.Fatalf("wpm=%v: similarity %.2f too low: got %q want %q", wpm, s, got, want)
		}
	}
}
