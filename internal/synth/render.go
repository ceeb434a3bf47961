package synth

import "math"

// RenderConfig carries the sample-accurate rendering parameters of
// spec.md §4.4, shared with the iambic paddle renderer.
type RenderConfig struct {
	SampleRate  int
	ToneHz      float64
	Volume      float64 // clamped to [0,1]
	AttackMs    float64 // default 4
	ReleaseMs   float64 // default 6
	SilenceTail float64 // seconds of trailing silence, default 0.3
}

func (c RenderConfig) normalized() RenderConfig {
	if c.SampleRate <= 0 {
		c.SampleRate = 48000
	}
	if c.Volume < 0 {
		c.Volume = 0
	}
	if c.Volume > 1 {
		c.Volume = 1
	}
	if c.AttackMs <= 0 {
		c.AttackMs = 4
	}
	if c.ReleaseMs <= 0 {
		c.ReleaseMs = 6
	}
	if c.SilenceTail <= 0 {
		c.SilenceTail = 0.3
	}
	return c
}

// Renderer turns a pulse list into audio samples, carrying sine phase
// continuously across mark pulses so there is no click at pulse boundaries.
type Renderer struct {
	cfg   RenderConfig
	phase float64
}

// NewRenderer builds a Renderer from config.
func NewRenderer(cfg RenderConfig) *Renderer {
	return &Renderer{cfg: cfg.normalized()}
}

// Render converts a pulse list to samples, appending a silence tail.
func (r *Renderer) Render(pulses []Pulse) []float32 {
	var out []float32
	for _, p := range pulses {
		out = append(out, r.renderPulse(p)...)
	}
	tailN := int(math.Round(r.cfg.SilenceTail * float64(r.cfg.SampleRate)))
	out = append(out, make([]float32, tailN)...)
	return out
}

func (r *Renderer) renderPulse(p Pulse) []float32 {
	n := int(math.Round(p.Seconds * float64(r.cfg.SampleRate)))
	if n <= 0 {
		return nil
	}
	if p.State == Space {
		step := 2 * math.Pi * r.cfg.ToneHz / float64(r.cfg.SampleRate)
		r.phase = math.Mod(r.phase+step*float64(n), 2*math.Pi)
		return make([]float32, n)
	}

	samples := make([]float32, n)
	step := 2 * math.Pi * r.cfg.ToneHz / float64(r.cfg.SampleRate)
	for k := 0; k < n; k++ {
		samples[k] = float32(math.Sin(r.phase+step*float64(k))) * float32(r.cfg.Volume)
	}
	r.phase = math.Mod(r.phase+step*float64(n), 2*math.Pi)

	applyEnvelope(samples, r.cfg.SampleRate, r.cfg.AttackMs, r.cfg.ReleaseMs)
	return samples
}

// applyEnvelope shapes samples in place with a linear attack/release ramp.
// If attack+release would exceed the pulse length, the pulse is split in
// half: ramp up for the first half, down for the second.
func applyEnvelope(samples []float32, sampleRate int, attackMs, releaseMs float64) {
	n := len(samples)
	attackN := int(math.Round(attackMs / 1000 * float64(sampleRate)))
	releaseN := int(math.Round(releaseMs / 1000 * float64(sampleRate)))

	if attackN+releaseN > n {
		half := n / 2
		for k := 0; k < half; k++ {
			samples[k] *= float32(k) / float32(half)
		}
		for k := half; k < n; k++ {
			samples[k] *= float32(n-1-k) / float32(n-half)
		}
		return
	}

	for k := 0; k < attackN; k++ {
		samples[k] *= float32(k) / float32(attackN)
	}
	for k := 0; k < releaseN; k++ {
		idx := n - 1 - k
		samples[idx] *= float32(k) / float32(releaseN)
	}
}
