// Package stations implements C8, the per-caller TX profile registry: each
// simulated caller is assigned a random speed/tone (and, for P2P callers, a
// home park reference) once, on first reference, and keeps it for the rest
// of the session.
//
// Grounded on audio_extensions/morse's pattern of small memoizing maps
// keyed by callsign (seen in the teacher's session bookkeeping files), with
// randomness injected rather than taken from a package-level PRNG per
// spec.md §9.
package stations

import "math/rand"

// Profile is a simulated caller's sending characteristics.
type Profile struct {
	WPM       float64
	ToneHz    float64
	ParkRef   string // only set for P2P callers
}

// Range is an inclusive sampling range; if End < Start the two are swapped
// before sampling.
type Range struct {
	Start, End float64
}

// Config mirrors the encoder.*_out_start/end fields of spec.md §6.
type Config struct {
	WPMRange  Range
	ToneRange Range
}

func (r Range) normalized() Range {
	if r.End < r.Start {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

func (r Range) sample(rnd *rand.Rand) float64 {
	r = r.normalized()
	if r.End == r.Start {
		return r.Start
	}
	return r.Start + rnd.Float64()*(r.End-r.Start)
}

// Registry memoizes Profiles per callsign.
type Registry struct {
	cfg     Config
	rnd     *rand.Rand
	byCall  map[string]Profile
}

// New builds an empty Registry.
func New(cfg Config, rnd *rand.Rand) *Registry {
	return &Registry{cfg: cfg, rnd: rnd, byCall: make(map[string]Profile)}
}

// Profile returns the stored profile for call, sampling and storing one on
// first reference.
func (r *Registry) Profile(call string) Profile {
	if p, ok := r.byCall[call]; ok {
		return p
	}
	p := Profile{
		WPM:    round1(r.cfg.WPMRange.sample(r.rnd)),
		ToneHz: round1(r.cfg.ToneRange.sample(r.rnd)),
	}
	r.byCall[call] = p
	return p
}

// SetParkRef assigns a home park reference to call's profile, used for P2P
// callers whose reference is drawn once from the park pool.
func (r *Registry) SetParkRef(call, ref string) {
	p := r.Profile(call)
	p.ParkRef = ref
	r.byCall[call] = p
}

// Clear drops all stored profiles, called on a full runtime stop. A pause
// must not call this.
func (r *Registry) Clear() {
	r.byCall = make(map[string]Profile)
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
