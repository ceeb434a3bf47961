// Package keying implements C3, the keying detector: noise-floor AGC,
// hysteretic on/off thresholds, and minimum-duration debounce gating of the
// tone-power stream produced by package tone.
//
// Grounded on audio_extensions/morse/signal_processing.go's EnvelopeDetector
// (asymmetric attack/decay averaging) and decoder.go's detectTransition,
// generalized from a fixed 0.6/0.4 SNR-level test to the hysteretic
// threshold-multiplier design spec.md §4.2 requires.
package keying

import "math"

// KeyState is the confirmed (debounced) key state.
type KeyState int

const (
	Up KeyState = iota
	Down
)

// Config mirrors the decoder.* threshold fields of spec.md §6.
type Config struct {
	ThresholdOnMult  float64 // k_on, default 4.0
	ThresholdOffMult float64 // k_off, default 2.4
	AGCAlpha         float64 // beta, default 0.03
	Epsilon          float64 // floor under th_on/th_off

	MinKeyDownSeconds float64 // T_min for key-down debounce
	MinKeyUpSeconds   float64 // T_min for key-up debounce
	MinKeyDownRatio   float64 // r_min for key-down debounce (of dot estimate)
	MinKeyUpRatio     float64 // r_min for key-up debounce (of dot estimate)
}

func (c Config) normalized() Config {
	if c.ThresholdOnMult <= 0 {
		c.ThresholdOnMult = 4.0
	}
	if c.ThresholdOffMult <= 0 {
		c.ThresholdOffMult = 2.4
	}
	if c.AGCAlpha < 0.001 {
		c.AGCAlpha = 0.001
	}
	if c.AGCAlpha > 0.5 {
		c.AGCAlpha = 0.5
	}
	if c.Epsilon <= 0 {
		c.Epsilon = 1e-9
	}
	if c.MinKeyDownSeconds <= 0 {
		c.MinKeyDownSeconds = 0.012
	}
	if c.MinKeyUpSeconds <= 0 {
		c.MinKeyUpSeconds = 0.012
	}
	return c
}

// Transition reports that the key spent Duration seconds in State before
// flipping to the opposite state.
type Transition struct {
	State    KeyState
	Duration float64
}

// Detector tracks the debounced key state from a stream of smoothed
// tone-power samples, one per frame.
type Detector struct {
	cfg Config

	noiseFloor float64

	confirmedState    KeyState
	confirmedDuration float64
	candidateDuration float64
}

// New creates a Detector with the given config and an initial noise floor
// (use Calibrate, or a small positive seed, before real operation begins).
func New(cfg Config, initialNoiseFloor float64) *Detector {
	return &Detector{
		cfg:            cfg.normalized(),
		noiseFloor:     initialNoiseFloor,
		confirmedState: Up,
	}
}

// NoiseFloor returns the current AGC noise-floor estimate.
func (d *Detector) NoiseFloor() float64 { return d.noiseFloor }

// CurrentState returns the confirmed key state.
func (d *Detector) CurrentState() KeyState { return d.confirmedState }

// ElapsedInState returns how long the key has continuously held its
// confirmed state, including time spent in a not-yet-confirmed candidate
// flip (the space/mark is still ongoing until debounce confirms otherwise).
func (d *Detector) ElapsedInState() float64 {
	return d.confirmedDuration + d.candidateDuration
}

// thresholds returns (th_on, th_off) from the current noise floor.
func (d *Detector) thresholds() (thOn, thOff float64) {
	thOn = math.Max(d.noiseFloor*d.cfg.ThresholdOnMult, d.cfg.Epsilon)
	thOff = math.Max(d.noiseFloor*d.cfg.ThresholdOffMult, d.cfg.Epsilon)
	return
}

// Update feeds one frame's smoothed tone power and its duration (seconds),
// along with the decoder's current dot-seconds estimate (used to size the
// debounce floor). It returns a Transition when a debounced state change is
// confirmed.
func (d *Detector) Update(power, dt, dotSeconds float64) (Transition, bool) {
	if d.confirmedState == Up {
		// Noise floor only updates while key is up, using pre-transition power.
		d.noiseFloor = (1-d.cfg.AGCAlpha)*d.noiseFloor + d.cfg.AGCAlpha*power
	}

	thOn, thOff := d.thresholds()

	var raw KeyState
	if d.confirmedState == Down {
		if power >= thOff {
			raw = Down
		} else {
			raw = Up
		}
	} else {
		if power >= thOn {
			raw = Down
		} else {
			raw = Up
		}
	}

	if raw == d.confirmedState {
		d.confirmedDuration += d.candidateDuration + dt
		d.candidateDuration = 0
		return Transition{}, false
	}

	d.candidateDuration += dt
	floor := d.debounceFloor(raw, dotSeconds)
	if d.candidateDuration < floor {
		return Transition{}, false
	}

	t := Transition{State: d.confirmedState, Duration: d.confirmedDuration}
	d.confirmedState = raw
	d.confirmedDuration = d.candidateDuration
	d.candidateDuration = 0
	return t, true
}

func (d *Detector) debounceFloor(targetState KeyState, dotSeconds float64) float64 {
	if targetState == Down {
		return math.Max(d.cfg.MinKeyDownSeconds, d.cfg.MinKeyDownRatio*dotSeconds)
	}
	return math.Max(d.cfg.MinKeyUpSeconds, d.cfg.MinKeyUpRatio*dotSeconds)
}
