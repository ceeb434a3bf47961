// Package iambic implements the auxiliary iambic paddle renderer described
// by spec.md §4.5: Mode A semantics driven by two paddle-state booleans,
// sharing its envelope shaping with package synth.
//
// Grounded on audio_extensions/morse/signal_processing.go's small
// single-purpose stateful structs; the alternation rule itself has no
// teacher analogue and is built directly from the specification.
package iambic

import "github.com/cwsl/cwtrainer/internal/synth"

// Element is one generated mark: Dot or Dash.
type Element int

const (
	Dot Element = iota
	Dash
)

// Keyer tracks paddle state and produces the next element per Mode A rules.
type Keyer struct {
	dotSeconds float64
	lastSent   Element
	everSent   bool
	log        []Element
}

// New builds a Keyer for the given dot-seconds unit.
func New(dotSeconds float64) *Keyer {
	return &Keyer{dotSeconds: dotSeconds}
}

// Log returns every element generated so far, for test assertions.
func (k *Keyer) Log() []Element {
	return append([]Element(nil), k.log...)
}

// Next returns the element to send given the current paddle states, and
// whether an element should be sent at all (both paddles released and no
// squeeze memory yields false).
//
// Mode A: holding one paddle alone repeats that element indefinitely.
// Holding both alternates, starting from the element opposite the last one
// sent (or Dot, if nothing has been sent yet and the squeeze paddle that
// was most recently held alone is unknown).
func (k *Keyer) Next(dit, dah bool) (Element, bool) {
	var el Element
	switch {
	case dit && dah:
		if k.everSent && k.lastSent == Dot {
			el = Dash
		} else if k.everSent && k.lastSent == Dash {
			el = Dot
		} else {
			el = Dot
		}
	case dit:
		el = Dot
	case dah:
		el = Dash
	default:
		return 0, false
	}
	k.lastSent = el
	k.everSent = true
	k.log = append(k.log, el)
	return el, true
}

// Duration returns the mark duration in seconds for an element.
func (k *Keyer) Duration(el Element) float64 {
	if el == Dash {
		return 3 * k.dotSeconds
	}
	return k.dotSeconds
}

// ElementSamples renders one element's mark portion (envelope shaped, no
// trailing inter-element space) using the same envelope math as package
// synth. cutShort truncates the element early (both paddles released
// mid-mark): the rendered mark ends immediately with a release ramp instead
// of running its full nominal duration, and no further element follows.
func ElementSamples(renderCfg synth.RenderConfig, el Element, dotSeconds float64, cutShort bool, elapsedAtCut float64) []float32 {
	r := synth.NewRenderer(renderCfg)
	full := dotSeconds
	if el == Dash {
		full = 3 * dotSeconds
	}
	dur := full
	if cutShort && elapsedAtCut > 0 && elapsedAtCut < full {
		dur = elapsedAtCut
	}
	return r.Render([]synth.Pulse{{State: synth.Mark, Seconds: dur}})
}
