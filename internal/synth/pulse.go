// Package synth implements C5, the CW synthesizer: text to a pulse list,
// and a pulse list to phase-continuous enveloped audio samples.
//
// Grounded on audio_extensions/morse's companion encoder idiom (none exists
// verbatim in the teacher; the rendering math follows
// audio_extensions/morse/signal_processing.go's style of small stateful
// structs with a single Process/Render entry point).
package synth

import (
	"strings"

	"github.com/cwsl/cwtrainer/internal/morsecode"
)

// PulseState is whether a pulse is tone-on or silent.
type PulseState int

const (
	Mark PulseState = iota
	Space
)

// Pulse is one element of the pulse list: a state held for Seconds.
type Pulse struct {
	State   PulseState
	Seconds float64
}

// Config mirrors the encoder.* fields of spec.md §6.
type Config struct {
	WPM            float64
	FarnsworthWPM  float64 // 0 disables
	ProsignTokens  []string
	ProsignLiteral string
}

// Encoder builds pulse lists from text.
type Encoder struct {
	cfg       Config
	table     *morsecode.CodeTable
	prosigns  map[string]bool
	dotSecs   float64
	spaceSecs float64 // Farnsworth dot basis for inter-letter/word gaps
}

// New builds an Encoder from config.
func New(cfg Config) *Encoder {
	e := &Encoder{
		cfg:      cfg,
		table:    morsecode.New(cfg.ProsignLiteral),
		prosigns: make(map[string]bool),
	}
	for _, p := range cfg.ProsignTokens {
		e.prosigns[strings.ToUpper(p)] = true
	}
	if cfg.ProsignLiteral != "" {
		e.prosigns[strings.ToUpper(cfg.ProsignLiteral)] = true
	}
	if len(e.prosigns) == 0 {
		e.prosigns["KN"] = true
	}

	wpm := cfg.WPM
	if wpm <= 0 {
		wpm = 20
	}
	e.dotSecs = 1.2 / wpm
	e.spaceSecs = e.dotSecs
	if cfg.FarnsworthWPM > 0 && cfg.FarnsworthWPM < wpm {
		e.spaceSecs = 1.2 / cfg.FarnsworthWPM
	}
	return e
}

// isProsign reports whether a token should be sent with no inter-letter
// gap: it is bracketed "<...>" or matches a configured prosign literal in
// plain form.
func (e *Encoder) isProsign(token string) bool {
	t := strings.ToUpper(token)
	if strings.HasPrefix(t, "<") && strings.HasSuffix(t, ">") {
		return true
	}
	return e.prosigns[t]
}

// Encode tokenizes text and emits its coalesced pulse list per spec.md §4.4.
func (e *Encoder) Encode(text string) []Pulse {
	tokens := morsecode.Tokenize(text)
	var pulses []Pulse

	for ti, token := range tokens {
		if ti > 0 {
			pulses = append(pulses, Pulse{Space, 7 * e.spaceSecs})
		}

		letters := strings.TrimPrefix(strings.TrimSuffix(strings.ToUpper(token), ">"), "<")
		prosign := e.isProsign(token)

		for li := 0; li < len(letters); li++ {
			if li > 0 {
				if prosign {
					pulses = append(pulses, Pulse{Space, e.dotSecs})
				} else {
					pulses = append(pulses, Pulse{Space, 3 * e.spaceSecs})
				}
			}
			code, ok := e.table.Encode(letters[li])
			if !ok {
				continue
			}
			for ei, sym := range code {
				if ei > 0 {
					pulses = append(pulses, Pulse{Space, e.dotSecs})
				}
				dur := e.dotSecs
				if sym == '-' {
					dur = 3 * e.dotSecs
				}
				pulses = append(pulses, Pulse{Mark, dur})
			}
		}
	}
	return coalesce(pulses)
}

// coalesce merges adjacent same-state pulses into one, summing durations.
func coalesce(pulses []Pulse) []Pulse {
	if len(pulses) == 0 {
		return pulses
	}
	out := make([]Pulse, 0, len(pulses))
	out = append(out, pulses[0])
	for _, p := range pulses[1:] {
		last := &out[len(out)-1]
		if last.State == p.State {
			last.Seconds += p.Seconds
		} else {
			out = append(out, p)
		}
	}
	return out
}
