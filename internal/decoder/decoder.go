// Package decoder implements C4, the Morse decoder: it drives a
// tone.Estimator and a keying.Detector from a stream of audio frames,
// classifies completed marks and spaces, and accumulates decoded text into
// flushed messages.
//
// Grounded on audio_extensions/morse/decoder.go's processMark/processSpace/
// updateWPM/checkWordSeparator state machine, generalized from that file's
// fixed thresholds to the configurable multipliers and armed per-interval
// gap flags spec.md §4.3 requires.
package decoder

import (
	"sort"
	"strings"

	"github.com/cwsl/cwtrainer/internal/keying"
	"github.com/cwsl/cwtrainer/internal/morsecode"
	"github.com/cwsl/cwtrainer/internal/tone"
)

// Config mirrors the decoder.* fields of spec.md §6.
type Config struct {
	SampleRate int
	FrameLen   int

	Tone   tone.Config
	Keying keying.Config

	WPMTarget float64
	AutoWPM   bool

	DotMinSeconds float64 // D_min, default 0.025
	DotMaxSeconds float64 // D_max, default 0.220

	DashThresholdDots    float64 // k_dash, default 2.2, never below 1.6
	GapCharThresholdDots float64 // k_char, default 1.8
	GapWordThresholdDots float64 // k_word, default 5.0
	MessageGapDots       float64 // k_msg, default 12.0
	MessageGapSeconds    float64 // optional absolute override, 0 disables

	ProsignLiteral string
}

func (c Config) normalized() Config {
	if c.DotMinSeconds <= 0 {
		c.DotMinSeconds = 0.025
	}
	if c.DotMaxSeconds <= 0 {
		c.DotMaxSeconds = 0.220
	}
	if c.DashThresholdDots < 1.6 {
		c.DashThresholdDots = 2.2
	}
	if c.GapCharThresholdDots <= 0 {
		c.GapCharThresholdDots = 1.8
	}
	if c.GapWordThresholdDots <= 0 {
		c.GapWordThresholdDots = 5.0
	}
	if c.MessageGapDots <= 0 {
		c.MessageGapDots = 12.0
	}
	if c.WPMTarget <= 0 {
		c.WPMTarget = 20
	}
	return c
}

// Decoder is the streaming Morse decoder described by spec.md §4.3.
type Decoder struct {
	cfg   Config
	tone  *tone.Estimator
	key   *keying.Detector
	table *morsecode.CodeTable

	carry []float32

	dotSeconds float64
	markRing   []float64 // recent mark durations, for auto-WPM median

	curSymbol strings.Builder
	curWord   strings.Builder
	words     []string

	charFlushed, wordFlushed, msgFlushed bool
}

// New builds a Decoder from config.
func New(cfg Config) *Decoder {
	cfg = cfg.normalized()
	d := &Decoder{
		cfg:        cfg,
		tone:       tone.New(cfg.Tone),
		key:        keying.New(cfg.Keying, 1e-6),
		table:      morsecode.New(cfg.ProsignLiteral),
		dotSeconds: clamp(1.2/cfg.WPMTarget, cfg.DotMinSeconds, cfg.DotMaxSeconds),
	}
	// A fresh decoder starts key-up with all three gap flags already set
	// (disarmed) so a leading silence does not flush empty state; the first
	// completed mark rearms them.
	d.charFlushed, d.wordFlushed, d.msgFlushed = true, true, true
	return d
}

// DotSeconds returns the current adaptive dot-seconds estimate D̂.
func (d *Decoder) DotSeconds() float64 { return d.dotSeconds }

// Calibrate seeds the keying detector's noise floor from a captured
// noise-only buffer, one tone-power sample per frame.
func (d *Decoder) Calibrate(framePowers []float64) {
	d.key.Calibrate(framePowers)
}

// ProcessSamples appends samples to the internal carry buffer, consumes as
// many full frames as fit, and returns the complete messages emitted while
// processing this batch.
func (d *Decoder) ProcessSamples(samples []float32) []string {
	d.carry = append(d.carry, samples...)

	var messages []string
	frameLen := d.cfg.FrameLen
	dt := float64(frameLen) / float64(d.cfg.SampleRate)

	for len(d.carry) >= frameLen {
		frame := d.carry[:frameLen]
		d.carry = d.carry[frameLen:]

		power := d.tone.Process(frame)
		if msg, ok := d.step(power, dt); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

// step advances the decoder by one frame and returns a flushed message, if
// the message-gap threshold was crossed on this frame.
func (d *Decoder) step(power, dt float64) (string, bool) {
	if t, ok := d.key.Update(power, dt, d.dotSeconds); ok {
		if t.State == keying.Down {
			d.onMarkComplete(t.Duration)
		} else {
			d.onSpaceComplete()
		}
	}

	if d.key.CurrentState() != keying.Up {
		return "", false
	}
	return d.checkGaps(d.key.ElapsedInState())
}

// onMarkComplete classifies a just-ended mark as dot or dash, appends it to
// the in-progress symbol, records it for auto-WPM, and rearms all three gap
// flags for the key-up interval that follows.
func (d *Decoder) onMarkComplete(duration float64) {
	if duration < d.cfg.DashThresholdDots*d.dotSeconds {
		d.curSymbol.WriteByte('.')
	} else {
		d.curSymbol.WriteByte('-')
	}
	d.recordMark(duration)
	d.charFlushed, d.wordFlushed, d.msgFlushed = false, false, false
}

// onSpaceComplete rearms nothing; threshold flags only rearm on key-down.
// It exists so the mark/space transitions remain symmetric in case future
// gap classes key off the completed space duration directly.
func (d *Decoder) onSpaceComplete() {}

// recordMark folds a mark duration into the auto-WPM ring buffer and
// recomputes D̂ per spec.md §4.3 once at least 6 marks have been observed.
func (d *Decoder) recordMark(duration float64) {
	d.markRing = append(d.markRing, duration)
	if len(d.markRing) > 64 {
		d.markRing = d.markRing[len(d.markRing)-64:]
	}
	if !d.cfg.AutoWPM || len(d.markRing) < 6 {
		return
	}
	sorted := append([]float64(nil), d.markRing...)
	sort.Float64s(sorted)
	lower := sorted[:len(sorted)/2]
	dShort := clamp(median(lower), d.cfg.DotMinSeconds, d.cfg.DotMaxSeconds)
	d.dotSeconds = clamp(0.85*d.dotSeconds+0.15*dShort, d.cfg.DotMinSeconds, d.cfg.DotMaxSeconds)
}

// checkGaps evaluates the running key-up duration against the char, word,
// and message thresholds, each armed once per key-up interval, and returns
// a decoded message if the message-gap threshold just fired.
func (d *Decoder) checkGaps(elapsed float64) (string, bool) {
	charThreshold := d.dotSeconds * max(1.6, d.cfg.GapCharThresholdDots)
	wordThreshold := max(charThreshold+0.8*d.dotSeconds, d.dotSeconds*d.cfg.GapWordThresholdDots)
	msgThreshold := d.dotSeconds * d.cfg.MessageGapDots
	if d.cfg.MessageGapSeconds > 0 {
		msgThreshold = d.cfg.MessageGapSeconds
	}

	if !d.charFlushed && elapsed >= charThreshold {
		d.flushSymbol()
		d.charFlushed = true
	}
	if !d.wordFlushed && elapsed >= wordThreshold {
		d.flushWord()
		d.wordFlushed = true
	}
	if !d.msgFlushed && elapsed >= msgThreshold {
		d.msgFlushed = true
		if msg, ok := d.flushMessage(); ok {
			return msg, true
		}
	}
	return "", false
}

// flushSymbol looks up the in-progress symbol in the code table and appends
// the decoded token to the current word. Unknown patterns are dropped.
func (d *Decoder) flushSymbol() {
	sym := d.curSymbol.String()
	d.curSymbol.Reset()
	if sym == "" {
		return
	}
	if tok, ok := d.table.Decode(sym); ok {
		d.curWord.WriteString(tok)
	}
}

// flushWord moves the in-progress word into the accumulated word list.
func (d *Decoder) flushWord() {
	w := d.curWord.String()
	d.curWord.Reset()
	if w != "" {
		d.words = append(d.words, w)
	}
}

// flushMessage joins the accumulated words into one decoded message and
// clears them. Returns false if there is nothing to emit.
func (d *Decoder) flushMessage() (string, bool) {
	if len(d.words) == 0 {
		return "", false
	}
	msg := strings.Join(d.words, " ")
	d.words = nil
	return msg, true
}

// Finalize flushes any pending symbol, word, and message at shutdown.
func (d *Decoder) Finalize() (string, bool) {
	if t := d.key.Flush(); t.State == keying.Up {
		d.checkGaps(t.Duration)
	}
	d.flushSymbol()
	d.flushWord()
	return d.flushMessage()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
