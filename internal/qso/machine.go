// Package qso implements C7, the QSO protocol state machine: one decoded
// RX message in, a new state plus replies/info/errors out.
//
// Grounded on audio_extensions/morse/decoder.go's style of a single mutable
// struct advanced by one exported Process-like method per inbound event;
// the state-machine shape itself (S0/S2/S5, pending-caller queue, P2P path)
// has no teacher analogue and is built directly from the specification,
// using math/rand's injectable *rand.Rand per spec.md §9's "no
// module-level PRNG" note.
package qso

import (
	"math/rand"
	"strings"

	"github.com/cwsl/cwtrainer/internal/morsecode"
	"github.com/cwsl/cwtrainer/internal/patterns"
	"github.com/cwsl/cwtrainer/internal/stations"
)

// State is one of the machine's three persisted states (S1 from spec.md
// §4.7 is transient and never observed between Process calls).
type State int

const (
	Idle              State = iota // S0
	AwaitingSelection              // S2
	AwaitingFinal                  // S5
)

// CQMode selects the required keyword between "CQ" and "DE" in the S0
// template.
type CQMode int

const (
	Simple CQMode = iota
	Parks
	Summits
)

// Config mirrors the qso.* fields of spec.md §6.
type Config struct {
	MyCall  string
	OtherCall string
	CQMode  CQMode
	MaxStations int

	AutoIncomingAfterQSO    bool
	AutoIncomingProbability float64
	P2PProbability          float64
	MyParkRef               string

	Allow599    bool
	AllowTU     bool
	UseProsigns bool
	ProsignLiteral string
	IgnoreBK       bool
	IgnoreFillTokens []string
}

func (c Config) normalized() Config {
	if c.MaxStations < 1 {
		c.MaxStations = 1
	}
	if c.ProsignLiteral == "" {
		c.ProsignLiteral = "KN"
	}
	if c.IgnoreFillTokens == nil {
		c.IgnoreFillTokens = []string{"RR", "R", "DE"}
	}
	return c
}

// Caller is a simulated station in the pending queue or currently active.
type Caller struct {
	Call        string
	DisplayCall string
	P2P         bool
	RRConfirmed bool
}

// CompletionRecord is logged when a contact completes (C10 consumes these).
type CompletionRecord struct {
	MyCall    string
	OtherCall string // e.g. "EA1AFV" or "EA1AFV (P2P) US-0001"
}

// Reply is one outbound transmission. CallerGroup marks replies that belong
// to a group of caller-addressed transmissions meant to be mixed in
// parallel by C9, rather than played back serially.
type Reply struct {
	Text        string
	Caller      string // the callsign this reply is addressed to, empty if none
	CallerGroup bool
}

// Result is returned from Process.
type Result struct {
	State    State
	Accepted bool
	Replies  []Reply
	Info     []string
	Errors   []string
}

// Machine is the QSO protocol state machine.
type Machine struct {
	cfg      Config
	patterns *patterns.Engine
	stations *stations.Registry
	rnd      *rand.Rand

	callsignPool []string
	parkPool     []string

	state      State
	pending    []*Caller
	active     *Caller
	p2pSession bool

	completions []CompletionRecord
	lastReply   string
}

// New builds a Machine in the idle state.
func New(cfg Config, pe *patterns.Engine, st *stations.Registry, callsignPool, parkPool []string, rnd *rand.Rand) *Machine {
	return &Machine{
		cfg:          cfg.normalized(),
		patterns:     pe,
		stations:     st,
		rnd:          rnd,
		callsignPool: callsignPool,
		parkPool:     parkPool,
		state:        Idle,
	}
}

// State returns the machine's current persisted state.
func (m *Machine) State() State { return m.state }

// Completions returns all completion records logged so far.
func (m *Machine) Completions() []CompletionRecord {
	return append([]CompletionRecord(nil), m.completions...)
}

// ActiveCallers returns the number of callers currently in play: the
// pending pile-up queue plus the one caller selected for the S2/S5
// exchange, if any.
func (m *Machine) ActiveCallers() int {
	n := len(m.pending)
	if m.active != nil {
		n++
	}
	return n
}

// Reset returns the machine to idle and clears all in-progress QSO state,
// used on a full runtime stop (spec.md §5).
func (m *Machine) Reset() {
	m.state = Idle
	m.pending = nil
	m.active = nil
	m.p2pSession = false
	m.lastReply = ""
}

// Process advances the machine by one decoded RX message.
func (m *Machine) Process(rxText string) Result {
	tokens := morsecode.Tokenize(rxText)
	switch m.state {
	case Idle:
		return m.processS0(tokens)
	case AwaitingSelection:
		return m.processS2(tokens)
	case AwaitingFinal:
		return m.processS5(tokens)
	}
	return Result{State: m.state}
}

// compact renders the compact projection of tokens: uppercase, bracket and
// whitespace stripped, hyphens stripped too (spec.md §4.6).
func compact(tokens []string) string {
	return morsecode.CompactProjection(tokens, true)
}

func (m *Machine) txProsign() string { return strings.ToUpper(m.cfg.ProsignLiteral) }
