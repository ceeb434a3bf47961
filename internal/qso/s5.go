package qso

import (
	"fmt"
	"strings"
)

// processS5 handles the awaiting-final state, per spec.md §4.7 S5.
func (m *Machine) processS5(tokens []string) Result {
	subject := compact(tokens)

	if m.p2pSession {
		if strings.Contains(subject, "CALL?") {
			text := m.patterns.RenderTX(m.patterns.TX("call_doubled"), map[string]string{"CALLER": m.active.Call})
			return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: text}}}
		}
		if strings.Contains(subject, "REF?") {
			profile := m.stations.Profile(m.active.Call)
			text := m.patterns.RenderTX(m.patterns.TX("ref_doubled"), map[string]string{"MY_PARK": compactParkRef(profile.ParkRef)})
			return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: text}}}
		}
	} else if subject == "?" {
		return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: m.lastReply}}}
	}

	cleaned := collapseE(tokens)
	charByChar := looksCharByChar(cleaned)
	if !charByChar {
		cleaned = stripFillers(cleaned, m.cfg.IgnoreFillTokens, m.cfg.IgnoreBK, m.txProsign())
	}
	final := compact(cleaned)

	if !m.finalMatches(final) {
		return Result{State: m.state, Accepted: false, Errors: []string{"final exchange does not match the required closing template"}}
	}
	return m.completeContact()
}

// collapseE merges adjacent single-letter "E" tokens into one "EE" token.
func collapseE(tokens []string) []string {
	var out []string
	for i := 0; i < len(tokens); i++ {
		if tokens[i] == "E" && i+1 < len(tokens) && tokens[i+1] == "E" {
			out = append(out, "EE")
			i++
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

// looksCharByChar reports whether at least max(4, 0.6n) tokens are single
// characters, in which case filler stripping is skipped so genuine
// single-letter words inside a character-by-character transmission survive.
func looksCharByChar(tokens []string) bool {
	n := len(tokens)
	if n == 0 {
		return false
	}
	single := 0
	for _, t := range tokens {
		if len([]rune(t)) == 1 {
			single++
		}
	}
	threshold := 0.6 * float64(n)
	if threshold < 4 {
		threshold = 4
	}
	return float64(single) >= threshold
}

func stripFillers(tokens []string, fillers []string, ignoreBK bool, prosign string) []string {
	skip := make(map[string]bool, len(fillers)+1)
	for _, f := range fillers {
		skip[strings.ToUpper(f)] = true
	}
	if ignoreBK {
		skip["BK"] = true
	}
	var out []string
	for _, t := range tokens {
		u := strings.ToUpper(t)
		if u == prosign {
			out = append(out, t)
			continue
		}
		if skip[u] {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (m *Machine) finalMatches(subject string) bool {
	key := m.finalTemplateKey()
	values := map[string]string{
		"PROSIGN":     m.txProsign(),
		"CALLER":      "",
		"MY_CALL":     strings.ToUpper(m.cfg.MyCall),
		"MY_PARK_REF": compactParkRef(m.cfg.MyParkRef),
	}
	if m.active != nil {
		values["CALLER"] = m.active.Call
	}
	return m.patterns.AcceptAny(m.patterns.S5(key), values, subject)
}

func (m *Machine) finalTemplateKey() string {
	if m.p2pSession {
		if m.cfg.AllowTU {
			return "p2p_final_tu"
		}
		return "p2p_final_plain"
	}
	switch {
	case m.cfg.UseProsigns && m.cfg.AllowTU:
		return "final_tu_prosign"
	case m.cfg.UseProsigns:
		return "final_prosign"
	case m.cfg.AllowTU:
		return "final_tu"
	default:
		return "final_plain"
	}
}

// completeContact appends the completion record, emits the QSO-complete
// reply, and either re-emits the pending queue, draws a fresh auto-incoming
// batch, or returns to idle, per spec.md §4.7's contact-completion rule.
func (m *Machine) completeContact() Result {
	m.completions = append(m.completions, m.buildCompletionRecord())

	replies := []Reply{{Text: m.patterns.TX("qso_complete")}}

	m.active = nil
	m.p2pSession = false

	if len(m.pending) > 0 {
		m.state = AwaitingSelection
		replies = append(replies, m.emitCalling(m.pending)...)
		return Result{State: m.state, Accepted: true, Replies: replies}
	}

	if m.cfg.AutoIncomingAfterQSO && m.rnd.Float64() < m.cfg.AutoIncomingProbability {
		callers := m.drawCallers()
		m.assignP2P(callers)
		m.pending = callers
		m.state = AwaitingSelection
		replies = append(replies, m.emitCalling(callers)...)
		return Result{State: m.state, Accepted: true, Replies: replies}
	}

	m.state = Idle
	m.pending = nil
	return Result{State: m.state, Accepted: true, Replies: replies}
}

func (m *Machine) buildCompletionRecord() CompletionRecord {
	rec := CompletionRecord{MyCall: m.cfg.MyCall}
	if m.active == nil {
		return rec
	}
	if m.active.P2P {
		profile := m.stations.Profile(m.active.Call)
		rec.OtherCall = fmt.Sprintf("%s (P2P) %s", m.active.Call, profile.ParkRef)
	} else {
		rec.OtherCall = m.active.Call
	}
	return rec
}
