package qso

import "strings"

// processS2 handles the awaiting-selection/awaiting-report state, per
// spec.md §4.7 S2.
func (m *Machine) processS2(tokens []string) Result {
	subject := compact(tokens)

	if m.active == nil {
		return m.processS2NoneSelected(tokens, subject)
	}
	return m.processS2Selected(tokens, subject)
}

func (m *Machine) processS2NoneSelected(tokens []string, subject string) Result {
	if c := m.findByExactQuery(subject); c != nil {
		m.active = c
		m.removePending(c)
		c.RRConfirmed = true
		return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: "RR"}}}
	}

	if strings.Contains(subject, "?") {
		matches := m.wildcardMatches(tokens)
		if len(matches) == 0 {
			return Result{State: m.state, Accepted: true, Replies: nil}
		}
		return Result{State: m.state, Accepted: true, Replies: m.emitCalling(matches)}
	}

	if c := m.findByPrefixScan(subject); c != nil {
		m.active = c
		m.removePending(c)
		return m.processS2Selected(tokens, subject)
	}

	return Result{State: m.state, Accepted: false, Errors: []string{"inbound matches no pending caller"}}
}

func (m *Machine) processS2Selected(tokens []string, subject string) Result {
	active := m.active

	if strings.Contains(subject, queryKey(active)+"?") {
		active.RRConfirmed = true
		return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: "RR"}}}
	}
	if strings.Contains(subject, "?") {
		text := m.patterns.RenderTX(m.patterns.TX("query_echo"), map[string]string{"CALLER": active.Call})
		return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: text}}}
	}

	if active.P2P {
		return m.validateP2PReport(subject)
	}
	return m.validateReport(subject)
}

func (m *Machine) validateReport(subject string) Result {
	key := "report_require_call"
	if m.active.RRConfirmed {
		key = "report_no_call"
	}
	if m.cfg.Allow599 {
		key += "_599"
	}
	values := map[string]string{"CALLER": m.active.Call}
	if !m.patterns.AcceptAny(m.patterns.S2(key), values, subject) {
		return Result{State: m.state, Accepted: false, Errors: []string{"report does not match the " + key + " template"}}
	}

	text := m.patterns.RenderTX(m.patterns.TX("report_reply"), map[string]string{"TX_PROSIGN": m.txProsign()})
	m.lastReply = text
	m.state = AwaitingFinal
	return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: text}}}
}

func (m *Machine) validateP2PReport(subject string) Result {
	if !m.patterns.AcceptAny(m.patterns.S2("p2p_ack"), nil, subject) {
		return Result{State: m.state, Accepted: false, Errors: []string{"P2P ack does not match the p2p_ack template"}}
	}

	profile := m.stations.Profile(m.active.Call)
	values := map[string]string{
		"TX_PROSIGN": m.txProsign(),
		"CALLER":     m.active.Call,
		"MY_PARK":    compactParkRef(profile.ParkRef),
	}
	key := "p2p_station_reply_without_tu"
	if m.cfg.AllowTU {
		key = "p2p_station_reply_with_tu"
	}
	text := m.patterns.RenderTX(m.patterns.TX(key), values)
	m.lastReply = text
	m.p2pSession = true
	m.state = AwaitingFinal
	return Result{State: m.state, Accepted: true, Replies: []Reply{{Text: text}}}
}

func compactParkRef(ref string) string {
	return strings.ReplaceAll(strings.ToUpper(ref), "-", "")
}
