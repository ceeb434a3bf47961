package qso

// processS0 handles the idle state: acceptance against the CQ template,
// caller draw, optional P2P designation, and emission of the calling
// replies, per spec.md §4.7 S0.
func (m *Machine) processS0(tokens []string) Result {
	subject := compact(tokens)
	values := map[string]string{"MY_CALL": m.cfg.MyCall}
	if !m.patterns.AcceptAny(m.patterns.S0(cqPatternKey(m.cfg.CQMode)), values, subject) {
		return Result{State: Idle, Accepted: false, Errors: []string{"inbound does not match the CQ template"}}
	}

	callers := m.drawCallers()
	m.assignP2P(callers)

	m.pending = callers
	m.active = nil
	m.state = AwaitingSelection

	replies := m.emitCalling(callers)
	return Result{State: m.state, Accepted: true, Replies: replies}
}

// drawCallers samples 1..max_stations callers uniformly without replacement
// from the callsign pool, or falls back to the single configured
// other_call when the pool is empty.
func (m *Machine) drawCallers() []*Caller {
	if len(m.callsignPool) == 0 {
		return []*Caller{{Call: m.cfg.OtherCall, DisplayCall: m.cfg.OtherCall}}
	}

	n := 1
	if m.cfg.MaxStations > 1 {
		n = 1 + m.rnd.Intn(m.cfg.MaxStations)
	}
	if n > len(m.callsignPool) {
		n = len(m.callsignPool)
	}

	shuffled := append([]string(nil), m.callsignPool...)
	m.rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	callers := make([]*Caller, 0, n)
	for _, c := range shuffled[:n] {
		callers = append(callers, &Caller{Call: c, DisplayCall: c})
	}
	return callers
}

// assignP2P, with probability p_p2p (parks mode with a non-empty park
// pool), marks one caller as the P2P station: display alias "P2P", and a
// home park reference sampled once from the park pool.
func (m *Machine) assignP2P(callers []*Caller) {
	if m.cfg.CQMode != Parks || len(m.parkPool) == 0 {
		return
	}
	if m.rnd.Float64() >= m.cfg.P2PProbability {
		return
	}
	idx := m.rnd.Intn(len(callers))
	callers[idx].P2P = true
	callers[idx].DisplayCall = "P2P"

	ref := m.parkPool[m.rnd.Intn(len(m.parkPool))]
	m.stations.SetParkRef(callers[idx].Call, ref)

	m.moveToFront(callers, idx)
}

func (m *Machine) moveToFront(callers []*Caller, idx int) {
	if idx == 0 {
		return
	}
	c := callers[idx]
	copy(callers[1:idx+1], callers[:idx])
	callers[0] = c
}

// cqPatternKey selects the S0 acceptance template keyed by CQ mode, per
// spec.md §3's "S0 acceptance templates (keyed by CQ mode)".
func cqPatternKey(mode CQMode) string {
	switch mode {
	case Simple:
		return "cq_simple"
	case Summits:
		return "cq_summits"
	default:
		return "cq_parks"
	}
}

// emitCalling builds the "{DISPLAY_CALL} {DISPLAY_CALL}" reply for every
// caller in order, as one caller-group batch for the parallel mixer.
func (m *Machine) emitCalling(callers []*Caller) []Reply {
	replies := make([]Reply, 0, len(callers))
	for _, c := range callers {
		text := m.patterns.RenderTX(m.patterns.TX("calling"), map[string]string{"DISPLAY_CALL": c.DisplayCall})
		replies = append(replies, Reply{Text: text, Caller: c.Call, CallerGroup: true})
	}
	return replies
}
