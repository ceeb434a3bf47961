package qso

import (
	"regexp"
	"strings"
)

// queryKey returns the identifier a caller is actually addressed by over
// the air: its display alias (e.g. "P2P"), falling back to its callsign.
func queryKey(c *Caller) string {
	if c.DisplayCall != "" {
		return c.DisplayCall
	}
	return c.Call
}

// findByExactQuery returns the pending caller whose query key, followed
// by "?", appears in subject.
func (m *Machine) findByExactQuery(subject string) *Caller {
	for _, c := range m.pending {
		if strings.Contains(subject, queryKey(c)+"?") {
			return c
		}
	}
	return nil
}

// wildcardMatches returns the pending callers matching any "?"-bearing
// token, treating "?" as ".*", in pending-queue order with no duplicates.
// A bare "?" token matches every pending caller.
func (m *Machine) wildcardMatches(tokens []string) []*Caller {
	var patterns []string
	for _, tok := range tokens {
		t := strings.ToUpper(tok)
		if !strings.Contains(t, "?") {
			continue
		}
		if t == "?" {
			return append([]*Caller(nil), m.pending...)
		}
		patterns = append(patterns, regexp.QuoteMeta(t))
	}
	if len(patterns) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []*Caller
	for _, raw := range patterns {
		re, err := regexp.Compile("^" + strings.ReplaceAll(raw, `\?`, ".*") + "$")
		if err != nil {
			continue
		}
		for _, c := range m.pending {
			if seen[c.Call] {
				continue
			}
			if re.MatchString(queryKey(c)) {
				out = append(out, c)
				seen[c.Call] = true
			}
		}
	}
	return out
}

// findByPrefixScan returns the pending caller whose query key appears
// earliest in subject, among those that appear at all.
func (m *Machine) findByPrefixScan(subject string) *Caller {
	var best *Caller
	bestIdx := -1
	for _, c := range m.pending {
		idx := strings.Index(subject, queryKey(c))
		if idx < 0 {
			continue
		}
		if best == nil || idx < bestIdx {
			best, bestIdx = c, idx
		}
	}
	return best
}

// removePending removes c from the pending queue.
func (m *Machine) removePending(c *Caller) {
	for i, p := range m.pending {
		if p == c {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}
