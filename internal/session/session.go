// Package session implements C10: completion records, RX/TX transcripts, a
// bounded internal log ring, and a gzip-compressed JSON export.
//
// Grounded on session.go's uuid-keyed session bookkeeping and
// http_log_buffer.go's rolling-window log buffer, generalized from
// "drop oldest past maxSize" to the halve-on-overflow ring spec.md §6
// requires.
package session

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// TranscriptEntry is one RX or TX line.
type TranscriptEntry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// CompletionRecord mirrors qso.CompletionRecord for export, decoupled so
// package session never imports package qso.
type CompletionRecord struct {
	MyCall    string    `json:"my_call"`
	OtherCall string    `json:"other_call"`
	Timestamp time.Time `json:"timestamp"`
}

// LogEntry is one internal log-ring line.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Tag       string    `json:"tag"`
	Message   string    `json:"message"`
}

const logRingCap = 2000

// Session accumulates one run's RX/TX transcripts, completions, and
// internal log lines.
type Session struct {
	mu sync.Mutex

	id string

	rx          []TranscriptEntry
	tx          []TranscriptEntry
	completions []CompletionRecord
	logs        []LogEntry
}

// New creates a Session with a fresh UUID.
func New() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// AppendRX records one decoded RX message.
func (s *Session) AppendRX(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx = append(s.rx, TranscriptEntry{ID: uuid.NewString(), Text: text, Timestamp: time.Now()})
}

// AppendTX records one outbound transmission.
func (s *Session) AppendTX(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tx = append(s.tx, TranscriptEntry{ID: uuid.NewString(), Text: text, Timestamp: time.Now()})
}

// AppendCompletion records one finished QSO.
func (s *Session) AppendCompletion(myCall, otherCall string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completions = append(s.completions, CompletionRecord{MyCall: myCall, OtherCall: otherCall, Timestamp: time.Now()})
}

// Log appends one internal log line, halving the ring (dropping its oldest
// half) when it would exceed logRingCap entries.
func (s *Session) Log(tag, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, LogEntry{Timestamp: time.Now(), Tag: tag, Message: message})
	if len(s.logs) > logRingCap {
		half := len(s.logs) / 2
		s.logs = append([]LogEntry(nil), s.logs[half:]...)
	}
}

// Snapshot is the exported shape of a Session plus the caller-supplied
// config, per spec.md §6's "Persisted state".
type Snapshot struct {
	SessionID   string             `json:"session_id"`
	Config      interface{}        `json:"config"`
	RX          []TranscriptEntry  `json:"rx"`
	TX          []TranscriptEntry  `json:"tx"`
	Completions []CompletionRecord `json:"completions"`
	Logs        []LogEntry         `json:"logs"`
}

// Export serializes the session plus config to gzip-compressed JSON.
func (s *Session) Export(config interface{}) ([]byte, error) {
	s.mu.Lock()
	snap := Snapshot{
		SessionID:   s.id,
		Config:      config,
		RX:          append([]TranscriptEntry(nil), s.rx...),
		TX:          append([]TranscriptEntry(nil), s.tx...),
		Completions: append([]CompletionRecord(nil), s.completions...),
		Logs:        append([]LogEntry(nil), s.logs...),
	}
	s.mu.Unlock()

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(raw); err != nil {
		gw.Close()
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reset clears RX/TX transcripts and completions but keeps the log ring,
// used when the operator issues /reset in the CLI without losing the
// audit trail.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rx = nil
	s.tx = nil
	s.completions = nil
}
