package session

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"testing"
)

func TestAppendAndExportRoundTrips(t *testing.T) {
	s := New()
	s.AppendRX("CQ POTA DE EA3IPX K")
	s.AppendTX("N1MM N1MM")
	s.AppendCompletion("EA3IPX", "N1MM")
	s.Log("qso", "contact completed")

	gz, err := s.Export(map[string]string{"my_call": "EA3IPX"})
	if err != nil {
		t.Fatalf("unexpected export error: %v", err)
	}

	r, err := gzip.NewReader(bytes.NewReader(gz))
	if err != nil {
		t.Fatalf("expected gzip-compressed export, got: %v", err)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed reading decompressed export: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("exported payload is not valid JSON: %v", err)
	}
	if len(snap.RX) != 1 || len(snap.TX) != 1 || len(snap.Completions) != 1 || len(snap.Logs) != 1 {
		t.Fatalf("expected one entry in each of rx/tx/completions/logs, got %+v", snap)
	}
	if snap.SessionID == "" {
		t.Fatalf("expected a non-empty session id")
	}
}

func TestLogRingHalvesOnOverflow(t *testing.T) {
	s := New()
	for i := 0; i < logRingCap+1; i++ {
		s.Log("tag", "line")
	}
	if len(s.logs) != logRingCap/2+1 {
		t.Fatalf("expected the ring to halve once it exceeds capacity, got %d entries", len(s.logs))
	}
}

func TestResetPreservesLogsButClearsTranscripts(t *testing.T) {
	s := New()
	s.AppendRX("hello")
	s.AppendTX("world")
	s.AppendCompletion("EA3IPX", "N1MM")
	s.Log("tag", "kept across reset")

	s.Reset()

	if len(s.rx) != 0 || len(s.tx) != 0 || len(s.completions) != 0 {
		t.Fatalf("expected reset to clear rx/tx/completions")
	}
	if len(s.logs) != 1 {
		t.Fatalf("expected reset to preserve the log ring, got %d entries", len(s.logs))
	}
}
