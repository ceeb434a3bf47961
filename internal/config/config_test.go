package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithEmptyFilenameReturnsDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QSO.MyCall != "N0CALL" {
		t.Fatalf("expected default my_call, got %q", cfg.QSO.MyCall)
	}
}

func TestLoadWithMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Decoder.WPMTarget != 20 {
		t.Fatalf("expected default wpm_target, got %v", cfg.Decoder.WPMTarget)
	}
}

func TestLoadRejectsNewerMajorSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("schema_version: \"2.0.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a newer major schema version")
	}
}

func TestLoadAcceptsSameMajorSchemaVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("schema_version: \"1.2.0\"\nqso:\n  my_call: EA3IPX\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.QSO.MyCall != "EA3IPX" {
		t.Fatalf("expected overridden my_call, got %q", cfg.QSO.MyCall)
	}
}

func TestApplyRangeDefaultsCopiesFixedValue(t *testing.T) {
	e := EncoderConfig{WPM: 20, ToneHz: 650}
	applyRangeDefaults(&e)
	if e.WPMOutStart != 20 || e.WPMOutEnd != 20 {
		t.Fatalf("expected fixed wpm copied into both range ends, got %v/%v", e.WPMOutStart, e.WPMOutEnd)
	}
	if e.ToneHzOutStart != 650 || e.ToneHzOutEnd != 650 {
		t.Fatalf("expected fixed tone copied into both range ends, got %v/%v", e.ToneHzOutStart, e.ToneHzOutEnd)
	}
}

func TestApplyRangeDefaultsSortsReversedRange(t *testing.T) {
	e := EncoderConfig{WPM: 20, WPMOutStart: 25, WPMOutEnd: 18}
	applyRangeDefaults(&e)
	if e.WPMOutStart != 18 || e.WPMOutEnd != 25 {
		t.Fatalf("expected reversed range sorted, got %v/%v", e.WPMOutStart, e.WPMOutEnd)
	}
}
