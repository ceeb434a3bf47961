// Package config implements the nested YAML-backed configuration of
// spec.md §6: audio, decoder, encoder, and qso sections, plus the
// callsign and park pool loaders. The exchange-patterns file is loaded by
// package patterns.
//
// Grounded on config.go's nested-struct-with-yaml-tags layout and its
// "load, then fill in zero-value defaults" LoadConfig idiom.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is the current config schema version. A file declaring a
// newer major version is rejected rather than silently misinterpreted.
const SchemaVersion = "1.0.0"

// Config is the full persisted configuration document.
type Config struct {
	SchemaVersion string       `yaml:"schema_version"`
	Audio         AudioConfig  `yaml:"audio"`
	Decoder       DecoderConfig `yaml:"decoder"`
	Encoder       EncoderConfig `yaml:"encoder"`
	QSO           QSOConfig    `yaml:"qso"`
}

// AudioConfig mirrors spec.md §6's audio section.
type AudioConfig struct {
	SampleRate  int    `yaml:"sample_rate"`
	InputDevice string `yaml:"input_device"`
	OutputDevice string `yaml:"output_device"`
	Blocksize   int    `yaml:"blocksize"`
	Channels    int    `yaml:"channels"`
	InputMode   string `yaml:"input_mode"` // "audio" or "keyboard"
}

// DecoderConfig mirrors spec.md §6's decoder section.
type DecoderConfig struct {
	FrameMs           int     `yaml:"frame_ms"`
	TargetToneHz      float64 `yaml:"target_tone_hz"`
	AutoTone          bool    `yaml:"auto_tone"`
	ToneSearchMinHz   float64 `yaml:"tone_search_min_hz"`
	ToneSearchMaxHz   float64 `yaml:"tone_search_max_hz"`
	ThresholdOnMult   float64 `yaml:"threshold_on_mult"`
	ThresholdOffMult  float64 `yaml:"threshold_off_mult"`
	AGCAlpha          float64 `yaml:"agc_alpha"`
	PowerSmoothAlpha  float64 `yaml:"power_smooth_alpha"`
	WPMTarget         float64 `yaml:"wpm_target"`
	AutoWPM           bool    `yaml:"auto_wpm"`
	DotMsMin          float64 `yaml:"dot_ms_min"`
	DotMsMax          float64 `yaml:"dot_ms_max"`
	MinKeyDownMs      float64 `yaml:"min_key_down_ms"`
	MinKeyUpMs        float64 `yaml:"min_key_up_ms"`
	DashThresholdDots float64 `yaml:"dash_threshold_dots"`
	GapCharThresholdDots float64 `yaml:"gap_char_threshold_dots"`
	GapWordThresholdDots float64 `yaml:"gap_word_threshold_dots"`
	MessageGapDots    float64 `yaml:"message_gap_dots"`
	MessageGapSeconds float64 `yaml:"message_gap_seconds"`
	ProsignLiteral    string  `yaml:"prosign_literal"`
}

// EncoderConfig mirrors spec.md §6's encoder section.
type EncoderConfig struct {
	ToneHz         float64  `yaml:"tone_hz"`
	WPM            float64  `yaml:"wpm"`
	FarnsworthWPM  float64  `yaml:"farnsworth_wpm"`
	Volume         float64  `yaml:"volume"`
	AttackMs       float64  `yaml:"attack_ms"`
	ReleaseMs      float64  `yaml:"release_ms"`
	ProsignTokens  []string `yaml:"prosign_tokens"`
	WPMOutStart    float64  `yaml:"wpm_out_start"`
	WPMOutEnd      float64  `yaml:"wpm_out_end"`
	ToneHzOutStart float64  `yaml:"tone_hz_out_start"`
	ToneHzOutEnd   float64  `yaml:"tone_hz_out_end"`
}

// QSOConfig mirrors spec.md §6's qso section.
type QSOConfig struct {
	MyCall                  string   `yaml:"my_call"`
	OtherCall               string   `yaml:"other_call"`
	CQMode                  string   `yaml:"cq_mode"` // "simple", "parks", "summits"
	MaxStations             int      `yaml:"max_stations"`
	CallsignsFile           string   `yaml:"callsigns_file"`
	ParksFile               string   `yaml:"parks_file"`
	ExchangePatternsFile    string   `yaml:"exchange_patterns_file"`
	AutoIncomingAfterQSO    bool     `yaml:"auto_incoming_after_qso"`
	AutoIncomingProbability float64  `yaml:"auto_incoming_probability"`
	P2PProbability          float64  `yaml:"p2p_probability"`
	MyParkRef               string   `yaml:"my_park_ref"`
	Allow599                bool     `yaml:"allow_599"`
	AllowTU                 bool     `yaml:"allow_tu"`
	UseProsigns             bool     `yaml:"use_prosigns"`
	ProsignLiteral          string   `yaml:"prosign_literal"`
	IgnoreBK                bool     `yaml:"ignore_bk"`
	IgnoreFillTokens        []string `yaml:"ignore_fill_tokens"`
}

// Default returns the configuration document seeded with the defaults
// enumerated in spec.md §6.
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		Audio: AudioConfig{
			SampleRate: 48000,
			Blocksize:  1024,
			Channels:   1,
			InputMode:  "audio",
		},
		Decoder: DecoderConfig{
			FrameMs:              10,
			TargetToneHz:         650,
			ToneSearchMinHz:      300,
			ToneSearchMaxHz:      1200,
			ThresholdOnMult:      4.0,
			ThresholdOffMult:     2.4,
			AGCAlpha:             0.03,
			PowerSmoothAlpha:     1.0,
			WPMTarget:            20,
			AutoWPM:              true,
			DotMsMin:             25,
			DotMsMax:             220,
			MinKeyDownMs:         12,
			MinKeyUpMs:           12,
			DashThresholdDots:    2.0,
			GapCharThresholdDots: 1.8,
			GapWordThresholdDots: 5.0,
			MessageGapDots:       12.0,
			ProsignLiteral:       "KN",
		},
		Encoder: EncoderConfig{
			ToneHz:         650,
			WPM:            20,
			Volume:         0.8,
			AttackMs:       4,
			ReleaseMs:      6,
			ProsignTokens:  []string{"KN"},
			WPMOutStart:    18,
			WPMOutEnd:      22,
			ToneHzOutStart: 500,
			ToneHzOutEnd:   700,
		},
		QSO: QSOConfig{
			MyCall:                  "N0CALL",
			OtherCall:               "W1AW",
			CQMode:                  "parks",
			MaxStations:             1,
			AutoIncomingProbability: 0.3,
			P2PProbability:          0.2,
			AllowTU:                 true,
			ProsignLiteral:          "KN",
			IgnoreFillTokens:        []string{"RR", "R", "DE"},
		},
	}
}

// Load reads a YAML config file and decodes it over Default(), so any field
// the file does not set keeps its default value; a field the file sets to
// zero stays zero. A missing file is not an error: Default() is returned
// as-is.
func Load(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := checkSchemaVersion(cfg.SchemaVersion); err != nil {
		return nil, err
	}
	applyRangeDefaults(&cfg.Encoder)
	return cfg, nil
}

// checkSchemaVersion rejects config files from a newer major schema
// version than this binary understands.
func checkSchemaVersion(declared string) error {
	if declared == "" {
		return nil
	}
	got, err := version.NewVersion(declared)
	if err != nil {
		return fmt.Errorf("invalid schema_version %q: %w", declared, err)
	}
	max, _ := version.NewVersion(SchemaVersion)
	if got.Segments()[0] > max.Segments()[0] {
		return fmt.Errorf("config schema_version %s is newer than supported %s", declared, SchemaVersion)
	}
	return nil
}

// applyRangeDefaults copies a fixed encoder.wpm/tone_hz into the
// corresponding _out_start/_out_end pair when only the fixed value was
// given, and sorts reversed ranges, per spec.md §6.
func applyRangeDefaults(e *EncoderConfig) {
	if e.WPMOutStart == 0 && e.WPMOutEnd == 0 {
		e.WPMOutStart, e.WPMOutEnd = e.WPM, e.WPM
	}
	if e.WPMOutStart > e.WPMOutEnd {
		e.WPMOutStart, e.WPMOutEnd = e.WPMOutEnd, e.WPMOutStart
	}
	if e.ToneHzOutStart == 0 && e.ToneHzOutEnd == 0 {
		e.ToneHzOutStart, e.ToneHzOutEnd = e.ToneHz, e.ToneHz
	}
	if e.ToneHzOutStart > e.ToneHzOutEnd {
		e.ToneHzOutStart, e.ToneHzOutEnd = e.ToneHzOutEnd, e.ToneHzOutStart
	}
}
