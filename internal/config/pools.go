package config

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadCallsignPool reads a callsign pool file: UTF-8 text, "#"-comment
// lines, an optional BOM, one callsign per non-empty line taken from the
// first comma-separated field, uppercased, deduplicated keeping the first
// occurrence. Per spec.md §6.
func LoadCallsignPool(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open callsign pool: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var out []string

	scanner := bufio.NewScanner(f)
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, string(rune(0xFEFF)))
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		field := strings.SplitN(line, ",", 2)[0]
		call := strings.ToUpper(strings.TrimSpace(field))
		if call == "" || seen[call] {
			continue
		}
		seen[call] = true
		out = append(out, call)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadParkPool reads a park-reference pool file: UTF-8 CSV with a header
// row, keeping rows where active == "1", taking the uppercased reference
// field, deduplicated. Per spec.md §6.
func LoadParkPool(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open park pool: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read park pool header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], string(rune(0xFEFF)))
	}

	activeIdx, refIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "active":
			activeIdx = i
		case "reference":
			refIdx = i
		}
	}
	if activeIdx < 0 || refIdx < 0 {
		return nil, fmt.Errorf("park pool missing active/reference column")
	}

	seen := make(map[string]bool)
	var out []string
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		if activeIdx >= len(row) || refIdx >= len(row) {
			continue
		}
		if strings.TrimSpace(row[activeIdx]) != "1" {
			continue
		}
		ref := strings.ToUpper(strings.TrimSpace(row[refIdx]))
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out, nil
}
