package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCallsignPoolIgnoresBOMCommentsAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calls.txt")
	content := string(rune(0xFEFF)) + "# comment\n\nn1mm,extra\nN1MM\nw1aw\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadCallsignPool(path)
	require.NoError(t, err)
	require.Equal(t, []string{"N1MM", "W1AW"}, got)
}

func TestLoadParkPoolFiltersActiveAndDedupes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parks.csv")
	content := "reference,active\nus-0001,1\nus-0002,0\nUS-0001,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadParkPool(path)
	require.NoError(t, err)
	require.Equal(t, []string{"US-0001"}, got)
}
