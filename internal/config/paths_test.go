package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		name     string
		dataDir  string
		output   string
		wantIn   string
		wantOut  string
		wantXLSX string
	}{
		{
			name:     "default data dir",
			dataDir:  ".",
			output:   ElectionOutputFile,
			wantIn:   "us_election_results_by_state.csv",
			wantOut:  "us_election_results_by_state_cleaned.csv",
			wantXLSX: "features.xlsx",
		},
		{
			name:     "custom data dir",
			dataDir:  "/srv/data",
			output:   ElectionOutputFile,
			wantIn:   "/srv/data/us_election_results_by_state.csv",
			wantOut:  "/srv/data/us_election_results_by_state_cleaned.csv",
			wantXLSX: "/srv/data/features.xlsx",
		},
		{
			name:     "absolute output kept",
			dataDir:  "/srv/data",
			output:   "/tmp/cleaned.csv",
			wantIn:   "/srv/data/us_election_results_by_state.csv",
			wantOut:  "/tmp/cleaned.csv",
			wantXLSX: "/srv/data/features.xlsx",
		},
		{
			name:     "empty data dir falls back to working dir",
			dataDir:  "",
			output:   ElectionOutputFile,
			wantIn:   "us_election_results_by_state.csv",
			wantOut:  "us_election_results_by_state_cleaned.csv",
			wantXLSX: "features.xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Paths.DataDir = tt.dataDir
			cfg.Paths.ElectionOutput = tt.output

			paths := cfg.ResolvePaths()
			assert.Equal(t, tt.wantIn, paths.ElectionInput)
			assert.Equal(t, tt.wantOut, paths.ElectionOutput)
			assert.Equal(t, tt.wantXLSX, paths.FeaturesXLSX)
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "deeper", "out.csv")

	require.NoError(t, EnsureParentDir(target))

	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "present.csv")
	require.NoError(t, os.WriteFile(existing, []byte("a\n"), 0644))

	assert.True(t, FileExists(existing))
	assert.False(t, FileExists(filepath.Join(dir, "absent.csv")))
}
