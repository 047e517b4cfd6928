package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprep/internal/config"
	"dataprep/internal/infrastructure"
	"dataprep/internal/shared/testutil"
)

// setupEnv points the configuration at a fresh data directory and keeps logs
// out of the test output.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATAPREP_PATHS_DATA_DIR", dir)
	t.Setenv("DATAPREP_LOGGING_OUTPUT", "file")
	t.Setenv("DATAPREP_LOGGING_FILE_PATH", filepath.Join(dir, "logs", "recoder.log"))

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	return dir
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "default column", args: nil, expected: "[1 0 6 5]\n"},
		{name: "column flag", args: []string{"-column", "2016"}, expected: "[1 6 3 4]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupEnv(t)
			testutil.WriteCSVFile(t, dir, config.ElectionInputFile, testutil.ElectionRows())

			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)

			require.Equal(t, 0, code, stderr.String())
			assert.Equal(t, tt.expected, stdout.String())
			assert.FileExists(t, filepath.Join(dir, config.ElectionOutputFile))
		})
	}
}

func TestRun_PathFlags(t *testing.T) {
	dir := setupEnv(t)
	other := t.TempDir()
	in := testutil.WriteCSVFile(t, other, "results.csv", testutil.ElectionRows())
	out := filepath.Join(other, "nested", "cleaned.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-in", in, "-out", out}, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	rows := testutil.ReadCSVFile(t, out)
	assert.Equal(t, []string{"Arizona", "6", "3", "6"}, rows[3])
	assert.NoFileExists(t, filepath.Join(dir, config.ElectionOutputFile))
}

func TestRun_Failures(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		setupEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(nil, &stdout, &stderr))
		assert.Empty(t, stdout.String())
	})

	t.Run("unknown flag", func(t *testing.T) {
		setupEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"-bogus"}, &stdout, &stderr))
		assert.Contains(t, stderr.String(), "bogus")
	})

	t.Run("invalid config", func(t *testing.T) {
		setupEnv(t)
		t.Setenv("DATAPREP_FEATURES_SHORT_WINDOW", "400")
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run(nil, &stdout, &stderr))
	})

	t.Run("failure is logged", func(t *testing.T) {
		dir := setupEnv(t)
		var stdout, stderr bytes.Buffer
		require.Equal(t, 1, run(nil, &stdout, &stderr))

		content, err := os.ReadFile(filepath.Join(dir, "logs", "recoder.log"))
		require.NoError(t, err)
		assert.Contains(t, string(content), "Recoder failed")
		assert.Contains(t, string(content), `"error_type":"NOT_FOUND"`)
	})
}
