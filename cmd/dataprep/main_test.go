package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprep/internal/config"
	"dataprep/internal/infrastructure"
	"dataprep/internal/shared/testutil"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	logDir := t.TempDir()
	t.Setenv("DATAPREP_LOGGING_OUTPUT", "file")
	t.Setenv("DATAPREP_LOGGING_FILE_PATH", filepath.Join(logDir, "dataprep.log"))

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	dir := t.TempDir()
	start := time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.WriteCSVFile(t, dir, config.ElectionInputFile, testutil.ElectionRows())
	testutil.WriteCSVFile(t, dir, config.PriceInputFile, testutil.PriceRows(400, start, true))
	return dir
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, run([]string{"-version"}, &stdout, &stderr))
	assert.Equal(t, "dataprep 1.0.0\n", stdout.String())
}

func TestRun_BothJobs(t *testing.T) {
	dir := setupEnv(t)
	metrics := filepath.Join(t.TempDir(), "dataprep.prom")
	t.Setenv("DATAPREP_TELEMETRY_METRIC_EXPORTER", "prometheus")
	t.Setenv("DATAPREP_TELEMETRY_METRICS_FILE", metrics)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-data-dir", dir}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	assert.Contains(t, stdout.String(), "[1 0 6 5]")
	assert.Contains(t, stdout.String(), "Train dataframe:")
	assert.Contains(t, stdout.String(), "Test dataframe:")
	assert.FileExists(t, filepath.Join(dir, config.ElectionOutputFile))

	content, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(content), "dataprep_rows_loaded")
	assert.Contains(t, string(content), `job="recoder"`)
	assert.Contains(t, string(content), `job="features"`)
}

func TestRun_OneJobFails(t *testing.T) {
	dir := setupEnv(t)
	require.NoError(t, os.Remove(filepath.Join(dir, config.ElectionInputFile)))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-data-dir", dir}, &stdout, &stderr))
	assert.NoFileExists(t, filepath.Join(dir, config.ElectionOutputFile))
}
