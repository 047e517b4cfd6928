package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"dataprep/internal/config"
	"dataprep/internal/infrastructure"
	"dataprep/internal/shared/testutil"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DATAPREP_PATHS_DATA_DIR", dir)
	t.Setenv("DATAPREP_LOGGING_OUTPUT", "file")
	t.Setenv("DATAPREP_LOGGING_FILE_PATH", filepath.Join(dir, "logs", "features.log"))

	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)

	start := time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC)
	testutil.WriteCSVFile(t, dir, config.PriceInputFile, testutil.PriceRows(400, start, false))
	return dir
}

func TestRun(t *testing.T) {
	dir := setupEnv(t)

	var stdout, stderr bytes.Buffer
	code := run(nil, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "Train dataframe:")
	assert.Contains(t, stdout.String(), "Test dataframe:")
	assert.NoFileExists(t, filepath.Join(dir, config.TrainCSVFile))
}

func TestRun_Exports(t *testing.T) {
	setupEnv(t)
	outDir := t.TempDir()
	workbook := filepath.Join(outDir, "book.xlsx")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-csv-dir", outDir, "-xlsx", workbook}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	train := testutil.ReadCSVFile(t, filepath.Join(outDir, config.TrainCSVFile))
	test := testutil.ReadCSVFile(t, filepath.Join(outDir, config.TestCSVFile))
	assert.Len(t, train, 367)
	assert.Len(t, test, 35)

	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"train", "test"}, f.GetSheetList())
}

func TestRun_ExcludeCurrent(t *testing.T) {
	setupEnv(t)
	outDir := t.TempDir()

	var stdout, stderr bytes.Buffer
	code := run([]string{"-csv-dir", outDir, "-exclude-current"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	train := testutil.ReadCSVFile(t, filepath.Join(outDir, config.TrainCSVFile))
	assert.Equal(t, "361.5", train[366][8])
}

func TestRun_Failures(t *testing.T) {
	t.Run("missing input", func(t *testing.T) {
		setupEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 1, run([]string{"-in", filepath.Join(t.TempDir(), "absent.csv")}, &stdout, &stderr))
		assert.Empty(t, stdout.String())
	})

	t.Run("unknown flag", func(t *testing.T) {
		setupEnv(t)
		var stdout, stderr bytes.Buffer
		assert.Equal(t, 2, run([]string{"-window", "7"}, &stdout, &stderr))
	})
}
