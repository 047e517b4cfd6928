package exporter

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "dataprep/internal/errors"
)

func frame(dates []string, closes []float64) dataframe.DataFrame {
	return dataframe.New(
		series.New(dates, series.String, "Date"),
		series.New(closes, series.Float, "Close"),
	)
}

func TestWorkbookWriter_WriteWorkbook(t *testing.T) {
	writer := NewWorkbookWriter(nil)
	path := filepath.Join(t.TempDir(), "out", "features.xlsx")

	err := writer.WriteWorkbook(path, []Sheet{
		{Name: "train", Frame: frame([]string{"2012-12-28", "2012-12-31"}, []float64{1402.43, 1426.19})},
		{Name: "test", Frame: frame([]string{"2013-01-02"}, []float64{1462.42})},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"train", "test"}, f.GetSheetList())

	rows, err := f.GetRows("train")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Close"},
		{"2012-12-28", "1402.43"},
		{"2012-12-31", "1426.19"},
	}, rows)

	rows, err = f.GetRows("test")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Date", "Close"}, {"2013-01-02", "1462.42"}}, rows)
}

func TestWorkbookWriter_EmptySheet(t *testing.T) {
	writer := NewWorkbookWriter(nil)
	path := filepath.Join(t.TempDir(), "features.xlsx")

	err := writer.WriteWorkbook(path, []Sheet{
		{Name: "train", Frame: frame([]string{}, []float64{})},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("train")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Date", "Close"}}, rows)
}

func TestWorkbookWriter_MissingCellsLeftBlank(t *testing.T) {
	writer := NewWorkbookWriter(nil)
	path := filepath.Join(t.TempDir(), "features.xlsx")

	err := writer.WriteWorkbook(path, []Sheet{
		{Name: "train", Frame: frame([]string{"2013-01-02", "2013-01-03"}, []float64{math.NaN(), 2})},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue("train", "B2")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestWorkbookWriter_Errors(t *testing.T) {
	writer := NewWorkbookWriter(nil)
	path := filepath.Join(t.TempDir(), "features.xlsx")

	err := writer.WriteWorkbook(path, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))

	err = writer.WriteWorkbook(path, []Sheet{{Name: "bad[name]", Frame: frame([]string{"x"}, []float64{1})}})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
