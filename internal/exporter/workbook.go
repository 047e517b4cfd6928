package exporter

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"dataprep/internal/config"
	apperrors "dataprep/internal/errors"
)

// defaultSheet is the sheet every new workbook starts with
const defaultSheet = "Sheet1"

// WorkbookWriter provides XLSX export functionality
type WorkbookWriter struct {
	logger *slog.Logger
}

// NewWorkbookWriter creates a new workbook writer instance
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{logger: logger}
}

// Sheet is one worksheet of a workbook
type Sheet struct {
	Name  string
	Frame dataframe.DataFrame
}

// WriteWorkbook writes each sheet's frame to an XLSX file, header row first.
// Numeric columns are stored as numbers.
func (w *WorkbookWriter) WriteWorkbook(filePath string, sheets []Sheet) error {
	if len(sheets) == 0 {
		return apperrors.NewAppValidationError("workbook needs at least one sheet")
	}

	w.logger.Info("Writing workbook",
		slog.String("file_path", filePath),
		slog.Int("sheet_count", len(sheets)))

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if sheet.Frame.Err != nil {
			return apperrors.NewStorageError("invalid sheet data", sheet.Frame.Err).
				WithContext("sheet", sheet.Name)
		}

		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return apperrors.NewStorageError("failed to name sheet", err).
					WithContext("sheet", sheet.Name)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return apperrors.NewStorageError("failed to add sheet", err).
				WithContext("sheet", sheet.Name)
		}

		if err := writeFrame(f, sheet.Name, sheet.Frame); err != nil {
			return apperrors.NewStorageError("failed to fill sheet", err).
				WithContext("sheet", sheet.Name)
		}
	}

	if err := config.EnsureParentDir(filePath); err != nil {
		return apperrors.NewStorageError("failed to create output directory", err).
			WithContext("path", filePath)
	}
	if err := f.SaveAs(filePath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).
			WithContext("path", filePath)
	}
	return nil
}

func writeFrame(f *excelize.File, sheetName string, df dataframe.DataFrame) error {
	colNames := df.Names()
	cols := make([]series.Series, len(colNames))
	for i, name := range colNames {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return err
		}
		cols[i] = df.Col(name)
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, col := range cols {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			val := cellValue(col.Elem(rowIdx))
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

// cellValue leaves missing and NaN cells blank
func cellValue(elem series.Element) interface{} {
	if elem.IsNA() {
		return ""
	}
	val := elem.Val()
	if f, ok := val.(float64); ok && math.IsNaN(f) {
		return ""
	}
	return val
}
