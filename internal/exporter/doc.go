// Package exporter writes job results to disk.
//
// CSVWriter writes a header row and records, optionally appending or
// prefixing a UTF-8 BOM. WorkbookWriter writes one XLSX sheet per dataframe.
// Both create missing parent directories and report failures as STORAGE
// errors.
//
// Example usage:
//
//	w := exporter.NewCSVWriter(logger)
//	err := w.WriteCSV("out/cleaned.csv", exporter.WriteOptions{
//		Headers: header,
//		Records: rows,
//	})
package exporter
