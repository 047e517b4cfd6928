package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

// WriteCSVFile writes rows to dir/name and returns the full path
func WriteCSVFile(t *testing.T, dir, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// ReadCSVFile reads every row of path
func ReadCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}

// ElectionRows returns a small election table with an unnamed index column,
// missing cells and every known party code.
func ElectionRows() [][]string {
	return [][]string{
		{"", "2012", "2016", "2020"},
		{"Alabama", "R", "R", "R"},
		{"Alaska", "R", "", "D"},
		{"Arizona", "NA", "SR", ""},
		{"Arkansas", "I", "AI", "PR"},
	}
}

// PriceRows returns a daily price table of n rows starting at start with
// Close equal to the row position. Extra columns mimic the usual market
// history layout. With newestFirst the rows are emitted in reverse order.
func PriceRows(n int, start time.Time, newestFirst bool) [][]string {
	rows := make([][]string, 0, n+1)
	rows = append(rows, []string{"Date", "Open", "High", "Low", "Close", "Volume", "Adj Close"})

	body := make([][]string, n)
	for i := 0; i < n; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		c := strconv.Itoa(i)
		body[i] = []string{day, c, c, c, c, fmt.Sprintf("%d", 1000+i), c}
	}
	if newestFirst {
		for i, j := 0, len(body)-1; i < j; i, j = i+1, j-1 {
			body[i], body[j] = body[j], body[i]
		}
	}
	return append(rows, body...)
}
