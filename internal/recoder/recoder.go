package recoder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "dataprep/internal/errors"
	"dataprep/internal/shared/missing"
)

// Table is an election results table. The first column is the row index
// and is never recoded; every other column holds one year of results.
type Table struct {
	frame  dataframe.DataFrame
	header []string
}

// Stats counts the cells changed by Clean
type Stats struct {
	Filled  int
	Recoded int
}

// Load reads a CSV election table with a header row. All cells are kept as
// text and the tokens of package missing are read as missing.
func Load(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, apperrors.NewParsingError("malformed election CSV", err).
				WithContext("line", perr.Line)
		}
		return nil, apperrors.NewParsingError("failed to read election CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("election CSV has no header", nil)
	}

	header := append([]string(nil), records[0]...)
	if len(records) == 1 {
		// gota cannot build a frame from a header alone
		return &Table{header: header}, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missing.Tokens),
	)
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to build election table", df.Err)
	}

	return &Table{frame: df, header: header}, nil
}

// Header returns the column names as read, index column first
func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Rows returns the number of data rows
func (t *Table) Rows() int {
	if t.empty() {
		return 0
	}
	return t.frame.Nrow()
}

// Frame returns the underlying dataframe. Column names may differ from
// Header where the input had empty or duplicate names.
func (t *Table) Frame() dataframe.DataFrame {
	return t.frame
}

// Body returns every data row as text
func (t *Table) Body() [][]string {
	if t.empty() {
		return nil
	}
	body := t.frame.Records()[1:]
	// a missing index cell is written back empty
	for i, nan := range t.frame.Col(t.frame.Names()[0]).IsNaN() {
		if nan {
			body[i][0] = ""
		}
	}
	return body
}

func (t *Table) empty() bool {
	return t.frame.Ncol() == 0
}

// FillMissing returns a copy of t with every missing non-index cell set to
// Sentinel, and the number of cells filled.
func FillMissing(t *Table) (*Table, int) {
	return t.mapCells(func(cell string, absent bool) (string, bool) {
		if absent {
			return Sentinel, true
		}
		return cell, false
	})
}

// Recode returns a copy of t with every known party abbreviation replaced by
// its code, and the number of cells changed. Other values are left as-is.
func Recode(t *Table) (*Table, int) {
	return t.mapCells(func(cell string, absent bool) (string, bool) {
		if absent {
			return cell, false
		}
		if code, ok := Code(cell); ok {
			return code, true
		}
		return cell, false
	})
}

// Clean fills missing cells then recodes party abbreviations
func Clean(t *Table) (*Table, Stats) {
	filled, nFilled := FillMissing(t)
	recoded, nRecoded := Recode(filled)
	return recoded, Stats{Filled: nFilled, Recoded: nRecoded}
}

// mapCells applies fn to every non-index cell
func (t *Table) mapCells(fn func(cell string, absent bool) (string, bool)) (*Table, int) {
	if t.empty() {
		return &Table{header: t.Header()}, 0
	}

	df := t.frame.Copy()
	changed := 0
	for _, name := range df.Names()[1:] {
		col := df.Col(name)
		cells := col.Records()
		nan := col.IsNaN()

		out := make([]string, len(cells))
		for i, cell := range cells {
			v, ok := fn(cell, nan[i] || missing.Is(cell))
			if ok {
				changed++
			}
			out[i] = v
		}
		df = df.Mutate(series.New(out, series.String, name))
	}

	return &Table{frame: df, header: t.Header()}, changed
}

// Unique returns the distinct values of column in first-seen order.
func Unique(t *Table, column string) ([]string, error) {
	idx := -1
	for i, name := range t.header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewMissingColumnError(column)
	}
	if t.empty() {
		return []string{}, nil
	}

	cells := t.frame.Col(t.frame.Names()[idx]).Records()
	seen := make(map[string]struct{}, len(cells))
	values := make([]string, 0)
	for _, cell := range cells {
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		values = append(values, cell)
	}
	return values, nil
}

// FormatUnique renders values the way the diagnostic line prints them,
// for example [1 0 6].
func FormatUnique(values []string) string {
	return fmt.Sprintf("[%s]", strings.Join(values, " "))
}
