package features

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Window is a trailing window length in rows
type Window int

const (
	// Window5 is the short trailing window
	Window5 Window = 5
	// Window365 is the long trailing window
	Window365 Window = 365
)

// AvgColumn returns the name of the mean column for the window
func (w Window) AvgColumn() string {
	return fmt.Sprintf("%d_day_avg", int(w))
}

// StdColumn returns the name of the standard deviation column for the window
func (w Window) StdColumn() string {
	return fmt.Sprintf("%d_day_stddev", int(w))
}

// Bar is one row of the price series
type Bar struct {
	// Index is the row position in the input file, before sorting
	Index int
	Date  time.Time
	// HasDate is false when the date cell was missing
	HasDate bool
	// Close is NaN when missing
	Close float64
	// Raw holds every input cell in header order
	Raw []string
	// Derived holds mean then std for each window, in window order
	Derived []float64
}

// Series is a daily price table together with its derived columns
type Series struct {
	Header  []string
	Windows []Window
	Bars    []Bar

	dateCol  int
	closeCol int
}

// Len returns the number of rows
func (s *Series) Len() int {
	return len(s.Bars)
}

// Columns returns the output column names: index, the input header, then
// the derived columns.
func (s *Series) Columns() []string {
	cols := make([]string, 0, 1+len(s.Header)+2*len(s.Windows))
	cols = append(cols, "index")
	cols = append(cols, s.Header...)
	for _, w := range s.Windows {
		cols = append(cols, w.AvgColumn(), w.StdColumn())
	}
	return cols
}

// Records renders every row as text in Columns order
func (s *Series) Records() [][]string {
	out := make([][]string, len(s.Bars))
	for i, b := range s.Bars {
		row := make([]string, 0, 1+len(b.Raw)+len(b.Derived))
		row = append(row, strconv.Itoa(b.Index))
		for j, cell := range b.Raw {
			if j == s.dateCol && b.HasDate {
				cell = FormatDate(b.Date)
			}
			row = append(row, cell)
		}
		for _, v := range b.Derived {
			row = append(row, FormatFloat(v))
		}
		out[i] = row
	}
	return out
}

// clone copies the series header and the given bars
func (s *Series) clone(bars []Bar) *Series {
	return &Series{
		Header:   s.Header,
		Windows:  s.Windows,
		Bars:     bars,
		dateCol:  s.dateCol,
		closeCol: s.closeCol,
	}
}

// FormatDate prints a date without a clock part when it is midnight
func FormatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatFloat prints v in the shortest form that round-trips
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
