package features

import (
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Head returns the first n rows of s as a dataframe. Close and the derived
// columns are numeric, every other column is text.
func Head(s *Series, n int) dataframe.DataFrame {
	if n < 0 {
		n = 0
	}
	if n > len(s.Bars) {
		n = len(s.Bars)
	}
	bars := s.Bars[:n]

	index := make([]int, n)
	for i, b := range bars {
		index[i] = b.Index
	}
	cols := []series.Series{series.New(index, series.Int, "index")}

	for j, name := range s.Header {
		switch j {
		case s.closeCol:
			vals := make([]float64, n)
			for i, b := range bars {
				vals[i] = b.Close
			}
			cols = append(cols, series.New(vals, series.Float, name))
		case s.dateCol:
			vals := make([]string, n)
			for i, b := range bars {
				if b.HasDate {
					vals[i] = FormatDate(b.Date)
				} else {
					vals[i] = "NaN"
				}
			}
			cols = append(cols, series.New(vals, series.String, name))
		default:
			vals := make([]string, n)
			for i, b := range bars {
				vals[i] = b.Raw[j]
			}
			cols = append(cols, series.New(vals, series.String, name))
		}
	}

	for k, w := range s.Windows {
		avg := make([]float64, n)
		std := make([]float64, n)
		for i, b := range bars {
			avg[i] = b.Derived[2*k]
			std[i] = b.Derived[2*k+1]
		}
		cols = append(cols,
			series.New(avg, series.Float, w.AvgColumn()),
			series.New(std, series.Float, w.StdColumn()))
	}

	return dataframe.New(cols...)
}

// Preview writes a label line followed by the first n rows of s
func Preview(w io.Writer, label string, s *Series, n int) error {
	df := Head(s, n)
	if df.Err != nil {
		return df.Err
	}
	if _, err := fmt.Fprintln(w, label); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, df.String())
	return err
}
