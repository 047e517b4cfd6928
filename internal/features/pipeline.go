package features

import (
	"math"
	"sort"
	"time"

	"dataprep/internal/shared/missing"
)

// Options controls the derived columns
type Options struct {
	Windows []Window
	// ExcludeCurrent shifts every derived value one row forward so that a
	// row only sees earlier rows. When false the current row is part of its
	// own window, which leaks the value being predicted into its features.
	ExcludeCurrent bool
}

// DefaultOptions returns the 5 and 365 row windows with the current row
// included.
func DefaultOptions() Options {
	return Options{Windows: []Window{Window5, Window365}}
}

// SortByDate returns a copy of s ordered by ascending date. The sort is
// stable and rows without a date go last. Each row keeps its input position
// in Index.
func SortByDate(s *Series) *Series {
	bars := append([]Bar(nil), s.Bars...)
	sort.SliceStable(bars, func(i, j int) bool {
		a, b := bars[i], bars[j]
		if a.HasDate != b.HasDate {
			return a.HasDate
		}
		return a.Date.Before(b.Date)
	})
	return s.clone(bars)
}

// ComputeFeatures returns a copy of s with the trailing mean and standard
// deviation of Close for every window in opts.
func ComputeFeatures(s *Series, opts Options) *Series {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}

	stats := make([][]WindowStat, len(opts.Windows))
	for k, w := range opts.Windows {
		stats[k] = Rolling(closes, int(w))
	}

	bars := make([]Bar, len(s.Bars))
	for i, b := range s.Bars {
		b.Derived = make([]float64, 0, 2*len(opts.Windows))
		src := i
		if opts.ExcludeCurrent {
			src = i - 1
		}
		for k := range opts.Windows {
			if src < 0 {
				b.Derived = append(b.Derived, 0, 0)
				continue
			}
			b.Derived = append(b.Derived, stats[k][src].Mean, stats[k][src].Std)
		}
		bars[i] = b
	}

	out := s.clone(bars)
	out.Windows = append([]Window(nil), opts.Windows...)
	return out
}

// DropIncomplete keeps the rows dated strictly after boundary and then
// removes every row with a missing value in any column. It returns the kept
// rows and the number removed.
func DropIncomplete(s *Series, boundary time.Time) (*Series, int) {
	bars := make([]Bar, 0, len(s.Bars))
	for _, b := range s.Bars {
		if !b.HasDate || !b.Date.After(boundary) {
			continue
		}
		if !complete(b) {
			continue
		}
		bars = append(bars, b)
	}
	return s.clone(bars), len(s.Bars) - len(bars)
}

func complete(b Bar) bool {
	if math.IsNaN(b.Close) {
		return false
	}
	for _, v := range b.Derived {
		if math.IsNaN(v) {
			return false
		}
	}
	for _, cell := range b.Raw {
		if missing.Is(cell) {
			return false
		}
	}
	return true
}

// Split partitions s at cutoff. Rows dated before cutoff go to train, the
// rest to test. Both keep the order of s. Rows without a date belong to
// neither.
func Split(s *Series, cutoff time.Time) (train, test *Series) {
	var trainBars, testBars []Bar
	for _, b := range s.Bars {
		if !b.HasDate {
			continue
		}
		if b.Date.Before(cutoff) {
			trainBars = append(trainBars, b)
		} else {
			testBars = append(testBars, b)
		}
	}
	return s.clone(trainBars), s.clone(testBars)
}
