package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// WindowStat holds the mean and sample standard deviation of one window
type WindowStat struct {
	Mean float64
	Std  float64
}

// Rolling computes trailing statistics over values. For position i >= lookback
// the window is values[i-lookback : i+1], lookback+1 observations that include
// the current one. Earlier positions hold zero. NaN values inside a window are
// skipped; a window with no value has a NaN mean and one with fewer than two
// values a NaN standard deviation.
func Rolling(values []float64, lookback int) []WindowStat {
	out := make([]WindowStat, len(values))
	buf := make([]float64, 0, lookback+1)

	for i := lookback; i < len(values); i++ {
		buf = buf[:0]
		for _, v := range values[i-lookback : i+1] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}

		ws := WindowStat{Mean: math.NaN(), Std: math.NaN()}
		if len(buf) >= 1 {
			ws.Mean = stat.Mean(buf, nil)
		}
		if len(buf) >= 2 {
			ws.Std = stat.StdDev(buf, nil)
		}
		out[i] = ws
	}

	return out
}
