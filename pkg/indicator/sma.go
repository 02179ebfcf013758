package indicator

import "fmt"

// ComputeSMA calculates the Simple Moving Average of series over window.
//
// The sum over the trailing window is carried forward incrementally, adding
// the newest price and subtracting the one that leaves the window, so each
// position costs O(1). Rounding error from that running sum is part of the
// output. A series shorter than window yields a series with no defined
// positions, not an error.
func ComputeSMA(series PriceSeries, window int) (*AverageSeries, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidWindow, window)
	}

	n := len(series)
	out := newAverageSeries(window, n)
	if n < window {
		return out, nil
	}

	period := float64(window)
	sum := 0.0
	for i := 0; i < window; i++ {
		sum += series[i]
	}
	out.values[window-1] = sum / period

	for i := window; i < n; i++ {
		sum += series[i] - series[i-window]
		out.values[i] = sum / period
	}

	out.first = window - 1
	return out, nil
}
