package risk

import "math"

// VolWindow keeps a rolling window of marks for one instrument and estimates
// realized volatility as the standard deviation of simple returns. It feeds
// the sizer when a signal carries no volatility estimate of its own.
type VolWindow struct {
	lookback int
	prices   []float64
}

func NewVolWindow(lookback int) *VolWindow {
	if lookback < 2 {
		lookback = 2
	}
	return &VolWindow{lookback: lookback}
}

// Push appends a price, dropping the oldest once the window is full.
func (w *VolWindow) Push(px float64) {
	w.prices = append(w.prices, px)
	if len(w.prices) > w.lookback {
		w.prices = w.prices[1:]
	}
}

// Realized returns the standard deviation of simple returns over the window,
// or 0 when fewer than two prices have been seen.
func (w *VolWindow) Realized() float64 {
	n := len(w.prices)
	if n < 2 {
		return 0
	}

	rets := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		if w.prices[i-1] == 0 {
			continue
		}
		rets = append(rets, (w.prices[i]-w.prices[i-1])/w.prices[i-1])
	}
	if len(rets) == 0 {
		return 0
	}

	var mean float64
	for _, r := range rets {
		mean += r
	}
	mean /= float64(len(rets))

	var varsum float64
	for _, r := range rets {
		d := r - mean
		varsum += d * d
	}
	return math.Sqrt(varsum / float64(len(rets)))
}
