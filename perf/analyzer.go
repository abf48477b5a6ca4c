package perf

import (
	"math"

	"github.com/rustyeddy/papertrade/sim"
)

// TradingDays is the annualization factor for daily return series.
const TradingDays = 252

// Attribution is realized P&L grouped by strategy or instrument.
type Attribution struct {
	Trades     int     `json:"trades"`
	RealizedPL float64 `json:"realized_pl"`
}

// Report is the full metric set derived from an equity curve and trade
// ledger. Degenerate series (fewer than two samples) produce zero ratios
// rather than dividing by zero.
type Report struct {
	TotalReturn     float64 `json:"total_return"`
	AnnualizedVol   float64 `json:"annualized_vol"`
	Sharpe          float64 `json:"sharpe"`
	MaxDrawdown     float64 `json:"max_drawdown"` // negative or zero
	WinRate         float64 `json:"win_rate"`
	CashUtilization float64 `json:"cash_utilization"`

	TotalTrades   int `json:"total_trades"`
	ClosingTrades int `json:"closing_trades"`
	Wins          int `json:"wins"`

	BenchmarkReturn float64 `json:"benchmark_return,omitempty"`
	ExcessReturn    float64 `json:"excess_return,omitempty"`

	ByStrategy   map[string]Attribution `json:"by_strategy,omitempty"`
	ByInstrument map[string]Attribution `json:"by_instrument,omitempty"`
}

// Analyze computes the report for an equity curve and trade ledger. cash and
// totalValue are the current portfolio figures for the utilization metric.
func Analyze(curve []sim.EquitySample, trades []sim.Trade, cash, totalValue float64) Report {
	r := Report{TotalTrades: len(trades)}

	if totalValue > 0 {
		r.CashUtilization = 1 - cash/totalValue
	}

	for _, t := range trades {
		if !t.Closing {
			continue
		}
		r.ClosingTrades++
		if t.RealizedPL > 0 {
			r.Wins++
		}
	}
	if r.ClosingTrades > 0 {
		r.WinRate = float64(r.Wins) / float64(r.ClosingTrades)
	}

	r.ByStrategy = attribute(trades, func(t sim.Trade) string { return t.Strategy })
	r.ByInstrument = attribute(trades, func(t sim.Trade) string { return t.Instrument })

	if len(curve) < 2 {
		return r
	}

	first, last := curve[0].Value, curve[len(curve)-1].Value
	if first > 0 {
		r.TotalReturn = last/first - 1
	}

	rets := make([]float64, 0, len(curve)-1)
	for i := 1; i < len(curve); i++ {
		if curve[i-1].Value == 0 {
			continue
		}
		rets = append(rets, curve[i].Value/curve[i-1].Value-1)
	}

	mean, sd := meanStdev(rets)
	r.AnnualizedVol = sd * math.Sqrt(TradingDays)
	if sd > 0 {
		r.Sharpe = mean * TradingDays / (sd * math.Sqrt(TradingDays))
	}
	r.MaxDrawdown = maxDrawdown(curve)

	return r
}

// AnalyzeWithBenchmark adds a comparison against a benchmark value series
// covering the same period.
func AnalyzeWithBenchmark(curve []sim.EquitySample, trades []sim.Trade, cash, totalValue float64, benchmark []float64) Report {
	r := Analyze(curve, trades, cash, totalValue)
	if len(benchmark) >= 2 && benchmark[0] > 0 {
		r.BenchmarkReturn = benchmark[len(benchmark)-1]/benchmark[0] - 1
		r.ExcessReturn = r.TotalReturn - r.BenchmarkReturn
	}
	return r
}

func attribute(trades []sim.Trade, key func(sim.Trade) string) map[string]Attribution {
	if len(trades) == 0 {
		return nil
	}
	out := make(map[string]Attribution)
	for _, t := range trades {
		k := key(t)
		a := out[k]
		a.Trades++
		if t.Closing {
			a.RealizedPL += t.RealizedPL
		}
		out[k] = a
	}
	return out
}

func meanStdev(xs []float64) (mean, sd float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var varsum float64
	for _, x := range xs {
		d := x - mean
		varsum += d * d
	}
	return mean, math.Sqrt(varsum / float64(len(xs)))
}

func maxDrawdown(curve []sim.EquitySample) float64 {
	var worst float64
	runmax := curve[0].Value
	for _, s := range curve {
		if s.Value > runmax {
			runmax = s.Value
		}
		if runmax > 0 {
			if dd := (s.Value - runmax) / runmax; dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
