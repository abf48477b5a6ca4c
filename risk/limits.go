package risk

import "fmt"

// Limits holds the configured risk thresholds for a session. All percentages
// are fractions (0.05 = 5%). Set once at session start; never mutated.
type Limits struct {
	MaxPositionPct      float64 // largest single trade, fraction of total capital
	MaxDailyLossPct     float64 // daily kill switch, fraction of total capital
	MaxConcentrationPct float64 // largest single-instrument exposure
	StopLossPct         float64 // widest allowed stop distance, also exit trigger
	TakeProfitPct       float64 // exit trigger on the upside
	TotalCapital        float64 // capital base for all risk-limit math
}

// Validate rejects non-positive thresholds. A bad limit is fatal at session
// start, not a silent default.
func (l Limits) Validate() error {
	checks := []struct {
		name string
		v    float64
	}{
		{"max_position_pct", l.MaxPositionPct},
		{"max_daily_loss_pct", l.MaxDailyLossPct},
		{"max_concentration_pct", l.MaxConcentrationPct},
		{"stop_loss_pct", l.StopLossPct},
		{"take_profit_pct", l.TakeProfitPct},
		{"total_capital", l.TotalCapital},
	}
	for _, c := range checks {
		if c.v <= 0 {
			return fmt.Errorf("risk limits: %s must be positive, got %v", c.name, c.v)
		}
	}
	return nil
}

// MaxPositionValue is the largest allowed value for a single trade.
func (l Limits) MaxPositionValue() float64 {
	return l.TotalCapital * l.MaxPositionPct
}

// MaxDailyLoss is the absolute daily loss at which trading halts.
func (l Limits) MaxDailyLoss() float64 {
	return l.TotalCapital * l.MaxDailyLossPct
}
