package session

import (
	"time"

	"github.com/rustyeddy/papertrade/market"
)

// DaySummary recaps a trading session for end-of-day reporting.
type DaySummary struct {
	Date            string  `json:"date"`
	Trades          int     `json:"trades"`
	Buys            int     `json:"buys"`
	Sells           int     `json:"sells"`
	TotalCommission float64 `json:"total_commission"`
	TotalFees       float64 `json:"total_fees"`
	CapitalUtilized float64 `json:"capital_utilized"`
	DailyPnL        float64 `json:"daily_pnl"`
	TotalValue      float64 `json:"total_value"`
	ReturnPct       float64 `json:"return_pct"`
	Violations      int     `json:"violations"`
}

// DaySummary computes the session recap as of now. It does not reset
// anything; pair it with ResetDay at the day boundary.
func (s *Session) DaySummary(now time.Time) DaySummary {
	sum := DaySummary{
		Date:       now.Format("2006-01-02"),
		DailyPnL:   s.pf.DailyPnL(),
		TotalValue: s.pf.TotalValue(),
		Violations: s.registry.ViolationCount(),
	}

	for _, t := range s.pf.Trades() {
		sum.Trades++
		switch t.Action {
		case market.Buy:
			sum.Buys++
		case market.Sell:
			sum.Sells++
		}
		sum.TotalCommission += t.Commission
		sum.TotalFees += t.Fees
	}

	sum.CapitalUtilized = sum.TotalValue - s.pf.Cash()
	if ic := s.pf.InitialCapital(); ic > 0 {
		sum.ReturnPct = 100 * (sum.TotalValue - ic) / ic
	}
	return sum
}
