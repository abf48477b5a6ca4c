package perf

import (
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
	"github.com/rustyeddy/papertrade/sim"
)

// AnalyzeRecords rebuilds a report from journaled records, for reporting on
// a finished run without the live portfolio.
func AnalyzeRecords(equity []journal.EquitySnapshot, trades []journal.TradeRecord) Report {
	curve := make([]sim.EquitySample, 0, len(equity))
	for _, e := range equity {
		curve = append(curve, sim.EquitySample{
			Time:       e.Time,
			Value:      e.TotalValue,
			Incomplete: e.Incomplete,
		})
	}

	ledger := make([]sim.Trade, 0, len(trades))
	for _, t := range trades {
		action, _ := market.ParseAction(t.Action)
		ledger = append(ledger, sim.Trade{
			ID:          t.TradeID,
			Instrument:  t.Instrument,
			Action:      action,
			Shares:      t.Shares,
			SignalPrice: t.SignalPrice,
			FillPrice:   t.FillPrice,
			Value:       t.Shares * t.FillPrice,
			Commission:  t.Commission,
			Fees:        t.Fees,
			RealizedPL:  t.RealizedPL,
			Strategy:    t.Strategy,
			Reason:      t.Reason,
			Time:        t.Time,
			Closing:     action == market.Sell,
		})
	}

	var cash, total float64
	if len(equity) > 0 {
		last := equity[len(equity)-1]
		cash, total = last.Cash, last.TotalValue
	}
	return Analyze(curve, ledger, cash, total)
}
