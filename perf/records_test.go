package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/papertrade/journal"
)

func TestAnalyzeRecords(t *testing.T) {
	base := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	equity := []journal.EquitySnapshot{
		{Time: base, Cash: 100000, TotalValue: 100000},
		{Time: base.AddDate(0, 0, 1), Cash: 91000, PositionsValue: 10000, TotalValue: 101000},
		{Time: base.AddDate(0, 0, 2), Cash: 101500, TotalValue: 101500},
	}
	trades := []journal.TradeRecord{
		{TradeID: "t-1", Instrument: "TCS", Action: "BUY", Shares: 100,
			FillPrice: 90, Strategy: "momentum", Time: base},
		{TradeID: "t-2", Instrument: "TCS", Action: "SELL", Shares: 100,
			FillPrice: 105, RealizedPL: 1500, Strategy: "momentum",
			Time: base.AddDate(0, 0, 2)},
	}

	r := AnalyzeRecords(equity, trades)

	assert.InDelta(t, 0.015, r.TotalReturn, 1e-12)
	assert.Equal(t, 2, r.TotalTrades)
	// Sells are treated as closing trades when rebuilt from records.
	assert.Equal(t, 1, r.ClosingTrades)
	assert.Equal(t, 1.0, r.WinRate)
	assert.InDelta(t, 1500, r.ByStrategy["momentum"].RealizedPL, 1e-12)

	// Utilization comes from the last snapshot.
	assert.InDelta(t, 1-101500.0/101500, r.CashUtilization, 1e-12)
}

func TestAnalyzeRecordsEmpty(t *testing.T) {
	r := AnalyzeRecords(nil, nil)
	assert.Zero(t, r.TotalReturn)
	assert.Zero(t, r.TotalTrades)
	assert.Zero(t, r.CashUtilization)
}
