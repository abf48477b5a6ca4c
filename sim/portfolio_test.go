package sim

import (
	"testing"
	"time"

	"github.com/rustyeddy/papertrade/market"
)

func TestMarkToMarketStalePrices(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 10, 3200)
	buy(t, e, "INFY", 10, 1500)

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	sample := pf.MarkToMarket(now, market.Prices{"TCS": 3300})

	if !sample.Incomplete {
		t.Fatal("sample should be flagged incomplete when a price is missing")
	}
	tcs, _ := pf.Position("TCS")
	if tcs.MarkPrice != 3300 {
		t.Fatalf("TCS mark: got %v want 3300", tcs.MarkPrice)
	}
	// INFY keeps its last mark rather than dropping to zero.
	infy, _ := pf.Position("INFY")
	if infy.MarkPrice != 1500 {
		t.Fatalf("INFY stale mark: got %v want 1500", infy.MarkPrice)
	}

	sample = pf.MarkToMarket(now, market.Prices{"TCS": 3300, "INFY": 1500})
	if sample.Incomplete {
		t.Fatal("sample flagged incomplete with all prices present")
	}
	if len(pf.EquityCurve()) != 2 {
		t.Fatalf("equity samples: got %d want 2", len(pf.EquityCurve()))
	}
}

func TestDrawdownTracking(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 100, 100)

	now := time.Now()
	pf.MarkToMarket(now, market.Prices{"TCS": 110}) // peak 101000
	pf.MarkToMarket(now, market.Prices{"TCS": 90})  // trough 99000

	if !approxEqual(pf.PeakValue(), 101000, 1e-9) {
		t.Fatalf("peak: got %.2f want 101000", pf.PeakValue())
	}
	wantDD := 2000.0 / 101000
	if !approxEqual(pf.MaxDrawdown(), wantDD, 1e-12) {
		t.Fatalf("max drawdown: got %.6f want %.6f", pf.MaxDrawdown(), wantDD)
	}

	// Recovery does not shrink the recorded max.
	pf.MarkToMarket(now, market.Prices{"TCS": 115})
	if !approxEqual(pf.MaxDrawdown(), wantDD, 1e-12) {
		t.Fatalf("max drawdown moved on recovery: %.6f", pf.MaxDrawdown())
	}
	if !approxEqual(pf.PeakValue(), 101500, 1e-9) {
		t.Fatalf("peak after recovery: got %.2f", pf.PeakValue())
	}
}

func TestResetDayAnchorsDailyPnL(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 100, 100)
	pf.MarkToMarket(time.Now(), market.Prices{"TCS": 105})

	if !approxEqual(pf.DailyPnL(), 500, 1e-9) {
		t.Fatalf("daily pnl: got %.2f want 500", pf.DailyPnL())
	}

	pf.ResetDay()
	if pf.DailyPnL() != 0 {
		t.Fatalf("daily pnl after reset: got %.2f want 0", pf.DailyPnL())
	}
	// Cumulative state survives the reset.
	if len(pf.Trades()) != 1 || len(pf.EquityCurve()) != 1 {
		t.Fatal("reset must not clear trades or the equity curve")
	}
}

func TestSnapshotConsistency(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{CommissionRate: 0.0003})
	buy(t, e, "TCS", 100, 100)
	pf.MarkToMarket(time.Now(), market.Prices{"TCS": 104})

	snap := pf.Snapshot()
	if !approxEqual(snap.Cash+snap.PositionsValue, snap.TotalValue, 1e-9) {
		t.Fatalf("cash %.2f + positions %.2f != total %.2f",
			snap.Cash, snap.PositionsValue, snap.TotalValue)
	}
	if snap.InitialCapital != 100000 {
		t.Fatalf("initial capital: got %.2f", snap.InitialCapital)
	}
	if len(snap.Positions) != 1 || len(snap.Trades) != 1 {
		t.Fatalf("snapshot contents: %d positions, %d trades",
			len(snap.Positions), len(snap.Trades))
	}
}

func TestStopLossExit(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 100, 100)

	now := time.Now()

	// 4% down: inside the 5% stop, nothing closes.
	closed, err := e.ApplyExitRules(now, market.Prices{"TCS": 96}, 0.05, 0.10)
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 0 {
		t.Fatalf("closed %d positions at -4%%", len(closed))
	}

	// 6% down breaches the stop.
	closed, err = e.ApplyExitRules(now, market.Prices{"TCS": 94}, 0.05, 0.10)
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 1 {
		t.Fatalf("closed %d positions at -6%%, want 1", len(closed))
	}
	if closed[0].Reason != ReasonStopLoss {
		t.Fatalf("reason: got %q want %q", closed[0].Reason, ReasonStopLoss)
	}
	if !approxEqual(closed[0].RealizedPL, -600, 1e-9) {
		t.Fatalf("realized: got %.2f want -600", closed[0].RealizedPL)
	}
	if _, ok := pf.Position("TCS"); ok {
		t.Fatal("position still open after stop-loss exit")
	}
}

func TestTakeProfitExit(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 100, 100)

	closed, err := e.ApplyExitRules(time.Now(), market.Prices{"TCS": 111}, 0.05, 0.10)
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 1 {
		t.Fatalf("closed %d positions at +11%%, want 1", len(closed))
	}
	if closed[0].Reason != ReasonTakeProfit {
		t.Fatalf("reason: got %q want %q", closed[0].Reason, ReasonTakeProfit)
	}
	if !approxEqual(pf.Cash(), 101100, 1e-9) {
		t.Fatalf("cash after take profit: got %.2f want 101100", pf.Cash())
	}
}

func TestExitRulesSkipUnpricedPositions(t *testing.T) {
	_, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 100, 100)

	closed, err := e.ApplyExitRules(time.Now(), market.Prices{"INFY": 50}, 0.05, 0.10)
	if err != nil {
		t.Fatal(err)
	}
	if len(closed) != 0 {
		t.Fatal("position without a fresh price must not be exited")
	}
}
