package sim

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/papertrade/market"
)

func ptr(f float64) *float64 { return &f }

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newTestEngine(t *testing.T, capital float64, costs CostModel) (*Portfolio, *Engine) {
	t.Helper()
	pf := NewPortfolio(capital)
	return pf, NewEngine(pf, costs, nil)
}

func buy(t *testing.T, e *Engine, instr string, shares, price float64) Trade {
	t.Helper()
	trade, err := e.Execute(market.Signal{
		Instrument: instr,
		Action:     market.Buy,
		Price:      price,
		StopLoss:   ptr(price * 0.98),
		Quantity:   shares,
		Time:       time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
	}, shares, ReasonSignal)
	if err != nil {
		t.Fatalf("buy %s: %v", instr, err)
	}
	return trade
}

func sell(t *testing.T, e *Engine, instr string, shares, price float64) Trade {
	t.Helper()
	trade, err := e.Execute(market.Signal{
		Instrument: instr,
		Action:     market.Sell,
		Price:      price,
		Quantity:   shares,
		Time:       time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
	}, shares, ReasonSignal)
	if err != nil {
		t.Fatalf("sell %s: %v", instr, err)
	}
	return trade
}

// Round trip with 0.03% commission and no slippage: the worked example the
// accounting has to reproduce exactly.
func TestRoundTrip(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{CommissionRate: 0.0003})

	buy(t, e, "RELIANCE", 100, 100)

	// 100000 - 10000 - 3 commission
	if !approxEqual(pf.Cash(), 89997, 1e-9) {
		t.Fatalf("cash after buy: got %.4f want 89997", pf.Cash())
	}
	pos, ok := pf.Position("RELIANCE")
	if !ok {
		t.Fatal("position missing after buy")
	}
	// Cost basis includes the commission.
	if !approxEqual(pos.AvgPrice, 100.03, 1e-9) {
		t.Fatalf("avg price: got %.4f want 100.03", pos.AvgPrice)
	}

	pf.MarkToMarket(time.Now(), market.Prices{"RELIANCE": 110})
	if !approxEqual(pf.TotalValue(), 100997, 1e-9) {
		t.Fatalf("total after mark: got %.4f want 100997", pf.TotalValue())
	}

	trade := sell(t, e, "RELIANCE", 100, 110)

	// 11000 proceeds - 3.30 commission - 10003 basis
	if !approxEqual(trade.RealizedPL, 993.70, 1e-9) {
		t.Fatalf("realized P&L: got %.4f want 993.70", trade.RealizedPL)
	}
	if !trade.Closing {
		t.Fatal("sell not marked closing")
	}
	if !approxEqual(pf.Cash(), 100993.70, 1e-9) {
		t.Fatalf("final cash: got %.4f want 100993.70", pf.Cash())
	}
	if _, ok := pf.Position("RELIANCE"); ok {
		t.Fatal("position should be removed at zero shares")
	}
}

// Capital conservation: with marks pinned at fill prices, each execution
// moves total value by exactly its transaction cost.
func TestCapitalConservation(t *testing.T) {
	pf, e := newTestEngine(t, 500000, CostModel{
		CommissionRate:    0.0003,
		ExchangeFeeRate:   0.0000345,
		SellTaxRate:       0.00025,
		CommissionTaxRate: 0.18,
	})

	steps := []struct {
		action market.Action
		instr  string
		shares float64
		price  float64
	}{
		{market.Buy, "TCS", 50, 3200},
		{market.Buy, "INFY", 100, 1500},
		{market.Buy, "TCS", 25, 3200},
		{market.Sell, "INFY", 40, 1500},
		{market.Sell, "TCS", 75, 3200},
	}

	for i, st := range steps {
		before := pf.TotalValue()
		var trade Trade
		if st.action == market.Buy {
			trade = buy(t, e, st.instr, st.shares, st.price)
		} else {
			trade = sell(t, e, st.instr, st.shares, st.price)
		}

		// Revalue at the fill so the only value change left is friction.
		pf.MarkToMarket(time.Now(), market.Prices{st.instr: trade.FillPrice})
		after := pf.TotalValue()

		var posSum float64
		for _, p := range pf.Positions() {
			posSum += p.MarketValue()
		}
		if !approxEqual(pf.Cash()+posSum, after, 1e-6) {
			t.Fatalf("step %d: cash %.4f + positions %.4f != total %.4f",
				i, pf.Cash(), posSum, after)
		}
		if after > before {
			t.Fatalf("step %d: value increased by trading at unchanged prices", i)
		}
	}
}

func TestBuyInsufficientCash(t *testing.T) {
	pf, e := newTestEngine(t, 1000, CostModel{CommissionRate: 0.0003})

	_, err := e.Execute(market.Signal{
		Instrument: "TCS",
		Action:     market.Buy,
		Price:      3200,
		Quantity:   10,
	}, 10, ReasonSignal)
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("want ErrInsufficientCash, got %v", err)
	}

	// Check-then-commit: a rejected buy leaves no trace.
	if pf.Cash() != 1000 {
		t.Fatalf("cash mutated on rejected buy: %.2f", pf.Cash())
	}
	if len(pf.Trades()) != 0 {
		t.Fatal("trade recorded for rejected buy")
	}
}

func TestOversell(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})
	buy(t, e, "TCS", 10, 100)

	_, err := e.Execute(market.Signal{
		Instrument: "TCS",
		Action:     market.Sell,
		Price:      100,
		Quantity:   11,
	}, 11, ReasonSignal)
	if !errors.Is(err, ErrOversell) {
		t.Fatalf("want ErrOversell, got %v", err)
	}

	_, err = e.Execute(market.Signal{
		Instrument: "INFY",
		Action:     market.Sell,
		Price:      100,
		Quantity:   1,
	}, 1, ReasonSignal)
	if !errors.Is(err, ErrOversell) {
		t.Fatalf("want ErrOversell for missing position, got %v", err)
	}

	if pos, _ := pf.Position("TCS"); pos.Shares != 10 {
		t.Fatalf("position mutated on rejected sell: %v", pos.Shares)
	}
}

func TestWeightedAverageAdd(t *testing.T) {
	pf, e := newTestEngine(t, 100000, CostModel{})

	buy(t, e, "INFY", 100, 100)
	buy(t, e, "INFY", 50, 110)

	pos, ok := pf.Position("INFY")
	if !ok {
		t.Fatal("position missing")
	}
	want := (100*100.0 + 50*110.0) / 150
	if !approxEqual(pos.AvgPrice, want, 1e-9) {
		t.Fatalf("avg price: got %.4f want %.4f", pos.AvgPrice, want)
	}
	if pos.Shares != 150 {
		t.Fatalf("shares: got %v want 150", pos.Shares)
	}
}

func TestSlippageIsAlwaysAdverse(t *testing.T) {
	m := CostModel{SlippageBPS: 5}

	buyFill := m.FillPrice(100, market.Buy)
	sellFill := m.FillPrice(100, market.Sell)

	if buyFill <= 100 {
		t.Fatalf("buy fill %.4f should exceed reference", buyFill)
	}
	if sellFill >= 100 {
		t.Fatalf("sell fill %.4f should be below reference", sellFill)
	}
	if !approxEqual(buyFill, 100.05, 1e-9) {
		t.Fatalf("buy fill: got %.6f want 100.05", buyFill)
	}
}

func TestSellOnlyTax(t *testing.T) {
	m := CostModel{CommissionRate: 0.0003, SellTaxRate: 0.00025, CommissionTaxRate: 0.18}

	buyCost := m.Total(10000, market.Buy)
	sellCost := m.Total(10000, market.Sell)

	// buy: 3 commission + 0.54 tax on commission
	if !approxEqual(buyCost, 3.54, 1e-9) {
		t.Fatalf("buy cost: got %.6f want 3.54", buyCost)
	}
	// sell adds the 2.50 transaction tax
	if !approxEqual(sellCost, 6.04, 1e-9) {
		t.Fatalf("sell cost: got %.6f want 6.04", sellCost)
	}
}

func TestZeroShareExecutionRejected(t *testing.T) {
	_, e := newTestEngine(t, 100000, CostModel{})
	if _, err := e.Execute(market.Signal{
		Instrument: "TCS", Action: market.Buy, Price: 100,
	}, 0, ReasonSignal); err == nil {
		t.Fatal("expected error for zero shares")
	}
}
