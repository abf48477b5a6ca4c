package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuyingPower(t *testing.T) {
	lim := testLimits()

	assert.Equal(t, 1000000.0, BuyingPower(lim, 0, 0))
	assert.Equal(t, 700000.0, BuyingPower(lim, 300000, 0))
	// Losses eat into remaining capital.
	assert.Equal(t, 680000.0, BuyingPower(lim, 300000, -20000))
	// Gains do not inflate it.
	assert.Equal(t, 700000.0, BuyingPower(lim, 300000, 20000))
	// Never negative.
	assert.Equal(t, 0.0, BuyingPower(lim, 1100000, -50000))
}

func TestSummarize(t *testing.T) {
	lim := testLimits()
	exposures := map[string]float64{"RELIANCE": 40000, "TCS": 10000}

	m := Summarize(lim, exposures, -15000, 3)

	// Largest position 40k against a 50k per-trade limit.
	assert.InDelta(t, 80.0, m.MaxPositionUtilizationPct, 1e-9)
	assert.InDelta(t, 4.0, m.ConcentrationRiskPct, 1e-9)
	// 15k loss against the 30k daily budget.
	assert.InDelta(t, 50.0, m.DailyLossUtilizationPct, 1e-9)
	assert.Equal(t, 3, m.ViolationCount)
	assert.Equal(t, 935000.0, m.BuyingPower)
}

func TestVolWindow(t *testing.T) {
	w := NewVolWindow(5)
	assert.Zero(t, w.Realized())

	w.Push(100)
	assert.Zero(t, w.Realized())

	// Constant prices have zero volatility.
	w.Push(100)
	w.Push(100)
	assert.Zero(t, w.Realized())

	w.Push(110)
	assert.Greater(t, w.Realized(), 0.0)
}

func TestVolWindowRolls(t *testing.T) {
	w := NewVolWindow(3)
	for _, px := range []float64{50, 60, 40, 100, 100, 100} {
		w.Push(px)
	}
	// Only the flat tail remains in the window.
	assert.Zero(t, w.Realized())
}
