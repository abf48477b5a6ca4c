package sim

import (
	"time"

	"github.com/rustyeddy/papertrade/market"
)

// Exit reasons journaled with synthetic closes.
const (
	ReasonSignal     = "Signal"
	ReasonStopLoss   = "StopLoss"
	ReasonTakeProfit = "TakeProfit"
)

// ApplyExitRules closes every position whose unrealized return has fallen to
// the stop-loss threshold or risen to the take-profit threshold, by issuing
// a synthetic full-size sell through the engine at the current price.
// Positions without a fresh price are skipped. Returns the closing trades.
func (e *Engine) ApplyExitRules(now time.Time, prices market.Prices, stopLossPct, takeProfitPct float64) ([]Trade, error) {
	type exit struct {
		pos    Position
		price  float64
		reason string
	}

	var exits []exit
	for _, pos := range e.pf.positions {
		px, ok := prices[pos.Instrument]
		if !ok {
			continue
		}
		pos.MarkPrice = px

		switch ret := pos.UnrealizedReturn(); {
		case ret <= -stopLossPct:
			exits = append(exits, exit{*pos, px, ReasonStopLoss})
		case ret >= takeProfitPct:
			exits = append(exits, exit{*pos, px, ReasonTakeProfit})
		}
	}

	var closed []Trade
	for _, x := range exits {
		sig := market.Signal{
			Instrument: x.pos.Instrument,
			Action:     market.Sell,
			Price:      x.price,
			Quantity:   x.pos.Shares,
			Strategy:   x.pos.Strategy,
			Time:       now,
		}
		t, err := e.Execute(sig, x.pos.Shares, x.reason)
		if err != nil {
			return closed, err
		}
		closed = append(closed, t)
	}
	return closed, nil
}
