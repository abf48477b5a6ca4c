package sim

import (
	"time"

	"github.com/rustyeddy/papertrade/market"
)

// Trade is the immutable record of one simulated execution. Trades are
// appended to the portfolio ledger and never mutated afterwards.
type Trade struct {
	ID          string        `json:"id"`
	Instrument  string        `json:"instrument"`
	Action      market.Action `json:"action"`
	Shares      float64       `json:"shares"`
	SignalPrice float64       `json:"signal_price"` // requested
	FillPrice   float64       `json:"fill_price"`   // slippage-adjusted
	Value       float64       `json:"value"`        // shares * fill price
	Commission  float64       `json:"commission"`
	Fees        float64       `json:"fees"`     // exchange fees + taxes
	Slippage    float64       `json:"slippage"` // absolute cost vs requested price
	Time        time.Time     `json:"time"`
	Strategy    string        `json:"strategy"`
	Reason      string        `json:"reason"`
	Closing     bool          `json:"closing"`
	RealizedPL  float64       `json:"realized_pl"` // set on closing trades
}

// Cost is the total transaction cost charged on this trade.
func (t Trade) Cost() float64 {
	return t.Commission + t.Fees
}
