package sim

import "time"

// Position is an open holding in one instrument. AvgPrice is the cost basis
// per share and includes the buy-side transaction costs, so unrealized
// figures are net of what it cost to get in.
type Position struct {
	Instrument string    `json:"instrument"`
	Shares     float64   `json:"shares"`
	AvgPrice   float64   `json:"avg_price"`
	MarkPrice  float64   `json:"mark_price"`
	EntryTime  time.Time `json:"entry_time"`
	Strategy   string    `json:"strategy"`
	Confidence float64   `json:"confidence"`
}

// MarketValue is shares at the current mark.
func (p Position) MarketValue() float64 {
	return p.Shares * p.MarkPrice
}

// UnrealizedPL is the open P&L against cost basis.
func (p Position) UnrealizedPL() float64 {
	return (p.MarkPrice - p.AvgPrice) * p.Shares
}

// UnrealizedReturn is the open return as a fraction of cost basis.
func (p Position) UnrealizedReturn() float64 {
	if p.AvgPrice == 0 {
		return 0
	}
	return (p.MarkPrice - p.AvgPrice) / p.AvgPrice
}
