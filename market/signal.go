package market

import "time"

// Signal is one trade idea from an external strategy engine. Signals are
// immutable once issued; the engine never produces them itself.
//
// Quantity is a suggestion: zero or negative means "let the sizer decide".
// StopLoss is required for the signal to pass risk validation; Target is
// informational.
type Signal struct {
	Instrument string    `json:"instrument"`
	Action     Action    `json:"action"`
	Price      float64   `json:"price"` // reference price
	StopLoss   *float64  `json:"stop_loss,omitempty"`
	Target     *float64  `json:"target,omitempty"`
	Quantity   float64   `json:"quantity"`
	Confidence float64   `json:"confidence"` // [0,1]
	Strategy   string    `json:"strategy"`
	Time       time.Time `json:"time"`
}

// Valid reports whether the signal is structurally complete: non-empty
// instrument, a real side, positive quantity and price.
func (s Signal) Valid() bool {
	if s.Instrument == "" {
		return false
	}
	if s.Action != Buy && s.Action != Sell {
		return false
	}
	return s.Quantity > 0 && s.Price > 0
}
