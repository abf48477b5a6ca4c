package market

import "fmt"

// Action is the side of a trade.
type Action int

const (
	ActionUnknown Action = iota
	Buy
	Sell
)

func (a Action) String() string {
	switch a {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseAction converts the wire form ("BUY"/"SELL", case-insensitive) to an
// Action. Anything else is an error, never a silent default.
func ParseAction(s string) (Action, error) {
	switch s {
	case "BUY", "buy", "Buy":
		return Buy, nil
	case "SELL", "sell", "Sell":
		return Sell, nil
	default:
		return ActionUnknown, fmt.Errorf("unknown action %q", s)
	}
}

// Prices maps instrument -> last traded price, supplied once per
// mark-to-market call.
type Prices map[string]float64
