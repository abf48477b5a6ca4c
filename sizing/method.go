package sizing

import "fmt"

// Method selects the position-sizing formula.
type Method int

const (
	EqualWeight Method = iota
	RiskParity
	VolatilityTarget
	Kelly
)

func (m Method) String() string {
	switch m {
	case EqualWeight:
		return "equal_weight"
	case RiskParity:
		return "risk_parity"
	case VolatilityTarget:
		return "volatility_target"
	case Kelly:
		return "kelly_criterion"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a configuration string onto a Method. Unknown names are a
// configuration error, not a default.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "equal_weight":
		return EqualWeight, nil
	case "risk_parity":
		return RiskParity, nil
	case "volatility_target":
		return VolatilityTarget, nil
	case "kelly_criterion", "kelly":
		return Kelly, nil
	default:
		return 0, fmt.Errorf("unknown sizing method %q", s)
	}
}
