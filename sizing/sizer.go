package sizing

import (
	"fmt"
	"math"
)

// Defaults for the formulas that carry fixed parameters. The Kelly win/loss
// magnitudes are an acknowledged approximation: the formula treats signal
// confidence as a win probability against assumed payoff sizes instead of
// empirical trade statistics.
const (
	DefaultTargetVol    = 0.02
	DefaultKellyAvgWin  = 0.10
	DefaultKellyAvgLoss = 0.05
)

// Sizer converts portfolio state and a signal's volatility/confidence into a
// whole-share quantity. Every method is additionally capped at
// MaxPositionPct of portfolio value.
type Sizer struct {
	Method          Method
	MaxPositionPct  float64 // cap, fraction of portfolio value
	MaxDailyLossPct float64 // risk budget used by risk-parity
	TargetVol       float64
	KellyAvgWin     float64
	KellyAvgLoss    float64
}

// New returns a Sizer with the default formula parameters filled in.
func New(method Method, maxPositionPct, maxDailyLossPct float64) *Sizer {
	return &Sizer{
		Method:          method,
		MaxPositionPct:  maxPositionPct,
		MaxDailyLossPct: maxDailyLossPct,
		TargetVol:       DefaultTargetVol,
		KellyAvgWin:     DefaultKellyAvgWin,
		KellyAvgLoss:    DefaultKellyAvgLoss,
	}
}

// Shares returns the number of whole shares to trade. volatility is the
// per-period return volatility of the instrument; confidence is the signal's
// score in [0,1]. A non-positive entry price is a sizing error, never a
// silent zero.
func (s *Sizer) Shares(portfolioValue, entryPrice, volatility, confidence float64) (float64, error) {
	if entryPrice <= 0 {
		return 0, fmt.Errorf("size: entry price must be positive, got %v", entryPrice)
	}
	if portfolioValue <= 0 {
		return 0, nil
	}

	capShares := portfolioValue * s.MaxPositionPct / entryPrice

	var shares float64
	switch s.Method {
	case EqualWeight:
		shares = capShares

	case RiskParity:
		// Size inversely to volatility against the daily risk budget.
		targetRisk := portfolioValue * s.MaxDailyLossPct
		positionRisk := volatility * entryPrice
		if positionRisk <= 0 {
			shares = capShares
		} else {
			shares = math.Min(targetRisk/positionRisk, capShares)
		}

	case VolatilityTarget:
		if volatility <= 0 {
			shares = capShares
		} else {
			value := portfolioValue * s.TargetVol * confidence / volatility
			shares = math.Min(value/entryPrice, capShares)
		}

	case Kelly:
		// Simplified Kelly: confidence stands in for win probability.
		p := confidence
		frac := (p*s.KellyAvgWin - (1-p)*s.KellyAvgLoss) / s.KellyAvgWin
		frac = math.Max(0, math.Min(frac, s.MaxPositionPct))
		shares = portfolioValue * frac / entryPrice

	default:
		return 0, fmt.Errorf("size: unknown method %v", s.Method)
	}

	// Equities trade in whole shares.
	return math.Floor(math.Max(0, shares)), nil
}
