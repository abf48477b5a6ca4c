package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/papertrade/market"
)

// PortfolioView is the read-only portfolio state the validator consults. The
// portfolio itself lives in sim; risk only ever reads it.
type PortfolioView interface {
	// DailyPnL is the day's realized+unrealized P&L.
	DailyPnL() float64
	// Exposure is the current market value held in one instrument.
	Exposure(instrument string) float64
}

// Validator runs a proposed trade through the configured limits. Checks run
// in a fixed order and short-circuit on the first failure; every rejection
// is recorded in the registry.
type Validator struct {
	reg *Registry
}

func NewValidator(reg *Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate accepts or rejects a signal against the limits and current
// portfolio state. Rejection is a recoverable condition: the decision
// carries the violation and the signal is simply dropped by the caller.
func (v *Validator) Validate(sig market.Signal, pf PortfolioView) Decision {
	lim := v.reg.Limits()
	dailyPnL := pf.DailyPnL()

	// Once halted, reject immediately without re-running the limit checks.
	if v.reg.Halted(dailyPnL) {
		return v.reject(sig, CodeHalted,
			fmt.Sprintf("trading halted: day P&L %.2f, %d violations",
				dailyPnL, v.reg.ViolationCount()))
	}

	if !sig.Valid() {
		return v.reject(sig, CodeInvalidSignal,
			fmt.Sprintf("invalid signal: action=%s qty=%v price=%v",
				sig.Action, sig.Quantity, sig.Price))
	}

	d := Decision{Allowed: true}
	d.PositionValue = sig.Quantity * sig.Price

	if d.PositionValue > lim.MaxPositionValue() {
		return v.reject(sig, CodePositionSize,
			fmt.Sprintf("position value %.2f exceeds max %.2f",
				d.PositionValue, lim.MaxPositionValue()))
	}

	if dailyPnL < -lim.MaxDailyLoss() {
		return v.reject(sig, CodeDailyLoss,
			fmt.Sprintf("day P&L %.2f below limit %.2f",
				dailyPnL, -lim.MaxDailyLoss()))
	}

	// Post-trade concentration against configured capital, never negative.
	exposure := pf.Exposure(sig.Instrument)
	if sig.Action == market.Buy {
		exposure += d.PositionValue
	} else {
		exposure = math.Max(0, exposure-d.PositionValue)
	}
	d.ConcentrationPct = exposure / lim.TotalCapital
	if d.ConcentrationPct > lim.MaxConcentrationPct {
		return v.reject(sig, CodeConcentration,
			fmt.Sprintf("%s exposure would be %.1f%% of capital, max %.1f%%",
				sig.Instrument, 100*d.ConcentrationPct, 100*lim.MaxConcentrationPct))
	}

	if sig.StopLoss == nil {
		return v.reject(sig, CodeMissingStop, "signal has no stop loss")
	}
	if sig.Action == market.Buy {
		d.StopDistancePct = (sig.Price - *sig.StopLoss) / sig.Price
	} else {
		d.StopDistancePct = (*sig.StopLoss - sig.Price) / sig.Price
	}
	if d.StopDistancePct > lim.StopLossPct {
		return v.reject(sig, CodeStopTooWide,
			fmt.Sprintf("stop distance %.1f%% exceeds max %.1f%%",
				100*d.StopDistancePct, 100*lim.StopLossPct))
	}

	return d
}

func (v *Validator) reject(sig market.Signal, code Code, msg string) Decision {
	viol := Violation{
		Time:       time.Now().UTC(),
		Code:       code,
		Instrument: sig.Instrument,
		Msg:        msg,
	}
	v.reg.Record(viol)
	return Decision{Allowed: false, Violation: &viol}
}
