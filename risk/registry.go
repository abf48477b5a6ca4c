package risk

import "log"

// HaltViolationCount is the violation-log length above which trading halts
// for the rest of the day regardless of individual signal merits.
const HaltViolationCount = 10

// Registry owns the configured limits and the risk state consumed during the
// current trading day: the violation log and the trade counter. ResetDay
// clears the consumed state; the limits themselves never change.
type Registry struct {
	limits      Limits
	violations  []Violation
	tradesToday int
	log         *log.Logger
}

func NewRegistry(limits Limits, logger *log.Logger) *Registry {
	return &Registry{limits: limits, log: logger}
}

func (r *Registry) Limits() Limits { return r.limits }

// Record appends a violation to the day's audit log.
func (r *Registry) Record(v Violation) {
	r.violations = append(r.violations, v)
	if r.log != nil {
		r.log.Printf("risk violation: %s %s %s", v.Code, v.Instrument, v.Msg)
	}
}

// Violations returns a copy of the day's violation log.
func (r *Registry) Violations() []Violation {
	out := make([]Violation, len(r.violations))
	copy(out, r.violations)
	return out
}

func (r *Registry) ViolationCount() int { return len(r.violations) }

// NoteTrade bumps the day's executed-trade counter.
func (r *Registry) NoteTrade() { r.tradesToday++ }

func (r *Registry) TradesToday() int { return r.tradesToday }

// Halted reports whether trading is stopped for the day: either the daily
// loss limit is breached or the violation log has grown past the halt
// threshold. dailyPnL is the day's realized+unrealized P&L.
func (r *Registry) Halted(dailyPnL float64) bool {
	if dailyPnL < -r.limits.MaxDailyLoss() {
		return true
	}
	return len(r.violations) > HaltViolationCount
}

// ResetDay clears the consumed limits and the violation log. Limits are
// preserved; cumulative portfolio state lives elsewhere and is untouched.
func (r *Registry) ResetDay() {
	r.violations = nil
	r.tradesToday = 0
	if r.log != nil {
		r.log.Printf("daily risk limits reset")
	}
}
