package risk

import "time"

// Code classifies a risk violation.
type Code string

const (
	CodeInvalidSignal Code = "INVALID_SIGNAL"
	CodePositionSize  Code = "POSITION_SIZE"
	CodeDailyLoss     Code = "DAILY_LOSS_LIMIT"
	CodeConcentration Code = "CONCENTRATION"
	CodeMissingStop   Code = "MISSING_STOP_LOSS"
	CodeStopTooWide   Code = "STOP_TOO_WIDE"
	CodeHalted        Code = "TRADING_HALTED"
)

// Violation is one rejected signal's audit record. Violations are appended
// to the registry's log and never mutated.
type Violation struct {
	Time       time.Time `json:"time"`
	Code       Code      `json:"code"`
	Instrument string    `json:"instrument,omitempty"`
	Msg        string    `json:"msg"`
}

// Decision is the outcome of validating one signal. Checks short-circuit, so
// at most one violation is reported per signal.
type Decision struct {
	Allowed   bool
	Violation *Violation

	// Numeric context for the caller, filled as far as validation got.
	PositionValue    float64
	ConcentrationPct float64
	StopDistancePct  float64
}
