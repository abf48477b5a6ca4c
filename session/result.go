package session

import (
	"fmt"

	"github.com/rustyeddy/papertrade/risk"
	"github.com/rustyeddy/papertrade/sim"
)

// Status tags the outcome of processing one signal.
type Status int

const (
	// StatusExecuted: the signal passed validation and was filled.
	StatusExecuted Status = iota
	// StatusRiskRejected: a risk limit rejected the signal.
	StatusRiskRejected
	// StatusExecutionRejected: the fill itself failed: insufficient cash,
	// oversell, or a zero-sized order. A resource condition, not a limit.
	StatusExecutionRejected
)

func (s Status) String() string {
	switch s {
	case StatusExecuted:
		return "executed"
	case StatusRiskRejected:
		return "risk_rejected"
	case StatusExecutionRejected:
		return "execution_rejected"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of ProcessSignal. Exactly one of Trade or Violation
// is set for executed / risk-rejected outcomes; Reason carries the
// human-readable cause for execution rejections.
type Result struct {
	Status    Status
	Trade     *sim.Trade
	Violation *risk.Violation
	Reason    string
}

func (r Result) Executed() bool { return r.Status == StatusExecuted }

// Describe renders the result for logs and CLI output.
func (r Result) Describe() string {
	switch r.Status {
	case StatusExecuted:
		t := r.Trade
		return fmt.Sprintf("executed %s %.0f %s @ %.4f",
			t.Action, t.Shares, t.Instrument, t.FillPrice)
	case StatusRiskRejected:
		return fmt.Sprintf("risk rejected [%s]: %s", r.Violation.Code, r.Violation.Msg)
	case StatusExecutionRejected:
		return "execution rejected: " + r.Reason
	default:
		return r.Status.String()
	}
}
