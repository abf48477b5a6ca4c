package journal

import "time"

// TradeRecord is the persisted form of one simulated execution.
type TradeRecord struct {
	TradeID     string
	Instrument  string
	Action      string
	Shares      float64
	SignalPrice float64
	FillPrice   float64
	Commission  float64
	Fees        float64
	RealizedPL  float64
	Strategy    string
	Reason      string
	Time        time.Time
}

// EquitySnapshot is one persisted observation of portfolio value.
type EquitySnapshot struct {
	Time           time.Time
	Cash           float64
	PositionsValue float64
	TotalValue     float64
	Drawdown       float64
	Incomplete     bool
}

// ViolationRecord is one persisted risk rejection.
type ViolationRecord struct {
	Time       time.Time
	Code       string
	Instrument string
	Detail     string
}

// Journal receives every trade, equity sample, and risk violation the
// session produces. Where records end up (CSV files, SQLite, nothing) is the
// implementation's business.
type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	RecordViolation(ViolationRecord) error
	Close() error
}

// Discard is a Journal that drops everything. Useful for tests and for
// sessions that only need the in-memory state.
type Discard struct{}

func (Discard) RecordTrade(TradeRecord) error         { return nil }
func (Discard) RecordEquity(EquitySnapshot) error     { return nil }
func (Discard) RecordViolation(ViolationRecord) error { return nil }
func (Discard) Close() error                          { return nil }
