package session

import (
	"fmt"
	"log"
	"time"

	"github.com/rustyeddy/papertrade/config"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
	"github.com/rustyeddy/papertrade/perf"
	"github.com/rustyeddy/papertrade/risk"
	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/sizing"
)

// Session wires the validator, sizer, execution engine, and journal around a
// single portfolio. It is single-threaded and cooperative: the caller
// serializes cycles, and a cycle always runs to completion.
type Session struct {
	pf        *sim.Portfolio
	engine    *sim.Engine
	registry  *risk.Registry
	validator *risk.Validator
	sizer     *sizing.Sizer
	journal   journal.Journal

	vols        map[string]*risk.VolWindow
	volLookback int

	log *log.Logger
}

// New builds a session from a validated configuration. An invalid
// configuration fails here, before any trading state exists.
func New(cfg *config.Config, j journal.Journal, logger *log.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session init: %w", err)
	}
	if j == nil {
		j = journal.Discard{}
	}

	limits := cfg.Limits()
	registry := risk.NewRegistry(limits, logger)
	pf := sim.NewPortfolio(cfg.Session.InitialCapital)

	return &Session{
		pf:          pf,
		engine:      sim.NewEngine(pf, cfg.CostModel(), logger),
		registry:    registry,
		validator:   risk.NewValidator(registry),
		sizer:       sizing.New(cfg.Method(), limits.MaxPositionPct, limits.MaxDailyLossPct),
		journal:     j,
		vols:        make(map[string]*risk.VolWindow),
		volLookback: cfg.Session.VolLookback,
		log:         logger,
	}, nil
}

func (s *Session) Portfolio() *sim.Portfolio { return s.pf }
func (s *Session) Registry() *risk.Registry  { return s.registry }
func (s *Session) Limits() risk.Limits       { return s.registry.Limits() }
func (s *Session) Halted() bool              { return s.registry.Halted(s.pf.DailyPnL()) }

// ProcessSignal sizes, validates, and executes one signal. Rejections are
// structured results, never errors; the signal is simply dropped.
func (s *Session) ProcessSignal(sig market.Signal) Result {
	sig, res := s.resolveQuantity(sig)
	if res != nil {
		return *res
	}

	if d := s.validator.Validate(sig, s.pf); !d.Allowed {
		s.journalViolation(*d.Violation)
		return Result{Status: StatusRiskRejected, Violation: d.Violation}
	}

	trade, err := s.engine.Execute(sig, sig.Quantity, sim.ReasonSignal)
	if err != nil {
		return Result{Status: StatusExecutionRejected, Reason: err.Error()}
	}

	s.registry.NoteTrade()
	s.journalTrade(trade)
	return Result{Status: StatusExecuted, Trade: &trade}
}

// resolveQuantity fills in a missing quantity before validation: buys are
// sized by the configured method, sells default to the full held position.
func (s *Session) resolveQuantity(sig market.Signal) (market.Signal, *Result) {
	if sig.Quantity > 0 {
		return sig, nil
	}

	switch sig.Action {
	case market.Buy:
		vol := 0.0
		if w, ok := s.vols[sig.Instrument]; ok {
			vol = w.Realized()
		}
		shares, err := s.sizer.Shares(s.pf.TotalValue(), sig.Price, vol, sig.Confidence)
		if err != nil {
			return sig, &Result{Status: StatusExecutionRejected,
				Reason: fmt.Sprintf("sizing failed: %v", err)}
		}
		if shares <= 0 {
			return sig, &Result{Status: StatusExecutionRejected,
				Reason: fmt.Sprintf("%s sized to zero shares", sig.Instrument)}
		}
		sig.Quantity = shares

	case market.Sell:
		pos, ok := s.pf.Position(sig.Instrument)
		if !ok {
			return sig, &Result{Status: StatusExecutionRejected,
				Reason: fmt.Sprintf("no position in %s to sell", sig.Instrument)}
		}
		sig.Quantity = pos.Shares
	}
	return sig, nil
}

// Cycle runs one complete trading cycle: mark to market, sweep exit rules,
// then process the batch in signal order so each trade's risk check sees the
// cumulative effect of the ones before it. A cycle with no signals still
// records exactly one equity sample.
func (s *Session) Cycle(now time.Time, prices market.Prices, signals []market.Signal) ([]Result, error) {
	s.MarkToMarket(now, prices)
	if _, err := s.ApplyExitRules(now, prices); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(signals))
	for _, sig := range signals {
		results = append(results, s.ProcessSignal(sig))
	}
	return results, nil
}

// MarkToMarket revalues the portfolio, feeds the volatility windows, and
// journals the equity sample.
func (s *Session) MarkToMarket(now time.Time, prices market.Prices) sim.EquitySample {
	for name, px := range prices {
		w, ok := s.vols[name]
		if !ok {
			w = risk.NewVolWindow(s.volLookback)
			s.vols[name] = w
		}
		w.Push(px)
	}

	sample := s.pf.MarkToMarket(now, prices)
	if err := s.journal.RecordEquity(journal.EquitySnapshot{
		Time:           sample.Time,
		Cash:           s.pf.Cash(),
		PositionsValue: sample.Value - s.pf.Cash(),
		TotalValue:     sample.Value,
		Drawdown:       s.pf.Drawdown(),
		Incomplete:     sample.Incomplete,
	}); err != nil && s.log != nil {
		s.log.Printf("journal equity: %v", err)
	}
	return sample
}

// ApplyExitRules closes positions that hit the stop-loss or take-profit
// thresholds, journaling each close.
func (s *Session) ApplyExitRules(now time.Time, prices market.Prices) ([]sim.Trade, error) {
	lim := s.registry.Limits()
	closed, err := s.engine.ApplyExitRules(now, prices, lim.StopLossPct, lim.TakeProfitPct)
	for _, t := range closed {
		s.journalTrade(t)
	}
	return closed, err
}

// Volatility returns the rolling realized volatility for an instrument,
// zero when unseen.
func (s *Session) Volatility(instrument string) float64 {
	if w, ok := s.vols[instrument]; ok {
		return w.Realized()
	}
	return 0
}

// ResetDay clears the day's consumed risk limits and violation log and
// re-anchors daily P&L. Cumulative portfolio state is preserved.
func (s *Session) ResetDay() {
	s.registry.ResetDay()
	s.pf.ResetDay()
}

// Snapshot is the session's serializable state: the portfolio plus risk
// limit consumption.
type Snapshot struct {
	Portfolio sim.Snapshot `json:"portfolio"`
	Risk      risk.Metrics `json:"risk"`
	Halted    bool         `json:"halted"`
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Portfolio: s.pf.Snapshot(),
		Risk: risk.Summarize(s.registry.Limits(), s.pf.Exposures(),
			s.pf.DailyPnL(), s.registry.ViolationCount()),
		Halted: s.Halted(),
	}
}

// Report computes the performance metrics for the session so far.
func (s *Session) Report() perf.Report {
	return perf.Analyze(s.pf.EquityCurve(), s.pf.Trades(), s.pf.Cash(), s.pf.TotalValue())
}

// ReportAgainst computes the performance metrics with a benchmark series.
func (s *Session) ReportAgainst(benchmark []float64) perf.Report {
	return perf.AnalyzeWithBenchmark(s.pf.EquityCurve(), s.pf.Trades(),
		s.pf.Cash(), s.pf.TotalValue(), benchmark)
}

func (s *Session) journalTrade(t sim.Trade) {
	if err := s.journal.RecordTrade(journal.TradeRecord{
		TradeID:     t.ID,
		Instrument:  t.Instrument,
		Action:      t.Action.String(),
		Shares:      t.Shares,
		SignalPrice: t.SignalPrice,
		FillPrice:   t.FillPrice,
		Commission:  t.Commission,
		Fees:        t.Fees,
		RealizedPL:  t.RealizedPL,
		Strategy:    t.Strategy,
		Reason:      t.Reason,
		Time:        t.Time,
	}); err != nil && s.log != nil {
		s.log.Printf("journal trade %s: %v", t.ID, err)
	}
}

func (s *Session) journalViolation(v risk.Violation) {
	if err := s.journal.RecordViolation(journal.ViolationRecord{
		Time:       v.Time,
		Code:       string(v.Code),
		Instrument: v.Instrument,
		Detail:     v.Msg,
	}); err != nil && s.log != nil {
		s.log.Printf("journal violation: %v", err)
	}
}
