package sim

import (
	"sort"
	"time"

	"github.com/rustyeddy/papertrade/market"
)

// EquitySample is one observation of total portfolio value. Incomplete marks
// an observation taken while at least one position had no fresh price.
type EquitySample struct {
	Time       time.Time `json:"time"`
	Value      float64   `json:"value"`
	Incomplete bool      `json:"incomplete,omitempty"`
}

// Portfolio owns the authoritative simulation state: cash, open positions,
// the trade ledger, and the equity curve. All mutation goes through the
// Engine; everything here is reads and marking.
//
// Invariant: cash + sum of position market values == total value at every
// observation point.
type Portfolio struct {
	initialCapital float64
	cash           float64
	positions      map[string]*Position
	trades         []Trade
	equity         []EquitySample

	peak          float64
	maxDrawdown   float64
	dayStartValue float64
}

func NewPortfolio(initialCapital float64) *Portfolio {
	return &Portfolio{
		initialCapital: initialCapital,
		cash:           initialCapital,
		positions:      make(map[string]*Position),
		peak:           initialCapital,
		dayStartValue:  initialCapital,
	}
}

func (p *Portfolio) InitialCapital() float64 { return p.initialCapital }
func (p *Portfolio) Cash() float64           { return p.cash }

// Position returns the open position for an instrument, if any.
func (p *Portfolio) Position(instrument string) (Position, bool) {
	pos, ok := p.positions[instrument]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns the open positions sorted by instrument.
func (p *Portfolio) Positions() []Position {
	out := make([]Position, 0, len(p.positions))
	for _, pos := range p.positions {
		out = append(out, *pos)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Instrument < out[j].Instrument })
	return out
}

// Trades returns the full append-only trade ledger.
func (p *Portfolio) Trades() []Trade {
	out := make([]Trade, len(p.trades))
	copy(out, p.trades)
	return out
}

// EquityCurve returns the recorded equity samples in order.
func (p *Portfolio) EquityCurve() []EquitySample {
	out := make([]EquitySample, len(p.equity))
	copy(out, p.equity)
	return out
}

// TotalValue is cash plus the market value of every open position.
func (p *Portfolio) TotalValue() float64 {
	v := p.cash
	for _, pos := range p.positions {
		v += pos.MarketValue()
	}
	return v
}

// Exposure is the market value held in one instrument, zero if none.
func (p *Portfolio) Exposure(instrument string) float64 {
	pos, ok := p.positions[instrument]
	if !ok {
		return 0
	}
	return pos.MarketValue()
}

// Exposures returns market value per instrument.
func (p *Portfolio) Exposures() map[string]float64 {
	out := make(map[string]float64, len(p.positions))
	for name, pos := range p.positions {
		out[name] = pos.MarketValue()
	}
	return out
}

// DailyPnL is realized+unrealized P&L since the day anchor was last reset.
func (p *Portfolio) DailyPnL() float64 {
	return p.TotalValue() - p.dayStartValue
}

func (p *Portfolio) PeakValue() float64   { return p.peak }
func (p *Portfolio) MaxDrawdown() float64 { return p.maxDrawdown }

// Drawdown is the current decline from the running peak.
func (p *Portfolio) Drawdown() float64 {
	if p.peak <= 0 {
		return 0
	}
	return (p.peak - p.TotalValue()) / p.peak
}

// MarkToMarket revalues every position at the supplied prices and records
// one equity sample. Instruments missing from prices keep their last mark
// and the sample is flagged incomplete; a data gap degrades the observation,
// it never crashes the cycle.
func (p *Portfolio) MarkToMarket(now time.Time, prices market.Prices) EquitySample {
	incomplete := false
	for name, pos := range p.positions {
		px, ok := prices[name]
		if !ok {
			incomplete = true
			continue
		}
		pos.MarkPrice = px
	}

	total := p.TotalValue()
	if total > p.peak {
		p.peak = total
	}
	if dd := p.Drawdown(); dd > p.maxDrawdown {
		p.maxDrawdown = dd
	}

	sample := EquitySample{Time: now, Value: total, Incomplete: incomplete}
	p.equity = append(p.equity, sample)
	return sample
}

// ResetDay re-anchors the daily P&L at the current total value. Cumulative
// state (positions, ledger, equity curve, peak) is preserved.
func (p *Portfolio) ResetDay() {
	p.dayStartValue = p.TotalValue()
}

// Snapshot is a serializable view of the portfolio.
type Snapshot struct {
	Time           time.Time      `json:"time"`
	InitialCapital float64        `json:"initial_capital"`
	Cash           float64        `json:"cash"`
	PositionsValue float64        `json:"positions_value"`
	TotalValue     float64        `json:"total_value"`
	DailyPnL       float64        `json:"daily_pnl"`
	PeakValue      float64        `json:"peak_value"`
	MaxDrawdown    float64        `json:"max_drawdown"`
	Positions      []Position     `json:"positions"`
	Trades         []Trade        `json:"trades"`
	EquityCurve    []EquitySample `json:"equity_curve"`
}

func (p *Portfolio) Snapshot() Snapshot {
	total := p.TotalValue()
	return Snapshot{
		Time:           time.Now().UTC(),
		InitialCapital: p.initialCapital,
		Cash:           p.cash,
		PositionsValue: total - p.cash,
		TotalValue:     total,
		DailyPnL:       p.DailyPnL(),
		PeakValue:      p.peak,
		MaxDrawdown:    p.maxDrawdown,
		Positions:      p.Positions(),
		Trades:         p.Trades(),
		EquityCurve:    p.EquityCurve(),
	}
}
