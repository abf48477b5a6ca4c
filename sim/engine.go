package sim

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/rustyeddy/papertrade/internal/id"
	"github.com/rustyeddy/papertrade/market"
)

// Resource-exhaustion conditions, distinct from risk-limit rejection. The
// caller can tell "add funds / reduce size" apart from "limit breached".
var (
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrOversell         = errors.New("sell exceeds held position")
)

// quantityTol absorbs float noise when comparing share counts.
const quantityTol = 1e-9

// Engine simulates fills against the portfolio. It is the sole mutator of
// cash and positions: every check runs before any state changes, so a
// rejected execution leaves the portfolio untouched.
type Engine struct {
	pf    *Portfolio
	costs CostModel
	log   *log.Logger
}

func NewEngine(pf *Portfolio, costs CostModel, logger *log.Logger) *Engine {
	return &Engine{pf: pf, costs: costs, log: logger}
}

func (e *Engine) Costs() CostModel { return e.costs }

// Execute fills an accepted signal for the given share count and applies it
// to the portfolio. The fill price is the signal's reference price adjusted
// unfavorably by the slippage rate.
func (e *Engine) Execute(sig market.Signal, shares float64, reason string) (Trade, error) {
	if shares <= 0 {
		return Trade{}, fmt.Errorf("execute %s %s: shares must be positive, got %v",
			sig.Action, sig.Instrument, shares)
	}

	fill := e.costs.FillPrice(sig.Price, sig.Action)
	value := shares * fill
	commission := e.costs.Commission(value)
	fees := e.costs.Fees(value, sig.Action)

	trade := Trade{
		ID:          id.New(),
		Instrument:  sig.Instrument,
		Action:      sig.Action,
		Shares:      shares,
		SignalPrice: sig.Price,
		FillPrice:   fill,
		Value:       value,
		Commission:  commission,
		Fees:        fees,
		Slippage:    math.Abs(fill-sig.Price) * shares,
		Time:        sig.Time,
		Strategy:    sig.Strategy,
		Reason:      reason,
	}

	switch sig.Action {
	case market.Buy:
		if err := e.applyBuy(&trade, sig); err != nil {
			return Trade{}, err
		}
	case market.Sell:
		if err := e.applySell(&trade); err != nil {
			return Trade{}, err
		}
	default:
		return Trade{}, fmt.Errorf("execute %s: unsupported action %v", sig.Instrument, sig.Action)
	}

	e.pf.trades = append(e.pf.trades, trade)
	if e.log != nil {
		e.log.Printf("executed %s %.0f %s @ %.4f (cost %.2f)",
			trade.Action, trade.Shares, trade.Instrument, trade.FillPrice, trade.Cost())
	}
	return trade, nil
}

func (e *Engine) applyBuy(t *Trade, sig market.Signal) error {
	totalCost := t.Value + t.Cost()
	if totalCost > e.pf.cash+quantityTol {
		return fmt.Errorf("%w: need %.2f, have %.2f",
			ErrInsufficientCash, totalCost, e.pf.cash)
	}

	pos, ok := e.pf.positions[t.Instrument]
	if !ok {
		e.pf.positions[t.Instrument] = &Position{
			Instrument: t.Instrument,
			Shares:     t.Shares,
			AvgPrice:   totalCost / t.Shares,
			MarkPrice:  t.FillPrice,
			EntryTime:  t.Time,
			Strategy:   t.Strategy,
			Confidence: sig.Confidence,
		}
	} else {
		// Same-direction add: weighted-average cost basis, keep the
		// original entry time.
		newShares := pos.Shares + t.Shares
		pos.AvgPrice = (pos.Shares*pos.AvgPrice + totalCost) / newShares
		pos.Shares = newShares
		pos.MarkPrice = t.FillPrice
		if sig.Confidence > pos.Confidence {
			pos.Confidence = sig.Confidence
		}
	}

	e.pf.cash -= totalCost
	return nil
}

func (e *Engine) applySell(t *Trade) error {
	pos, ok := e.pf.positions[t.Instrument]
	if !ok {
		return fmt.Errorf("%w: no position in %s", ErrOversell, t.Instrument)
	}
	if t.Shares > pos.Shares+quantityTol {
		return fmt.Errorf("%w: selling %v of %s, hold %v",
			ErrOversell, t.Shares, t.Instrument, pos.Shares)
	}

	proceeds := t.Value - t.Cost()
	costBasis := pos.AvgPrice * t.Shares

	t.Closing = true
	t.RealizedPL = proceeds - costBasis

	pos.Shares -= t.Shares
	pos.MarkPrice = t.FillPrice
	if pos.Shares <= quantityTol {
		delete(e.pf.positions, t.Instrument)
	}

	e.pf.cash += proceeds
	return nil
}
