package journal

import (
	"database/sql"
	"fmt"
	"time"
)

// GetTrade returns a single trade record by ID.
func (j *SQLite) GetTrade(tradeID string) (TradeRecord, error) {
	var rec TradeRecord

	row := j.db.QueryRow(`
		SELECT trade_id, time, instrument, action, shares, signal_price,
		       fill_price, commission, fees, realized_pl, strategy, reason
		FROM trades
		WHERE trade_id = ?`, tradeID)

	err := scanTrade(row, &rec)
	if err == sql.ErrNoRows {
		return TradeRecord{}, fmt.Errorf("trade %q not found", tradeID)
	}
	return rec, err
}

// ListTrades returns every trade in time order.
func (j *SQLite) ListTrades() ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, time, instrument, action, shares, signal_price,
		       fill_price, commission, fees, realized_pl, strategy, reason
		FROM trades
		ORDER BY time ASC, trade_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := scanTrade(rows, &rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListEquity returns equity snapshots within [start, end), or everything
// when both bounds are zero.
func (j *SQLite) ListEquity(start, end time.Time) ([]EquitySnapshot, error) {
	q := `
		SELECT time, cash, positions_value, total_value, drawdown, incomplete
		FROM equity`
	var args []any
	if !start.IsZero() || !end.IsZero() {
		q += ` WHERE time >= ? AND time < ?`
		args = append(args, start, end)
	}
	q += ` ORDER BY time ASC`

	rows, err := j.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquitySnapshot
	for rows.Next() {
		var rec EquitySnapshot
		if err := rows.Scan(&rec.Time, &rec.Cash, &rec.PositionsValue,
			&rec.TotalValue, &rec.Drawdown, &rec.Incomplete); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListViolations returns the violation log in time order.
func (j *SQLite) ListViolations() ([]ViolationRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, code, instrument, detail
		FROM violations
		ORDER BY time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ViolationRecord
	for rows.Next() {
		var rec ViolationRecord
		if err := rows.Scan(&rec.Time, &rec.Code, &rec.Instrument, &rec.Detail); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner, rec *TradeRecord) error {
	return s.Scan(
		&rec.TradeID,
		&rec.Time,
		&rec.Instrument,
		&rec.Action,
		&rec.Shares,
		&rec.SignalPrice,
		&rec.FillPrice,
		&rec.Commission,
		&rec.Fees,
		&rec.RealizedPL,
		&rec.Strategy,
		&rec.Reason,
	)
}
