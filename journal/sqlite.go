package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite journals to a single SQLite database, one table per record kind.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, time, instrument, action, shares, signal_price, fill_price,
		 commission, fees, realized_pl, strategy, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.Time, t.Instrument, t.Action, t.Shares, t.SignalPrice,
		t.FillPrice, t.Commission, t.Fees, t.RealizedPL, t.Strategy, t.Reason,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(time, cash, positions_value, total_value, drawdown, incomplete)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Time, e.Cash, e.PositionsValue, e.TotalValue, e.Drawdown, e.Incomplete,
	)
	return err
}

func (j *SQLite) RecordViolation(v ViolationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO violations (time, code, instrument, detail)
		VALUES (?, ?, ?, ?)`,
		v.Time, v.Code, v.Instrument, v.Detail,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
