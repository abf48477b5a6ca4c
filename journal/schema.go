package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	instrument TEXT NOT NULL,
	action TEXT NOT NULL,
	shares REAL NOT NULL,
	signal_price REAL NOT NULL,
	fill_price REAL NOT NULL,
	commission REAL NOT NULL,
	fees REAL NOT NULL,
	realized_pl REAL NOT NULL,
	strategy TEXT NOT NULL,
	reason TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS equity (
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	positions_value REAL NOT NULL,
	total_value REAL NOT NULL,
	drawdown REAL NOT NULL,
	incomplete INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS violations (
	time DATETIME NOT NULL,
	code TEXT NOT NULL,
	instrument TEXT NOT NULL,
	detail TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_time ON trades(time);
CREATE INDEX IF NOT EXISTS idx_equity_time ON equity(time);
CREATE INDEX IF NOT EXISTS idx_violations_time ON violations(time);
`
