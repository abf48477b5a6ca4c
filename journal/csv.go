package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSV journals trades, equity, and violations to three CSV files, flushing
// after every record so a crashed run still leaves a readable log.
type CSV struct {
	trades, equity, violations *csv.Writer
	tf, ef, vf                 *os.File
}

func NewCSV(tradesPath, equityPath, violationsPath string) (*CSV, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		tf.Close()
		return nil, err
	}
	vf, err := os.Create(violationsPath)
	if err != nil {
		tf.Close()
		ef.Close()
		return nil, err
	}

	j := &CSV{
		trades:     csv.NewWriter(tf),
		equity:     csv.NewWriter(ef),
		violations: csv.NewWriter(vf),
		tf:         tf, ef: ef, vf: vf,
	}

	headers := []struct {
		w   *csv.Writer
		row []string
	}{
		{j.trades, []string{"trade_id", "time", "instrument", "action", "shares",
			"signal_price", "fill_price", "commission", "fees", "realized_pl",
			"strategy", "reason"}},
		{j.equity, []string{"time", "cash", "positions_value", "total_value",
			"drawdown", "incomplete"}},
		{j.violations, []string{"time", "code", "instrument", "detail"}},
	}
	for _, h := range headers {
		if err := h.w.Write(h.row); err != nil {
			j.Close()
			return nil, err
		}
		h.w.Flush()
		if err := h.w.Error(); err != nil {
			j.Close()
			return nil, err
		}
	}

	return j, nil
}

func (j *CSV) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.TradeID,
		t.Time.Format(time.RFC3339),
		t.Instrument,
		t.Action,
		f(t.Shares),
		f(t.SignalPrice),
		f(t.FillPrice),
		f(t.Commission),
		f(t.Fees),
		f(t.RealizedPL),
		t.Strategy,
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSV) RecordEquity(e EquitySnapshot) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		f(e.Cash),
		f(e.PositionsValue),
		f(e.TotalValue),
		f(e.Drawdown),
		strconv.FormatBool(e.Incomplete),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSV) RecordViolation(v ViolationRecord) error {
	err := j.violations.Write([]string{
		v.Time.Format(time.RFC3339),
		v.Code,
		v.Instrument,
		v.Detail,
	})
	if err != nil {
		return err
	}
	j.violations.Flush()
	return j.violations.Error()
}

func (j *CSV) Close() error {
	for _, w := range []*csv.Writer{j.trades, j.equity, j.violations} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, fh := range []*os.File{j.tf, j.ef, j.vf} {
		if err := fh.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
