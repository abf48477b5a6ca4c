package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/papertrade/market"
)

// SignalFeed reads trade signals from a CSV file, optionally .xz compressed.
//
// Expected columns:
// time,instrument,action,price,stop_loss,target,quantity,confidence,strategy
// A header row is allowed; stop_loss, target, and quantity may be empty.
type SignalFeed struct {
	rc       io.ReadCloser
	r        *csv.Reader
	sawFirst bool
}

func NewSignalFeed(path string) (*SignalFeed, error) {
	rc, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	return &SignalFeed{rc: rc, r: r}, nil
}

func (f *SignalFeed) Close() error { return f.rc.Close() }

// Next returns the next signal; ok is false at end of feed.
func (f *SignalFeed) Next() (market.Signal, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return market.Signal{}, false, nil
		}
		if err != nil {
			return market.Signal{}, false, err
		}
		if len(row) == 0 {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		if len(row) < 4 {
			continue
		}

		sig, err := parseSignalRow(row)
		if err != nil {
			return market.Signal{}, false, err
		}
		return sig, true, nil
	}
}

// All drains the feed into memory, preserving order.
func (f *SignalFeed) All() ([]market.Signal, error) {
	var out []market.Signal
	for {
		s, ok, err := f.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, s)
	}
}

func parseSignalRow(row []string) (market.Signal, error) {
	var sig market.Signal
	var err error

	if sig.Time, err = parseTime(row[0]); err != nil {
		return sig, err
	}
	sig.Instrument = strings.TrimSpace(row[1])

	if sig.Action, err = market.ParseAction(strings.TrimSpace(row[2])); err != nil {
		return sig, fmt.Errorf("row at %s: %w", row[0], err)
	}
	if sig.Price, err = parseFloat(row[3]); err != nil {
		return sig, fmt.Errorf("bad price %q: %w", row[3], err)
	}

	if v, ok, err := optionalFloat(row, 4); err != nil {
		return sig, fmt.Errorf("bad stop_loss: %w", err)
	} else if ok {
		sig.StopLoss = &v
	}
	if v, ok, err := optionalFloat(row, 5); err != nil {
		return sig, fmt.Errorf("bad target: %w", err)
	} else if ok {
		sig.Target = &v
	}
	if v, ok, err := optionalFloat(row, 6); err != nil {
		return sig, fmt.Errorf("bad quantity: %w", err)
	} else if ok {
		sig.Quantity = v
	}
	if v, ok, err := optionalFloat(row, 7); err != nil {
		return sig, fmt.Errorf("bad confidence: %w", err)
	} else if ok {
		sig.Confidence = v
	}
	if len(row) > 8 {
		sig.Strategy = strings.TrimSpace(row[8])
	}

	return sig, nil
}

func optionalFloat(row []string, i int) (float64, bool, error) {
	if i >= len(row) || strings.TrimSpace(row[i]) == "" {
		return 0, false, nil
	}
	v, err := parseFloat(row[i])
	return v, err == nil, err
}
