package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Tick is one price observation from a feed.
type Tick struct {
	Time       time.Time
	Instrument string
	Price      float64
}

// PriceFeed reads price ticks from a CSV file, optionally .xz compressed.
//
// Expected columns: time,instrument,price. A header row is allowed.
type PriceFeed struct {
	rc       io.ReadCloser
	r        *csv.Reader
	sawFirst bool
}

func NewPriceFeed(path string) (*PriceFeed, error) {
	rc, err := openFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	return &PriceFeed{rc: rc, r: r}, nil
}

func (f *PriceFeed) Close() error { return f.rc.Close() }

// Next returns the next tick; ok is false at end of feed.
func (f *PriceFeed) Next() (Tick, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return Tick{}, false, nil
		}
		if err != nil {
			return Tick{}, false, err
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

		if len(row) < 3 {
			continue
		}

		t, err := parseTime(row[0])
		if err != nil {
			return Tick{}, false, err
		}
		inst := strings.TrimSpace(row[1])
		if inst == "" {
			continue
		}
		px, err := parseFloat(row[2])
		if err != nil {
			return Tick{}, false, fmt.Errorf("bad price %q: %w", row[2], err)
		}

		return Tick{Time: t, Instrument: inst, Price: px}, true, nil
	}
}

// All drains the feed into memory, preserving order.
func (f *PriceFeed) All() ([]Tick, error) {
	var out []Tick
	for {
		t, ok, err := f.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, t)
	}
}

func parseTime(s string) (time.Time, error) {
	ts := strings.TrimSpace(s)
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339Nano, ts)
		if err2 != nil {
			return time.Time{}, fmt.Errorf("bad time %q: %w", ts, err)
		}
		t = t2
	}
	return t, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
