package cmd

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/config"
	"github.com/rustyeddy/papertrade/feed"
	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/market"
	"github.com/rustyeddy/papertrade/session"
)

func init() {
	var (
		cfgPath     string
		pricesPath  string
		signalsPath string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay signal and price feeds through a simulated session",
		Long: `Run replays a price feed and a signal feed through one paper-trading
session. Ticks sharing a timestamp form one cycle: the portfolio is marked to
market, stop-loss/take-profit exits are swept, then the cycle's signals are
processed in order. Feeds may be .xz compressed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pricesPath == "" {
				return fmt.Errorf("missing --prices feed")
			}

			cfg := config.Default()
			if cfgPath == "" {
				cfgPath = os.Getenv("PAPERTRADE_CONFIG")
			}
			if cfgPath != "" {
				var err error
				cfg, err = config.LoadFromFile(cfgPath)
				if err != nil {
					return err
				}
			}

			var logger *log.Logger
			if !quiet {
				logger = log.New(os.Stderr, "papertrade ", log.LstdFlags)
			}

			j, err := openJournal(cfg.Journal)
			if err != nil {
				return err
			}
			defer j.Close()

			sess, err := session.New(cfg, j, logger)
			if err != nil {
				return err
			}

			ticks, err := loadTicks(pricesPath)
			if err != nil {
				return err
			}
			var signals []market.Signal
			if signalsPath != "" {
				signals, err = loadSignals(signalsPath)
				if err != nil {
					return err
				}
			}

			if err := replay(sess, ticks, signals); err != nil {
				return err
			}

			printReport(os.Stdout, sess.Report(), sess.DaySummary(time.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "session config file (YAML or JSON)")
	cmd.Flags().StringVar(&pricesPath, "prices", "", "price feed CSV (time,instrument,price)")
	cmd.Flags().StringVar(&signalsPath, "signals", "", "signal feed CSV")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress per-trade logging")

	rootCmd.AddCommand(cmd)
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.EquityFile, jc.ViolationsFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Discard{}, nil
	}
}

func loadTicks(path string) ([]feed.Tick, error) {
	f, err := feed.NewPriceFeed(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.All()
}

func loadSignals(path string) ([]market.Signal, error) {
	f, err := feed.NewSignalFeed(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.All()
}

// replay drives the session one cycle per distinct tick timestamp. Signals
// are delivered in the first cycle at or after their own timestamp.
func replay(sess *session.Session, ticks []feed.Tick, signals []market.Signal) error {
	next := 0
	i := 0
	for i < len(ticks) {
		now := ticks[i].Time
		prices := market.Prices{}
		for i < len(ticks) && ticks[i].Time.Equal(now) {
			prices[ticks[i].Instrument] = ticks[i].Price
			i++
		}

		var batch []market.Signal
		for next < len(signals) && !signals[next].Time.After(now) {
			batch = append(batch, signals[next])
			next++
		}

		if _, err := sess.Cycle(now, prices, batch); err != nil {
			return err
		}
	}
	return nil
}
