package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/papertrade/journal"
	"github.com/rustyeddy/papertrade/perf"
	"github.com/rustyeddy/papertrade/session"
)

func init() {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a finished run from its SQLite journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = os.Getenv("PAPERTRADE_DB")
			}
			if dbPath == "" {
				return fmt.Errorf("missing --db journal path")
			}

			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return err
			}
			defer j.Close()

			trades, err := j.ListTrades()
			if err != nil {
				return err
			}
			equity, err := j.ListEquity(time.Time{}, time.Time{})
			if err != nil {
				return err
			}
			violations, err := j.ListViolations()
			if err != nil {
				return err
			}

			report := perf.AnalyzeRecords(equity, trades)
			printReport(os.Stdout, report, session.DaySummary{})

			if len(violations) > 0 {
				fmt.Println()
				fmt.Println("Risk Violations")
				fmt.Println("--------------------------------------------------")
				for _, v := range violations {
					fmt.Printf("%s  %-20s %s\n", v.Time.Format("2006-01-02 15:04:05"), v.Code, v.Detail)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite journal path")
	rootCmd.AddCommand(cmd)
}

func printReport(w io.Writer, r perf.Report, day session.DaySummary) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Session Report")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Total Return:   %.2f%%\n", 100*r.TotalReturn)
	fmt.Fprintf(w, "Annualized Vol: %.2f%%\n", 100*r.AnnualizedVol)
	fmt.Fprintf(w, "Sharpe Ratio:   %.3f\n", r.Sharpe)
	fmt.Fprintf(w, "Max Drawdown:   %.2f%%\n", 100*r.MaxDrawdown)
	fmt.Fprintf(w, "Win Rate:       %.1f%%\n", 100*r.WinRate)
	fmt.Fprintf(w, "Cash Used:      %.1f%%\n", 100*r.CashUtilization)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:         %d\n", r.TotalTrades)
	fmt.Fprintf(w, "Closes:         %d\n", r.ClosingTrades)
	fmt.Fprintf(w, "Wins:           %d\n", r.Wins)

	if len(r.ByStrategy) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "By Strategy")
		fmt.Fprintln(w, "--------------------------------------------------")
		for name, a := range r.ByStrategy {
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(w, "%-20s %4d trades  P&L %.2f\n", name, a.Trades, a.RealizedPL)
		}
	}

	if day.Trades > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Session")
		fmt.Fprintln(w, "--------------------------------------------------")
		fmt.Fprintf(w, "Buys / Sells:   %d / %d\n", day.Buys, day.Sells)
		fmt.Fprintf(w, "Commission:     %.2f\n", day.TotalCommission)
		fmt.Fprintf(w, "Fees:           %.2f\n", day.TotalFees)
		fmt.Fprintf(w, "Day P&L:        %.2f\n", day.DailyPnL)
		fmt.Fprintf(w, "Total Value:    %.2f\n", day.TotalValue)
		fmt.Fprintf(w, "Return:         %.2f%%\n", day.ReturnPct)
		fmt.Fprintf(w, "Violations:     %d\n", day.Violations)
	}
}
