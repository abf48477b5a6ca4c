package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "papertrade",
	Short: "A paper-trading simulator with position sizing and risk limits",
	Long: `Papertrade turns a stream of trade signals into sized, capital-constrained,
risk-checked simulated executions and tracks the resulting portfolio.

It provides tools for:
  - Replaying signal and price feeds through a simulated session
  - Position sizing (equal weight, risk parity, volatility target, Kelly)
  - Hard risk limits: position size, concentration, daily loss, stop distance
  - Slippage and transaction cost modelling
  - Trade journaling to CSV or SQLite and performance reporting`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	// Local .env files may supply journal paths and config location.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}
	return rootCmd.Execute()
}
