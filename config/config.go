package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/papertrade/risk"
	"github.com/rustyeddy/papertrade/sim"
	"github.com/rustyeddy/papertrade/sizing"
)

// Config is the complete session configuration.
type Config struct {
	Session SessionConfig `json:"session" yaml:"session"`
	Risk    RiskConfig    `json:"risk" yaml:"risk"`
	Costs   CostConfig    `json:"costs" yaml:"costs"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// SessionConfig covers capital and sizing.
type SessionConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	SizingMethod   string  `json:"position_size_method" yaml:"position_size_method"`
	VolLookback    int     `json:"vol_lookback" yaml:"vol_lookback"`
}

// RiskConfig holds the hard limits. Percentages are fractions (0.05 = 5%).
type RiskConfig struct {
	MaxPositionPct      float64 `json:"max_position_size_pct" yaml:"max_position_size_pct"`
	MaxDailyLossPct     float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct"`
	MaxConcentrationPct float64 `json:"max_concentration_pct" yaml:"max_concentration_pct"`
	StopLossPct         float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct       float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
	TotalCapital        float64 `json:"total_capital" yaml:"total_capital"`
}

// CostConfig is the transaction cost model.
type CostConfig struct {
	CommissionRate    float64 `json:"commission_rate" yaml:"commission_rate"`
	ExchangeFeeRate   float64 `json:"exchange_fee_rate" yaml:"exchange_fee_rate"`
	SellTaxRate       float64 `json:"transaction_tax_rate" yaml:"transaction_tax_rate"`
	CommissionTaxRate float64 `json:"commission_tax_rate" yaml:"commission_tax_rate"`
	SlippageBPS       float64 `json:"slippage_bps" yaml:"slippage_bps"`
}

// JournalConfig selects where records go: "csv", "sqlite", or "none".
type JournalConfig struct {
	Type           string `json:"type" yaml:"type"`
	TradesFile     string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile     string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	ViolationsFile string `json:"violations_file,omitempty" yaml:"violations_file,omitempty"`
	DBPath         string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a YAML or JSON file. YAML is tried
// first, JSON as fallback. The loaded config is validated; an invalid config
// fails the session before any trading state is built.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration as YAML (.yaml/.yml) or indented JSON.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration. Errors here are fatal at startup, never
// silently defaulted.
func (c *Config) Validate() error {
	if c.Session.InitialCapital <= 0 {
		return fmt.Errorf("session.initial_capital must be positive")
	}
	if _, err := sizing.ParseMethod(c.Session.SizingMethod); err != nil {
		return fmt.Errorf("session.position_size_method: %w", err)
	}
	if c.Session.VolLookback < 2 {
		return fmt.Errorf("session.vol_lookback must be at least 2")
	}
	if err := c.Limits().Validate(); err != nil {
		return err
	}
	if c.Costs.CommissionRate < 0 || c.Costs.ExchangeFeeRate < 0 ||
		c.Costs.SellTaxRate < 0 || c.Costs.CommissionTaxRate < 0 ||
		c.Costs.SlippageBPS < 0 {
		return fmt.Errorf("cost rates must not be negative")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" || c.Journal.ViolationsFile == "" {
			return fmt.Errorf("journal trades_file, equity_file and violations_file required for csv type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	return nil
}

// Limits converts the risk section to the risk package's limits.
func (c *Config) Limits() risk.Limits {
	return risk.Limits{
		MaxPositionPct:      c.Risk.MaxPositionPct,
		MaxDailyLossPct:     c.Risk.MaxDailyLossPct,
		MaxConcentrationPct: c.Risk.MaxConcentrationPct,
		StopLossPct:         c.Risk.StopLossPct,
		TakeProfitPct:       c.Risk.TakeProfitPct,
		TotalCapital:        c.Risk.TotalCapital,
	}
}

// CostModel converts the costs section to the simulator's cost model.
func (c *Config) CostModel() sim.CostModel {
	return sim.CostModel{
		CommissionRate:    c.Costs.CommissionRate,
		ExchangeFeeRate:   c.Costs.ExchangeFeeRate,
		SellTaxRate:       c.Costs.SellTaxRate,
		CommissionTaxRate: c.Costs.CommissionTaxRate,
		SlippageBPS:       c.Costs.SlippageBPS,
	}
}

// Method returns the parsed sizing method. Call Validate first.
func (c *Config) Method() sizing.Method {
	m, _ := sizing.ParseMethod(c.Session.SizingMethod)
	return m
}

// Default returns a configuration with sensible paper-trading defaults.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			InitialCapital: 1000000,
			SizingMethod:   "volatility_target",
			VolLookback:    30,
		},
		Risk: RiskConfig{
			MaxPositionPct:      0.05,
			MaxDailyLossPct:     0.02,
			MaxConcentrationPct: 0.20,
			StopLossPct:         0.05,
			TakeProfitPct:       0.15,
			TotalCapital:        1000000,
		},
		Costs: CostConfig{
			CommissionRate:    0.0003,
			ExchangeFeeRate:   0.0000345,
			SellTaxRate:       0.00025,
			CommissionTaxRate: 0.18,
			SlippageBPS:       5,
		},
		Journal: JournalConfig{
			Type:           "csv",
			TradesFile:     "./trades.csv",
			EquityFile:     "./equity.csv",
			ViolationsFile: "./violations.csv",
		},
	}
}
