// Package config exposes the strategy settings loaded from YAML. Credentials
// are environment variables and never live in the config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Collector struct {
	EtfSymbol    string `yaml:"etf_symbol"`
	CryptoSymbol string `yaml:"crypto_symbol"`
	CryptoQuote  string `yaml:"crypto_quote"`
}

type Spread struct {
	// NormalizationFactor converts one ETF share to a BTC-equivalent price:
	// btcEquivalent = etfClose / NormalizationFactor. Fixed, never derived
	// from the data.
	NormalizationFactor float64 `yaml:"normalization_factor"`
	EtfCostBps          float64 `yaml:"etf_cost_bps"`
	BtcCostBps          float64 `yaml:"btc_cost_bps"`
	EntryThresholdBps   float64 `yaml:"entry_threshold_bps"`
}

type Backtest struct {
	InitialCapital          float64 `yaml:"initial_capital"`
	PositionSizeFraction    float64 `yaml:"position_size_fraction"`
	ConvergenceThresholdBps float64 `yaml:"convergence_threshold_bps"`
	StopLossBps             float64 `yaml:"stop_loss_bps"`
	MaxHoldingBars          int     `yaml:"max_holding_bars"`
}

type Config struct {
	Collector Collector `yaml:"collector"`
	Spread    Spread    `yaml:"spread"`
	Backtest  Backtest  `yaml:"backtest"`
}

// Default mirrors the round-trip cost model of the strategy: ETF commission
// 0.3 bps + spread 0.5 bps, BTC fees 1.5 bps + spread 2.0 bps.
func Default() *Config {
	return &Config{
		Collector: Collector{
			EtfSymbol:    "IBIT",
			CryptoSymbol: "BTC",
			CryptoQuote:  "USD",
		},
		Spread: Spread{
			NormalizationFactor: 0.001,
			EtfCostBps:          0.8,
			BtcCostBps:          3.5,
			EntryThresholdBps:   15,
		},
		Backtest: Backtest{
			InitialCapital:          1000000,
			PositionSizeFraction:    0.001,
			ConvergenceThresholdBps: 5,
			StopLossBps:             20,
			MaxHoldingBars:          4,
		},
	}
}

// Load reads a YAML file and hydrates a Config on top of the defaults, so a
// partial file only overrides what it names. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: open config: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: decode yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Collector.EtfSymbol == "" {
		return fmt.Errorf("Config.Validate: collector.etf_symbol must be set")
	}

	if c.Collector.CryptoSymbol == "" || c.Collector.CryptoQuote == "" {
		return fmt.Errorf("Config.Validate: collector.crypto_symbol and collector.crypto_quote must be set")
	}

	if c.Spread.NormalizationFactor <= 0 {
		return fmt.Errorf("Config.Validate: spread.normalization_factor must be positive, got %v", c.Spread.NormalizationFactor)
	}

	if c.Spread.EtfCostBps < 0 || c.Spread.BtcCostBps < 0 {
		return fmt.Errorf("Config.Validate: cost constants must be non-negative")
	}

	if c.Spread.EntryThresholdBps <= 0 {
		return fmt.Errorf("Config.Validate: spread.entry_threshold_bps must be positive, got %v", c.Spread.EntryThresholdBps)
	}

	if c.Backtest.InitialCapital <= 0 {
		return fmt.Errorf("Config.Validate: backtest.initial_capital must be positive, got %v", c.Backtest.InitialCapital)
	}

	if c.Backtest.PositionSizeFraction <= 0 || c.Backtest.PositionSizeFraction > 1 {
		return fmt.Errorf("Config.Validate: backtest.position_size_fraction must be in (0, 1], got %v", c.Backtest.PositionSizeFraction)
	}

	if c.Backtest.ConvergenceThresholdBps < 0 {
		return fmt.Errorf("Config.Validate: backtest.convergence_threshold_bps must be non-negative, got %v", c.Backtest.ConvergenceThresholdBps)
	}

	if c.Backtest.ConvergenceThresholdBps >= c.Spread.EntryThresholdBps {
		return fmt.Errorf("Config.Validate: convergence threshold (%v) must be below entry threshold (%v)", c.Backtest.ConvergenceThresholdBps, c.Spread.EntryThresholdBps)
	}

	if c.Backtest.StopLossBps <= 0 {
		return fmt.Errorf("Config.Validate: backtest.stop_loss_bps must be positive, got %v", c.Backtest.StopLossBps)
	}

	if c.Backtest.MaxHoldingBars <= 0 {
		return fmt.Errorf("Config.Validate: backtest.max_holding_bars must be positive, got %v", c.Backtest.MaxHoldingBars)
	}

	return nil
}
