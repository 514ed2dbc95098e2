package main

import (
	"fmt"

	"AssetWatch/internal/collector"
	"AssetWatch/internal/config"
	"AssetWatch/internal/recorder"

	"github.com/zeromicro/go-zero/core/logx"
)

// loadConfig reads and validates the config, then sets up logging from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	logx.MustSetup(logx.LogConf{
		ServiceName: "assetwatch",
		Mode:        cfg.Log.Mode,
		Encoding:    cfg.Log.Encoding,
		Level:       cfg.Log.Level,
	})
	for _, line := range cfg.SummaryLines() {
		logx.Info(line)
	}
	return cfg, nil
}

// openRecorder falls back to the noop journal when SQLite cannot be opened.
func openRecorder(cfg *config.Config) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
	if err != nil {
		logx.Errorf("init sqlite recorder failed, using noop: %v", err)
		return recorder.NewNoopRecorder()
	}
	return sr
}

// newCollector wires the provider adapters, or generated data when mock is set.
func newCollector(cfg *config.Config, rec recorder.Recorder, mock bool) (*collector.Collector, error) {
	start, err := cfg.EquityStart()
	if err != nil {
		return nil, err
	}
	window := collector.Window{
		EquityStart:    start,
		CryptoCurrency: cfg.Crypto.Currency,
		CryptoDays:     cfg.Crypto.Days,
	}

	var (
		equity collector.EquityFetcher
		crypto collector.CryptoFetcher
	)
	if mock {
		equity, crypto = &collector.MockFetcher{}, &collector.MockFetcher{}
	} else {
		equity = collector.NewYahooFetcher(cfg.Equity.BaseURL, cfg.Proxy, cfg.HTTPTimeout)
		crypto = collector.NewCryptoCompareFetcher(cfg.Crypto.BaseURL, cfg.Crypto.APIKey, cfg.Proxy, cfg.HTTPTimeout)
	}
	logx.Infof("data sources: equity=%s crypto=%s", equity.Name(), crypto.Name())
	return collector.NewCollector(equity, crypto, window, rec), nil
}
