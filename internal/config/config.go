package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Equity struct {
		BaseURL   string `yaml:"base_url"`
		StartDate string `yaml:"start_date"`
	} `yaml:"equity"`
	Crypto struct {
		BaseURL  string `yaml:"base_url"`
		APIKey   string `yaml:"api_key"`
		Currency string `yaml:"currency"`
		Days     int    `yaml:"days"`
	} `yaml:"crypto"`
	Session struct {
		IdleTTL   time.Duration `yaml:"idle_ttl"`
		SweepCron string        `yaml:"sweep_cron"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Log struct {
		Mode     string `yaml:"mode"`
		Encoding string `yaml:"encoding"`
		Level    string `yaml:"level"`
	} `yaml:"log"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	Proxy       string        `yaml:"proxy"`
}

// Load reads config from a YAML file, then a .env file, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is fine; variables already set in the environment win.
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	// Environment variable overrides
	if v := os.Getenv("ASSETWATCH_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("EQUITY_START_DATE"); v != "" {
		cfg.Equity.StartDate = v
	}
	if v := os.Getenv("CRYPTOCOMPARE_API_KEY"); v != "" {
		cfg.Crypto.APIKey = v
	}
	if v := os.Getenv("CRYPTO_CURRENCY"); v != "" {
		cfg.Crypto.Currency = v
	}
	if v := os.Getenv("CRYPTO_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Crypto.Days = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8501"
	}
	if cfg.Equity.StartDate == "" {
		cfg.Equity.StartDate = "2024-01-01"
	}
	if cfg.Crypto.Currency == "" {
		cfg.Crypto.Currency = "BRL"
	}
	cfg.Crypto.Currency = strings.ToUpper(cfg.Crypto.Currency)
	if cfg.Crypto.Days == 0 {
		cfg.Crypto.Days = 365 * 4
	}
	if cfg.Session.IdleTTL == 0 {
		cfg.Session.IdleTTL = 30 * time.Minute
	}
	if cfg.Session.SweepCron == "" {
		cfg.Session.SweepCron = "@every 1m"
	}
	if cfg.Log.Mode == "" {
		cfg.Log.Mode = "console"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "plain"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	return cfg, nil
}

// EquityStart returns the parsed equity history start date, in UTC.
func (c *Config) EquityStart() (time.Time, error) {
	t, err := time.Parse(dateLayout, c.Equity.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("equity.start_date: %w", err)
	}
	return t, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := c.EquityStart(); err != nil {
		return err
	}
	if len(c.Crypto.Currency) != 3 {
		return fmt.Errorf("crypto.currency must be a 3 letter code, got %q", c.Crypto.Currency)
	}
	if c.Crypto.Days <= 0 {
		return fmt.Errorf("crypto.days must be positive")
	}
	if c.Session.IdleTTL < 0 {
		return fmt.Errorf("session.idle_ttl must not be negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	return nil
}

// SummaryLines returns human readable lines describing the loaded config.
func (c *Config) SummaryLines() []string {
	return []string{
		fmt.Sprintf("Listen address: %s", c.Server.Addr),
		fmt.Sprintf("Equity history from: %s", c.Equity.StartDate),
		fmt.Sprintf("Crypto history: %d days in %s", c.Crypto.Days, c.Crypto.Currency),
		fmt.Sprintf("CryptoCompare API key: %s", presence(c.Crypto.APIKey != "")),
		fmt.Sprintf("Session idle TTL: %s (sweep %s)", c.Session.IdleTTL, c.Session.SweepCron),
		fmt.Sprintf("SQLite journal: %s", presence(c.Database.SQLitePath != "")),
		fmt.Sprintf("Proxy: %s", presence(c.Proxy != "")),
	}
}

func presence(ok bool) string {
	if ok {
		return "configured"
	}
	return "not configured"
}
