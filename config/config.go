package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/swingtree/series"
	"github.com/rustyeddy/swingtree/strategy"
)

// Environment variables consulted by ApplyEnv.
const (
	EnvAPIKey    = "COINBASE_API_KEY"
	EnvAPISecret = "COINBASE_API_SECRET"
	EnvLogLevel  = "SWINGTREE_LOG_LEVEL"
)

// Config represents the complete bot configuration
type Config struct {
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Bot      BotConfig      `json:"bot" yaml:"bot"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ExchangeConfig locates the price source and its credentials
type ExchangeConfig struct {
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Pair      string `json:"pair" yaml:"pair"`
	APIKey    string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty"`
	Timeout   string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
}

// BotConfig contains polling and signal parameters
type BotConfig struct {
	Mode          string `json:"mode" yaml:"mode"`
	HistoryLength int    `json:"history_length" yaml:"history_length"`
	Interval      string `json:"interval" yaml:"interval"` // e.g. "1m", "30s"
	MaxSteps      int    `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`

	strategy.Thresholds `yaml:",inline"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	ObservationsFile string `json:"observations_file,omitempty" yaml:"observations_file,omitempty"`
	SignalsFile      string `json:"signals_file,omitempty" yaml:"signals_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "text" or "json"
}

// IntervalDuration parses Bot.Interval.
func (c *Config) IntervalDuration() (time.Duration, error) {
	return parseDuration("bot.interval", c.Bot.Interval)
}

// TimeoutDuration parses Exchange.Timeout. An empty value means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Exchange.Timeout == "" {
		return 0, nil
	}
	return parseDuration("exchange.timeout", c.Exchange.Timeout)
}

func parseDuration(field, s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", field)
	}
	return d, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
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

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Exchange.Pair == "" {
		return fmt.Errorf("exchange.pair is required")
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if _, err := series.ParseMode(c.Bot.Mode); err != nil {
		return fmt.Errorf("bot.mode: %w", err)
	}
	if c.Bot.HistoryLength < 1 {
		return fmt.Errorf("bot.history_length must be at least 1")
	}
	if _, err := c.IntervalDuration(); err != nil {
		return err
	}
	if c.Bot.MaxSteps < 0 {
		return fmt.Errorf("bot.max_steps must not be negative")
	}
	if err := c.Bot.Thresholds.Validate(); err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.ObservationsFile == "" || c.Journal.SignalsFile == "" {
			return fmt.Errorf("journal observations_file and signals_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// ApplyEnv loads the given dotenv files (".env" when none are named) and
// lets the process environment override credentials and log level. Missing
// dotenv files are ignored.
func (c *Config) ApplyEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Exchange.APIKey = v
	}
	if v := os.Getenv(EnvAPISecret); v != "" {
		c.Exchange.APISecret = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Exchange: ExchangeConfig{
			Pair:    "BTC-USD",
			Timeout: "10s",
		},
		Bot: BotConfig{
			Mode:          series.Minimum.String(),
			HistoryLength: 100,
			Interval:      "1m",
			Thresholds:    strategy.DefaultThresholds(),
		},
		Journal: JournalConfig{
			Type:             "csv",
			ObservationsFile: "./observations.csv",
			SignalsFile:      "./signals.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
