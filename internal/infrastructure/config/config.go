package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Exchange ExchangeConfig
	History  HistoryConfig
	Log      LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// StoreConfig holds CMMS document-store connection settings
type StoreConfig struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

// ExchangeConfig holds the client exchange directory paths
type ExchangeConfig struct {
	InboundDir  string
	OutboundDir string
}

// HistoryConfig holds sync-run history store settings
type HistoryConfig struct {
	Enabled bool
	Path    string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with BRIDGE_ prefix (e.g., BRIDGE_STORE_URI)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/bridge")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("history.enabled", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Store: StoreConfig{
			URI:            v.GetString("store.uri"),
			Database:       v.GetString("store.database"),
			Collection:     v.GetString("store.collection"),
			ConnectTimeout: v.GetDuration("store.connect_timeout"),
			OpTimeout:      v.GetDuration("store.op_timeout"),
		},
		Exchange: ExchangeConfig{
			InboundDir:  v.GetString("exchange.inbound_dir"),
			OutboundDir: v.GetString("exchange.outbound_dir"),
		},
		History: HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "workorder-bridge"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Store.URI == "" {
		cfg.Store.URI = "mongodb://localhost:27017"
	}
	if cfg.Store.Database == "" {
		cfg.Store.Database = "cmms"
	}
	if cfg.Store.Collection == "" {
		cfg.Store.Collection = "workorders"
	}
	if cfg.Store.ConnectTimeout == 0 {
		cfg.Store.ConnectTimeout = 10 * time.Second
	}
	if cfg.Store.OpTimeout == 0 {
		cfg.Store.OpTimeout = 30 * time.Second
	}
	if cfg.Exchange.InboundDir == "" {
		cfg.Exchange.InboundDir = "./data/inbound"
	}
	if cfg.Exchange.OutboundDir == "" {
		cfg.Exchange.OutboundDir = "./data/outbound"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "./data/bridge-history.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		if cfg.App.Env == "production" {
			cfg.Log.Format = "json"
		} else {
			cfg.Log.Format = "console"
		}
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
}

// validate checks the configuration for invalid values
func (c *Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	if c.Exchange.InboundDir == c.Exchange.OutboundDir {
		return fmt.Errorf("inbound and outbound directories must differ (both %q)", c.Exchange.InboundDir)
	}
	return nil
}
