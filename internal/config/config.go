package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	HIBPBaseURL        string        `mapstructure:"hibp_base_url"`
	HIBPAPIKey         string        `mapstructure:"hibp_api_key"`
	HIBPUserAgent      string        `mapstructure:"hibp_user_agent"`
	HIBPTimeoutSeconds int64         `mapstructure:"hibp_timeout_seconds"`
	HIBPTimeout        time.Duration `mapstructure:"-"`

	WatchlistFile        string        `mapstructure:"watchlist_file"`
	PublishersFile       string        `mapstructure:"publishers_file"`
	CheckIntervalSeconds int64         `mapstructure:"check_interval"`
	CheckInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	RedisURL               string        `mapstructure:"redis_url"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	MetricsAddr string `mapstructure:"metrics_addr"`
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.HIBPAPIKey != "" {
		c.HIBPAPIKey = "***"
	}
	if c.RedisURL != "" {
		c.RedisURL = "***"
	}
	return c
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "pwnwatch")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("hibp_base_url", "https://haveibeenpwned.com/api/v3")
	v.SetDefault("hibp_api_key", "")
	v.SetDefault("hibp_user_agent", "pwnwatch")
	v.SetDefault("hibp_timeout_seconds", 15)
	v.SetDefault("watchlist_file", "./configs/watchlist.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("check_interval", 3600) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/seen.db")
	v.SetDefault("redis_url", "")
	v.SetDefault("storage_ttl_seconds", int64((90*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("metrics_addr", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.HIBPBaseURL = strings.TrimSpace(cfg.HIBPBaseURL)
	if cfg.HIBPBaseURL == "" {
		return fmt.Errorf("invalid hibp_base_url (must not be empty)")
	}
	if strings.TrimSpace(cfg.HIBPUserAgent) == "" {
		return fmt.Errorf("invalid hibp_user_agent (the API rejects requests without one)")
	}

	if cfg.HIBPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid hibp_timeout_seconds (must be positive seconds)")
	}
	cfg.HIBPTimeout = time.Duration(cfg.HIBPTimeoutSeconds) * time.Second

	if cfg.CheckIntervalSeconds <= 0 {
		return fmt.Errorf("invalid check_interval (must be positive seconds)")
	}
	cfg.CheckInterval = time.Duration(cfg.CheckIntervalSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return nil
}
