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
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	ANABaseURL         string        `mapstructure:"ana_base_url"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`

	WatchlistFile       string        `mapstructure:"watchlist_file"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	PollIntervalSeconds int64         `mapstructure:"poll_interval"`
	PollInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "ana-telemetry")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("ana_base_url", "http://telemetriaws1.ana.gov.br/ServiceANA.asmx")
	v.SetDefault("user_agent", "")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("watchlist_file", "./configs/watchlist.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("poll_interval", 900) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/readings.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates raw values and derives the duration fields.
func (cfg *Config) finalize() error {
	cfg.ANABaseURL = strings.TrimSpace(cfg.ANABaseURL)
	if cfg.ANABaseURL == "" {
		return fmt.Errorf("ana_base_url must not be empty")
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.PollIntervalSeconds <= 0 {
		return fmt.Errorf("invalid poll_interval (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

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
