// Package config handles configuration loading for the sentiment service.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API       APIConfig      `mapstructure:"api"       yaml:"api"`
	Providers ProviderConfig `mapstructure:"providers" yaml:"providers"`
	Catalog   CatalogConfig  `mapstructure:"catalog"   yaml:"catalog"`
	Logging   LoggingConfig  `mapstructure:"logging"   yaml:"logging"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the host:port listen address.
func (a APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// ProviderConfig holds upstream data provider settings.
type ProviderConfig struct {
	FetchTimeoutSec int    `mapstructure:"fetch_timeout_sec" yaml:"fetch_timeout_sec"` // per-provider fetch budget
	MinRelevantNews int    `mapstructure:"min_relevant_news" yaml:"min_relevant_news"` // fallback-chain acceptance threshold
	NewsLimit       int    `mapstructure:"news_limit"        yaml:"news_limit"`
	PriceRange      string `mapstructure:"price_range"       yaml:"price_range"`    // Yahoo chart range, e.g. "1mo"
	PriceInterval   string `mapstructure:"price_interval"    yaml:"price_interval"` // e.g. "1d"
}

// CatalogConfig points at the ticker reference tables.
type CatalogConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // empty = embedded default
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.stocksent/config.yaml (home directory)
//  3. /etc/stocksent/config.yaml (system)
//
// Environment variables override config file values.
// Format: STOCKSENT_<SECTION>_<KEY>, e.g., STOCKSENT_API_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".stocksent"))
	v.AddConfigPath("/etc/stocksent")

	v.SetEnvPrefix("STOCKSENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — defaults + env vars apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyPortEnv(&cfg)
	return &cfg, nil
}

// Defaults returns a configuration built from defaults only, with no
// file or environment lookup. Useful in tests.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Defaults are static; unmarshal cannot fail on them.
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &cfg
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("STOCKSENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyPortEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"*"})

	v.SetDefault("providers.fetch_timeout_sec", 10)
	v.SetDefault("providers.min_relevant_news", 3)
	v.SetDefault("providers.news_limit", 10)
	v.SetDefault("providers.price_range", "1mo")
	v.SetDefault("providers.price_interval", "1d")

	v.SetDefault("catalog.path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// applyPortEnv honors the bare PORT variable used by cloud platforms.
func applyPortEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		var p int
		if _, err := fmt.Sscanf(port, "%d", &p); err == nil && p > 0 {
			cfg.API.Port = p
		}
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
