package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Sources SourcesConfig `mapstructure:"sources"`
	Artists []string      `mapstructure:"artists"` // extra names appended to the built-in canon
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig holds the cache-slot store configuration
type CacheConfig struct {
	Dir      string `mapstructure:"dir"`      // empty means the OS default data dir
	Disabled bool   `mapstructure:"disabled"` // memory-only store, every session is cold
}

// HTTPConfig holds shared HTTP client settings
type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
	MaxImageMB     int `mapstructure:"max_image_mb"` // cap on images encoded into the cache slot
}

// SourceConfig holds per-museum settings
type SourceConfig struct {
	Disabled bool   `mapstructure:"disabled"`
	Endpoint string `mapstructure:"endpoint"` // override the public API base URL
}

// SourcesConfig holds the four museum adapters' settings
type SourcesConfig struct {
	Met       SourceConfig `mapstructure:"met"`
	AIC       SourceConfig `mapstructure:"aic"`
	VAM       SourceConfig `mapstructure:"vam"`
	Cleveland SourceConfig `mapstructure:"cleveland"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: 30,
			MaxImageMB:     24,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// Timeout returns the HTTP client timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.HTTP.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// MaxImageBytes returns the encoder's image size cap in bytes.
func (c *Config) MaxImageBytes() int64 {
	if c.HTTP.MaxImageMB <= 0 {
		return 24 << 20
	}
	return int64(c.HTTP.MaxImageMB) << 20
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "easel", "easel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "easel", "easel.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "easel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "easel")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "easel", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "easel", "cache")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("EASEL")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	viper.Set("cache.dir", cfg.Cache.Dir)
	viper.Set("cache.disabled", cfg.Cache.Disabled)
	viper.Set("http.timeout_seconds", cfg.HTTP.TimeoutSeconds)
	viper.Set("http.max_image_mb", cfg.HTTP.MaxImageMB)
	viper.Set("sources.met.disabled", cfg.Sources.Met.Disabled)
	viper.Set("sources.met.endpoint", cfg.Sources.Met.Endpoint)
	viper.Set("sources.aic.disabled", cfg.Sources.AIC.Disabled)
	viper.Set("sources.aic.endpoint", cfg.Sources.AIC.Endpoint)
	viper.Set("sources.vam.disabled", cfg.Sources.VAM.Disabled)
	viper.Set("sources.vam.endpoint", cfg.Sources.VAM.Endpoint)
	viper.Set("sources.cleveland.disabled", cfg.Sources.Cleveland.Disabled)
	viper.Set("sources.cleveland.endpoint", cfg.Sources.Cleveland.Endpoint)
	viper.Set("artists", cfg.Artists)
	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
