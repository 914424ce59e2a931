// Package config loads bref-rosters settings from a .env file, an optional
// YAML file and BREF_* environment variables, in increasing precedence.
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

const (
	DefaultBaseURL           = "https://www.baseball-reference.com"
	DefaultUserAgent         = "bref-rosters/1.0 (github.com/pfrederiksen/bref-rosters)"
	DefaultTimeout           = 30 * time.Second
	DefaultRequestsPerMinute = 10
	DefaultCacheDir          = "~/.cache/bref-rosters"
	DefaultCacheTTL          = 24 * time.Hour
)

// Config holds every runtime setting.
type Config struct {
	BaseURL           string        `yaml:"baseURL"`
	UserAgent         string        `yaml:"userAgent"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requestsPerMinute"`
	Season            int           `yaml:"season"`

	Cache struct {
		Enabled bool          `yaml:"enabled"`
		Dir     string        `yaml:"dir"`
		TTL     time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults(now time.Time) Config {
	var c Config
	c.BaseURL = DefaultBaseURL
	c.UserAgent = DefaultUserAgent
	c.Timeout = DefaultTimeout
	c.RequestsPerMinute = DefaultRequestsPerMinute
	c.Season = MostRecentSeason(now)
	c.Cache.Enabled = true
	c.Cache.Dir = DefaultCacheDir
	c.Cache.TTL = DefaultCacheTTL
	c.Log.Level = "info"
	c.Log.Format = "json"
	return c
}

// MostRecentSeason returns the latest season that has started by now.
// Seasons open in late March, so January through March belong to the
// previous year's season.
func MostRecentSeason(now time.Time) int {
	if now.Month() <= time.March {
		return now.Year() - 1
	}
	return now.Year()
}

// Load builds the configuration. path may be empty.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := Defaults(time.Now())
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(c *Config) error {
	c.BaseURL = envOr("BREF_BASE_URL", c.BaseURL)
	c.UserAgent = envOr("BREF_USER_AGENT", c.UserAgent)
	c.Cache.Dir = envOr("BREF_CACHE_DIR", c.Cache.Dir)
	c.Log.Level = envOr("BREF_LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOr("BREF_LOG_FORMAT", c.Log.Format)

	var err error
	if c.Timeout, err = envDuration("BREF_TIMEOUT", c.Timeout); err != nil {
		return err
	}
	if c.Cache.TTL, err = envDuration("BREF_CACHE_TTL", c.Cache.TTL); err != nil {
		return err
	}
	if c.RequestsPerMinute, err = envInt("BREF_REQUESTS_PER_MINUTE", c.RequestsPerMinute); err != nil {
		return err
	}
	if c.Season, err = envInt("BREF_SEASON", c.Season); err != nil {
		return err
	}
	if c.Cache.Enabled, err = envBool("BREF_CACHE_ENABLED", c.Cache.Enabled); err != nil {
		return err
	}
	return nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base URL must be set")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", c.RequestsPerMinute)
	}
	if c.Season < 1871 {
		return fmt.Errorf("invalid season: %d", c.Season)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.Cache.TTL)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s (must be 'json' or 'console')", c.Log.Format)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
