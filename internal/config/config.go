package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultDataURL is the CSV export of the NYPD Shooting Incident Data
// (Historic) dataset on the NYC Open Data portal.
const DefaultDataURL = "https://data.cityofnewyork.us/api/views/833y-fsy8/rows.csv?accessType=DOWNLOAD"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataURL         string
	FetchTimeout    time.Duration
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	OutputDir       string
	RefreshInterval time.Duration
	TrendFromYear   int
	TrendTargetYear int
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "120s")
	if err != nil {
		return nil, err
	}

	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "24h")
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	fromYear, err := parseInt("TREND_FROM_YEAR", 2020)
	if err != nil {
		return nil, err
	}

	targetYear, err := parseInt("TREND_TARGET_YEAR", 2027)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataURL:         envOrDefault("DATA_URL", DefaultDataURL),
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		OutputDir:       envOrDefault("OUTPUT_DIR", "out"),
		RefreshInterval: refreshInterval,
		TrendFromYear:   fromYear,
		TrendTargetYear: targetYear,
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.DataURL == "" {
		return nil, errors.New("DATA_URL is required")
	}
	if cfg.TrendFromYear <= 0 {
		return nil, errors.New("TREND_FROM_YEAR must be positive")
	}
	if cfg.TrendTargetYear < cfg.TrendFromYear {
		return nil, errors.New("TREND_TARGET_YEAR must not precede TREND_FROM_YEAR")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	s := envOrDefault(key, fallback)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
