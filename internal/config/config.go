package config

import (
	"os"
	"strconv"

	"sixsigma/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Data     DataConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds database connection settings. An empty URL runs
// the service without persistence.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data source settings
type DataConfig struct {
	File string // Excel or CSV file preloaded at startup, optional
}

// AnalysisConfig holds tunables for the quality engine defaults
type AnalysisConfig struct {
	DiscountRate   float64 // NPV discount rate
	MaxConcurrency int     // batch analysis parallelism
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "release"),
		},
		Data: DataConfig{
			File: os.Getenv("DATA_FILE"),
		},
		Analysis: AnalysisConfig{
			DiscountRate:   getEnvFloat("ANALYSIS_DISCOUNT_RATE", 0.10),
			MaxConcurrency: getEnvInt("ANALYSIS_MAX_CONCURRENCY", 4),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	if c.Analysis.DiscountRate < 0 || c.Analysis.DiscountRate >= 1 {
		return errors.ConfigInvalid("ANALYSIS_DISCOUNT_RATE must be in [0, 1)")
	}
	if c.Analysis.MaxConcurrency < 1 {
		return errors.ConfigInvalid("ANALYSIS_MAX_CONCURRENCY must be at least 1")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
