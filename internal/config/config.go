package config

import (
	"os"
	"strconv"

	"e2pred/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds defaults for the empirical estimator
type AnalysisConfig struct {
	NBootstrap int
	CILevel    float64
	Workers    int
	Seed       int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envOr("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			NBootstrap: 1000,
			CILevel:    0.95,
			Workers:    1,
			Seed:       0,
		},
	}

	if v := os.Getenv("E2PRED_N_BOOTSTRAP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.ConfigInvalid("E2PRED_N_BOOTSTRAP must be a non-negative integer")
		}
		cfg.Analysis.NBootstrap = n
	}

	if v := os.Getenv("E2PRED_CI_LEVEL"); v != "" {
		level, err := strconv.ParseFloat(v, 64)
		if err != nil || level <= 0 || level >= 1 {
			return nil, errors.ConfigInvalid("E2PRED_CI_LEVEL must be in (0, 1)")
		}
		cfg.Analysis.CILevel = level
	}

	if v := os.Getenv("E2PRED_WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil || w < 1 {
			return nil, errors.ConfigInvalid("E2PRED_WORKERS must be a positive integer")
		}
		cfg.Analysis.Workers = w
	}

	if v := os.Getenv("E2PRED_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("E2PRED_SEED must be an integer")
		}
		cfg.Analysis.Seed = seed
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
