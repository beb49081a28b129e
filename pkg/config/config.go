// Package config loads run configuration from the environment (and an
// optional .env file), with sensible defaults for every knob.
package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all tunables of the solver process.
type Config struct {
	Env string

	// MaxRuntime is the total wall-clock budget for one run.
	MaxRuntime time.Duration

	Solver SolverConfig
	Wave   WaveConfig
	Log    LogConfig
}

// SolverConfig tunes the branch-and-bound backend.
type SolverConfig struct {
	// MaxNodes caps the search; zero means unlimited.
	MaxNodes int
}

// WaveConfig tunes the wave model and the greedy fallback.
type WaveConfig struct {
	// AislePenaltyMultiplier scales the surrogate objective's per-aisle
	// weight (weight = nItems * multiplier).
	AislePenaltyMultiplier float64
	// DominanceMaxOrders caps the quadratic dominance pruning pass; above
	// it the pass is skipped. Zero means no cap.
	DominanceMaxOrders int
	// RealUpperBound overrides the greedy accumulation cap when positive.
	RealUpperBound int
}

// LogConfig controls log output.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing .env is fine; everything has a default.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{
		Env:        v.GetString("ENV"),
		MaxRuntime: parseDuration(v.GetString("MAX_RUNTIME"), 10*time.Minute),
		Solver: SolverConfig{
			MaxNodes: v.GetInt("BNB_MAX_NODES"),
		},
		Wave: WaveConfig{
			AislePenaltyMultiplier: v.GetFloat64("AISLE_PENALTY_MULTIPLIER"),
			DominanceMaxOrders:     v.GetInt("DOMINANCE_MAX_ORDERS"),
			RealUpperBound:         v.GetInt("REAL_UPPER_BOUND"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("MAX_RUNTIME", "10m")

	v.SetDefault("BNB_MAX_NODES", 0)

	v.SetDefault("AISLE_PENALTY_MULTIPLIER", 1.1)
	v.SetDefault("DOMINANCE_MAX_ORDERS", 2000)
	v.SetDefault("REAL_UPPER_BOUND", 0)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
