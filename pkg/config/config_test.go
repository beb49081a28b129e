package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 10*time.Minute, cfg.MaxRuntime)
	assert.Equal(t, 0, cfg.Solver.MaxNodes)
	assert.InDelta(t, 1.1, cfg.Wave.AislePenaltyMultiplier, 1e-9)
	assert.Equal(t, 2000, cfg.Wave.DominanceMaxOrders)
	assert.Equal(t, 0, cfg.Wave.RealUpperBound)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("MAX_RUNTIME", "30s")
	t.Setenv("BNB_MAX_NODES", "5000")
	t.Setenv("AISLE_PENALTY_MULTIPLIER", "2.5")
	t.Setenv("DOMINANCE_MAX_ORDERS", "100")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, 30*time.Second, cfg.MaxRuntime)
	assert.Equal(t, 5000, cfg.Solver.MaxNodes)
	assert.InDelta(t, 2.5, cfg.Wave.AislePenaltyMultiplier, 1e-9)
	assert.Equal(t, 100, cfg.Wave.DominanceMaxOrders)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("MAX_RUNTIME", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, cfg.MaxRuntime)
}
