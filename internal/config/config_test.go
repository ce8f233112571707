package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InventoryRestore_Go/internal/view"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, 0, cfg.RetentionDays)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "inventory-restore", cfg.ServiceName)
		assert.Equal(t, 250*time.Millisecond, cfg.ViewPollInterval)
		assert.Equal(t, 10*time.Second, cfg.QueueShutdownTimeout)
		assert.Equal(t, 24*time.Hour, cfg.PurgeInterval)
		assert.Equal(t, view.DefaultLayout(), cfg.View)
		assert.Equal(t, 16, cfg.NicknameCacheSize)
		assert.Equal(t, 5*time.Second, cfg.NicknameCacheTTL)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv(EnvDataDir, "/srv/inventories")
		t.Setenv(EnvRetentionDays, "30")
		t.Setenv(EnvLogLevel, "DEBUG")
		t.Setenv(EnvLogFormat, "json")
		t.Setenv(EnvEnvironment, "prod")
		t.Setenv(EnvViewPollInterval, "100ms")
		t.Setenv(EnvQueueShutdownTimeout, "30s")
		t.Setenv(EnvViewSize, "45")
		t.Setenv(EnvViewContentSlots, "9-44")
		t.Setenv(EnvViewSlotOffhand, "0")
		t.Setenv(EnvViewSlotBoots, "1")
		t.Setenv(EnvViewSlotLeggings, "2")
		t.Setenv(EnvViewSlotChestplate, "3")
		t.Setenv(EnvViewSlotHelmet, "4")
		t.Setenv(EnvMetricsAddr, "127.0.0.1:9090")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "/srv/inventories", cfg.DataDir)
		assert.Equal(t, 30, cfg.RetentionDays)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 100*time.Millisecond, cfg.ViewPollInterval)
		assert.Equal(t, 30*time.Second, cfg.QueueShutdownTimeout)
		assert.Equal(t, 45, cfg.View.Size)
		assert.Len(t, cfg.View.ContentSlots, 36)
		assert.Equal(t, 9, cfg.View.ContentSlots[0])
		assert.Equal(t, 44, cfg.View.ContentSlots[35])
		assert.Equal(t, 4, cfg.View.Helmet)
		assert.Equal(t, "127.0.0.1:9090", cfg.MetricsAddr)
	})

	t.Run("returns error for negative retention", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvRetentionDays, "-3")

		cfg, err := Load()

		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgInvalidConfig)
		assert.Contains(t, err.Error(), "RetentionDays")
	})

	t.Run("returns error for unknown log level", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvLogLevel, "verbose")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "LogLevel must be one of")
	})

	t.Run("returns error for overlapping view slots", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvViewSlotHelmet, "0")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), view.ErrMsgInvalidLayout)
	})

	t.Run("returns error for malformed slot list", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvViewContentSlots, "0-8,x")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), EnvViewContentSlots)
	})

	t.Run("invalid numbers fall back to defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvRetentionDays, "thirty")
		t.Setenv(EnvViewPollInterval, "fast")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 0, cfg.RetentionDays)
		assert.Equal(t, view.DefaultPollInterval, cfg.ViewPollInterval)
	})
}

func TestParseSlotList(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    []int
		wantErr bool
	}{
		{"blank", "  ", nil, false},
		{"single", "7", []int{7}, false},
		{"list and ranges", "0-2, 5 ,9-10", []int{0, 1, 2, 5, 9, 10}, false},
		{"one element range", "4-4", []int{4}, false},
		{"descending range", "5-2", nil, true},
		{"not a number", "a", nil, true},
		{"dangling range", "3-", nil, true},
		{"empty element", "1,,2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlotList(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), ErrMsgInvalidSlots)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestConfig_RealWorldScenarios tests realistic configuration scenarios
func TestConfig_RealWorldScenarios(t *testing.T) {
	t.Run("typical development environment", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvEnvironment, "dev")
		t.Setenv(EnvLogLevel, "debug")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, "debug", cfg.LoggerConfig().Level)
		assert.Equal(t, []string{WarnRetentionDisabled}, Warnings(cfg))
	})

	t.Run("typical production environment", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvEnvironment, "prod")
		t.Setenv(EnvLogLevel, "warn")
		t.Setenv(EnvRetentionDays, "90")
		t.Setenv(EnvVersion, "2.3.1")

		cfg, err := Load()

		require.NoError(t, err)
		logCfg := cfg.LoggerConfig()
		assert.Equal(t, "prod", logCfg.Environment)
		assert.Equal(t, "2.3.1", logCfg.Version)
		assert.Equal(t, []string{WarnTextLogsInProd}, Warnings(cfg))
	})

	t.Run("restore options follow the cache settings", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv(EnvNicknameCacheSize, "64")
		t.Setenv(EnvNicknameCacheTTL, "1m")

		cfg, err := Load()

		require.NoError(t, err)
		opts := cfg.RestoreOptions()
		assert.Equal(t, 64, opts.NicknameCacheSize)
		assert.Equal(t, time.Minute, opts.NicknameCacheTTL)
	})
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	// Clear all config-related env vars to ensure clean test state
	envVars := []string{
		EnvDataDir, EnvRetentionDays, EnvLogLevel, EnvLogFormat, EnvLogDir,
		EnvEnvironment, EnvServiceName, EnvVersion,
		EnvViewPollInterval, EnvQueueShutdownTimeout, EnvPurgeInterval,
		EnvViewSize, EnvViewContentSlots, EnvViewSlotOffhand, EnvViewSlotBoots,
		EnvViewSlotLeggings, EnvViewSlotChestplate, EnvViewSlotHelmet,
		EnvNicknameCacheSize, EnvNicknameCacheTTL, EnvMetricsAddr,
	}

	for _, key := range envVars {
		// t.Setenv restores the original value after the test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
