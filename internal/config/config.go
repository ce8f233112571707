package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/restore"
	"github.com/osse101/InventoryRestore_Go/internal/view"
)

// Config holds the application configuration
type Config struct {
	DataDir string `validate:"required"`
	// RetentionDays of 0 disables the retention sweep.
	RetentionDays int `validate:"min=0"`

	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string `validate:"required"`
	ServiceName string `validate:"required"`
	Version     string

	ViewPollInterval     time.Duration `validate:"gt=0"`
	QueueShutdownTimeout time.Duration `validate:"gt=0"`
	PurgeInterval        time.Duration `validate:"gt=0"`

	View view.Layout

	NicknameCacheSize int           `validate:"min=1"`
	NicknameCacheTTL  time.Duration `validate:"gt=0"`

	// MetricsAddr is the listen address of the ops endpoint, disabled when empty.
	MetricsAddr string `validate:"omitempty,hostname_port"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	defaults := view.DefaultLayout()
	cfg := &Config{
		DataDir:              getEnv(EnvDataDir, DefaultDataDir),
		RetentionDays:        getEnvAsInt(EnvRetentionDays, 0),
		LogLevel:             strings.ToLower(getEnv(EnvLogLevel, DefaultLogLevel)),
		LogFormat:            strings.ToLower(getEnv(EnvLogFormat, DefaultLogFormat)),
		LogDir:               getEnv(EnvLogDir, DefaultLogDir),
		Environment:          getEnv(EnvEnvironment, DefaultEnvironment),
		ServiceName:          getEnv(EnvServiceName, logger.DefaultServiceName),
		Version:              getEnv(EnvVersion, DefaultVersion),
		ViewPollInterval:     getEnvAsDuration(EnvViewPollInterval, view.DefaultPollInterval),
		QueueShutdownTimeout: getEnvAsDuration(EnvQueueShutdownTimeout, DefaultQueueShutdownTimeout),
		PurgeInterval:        getEnvAsDuration(EnvPurgeInterval, DefaultPurgeInterval),
		View: view.Layout{
			Size:       getEnvAsInt(EnvViewSize, defaults.Size),
			Offhand:    getEnvAsInt(EnvViewSlotOffhand, defaults.Offhand),
			Boots:      getEnvAsInt(EnvViewSlotBoots, defaults.Boots),
			Leggings:   getEnvAsInt(EnvViewSlotLeggings, defaults.Leggings),
			Chestplate: getEnvAsInt(EnvViewSlotChestplate, defaults.Chestplate),
			Helmet:     getEnvAsInt(EnvViewSlotHelmet, defaults.Helmet),
		},
		NicknameCacheSize: getEnvAsInt(EnvNicknameCacheSize, restore.DefaultNicknameCacheSize),
		NicknameCacheTTL:  getEnvAsDuration(EnvNicknameCacheTTL, restore.DefaultNicknameCacheTTL),
		MetricsAddr:       getEnv(EnvMetricsAddr, ""),
	}

	slots, err := ParseSlotList(getEnv(EnvViewContentSlots, ""))
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", EnvViewContentSlots, err)
	}
	if len(slots) == 0 {
		slots = defaults.ContentSlots
	}
	cfg.View.ContentSlots = slots

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoggerConfig returns the logger settings held by the configuration.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.LogLevel,
		Format:      c.LogFormat,
		ServiceName: c.ServiceName,
		Version:     c.Version,
		Environment: c.Environment,
		AddSource:   c.IsDevelopment(),
	}
}

// IsDevelopment reports whether the configuration targets a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == logger.EnvironmentDev || c.Environment == "development"
}

// RestoreOptions returns the restore service settings held by the configuration.
func (c *Config) RestoreOptions() restore.Options {
	return restore.Options{
		NicknameCacheSize: c.NicknameCacheSize,
		NicknameCacheTTL:  c.NicknameCacheTTL,
	}
}

// ParseSlotList parses a comma separated list of slots and inclusive ranges, e.g. "0-8, 18, 20-26".
// A blank list yields nil.
func ParseSlotList(value string) ([]int, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var slots []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("%s: %q", ErrMsgInvalidSlots, part)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(strings.TrimSpace(to))
			if err != nil || end < start {
				return nil, fmt.Errorf("%s: %q", ErrMsgInvalidSlots, part)
			}
		}
		for slot := start; slot <= end; slot++ {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns the default when unset or invalid
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves a duration environment variable or returns the default when unset or invalid
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
