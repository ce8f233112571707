package config

import "time"

// Environment variable names
const (
	EnvDataDir              = "DATA_DIR"
	EnvRetentionDays        = "RETENTION_DAYS"
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogFormat            = "LOG_FORMAT"
	EnvLogDir               = "LOG_DIR"
	EnvEnvironment          = "ENVIRONMENT"
	EnvServiceName          = "SERVICE_NAME"
	EnvVersion              = "VERSION"
	EnvViewPollInterval     = "VIEW_POLL_INTERVAL"
	EnvQueueShutdownTimeout = "QUEUE_SHUTDOWN_TIMEOUT"
	EnvPurgeInterval        = "PURGE_INTERVAL"
	EnvViewSize             = "VIEW_SIZE"
	EnvViewContentSlots     = "VIEW_CONTENT_SLOTS"
	EnvViewSlotOffhand      = "VIEW_SLOT_OFFHAND"
	EnvViewSlotBoots        = "VIEW_SLOT_BOOTS"
	EnvViewSlotLeggings     = "VIEW_SLOT_LEGGINGS"
	EnvViewSlotChestplate   = "VIEW_SLOT_CHESTPLATE"
	EnvViewSlotHelmet       = "VIEW_SLOT_HELMET"
	EnvNicknameCacheSize    = "NICKNAME_CACHE_SIZE"
	EnvNicknameCacheTTL     = "NICKNAME_CACHE_TTL"
	EnvMetricsAddr          = "METRICS_ADDR"
)

// Defaults
const (
	DefaultDataDir              = "data"
	DefaultLogLevel             = "info"
	DefaultLogFormat            = "text"
	DefaultLogDir               = "logs"
	DefaultEnvironment          = "dev"
	DefaultVersion              = "dev"
	DefaultQueueShutdownTimeout = 10 * time.Second
	DefaultPurgeInterval        = 24 * time.Hour
)

// Error Messages
const (
	ErrMsgInvalidConfig = "invalid configuration"
	ErrMsgInvalidSlots  = "invalid slot list"
)

// Warnings
const (
	WarnRetentionDisabled = "RETENTION_DAYS is 0, stored inventories are never purged"
	WarnTextLogsInProd    = "LOG_FORMAT is text in production, json is easier to ship to a collector"
)
