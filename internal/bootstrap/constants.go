package bootstrap

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of log files to retain after cleanup
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized     = "Logging initialized"
	LogMsgStartingInventoryStore = "Starting inventory restore"
	LogMsgConfigurationLoaded    = "Configuration loaded"
	LogMsgConfigurationWarning   = "Configuration warning"
	LogMsgFailedDeleteOldLog     = "Failed to delete old log file"

	ErrMsgFailedCreateLogsDir = "failed to create logs directory"
	ErrMsgFailedOpenLogFile   = "failed to open log file"
)

// =============================================================================
// Runtime Messages
// =============================================================================

const (
	LogMsgRuntimeReady        = "Runtime ready"
	LogMsgRetentionScheduled  = "Retention sweep scheduled"
	LogMsgRetentionDisabled   = "Retention sweep disabled"
	LogMsgRetentionSweepDone  = "Retention sweep complete"
	LogMsgRetentionSweepStart = "Failed to enqueue startup retention sweep"

	ErrMsgFailedOpenStore       = "failed to open record store"
	ErrMsgFailedCreateView      = "failed to create view controller"
	ErrMsgHostRequired          = "host is required"
	TaskDescriptionRetention    = "retention sweep"
	TaskDescriptionStartupSweep = "startup retention sweep"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDown          = "Shutting down..."
	LogMsgStopped               = "Stopped"
	LogMsgOpsShutdownFailed     = "Ops server shutdown failed"
	LogMsgCloseViewsFailed      = "Failed to close view sessions"
	LogMsgQueueShutdownFailed   = "Write queue shutdown failed"
	LogMsgStoreCloseFailed      = "Record store close failed"
	LogMsgShutdownStepCompleted = "Shutdown step completed"
)
