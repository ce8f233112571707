package worker

// ============================================================================
// Log Messages - Write Queue
// ============================================================================

const (
	LogMsgQueueStarted         = "Write queue started"
	LogMsgTaskFailed           = "Write queue task failed"
	LogMsgTaskPanicked         = "Write queue task panicked"
	LogMsgQueueShuttingDown    = "Shutting down write queue"
	LogMsgQueueShutdownDone    = "Write queue shutdown complete"
	LogMsgQueueShutdownTimeout = "Write queue shutdown timed out, abandoning remaining tasks"
	LogMsgTaskRejected         = "Write queue is closed, task rejected"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgQueueClosed     = "write queue is closed"
	ErrMsgShutdownTimeout = "write queue did not drain before the deadline"
	ErrMsgTaskPanicked    = "task panicked"
)
