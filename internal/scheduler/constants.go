package scheduler

// Log Messages
const (
	LogMsgLoopStarted        = "Foreground loop started"
	LogMsgLoopStopped        = "Foreground loop stopped"
	LogMsgLoopTaskPanicked   = "Foreground task panicked"
	LogMsgScheduledJobFailed = "Failed to enqueue scheduled job"
)

// Error Messages
const (
	ErrMsgLoopStopped = "foreground loop is stopped"
)
