package pending

// Log Messages
const (
	LogMsgSaveQueued   = "Queued pending inventory save"
	LogMsgDeleteQueued = "Queued pending inventory delete"
	LogMsgSettled      = "Pending inventory write settled"
)

// Error Messages
const (
	ErrMsgQueueSave   = "failed to queue pending inventory save"
	ErrMsgQueueDelete = "failed to queue pending inventory delete"
)
