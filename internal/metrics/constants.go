package metrics

// ============================================================================
// Metric Names
// ============================================================================

// Namespace prefixes every metric name
const Namespace = "inventory_restore"

// Write queue metric names
const (
	MetricNameQueueTasks = "queue_tasks_total"
	MetricNameQueueDepth = "queue_depth"
)

// Record metric names
const (
	MetricNameRecordsSaved    = "records_saved_total"
	MetricNameRecordsPurged   = "records_purged_total"
	MetricNameRecordsRestored = "records_restored_total"
)

// View metric names
const (
	MetricNameViewSessions = "view_sessions_active"
	MetricNameViewPushes   = "view_pushes_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextQueueTasks      = "Write queue tasks by outcome"
	HelpTextQueueDepth      = "Tasks submitted to the write queue and not yet finished"
	HelpTextRecordsSaved    = "Inventory records written, by kind"
	HelpTextRecordsPurged   = "Inventory records removed by retention, by kind"
	HelpTextRecordsRestored = "Inventory records restored to their owner, by kind"
	HelpTextViewSessions    = "Open inventory view sessions"
	HelpTextViewPushes      = "Operator edits pushed from a view, by mode"
)

// ============================================================================
// Label Names and Values
// ============================================================================

const (
	LabelStatus = "status"
	LabelKind   = "kind"
	LabelMode   = "mode"
)

// Queue task outcomes
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
	StatusPanicked  = "panicked"
	StatusAbandoned = "abandoned"
)

// View modes
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
)
