package restore

import "time"

// ============================================================================
// Defaults
// ============================================================================

const (
	// DefaultPageSize is the number of records listed per page.
	DefaultPageSize = 45

	DefaultNicknameCacheSize = 16
	DefaultNicknameCacheTTL  = 5 * time.Second

	// allKindsKey caches the nickname union across every kind.
	allKindsKey = "*"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEquipmentEmpty      = "Skipping capture of empty equipment"
	LogMsgRecordQueued        = "Queued inventory record"
	LogMsgRecordSaved         = "Saved inventory record"
	LogMsgTeleportSkipped     = "Skipping teleport capture"
	LogMsgPendingApplied      = "Applied pending inventory"
	LogMsgPendingInvalid      = "Discarding undecodable pending inventory"
	LogMsgItemsDropped        = "Dropped items that did not fit"
	LogMsgRecordRestored      = "Restored inventory record"
	LogMsgMarkReturnedFailed  = "Inventory restored but record could not be marked returned"
	LogMsgRecordErased        = "Erased inventory record"
	LogMsgRetentionDisabled   = "Retention sweep disabled"
	LogMsgRecordsPurged       = "Purged expired inventory records"
	LogMsgNicknameCacheHit    = "Nickname cache hit"
	LogMsgNicknameCacheFilled = "Nickname cache filled"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgTargetOffline = "target player is not online"
	ErrMsgQueueRecord   = "failed to queue inventory record"
)
