package sqlite

// Pending Table
const (
	pendingTable = "pending_inventory"
)

// Query Defaults
const (
	// noLimit is SQLite's "unbounded" LIMIT value
	noLimit = -1
)

// Error Messages - Record Operations
const (
	ErrMsgFailedToSaveRecord       = "failed to save record"
	ErrMsgFailedToListRecords      = "failed to list records"
	ErrMsgFailedToCountRecords     = "failed to count records"
	ErrMsgFailedToFindRecord       = "failed to find record"
	ErrMsgFailedToDeleteRecord     = "failed to delete record"
	ErrMsgFailedToMarkReturned     = "failed to mark record returned"
	ErrMsgFailedToListNicknames    = "failed to list nicknames"
	ErrMsgFailedToCheckRecords     = "failed to check for records"
	ErrMsgFailedToPurgeRecords     = "failed to purge expired records"
	ErrMsgLegacyMarkerWrite        = "the legacy returned marker cannot be written as inventory"
	ErrMsgFailedToReadAffectedRows = "failed to read affected rows"
)

// Error Messages - Pending Operations
const (
	ErrMsgFailedToSavePending   = "failed to save pending inventory"
	ErrMsgFailedToFindPending   = "failed to find pending inventory"
	ErrMsgFailedToDeletePending = "failed to delete pending inventory"
	ErrMsgPendingInventoryEmpty = "pending inventory is empty"
)
