package admin

// Flag names
const (
	FlagDataDir = "data-dir"
	FlagKind    = "kind"
	FlagPage    = "page"
	FlagDays    = "days"
	FlagJSON    = "json"
)

// Environment variables read by flags
const (
	EnvDataDir       = "DATA_DIR"
	EnvRetentionDays = "RETENTION_DAYS"
)

const (
	DefaultDataDir = "data"
	DefaultKind    = "death"
)

// Output
const (
	MsgNoRecords        = "No records."
	MsgNoNicknames      = "No nicknames."
	MsgRecordErased     = "Erased %s record %d.\n"
	MsgPendingCleared   = "Cleared pending inventory of %s.\n"
	MsgNothingPurged    = "Nothing purged."
	MsgRetentionOff     = "Retention is disabled (days <= 0)."
	MsgPageFooter       = "Page %d of %d (%d records)\n"
	MsgPurgedKind       = "%s\t%d\n"
	MsgReturnedMarker   = "yes"
	MsgNotReturnedValue = "no"
)

// Error Messages
const (
	ErrMsgMissingArgument = "missing argument"
	ErrMsgInvalidID       = "invalid record id"
	ErrMsgOpenStore       = "failed to open record store"
)
