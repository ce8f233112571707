package database

// Storage Location Constants
const (
	// DirName is the subdirectory of the data directory holding the database file
	DirName = "inventories"
	// FileName is the database file name
	FileName = "data.db"
	// DriverName is the database/sql driver registered by modernc.org/sqlite
	DriverName = "sqlite"
	// BusyTimeoutMillis is how long SQLite waits on a locked file before failing
	BusyTimeoutMillis = 5000
)

// Legacy Constants
const (
	// LegacyReturnedMarker is the lowercase blob value older releases wrote instead of a returned flag
	LegacyReturnedMarker = "returned"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToCreateDataDir  = "failed to create data directory"
	ErrMsgFailedToOpenDatabase   = "failed to open database"
	ErrMsgFailedToPingDatabase   = "failed to ping database"
	ErrMsgFailedToMigrate        = "failed to migrate database"
	ErrMsgFailedToLoadMigrations = "failed to load migrations"
	ErrMsgFailedToInspectTable   = "failed to inspect table"
	ErrMsgFailedToAddColumn      = "failed to add column"
	ErrMsgFailedToSyncReturned   = "failed to synchronize returned flags"
	ErrMsgFailedToCloseDatabase  = "failed to close database"
	ErrMsgDatabaseClosed         = "database is closed"
)

// Log Messages
const (
	LogMsgOpeningDatabase       = "Opening inventory database"
	LogMsgDatabaseReady         = "Inventory database ready"
	LogMsgMigrationApplied      = "Applied database migration"
	LogMsgLegacyColumnAdded     = "Added missing column to legacy table"
	LogMsgLegacyRowsFlagged     = "Flagged legacy returned rows"
	LogMsgFailedToCloseDatabase = "Failed to close database"
)
