package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Format errors
	ErrMsgInvalidFormat = "malformed inventory data"

	// Storage errors
	ErrMsgStorage = "storage failure"

	// Validation errors
	ErrMsgInvalidRecordKind = "unsupported record kind"
	ErrMsgInvalidRecordID   = "invalid record id"
	ErrMsgInvalidRecord     = "invalid record"
	ErrMsgInvalidActorID    = "invalid actor id"

	// Record errors
	ErrMsgRecordNotFound  = "record not found"
	ErrMsgAlreadyReturned = "record already returned"
	ErrMsgPendingNotFound = "pending inventory not found"
	ErrMsgEmptyEquipment  = "equipment is empty"
)

// Domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
// Storage failures wrap both ErrStorage and the underlying cause.
var (
	// ErrInvalidFormat is the FormatError: a blob that cannot be decoded.
	// Callers treat it as "no usable inventory".
	ErrInvalidFormat = errors.New(ErrMsgInvalidFormat)

	// ErrStorage is the StorageError: any database or I/O fault.
	ErrStorage = errors.New(ErrMsgStorage)

	// ValidationErrors: programmer errors that fail fast.
	ErrInvalidRecordKind = errors.New(ErrMsgInvalidRecordKind)
	ErrInvalidRecordID   = errors.New(ErrMsgInvalidRecordID)
	ErrInvalidRecord     = errors.New(ErrMsgInvalidRecord)
	ErrInvalidActorID    = errors.New(ErrMsgInvalidActorID)

	ErrRecordNotFound  = errors.New(ErrMsgRecordNotFound)
	ErrAlreadyReturned = errors.New(ErrMsgAlreadyReturned)
	ErrPendingNotFound = errors.New(ErrMsgPendingNotFound)
	ErrEmptyEquipment  = errors.New(ErrMsgEmptyEquipment)
)

// IsValidationError reports whether err stems from invalid caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRecordKind) ||
		errors.Is(err, ErrInvalidRecordID) ||
		errors.Is(err, ErrInvalidRecord) ||
		errors.Is(err, ErrInvalidActorID)
}
