package view

import "time"

// Defaults
const (
	// DefaultPollInterval is five server ticks.
	DefaultPollInterval = 250 * time.Millisecond

	DefaultSize           = 54
	DefaultOffhandSlot    = 47
	DefaultBootsSlot      = 48
	DefaultLeggingsSlot   = 49
	DefaultChestplateSlot = 50
	DefaultHelmetSlot     = 51

	// RowWidth is the number of slots per display row.
	RowWidth = 9
	// MaxSize is the largest display a screen can show.
	MaxSize = 54
)

// Message keys sent to viewers
const (
	MsgKeyTitle         = "view.title"
	MsgKeyNotFound      = "view.not-found"
	MsgKeyInvalid       = "view.invalid"
	MsgKeyTargetOffline = "view.target-offline"
)

// Message placeholders
const (
	ArgPlayer = "player"
)

// Log Messages
const (
	LogMsgSessionOpened       = "Inventory view opened"
	LogMsgSessionEnded        = "Inventory view ended"
	LogMsgTargetOffline       = "Inventory view target went offline"
	LogMsgInvalidInventory    = "Stored inventory could not be decoded"
	LogMsgPendingQueued       = "Queued pending inventory save"
	LogMsgPendingQueueFailed  = "Failed to queue pending inventory save"
	LogMsgPendingWithoutActor = "Offline edits dropped, target has no known id"
	LogMsgPushSubmitFailed    = "Failed to schedule view push"
)

// Error Messages
const (
	ErrMsgTargetNotFound = "no inventory found for player"
	ErrMsgNoSession      = "viewer has no open inventory view"
	ErrMsgReadOnly       = "inventory view is read-only"
	ErrMsgInvalidLayout  = "invalid view layout"
)
