package view

import (
	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/scheduler"
)

// Mode tells whether a session mirrors a connected player or a stored inventory.
type Mode int

const (
	ModeOnline Mode = iota + 1
	ModeOffline
)

func (m Mode) String() string {
	if m == ModeOnline {
		return "online"
	}
	return "offline"
}

// Session is one viewer looking at one target's equipment.
type Session struct {
	Viewer     uuid.UUID
	TargetID   uuid.UUID
	TargetName string
	Mode       Mode
	CanModify  bool

	display *Display
	// baseline is the last snapshot rendered into the display.
	baseline domain.Snapshot
	// buffered holds offline edits until the session ends.
	buffered domain.Snapshot
	dirty    bool
	// skipRefresh drops the next poll so a pending push is not overwritten by a stale render.
	skipRefresh bool
	poll        *scheduler.Task
	ended       bool
}

// Display returns the display the session renders into.
func (s *Session) Display() *Display {
	return s.display
}

// Dirty reports whether an offline session holds unsaved edits.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Buffered returns the offline edit buffer.
func (s *Session) Buffered() domain.Snapshot {
	return s.buffered
}
