package view

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/scheduler"
)

// Directory looks up connected players.
type Directory interface {
	Player(id uuid.UUID) (*domain.Player, bool)
	// PlayerByName matches names ignoring case.
	PlayerByName(name string) (*domain.Player, bool)
}

// Screen shows displays to viewers.
type Screen interface {
	Show(viewer uuid.UUID, title string, display *Display)
	// Showing returns the display the viewer currently has open, or nil.
	Showing(viewer uuid.UUID) *Display
	Close(viewer uuid.UUID)
}

// Messenger delivers localized text to viewers.
type Messenger interface {
	Send(viewer uuid.UUID, key string, args map[string]string)
	Format(key string, args map[string]string) string
}

// Loop is the foreground loop the controller is confined to.
type Loop interface {
	Submit(fn func()) bool
	Every(interval time.Duration, fn func()) *scheduler.Task
}

// Store is where offline sessions fall back to connection records.
type Store interface {
	FindLatestByNickname(ctx context.Context, kind domain.RecordKind, nickname string) (*domain.Record, error)
}

// PendingStore holds pending inventories. Save only queues the write; later reads see it.
type PendingStore interface {
	FindByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error)
	Save(pending domain.PendingInventory) error
}
