package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// Records defines the interface for inventory record persistence.
// Every operation takes the record kind and dispatches to that kind's table.
type Records interface {
	Save(ctx context.Context, record *domain.Record) (int64, error)
	ListByNickname(ctx context.Context, kind domain.RecordKind, nickname string, limit, offset int) ([]domain.Record, error)
	CountByNickname(ctx context.Context, kind domain.RecordKind, nickname string) (int, error)
	FindByID(ctx context.Context, kind domain.RecordKind, id int64) (*domain.Record, error)
	FindLatestByNickname(ctx context.Context, kind domain.RecordKind, nickname string) (*domain.Record, error)
	DeleteByID(ctx context.Context, kind domain.RecordKind, id int64) error
	MarkReturned(ctx context.Context, kind domain.RecordKind, id int64) error
	DistinctNicknames(ctx context.Context, kind domain.RecordKind) ([]string, error)
	HasRecords(ctx context.Context, kind domain.RecordKind, nickname string) (bool, error)

	// Retention
	DeleteOlderThan(ctx context.Context, kind domain.RecordKind, threshold time.Time) (int64, error)
	PurgeExpired(ctx context.Context, threshold time.Time) (domain.PurgeReport, error)
}

// Pending defines the interface for pending inventory persistence
type Pending interface {
	SavePending(ctx context.Context, pending domain.PendingInventory) error
	FindPendingByActor(ctx context.Context, actorID uuid.UUID) (*domain.PendingInventory, error)
	FindPendingByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error)
	DeletePending(ctx context.Context, actorID uuid.UUID) error
}

// Store is the full datastore used by the runtime.
type Store interface {
	Records
	Pending
	Close() error
}
