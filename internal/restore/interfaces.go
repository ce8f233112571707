package restore

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// Players looks up connected players.
type Players interface {
	Player(id uuid.UUID) (*domain.Player, bool)
	PlayerByName(name string) (*domain.Player, bool)
}

// Dropper drops items into the world at a player's location.
type Dropper interface {
	Drop(player *domain.Player, items []*domain.ItemStack)
}

// Enqueuer hands writes to the background queue.
type Enqueuer interface {
	Execute(description string, job worker.Job) error
}

// PendingStore holds pending inventories. Delete only queues the write; later reads see it.
type PendingStore interface {
	FindByActor(ctx context.Context, actorID uuid.UUID) (*domain.PendingInventory, error)
	FindByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error)
	Delete(pending domain.PendingInventory) error
}

// findPlayer resolves a record owner by id first, then by name.
func findPlayer(players Players, id uuid.UUID, name string) (*domain.Player, bool) {
	if id != uuid.Nil {
		if p, ok := players.Player(id); ok {
			return p, true
		}
	}
	return players.PlayerByName(name)
}
