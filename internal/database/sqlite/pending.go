package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// SavePending stores the pending inventory of an actor, replacing any earlier one.
func (s *Store) SavePending(ctx context.Context, pending domain.PendingInventory) error {
	if pending.ActorID == uuid.Nil {
		return fmt.Errorf("%w: %s", domain.ErrInvalidActorID, pending.ActorID)
	}
	if strings.TrimSpace(pending.Inventory) == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidRecord, ErrMsgPendingInventoryEmpty)
	}

	query := fmt.Sprintf(`INSERT INTO %s (uuid, nickname, inventory) VALUES (?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET nickname = excluded.nickname, inventory = excluded.inventory`, pendingTable)
	_, err := s.exec(ctx, ErrMsgFailedToSavePending, query, pending.ActorID.String(), pending.Nickname, pending.Inventory)
	return err
}

// FindPendingByActor returns the pending inventory of an actor or domain.ErrPendingNotFound.
func (s *Store) FindPendingByActor(ctx context.Context, actorID uuid.UUID) (*domain.PendingInventory, error) {
	query := fmt.Sprintf("SELECT uuid, nickname, inventory FROM %s WHERE uuid = ?", pendingTable)
	return s.findPending(ctx, query, actorID.String())
}

// FindPendingByNickname returns the pending inventory last saved under a nickname, ignoring case.
func (s *Store) FindPendingByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error) {
	query := fmt.Sprintf(
		"SELECT uuid, nickname, inventory FROM %s WHERE nickname = ? COLLATE NOCASE ORDER BY rowid DESC LIMIT 1",
		pendingTable)
	return s.findPending(ctx, query, nickname)
}

func (s *Store) findPending(ctx context.Context, query, key string) (*domain.PendingInventory, error) {
	var actor, nickname, inventory string
	found, err := s.queryRow(ctx, ErrMsgFailedToFindPending, query, []any{key}, &actor, &nickname, &inventory)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", domain.ErrPendingNotFound, key)
	}

	actorID, err := uuid.Parse(actor)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidActorID, actor, err)
	}
	return &domain.PendingInventory{ActorID: actorID, Nickname: nickname, Inventory: inventory}, nil
}

// DeletePending removes the pending inventory of an actor. Deleting nothing is not an error.
func (s *Store) DeletePending(ctx context.Context, actorID uuid.UUID) error {
	_, err := s.exec(ctx, ErrMsgFailedToDeletePending, fmt.Sprintf("DELETE FROM %s WHERE uuid = ?", pendingTable), actorID.String())
	return err
}
