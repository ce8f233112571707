// Package pending serves pending inventories with the writes still waiting on the
// write queue applied on top of the database.
//
// Reads run on the foreground loop and writes run on the queue worker. A read sees every
// write queued before it, whether or not the worker has reached it.
package pending

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// Database is the durable pending inventory storage.
type Database interface {
	SavePending(ctx context.Context, pending domain.PendingInventory) error
	FindPendingByActor(ctx context.Context, actorID uuid.UUID) (*domain.PendingInventory, error)
	FindPendingByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error)
	DeletePending(ctx context.Context, actorID uuid.UUID) error
}

// Enqueuer hands writes to the background queue.
type Enqueuer interface {
	Execute(description string, job worker.Job) error
}

// entry is the newest queued write of one actor. A deleted entry hides the database row.
type entry struct {
	seq     uint64
	pending domain.PendingInventory
	deleted bool
}

// Store queues pending inventory writes and answers reads as if they had already run.
type Store struct {
	db    Database
	queue Enqueuer

	mu      sync.Mutex
	seq     uint64
	byActor map[uuid.UUID]entry
}

// NewStore creates a Store writing through queue into db.
func NewStore(db Database, queue Enqueuer) *Store {
	return &Store{
		db:      db,
		queue:   queue,
		byActor: make(map[uuid.UUID]entry),
	}
}

// Save queues an insert-or-replace of the actor's pending inventory.
func (s *Store) Save(pending domain.PendingInventory) error {
	seq := s.put(pending, false)
	err := s.queue.Execute("save pending inventory for "+pending.Nickname, worker.TaskFunc(func(ctx context.Context) error {
		defer s.settle(pending.ActorID, seq)
		return s.db.SavePending(ctx, pending)
	}))
	if err != nil {
		s.settle(pending.ActorID, seq)
		return fmt.Errorf("%s: %w", ErrMsgQueueSave, err)
	}
	logger.Debug(LogMsgSaveQueued, "player", pending.Nickname, "uuid", pending.ActorID)
	return nil
}

// Delete queues removal of the actor's pending inventory.
func (s *Store) Delete(pending domain.PendingInventory) error {
	seq := s.put(pending, true)
	actorID := pending.ActorID
	err := s.queue.Execute("delete pending inventory for "+pending.Nickname, worker.TaskFunc(func(ctx context.Context) error {
		defer s.settle(actorID, seq)
		return s.db.DeletePending(ctx, actorID)
	}))
	if err != nil {
		s.settle(actorID, seq)
		return fmt.Errorf("%s: %w", ErrMsgQueueDelete, err)
	}
	logger.Debug(LogMsgDeleteQueued, "player", pending.Nickname, "uuid", actorID)
	return nil
}

// FindByActor returns the actor's pending inventory or domain.ErrPendingNotFound.
func (s *Store) FindByActor(ctx context.Context, actorID uuid.UUID) (*domain.PendingInventory, error) {
	s.mu.Lock()
	e, ok := s.byActor[actorID]
	s.mu.Unlock()
	if ok {
		if e.deleted {
			return nil, fmt.Errorf("%w: %s", domain.ErrPendingNotFound, actorID)
		}
		found := e.pending
		return &found, nil
	}
	return s.db.FindPendingByActor(ctx, actorID)
}

// FindByNickname returns the newest pending inventory stored under nickname, ignoring case,
// or domain.ErrPendingNotFound.
func (s *Store) FindByNickname(ctx context.Context, nickname string) (*domain.PendingInventory, error) {
	s.mu.Lock()
	var (
		newest  *entry
		deleted = make(map[uuid.UUID]bool)
	)
	for id, e := range s.byActor {
		if e.deleted {
			deleted[id] = true
			continue
		}
		if strings.EqualFold(e.pending.Nickname, nickname) && (newest == nil || e.seq > newest.seq) {
			e := e
			newest = &e
		}
	}
	s.mu.Unlock()

	if newest != nil {
		found := newest.pending
		return &found, nil
	}
	found, err := s.db.FindPendingByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if deleted[found.ActorID] {
		return nil, fmt.Errorf("%w: %s", domain.ErrPendingNotFound, nickname)
	}
	return found, nil
}

// Queued returns the number of writes not yet settled by the worker.
func (s *Store) Queued() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byActor)
}

func (s *Store) put(pending domain.PendingInventory, deleted bool) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.byActor[pending.ActorID] = entry{seq: s.seq, pending: pending, deleted: deleted}
	return s.seq
}

// settle drops the overlay entry once its write ran, unless a newer write replaced it.
func (s *Store) settle(actorID uuid.UUID, seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byActor[actorID]; ok && e.seq == seq {
		delete(s.byActor, actorID)
		logger.Debug(LogMsgSettled, "uuid", actorID)
	}
}
