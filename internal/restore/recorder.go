package restore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/metrics"
	"github.com/osse101/InventoryRestore_Go/internal/repository"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// Recorder captures a player's equipment at trigger events and queues the record writes.
// Capture happens synchronously on the foreground loop, so per-player ordering
// follows the order of the events.
type Recorder interface {
	OnDeath(ctx context.Context, player *domain.Player, cause DeathCause) error
	OnConnect(ctx context.Context, player *domain.Player) error
	OnDisconnect(ctx context.Context, player *domain.Player) error
	OnWorldChange(ctx context.Context, player *domain.Player, fromWorld string) error
	OnTeleport(ctx context.Context, player *domain.Player, from, to domain.Location) error
}

type recorder struct {
	store   repository.Records
	queue   Enqueuer
	pending PendingStore
	dropper Dropper
	now     func() time.Time
}

// NewRecorder creates a Recorder writing records through queue into store.
// Pending inventories are read and cleared through pending.
func NewRecorder(store repository.Records, queue Enqueuer, pending PendingStore, dropper Dropper) Recorder {
	return &recorder{
		store:   store,
		queue:   queue,
		pending: pending,
		dropper: dropper,
		now:     time.Now,
	}
}

func (r *recorder) OnDeath(ctx context.Context, player *domain.Player, cause DeathCause) error {
	record := r.newRecord(player, domain.KindDeath)
	record.Death = &domain.DeathDetails{Cause: cause.String()}
	return r.capture(ctx, player, record)
}

// OnConnect applies any pending inventory before the connection snapshot is taken.
func (r *recorder) OnConnect(ctx context.Context, player *domain.Player) error {
	if err := r.applyPending(ctx, player); err != nil {
		return err
	}
	return r.capture(ctx, player, r.newRecord(player, domain.KindConnection))
}

func (r *recorder) OnDisconnect(ctx context.Context, player *domain.Player) error {
	return r.capture(ctx, player, r.newRecord(player, domain.KindDisconnection))
}

// OnWorldChange records the equipment after a player arrived in their current world.
func (r *recorder) OnWorldChange(ctx context.Context, player *domain.Player, fromWorld string) error {
	record := r.newRecord(player, domain.KindWorldChange)
	record.WorldChange = &domain.WorldChangeDetails{
		FromWorld: domain.Sanitize(fromWorld),
		ToWorld:   player.Location.WorldName(),
	}
	return r.capture(ctx, player, record)
}

// OnTeleport records teleports inside one world. Moves within the same block and
// teleports between worlds are skipped; the latter are recorded as world changes.
func (r *recorder) OnTeleport(ctx context.Context, player *domain.Player, from, to domain.Location) error {
	if from.SameBlock(to) {
		logger.FromContext(ctx).Debug(LogMsgTeleportSkipped, "player", player.Name, "reason", "same block")
		return nil
	}
	if from.World != "" && to.World != "" && from.World != to.World {
		logger.FromContext(ctx).Debug(LogMsgTeleportSkipped, "player", player.Name, "reason", "world change")
		return nil
	}
	record := r.newRecord(player, domain.KindTeleport)
	record.Teleport = &domain.TeleportDetails{
		FromLocation: from.String(),
		ToLocation:   to.String(),
	}
	return r.capture(ctx, player, record)
}

func (r *recorder) newRecord(player *domain.Player, kind domain.RecordKind) domain.Record {
	return domain.Record{
		Kind:      kind,
		Timestamp: r.now().Format(domain.TimestampLayout),
		ActorID:   player.ID,
		Nickname:  player.Name,
		Location:  player.Location.Coordinates(),
		World:     player.Location.WorldName(),
	}
}

// capture snapshots the equipment now and queues the encode and save.
func (r *recorder) capture(ctx context.Context, player *domain.Player, record domain.Record) error {
	log := logger.FromContext(ctx)
	if codec.IsEmpty(player.Equipment) {
		log.Debug(LogMsgEquipmentEmpty, "player", player.Name, "kind", record.Kind.Key())
		return nil
	}
	snapshot := codec.Capture(player.Equipment)

	description := fmt.Sprintf("%s record for %s", record.Kind, record.Nickname)
	err := r.queue.Execute(description, worker.TaskFunc(func(ctx context.Context) error {
		record.Inventory = codec.Serialize(snapshot)
		id, err := r.store.Save(ctx, &record)
		if err != nil {
			return err
		}
		metrics.RecordsSaved.WithLabelValues(record.Kind.Key()).Inc()
		logger.FromContext(ctx).Debug(LogMsgRecordSaved, "kind", record.Kind.Key(), "id", id, "player", record.Nickname)
		return nil
	}))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgQueueRecord, err)
	}
	log.Debug(LogMsgRecordQueued, "kind", record.Kind.Key(), "player", player.Name)
	return nil
}

// applyPending overwrites the equipment with the player's pending inventory, if any.
// Items that no longer fit are dropped at the player's feet.
func (r *recorder) applyPending(ctx context.Context, player *domain.Player) error {
	log := logger.FromContext(ctx)

	pending, err := r.pending.FindByActor(ctx, player.ID)
	if errors.Is(err, domain.ErrPendingNotFound) {
		pending, err = r.pending.FindByNickname(ctx, player.Name)
	}
	if errors.Is(err, domain.ErrPendingNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	snapshot, err := codec.Deserialize(pending.Inventory)
	if err != nil {
		log.Warn(LogMsgPendingInvalid, "player", pending.Nickname, "uuid", pending.ActorID, "error", err)
		return r.deletePending(pending)
	}

	if player.Equipment == nil {
		player.Equipment = domain.NewEquipment()
	}
	leftovers := codec.ApplyOverwrite(player.Equipment, snapshot)
	if len(leftovers) > 0 {
		r.dropper.Drop(player, leftovers)
		log.Info(LogMsgItemsDropped, "player", player.Name, "items", domain.CountItems(leftovers))
	}
	log.Info(LogMsgPendingApplied, "player", player.Name)
	return r.deletePending(pending)
}

func (r *recorder) deletePending(pending *domain.PendingInventory) error {
	return r.pending.Delete(*pending)
}
