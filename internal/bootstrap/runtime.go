package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/config"
	"github.com/osse101/InventoryRestore_Go/internal/database/sqlite"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/pending"
	"github.com/osse101/InventoryRestore_Go/internal/restore"
	"github.com/osse101/InventoryRestore_Go/internal/scheduler"
	"github.com/osse101/InventoryRestore_Go/internal/server"
	"github.com/osse101/InventoryRestore_Go/internal/view"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// Host is the game server the runtime is embedded in.
type Host interface {
	view.Directory
	view.Screen
	view.Messenger
	restore.Dropper
}

// Runtime holds every long-lived component.
type Runtime struct {
	Config    *config.Config
	Store     *sqlite.Store
	Loop      *scheduler.Loop
	Queue     *worker.Queue
	Pending   *pending.Store
	Scheduler *scheduler.Scheduler
	Recorder  restore.Recorder
	Service   restore.Service
	Views     *view.Controller

	// Ops is nil when no metrics address is configured.
	Ops *server.Server

	now func() time.Time
}

// NewRuntime opens the store and wires the loop, the write queue and the services.
// The loop and the queue are started before it returns.
func NewRuntime(ctx context.Context, cfg *config.Config, host Host) (*Runtime, error) {
	if host == nil {
		return nil, errors.New(ErrMsgHostRequired)
	}

	store, err := sqlite.Open(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	loop := scheduler.NewLoop()
	queue := worker.NewQueue()
	pendings := pending.NewStore(store, queue)

	views, err := view.NewController(
		view.Config{Layout: cfg.View, PollInterval: cfg.ViewPollInterval},
		view.Dependencies{
			Loop:     loop,
			Store:    store,
			Pending:  pendings,
			Players:  host,
			Screen:   host,
			Messages: host,
		},
	)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateView, err)
	}

	rt := &Runtime{
		Config:    cfg,
		Store:     store,
		Loop:      loop,
		Queue:     queue,
		Pending:   pendings,
		Scheduler: scheduler.New(queue),
		Recorder:  restore.NewRecorder(store, queue, pendings, host),
		Service:   restore.NewService(store, host, host, cfg.RestoreOptions()),
		Views:     views,
		now:       time.Now,
	}

	queue.Start()
	loop.Start()
	if cfg.MetricsAddr != "" {
		rt.Ops = server.NewServer(cfg.MetricsAddr, cfg.Version, store)
		rt.Ops.Start()
	}
	logger.FromContext(ctx).Info(LogMsgRuntimeReady, "data_dir", cfg.DataDir)
	return rt, nil
}

// StartRetention queues one retention sweep now and schedules one every PurgeInterval.
// Sweeps run on the write queue so they stay ordered with record writes.
func (rt *Runtime) StartRetention(ctx context.Context) {
	log := logger.FromContext(ctx)
	days := rt.Config.RetentionDays
	if days <= 0 {
		log.Info(LogMsgRetentionDisabled)
		return
	}

	if err := rt.Queue.Execute(TaskDescriptionStartupSweep, rt.retentionJob(days)); err != nil {
		log.Warn(LogMsgRetentionSweepStart, "error", err)
	}
	rt.Scheduler.Schedule(rt.Config.PurgeInterval, TaskDescriptionRetention, rt.retentionJob(days))
	log.Info(LogMsgRetentionScheduled, "days", days, "interval", rt.Config.PurgeInterval)
}

func (rt *Runtime) retentionJob(days int) worker.Job {
	return worker.TaskFunc(func(ctx context.Context) error {
		report, err := rt.Service.PurgeExpired(ctx, rt.now(), days)
		if err != nil {
			return err
		}
		logger.FromContext(ctx).Debug(LogMsgRetentionSweepDone, "total", report.Total())
		return nil
	})
}
