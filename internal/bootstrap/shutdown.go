package bootstrap

import (
	"context"
	"errors"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

// GracefulShutdown stops the runtime in order:
// 1. Ops server and scheduler (no more sweeps are queued)
// 2. View sessions (offline edits are queued as pending inventories)
// 3. Foreground loop
// 4. Write queue (drains within QueueShutdownTimeout)
// 5. Record store
//
// Errors are logged and joined but do not stop the sequence.
func GracefulShutdown(ctx context.Context, rt *Runtime) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgShuttingDown)

	var errs []error

	if rt.Ops != nil {
		if err := rt.Ops.Stop(ctx); err != nil {
			log.Error(LogMsgOpsShutdownFailed, "error", err)
			errs = append(errs, err)
		}
	}

	rt.Scheduler.Stop()
	log.Debug(LogMsgShutdownStepCompleted, "step", "scheduler")

	if err := rt.Loop.Call(ctx, func() error {
		rt.Views.CloseAll()
		return nil
	}); err != nil {
		log.Error(LogMsgCloseViewsFailed, "error", err)
		errs = append(errs, err)
	}
	rt.Loop.Stop()
	log.Debug(LogMsgShutdownStepCompleted, "step", "loop")

	queueCtx, cancel := context.WithTimeout(ctx, rt.Config.QueueShutdownTimeout)
	defer cancel()
	if err := rt.Queue.Shutdown(queueCtx); err != nil {
		log.Error(LogMsgQueueShutdownFailed, "error", err)
		errs = append(errs, err)
	}

	if err := rt.Store.Close(); err != nil {
		log.Error(LogMsgStoreCloseFailed, "error", err)
		errs = append(errs, err)
	}

	log.Info(LogMsgStopped)
	return errors.Join(errs...)
}
