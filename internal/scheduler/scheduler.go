package scheduler

import (
	"sync"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// Enqueuer accepts jobs for background execution
type Enqueuer interface {
	Execute(description string, job worker.Job) error
}

// Scheduler enqueues jobs on the write queue at fixed intervals
type Scheduler struct {
	queue    Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(queue Enqueuer) *Scheduler {
	return &Scheduler{
		queue: queue,
		quit:  make(chan struct{}),
	}
}

// Schedule registers a job to be enqueued every interval until Stop
func (s *Scheduler) Schedule(interval time.Duration, description string, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				// Execute never blocks, so a slow queue cannot stall the ticker.
				if err := s.queue.Execute(description, job); err != nil {
					logger.Warn(LogMsgScheduledJobFailed, "task", description, "error", err)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
