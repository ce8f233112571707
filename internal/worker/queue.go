package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/metrics"
)

var (
	// ErrQueueClosed is returned by Execute and Flush once shutdown has begun.
	ErrQueueClosed = errors.New(ErrMsgQueueClosed)
	// ErrShutdownTimeout is returned by Shutdown when tasks had to be abandoned.
	ErrShutdownTimeout = errors.New(ErrMsgShutdownTimeout)
)

// Job represents a task to be executed by the queue worker
type Job interface {
	Process(ctx context.Context) error
}

// TaskFunc adapts a function to Job.
type TaskFunc func(ctx context.Context) error

// Process calls f(ctx).
func (f TaskFunc) Process(ctx context.Context) error {
	return f(ctx)
}

type entry struct {
	description string
	job         Job
	// barrier is closed instead of running a job; used by Flush.
	barrier chan struct{}
}

// Queue runs storage writes on a single background worker in submission order.
//
// Submitting never blocks. A failing or panicking job is logged and counted,
// and the worker moves on to the next one. Jobs run at most once.
type Queue struct {
	mu      sync.Mutex
	pending []entry
	closed  bool

	notify  chan struct{}
	stopped chan struct{}
	start   sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// NewQueue creates a queue. Jobs are accepted immediately and run once Start is called.
func NewQueue() *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		notify:  make(chan struct{}, 1),
		stopped: make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start starts the worker
func (q *Queue) Start() {
	q.start.Do(func() {
		logger.Info(LogMsgQueueStarted)
		go q.run()
	})
}

// Execute appends a job to the queue. The description identifies the job in logs.
func (q *Queue) Execute(description string, job Job) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		logger.Warn(LogMsgTaskRejected, "task", description)
		return fmt.Errorf("%w: %s", ErrQueueClosed, description)
	}
	q.pending = append(q.pending, entry{description: description, job: job})
	q.mu.Unlock()

	metrics.QueueDepth.Inc()
	q.signal()
	return nil
}

// Len returns the number of jobs waiting to run.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, e := range q.pending {
		if e.barrier == nil {
			n++
		}
	}
	return n
}

// Flush waits until every job submitted before the call has finished.
func (q *Queue) Flush(ctx context.Context) error {
	barrier := make(chan struct{})

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrQueueClosed
	}
	q.pending = append(q.pending, entry{barrier: barrier})
	q.mu.Unlock()
	q.signal()

	select {
	case <-barrier:
		return nil
	case <-q.stopped:
		select {
		case <-barrier:
			return nil
		default:
			return ErrQueueClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for the worker to drain the queue.
// When ctx expires first, the running job's context is cancelled, the remaining
// jobs are dropped and ErrShutdownTimeout is returned.
func (q *Queue) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgQueueShuttingDown)

	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
	q.Start()

	select {
	case <-q.stopped:
		q.cancel()
		log.Info(LogMsgQueueShutdownDone)
		return nil
	case <-ctx.Done():
	}

	q.mu.Lock()
	abandoned := 0
	for _, e := range q.pending {
		if e.barrier == nil {
			abandoned++
		}
	}
	q.pending = nil
	q.mu.Unlock()
	q.cancel()

	metrics.QueueDepth.Sub(float64(abandoned))
	metrics.QueueTasks.WithLabelValues(metrics.StatusAbandoned).Add(float64(abandoned))
	log.Warn(LogMsgQueueShutdownTimeout, "abandoned", abandoned)
	return fmt.Errorf("%w: %d tasks abandoned: %w", ErrShutdownTimeout, abandoned, ctx.Err())
}

func (q *Queue) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *Queue) run() {
	defer close(q.stopped)
	for {
		e, ok := q.next()
		if !ok {
			return
		}
		if e.barrier != nil {
			close(e.barrier)
			continue
		}
		q.process(e)
	}
}

// next blocks until a job is available. It reports false once the queue is
// closed and empty.
func (q *Queue) next() (entry, bool) {
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			e := q.pending[0]
			q.pending[0] = entry{}
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return e, true
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return entry{}, false
		}
		<-q.notify
	}
}

func (q *Queue) process(e entry) {
	ctx := logger.WithTask(q.ctx, e.description)
	log := logger.FromContext(ctx)
	defer metrics.QueueDepth.Dec()

	if err := q.safeProcess(ctx, e.job); err != nil {
		status := metrics.StatusFailed
		msg := LogMsgTaskFailed
		if errors.Is(err, errTaskPanicked) {
			status = metrics.StatusPanicked
			msg = LogMsgTaskPanicked
		}
		metrics.QueueTasks.WithLabelValues(status).Inc()
		log.Error(msg, "error", err)
		return
	}
	metrics.QueueTasks.WithLabelValues(metrics.StatusSucceeded).Inc()
}

var errTaskPanicked = errors.New(ErrMsgTaskPanicked)

func (q *Queue) safeProcess(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", errTaskPanicked, r, debug.Stack())
		}
	}()
	return job.Process(ctx)
}
