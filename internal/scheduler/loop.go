package scheduler

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

// ErrLoopStopped is returned when work is submitted to a stopped loop.
var ErrLoopStopped = errors.New(ErrMsgLoopStopped)

// Loop is the foreground scheduling loop. Submitted functions run one at a time,
// in submission order, on a single goroutine. State owned by the loop (live
// equipment, view sessions) must only be touched from functions it runs.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	stopped bool

	notify  chan struct{}
	done    chan struct{}
	quit    chan struct{}
	start   sync.Once
	stop    sync.Once
	tickers sync.WaitGroup
}

// NewLoop creates a loop. Call Start to begin running submitted functions.
func NewLoop() *Loop {
	return &Loop{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start() {
	l.start.Do(func() {
		logger.Info(LogMsgLoopStarted)
		go l.run()
	})
}

// Submit queues fn to run on the loop. It never blocks and reports false when the loop is stopped.
func (l *Loop) Submit(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.notify <- struct{}{}:
	default:
	}
	return true
}

// Call runs fn on the loop and waits for its result.
// It must not be called from a function already running on the loop.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if !l.Submit(func() { result <- fn() }) {
		return ErrLoopStopped
	}
	select {
	case err := <-result:
		return err
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Every runs fn on the loop each interval until the returned task is cancelled.
// A tick is skipped while the previous one is still waiting to run.
func (l *Loop) Every(interval time.Duration, fn func()) *Task {
	task := &Task{stopCh: make(chan struct{})}
	var queued atomic.Bool

	l.tickers.Add(1)
	go func() {
		defer l.tickers.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !queued.CompareAndSwap(false, true) {
					continue
				}
				l.Submit(func() {
					queued.Store(false)
					if !task.Cancelled() {
						fn()
					}
				})
			case <-task.stopCh:
				return
			case <-l.quit:
				return
			}
		}
	}()
	return task
}

// Stop stops accepting work, lets already submitted functions finish and waits
// for the loop and its tickers to exit.
func (l *Loop) Stop() {
	l.stop.Do(func() {
		l.mu.Lock()
		l.stopped = true
		l.mu.Unlock()
		close(l.quit)

		select {
		case l.notify <- struct{}{}:
		default:
		}
		l.Start()
	})
	l.tickers.Wait()
	<-l.done
}

func (l *Loop) run() {
	defer func() {
		logger.Info(LogMsgLoopStopped)
		close(l.done)
	}()
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			stopped := l.stopped
			l.mu.Unlock()
			if stopped {
				return
			}
			<-l.notify
			continue
		}
		fn := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()

		l.safeRun(fn)
	}
}

func (l *Loop) safeRun(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(LogMsgLoopTaskPanicked, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Task is a repeating loop function started by Every.
type Task struct {
	cancelled atomic.Bool
	stopCh    chan struct{}
	once      sync.Once
}

// Cancel stops the task. It is safe to call more than once and from any goroutine;
// once Cancel has returned on the loop, the function will not run again.
func (t *Task) Cancel() {
	t.once.Do(func() {
		t.cancelled.Store(true)
		close(t.stopCh)
	})
}

// Cancelled reports whether Cancel has been called.
func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}
