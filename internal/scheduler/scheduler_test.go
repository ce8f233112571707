package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InventoryRestore_Go/internal/testing/leaktest"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

// MockJob is a simple job for testing
type MockJob struct {
	RunCount atomic.Int32
	Done     chan struct{}
}

func (m *MockJob) Process(ctx context.Context) error {
	m.RunCount.Add(1)
	// Signal that job ran
	select {
	case m.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	queue := worker.NewQueue()
	queue.Start()
	defer func() { _ = queue.Shutdown(context.Background()) }()

	sched := New(queue)
	defer sched.Stop()

	job := &MockJob{
		Done: make(chan struct{}, 10),
	}

	// Schedule job every 10ms
	sched.Schedule(10*time.Millisecond, "mock job", job)

	// Wait for at least 2 runs
	timeout := time.After(time.Second)
	runCount := 0

	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	queue := worker.NewQueue()
	sched := New(queue)
	sched.Schedule(time.Hour, "never", &MockJob{Done: make(chan struct{}, 1)})

	sched.Stop()
	sched.Stop()
}

func newLoop(t *testing.T) *Loop {
	t.Helper()
	loop := NewLoop()
	loop.Start()
	t.Cleanup(loop.Stop)
	return loop
}

func TestLoop_RunsInOrderOnOneGoroutine(t *testing.T) {
	loop := newLoop(t)

	var order []int // only touched on the loop
	for i := 0; i < 100; i++ {
		require.True(t, loop.Submit(func() { order = append(order, i) }))
	}

	var got []int
	require.NoError(t, loop.Call(context.Background(), func() error {
		got = append(got, order...)
		return nil
	}))

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoop_CallReturnsError(t *testing.T) {
	loop := newLoop(t)
	want := errors.New("nope")

	assert.Equal(t, want, loop.Call(context.Background(), func() error { return want }))
}

func TestLoop_PanicDoesNotStopLoop(t *testing.T) {
	loop := newLoop(t)

	loop.Submit(func() { panic("boom") })
	assert.NoError(t, loop.Call(context.Background(), func() error { return nil }))
}

func TestLoop_EveryAndCancel(t *testing.T) {
	loop := newLoop(t)

	var ticks atomic.Int32
	task := loop.Every(5*time.Millisecond, func() { ticks.Add(1) })

	require.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, 5*time.Millisecond)

	require.NoError(t, loop.Call(context.Background(), func() error {
		task.Cancel()
		task.Cancel()
		return nil
	}))
	after := ticks.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, after, ticks.Load())
	assert.True(t, task.Cancelled())
}

func TestLoop_StopDrainsAndRejects(t *testing.T) {
	loop := NewLoop()

	var (
		mu  sync.Mutex
		ran int
	)
	for i := 0; i < 10; i++ {
		loop.Submit(func() {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}
	loop.Start()
	loop.Stop()

	mu.Lock()
	assert.Equal(t, 10, ran)
	mu.Unlock()

	assert.False(t, loop.Submit(func() {}))
	assert.ErrorIs(t, loop.Call(context.Background(), func() error { return nil }), ErrLoopStopped)
}

func TestLoop_NoGoroutineLeak(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		loop := NewLoop()
		loop.Start()
		loop.Every(time.Millisecond, func() {})
		loop.Every(time.Hour, func() {})
		time.Sleep(10 * time.Millisecond)
		loop.Stop()
	})
}
