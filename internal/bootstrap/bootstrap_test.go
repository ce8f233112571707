package bootstrap

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/config"
	"github.com/osse101/InventoryRestore_Go/internal/database/sqlite"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/scheduler"
	"github.com/osse101/InventoryRestore_Go/internal/view"
	"github.com/osse101/InventoryRestore_Go/internal/worker"
)

type stubHost struct {
	mu      sync.Mutex
	players map[uuid.UUID]*domain.Player
	showing map[uuid.UUID]*view.Display
	dropped []*domain.ItemStack
}

func newStubHost() *stubHost {
	return &stubHost{
		players: make(map[uuid.UUID]*domain.Player),
		showing: make(map[uuid.UUID]*view.Display),
	}
}

func (h *stubHost) Player(id uuid.UUID) (*domain.Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[id]
	return p, ok
}

func (h *stubHost) PlayerByName(name string) (*domain.Player, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, p := range h.players {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

func (h *stubHost) Show(viewer uuid.UUID, _ string, display *view.Display) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.showing[viewer] = display
}

func (h *stubHost) Showing(viewer uuid.UUID) *view.Display {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.showing[viewer]
}

func (h *stubHost) Close(viewer uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.showing, viewer)
}

func (h *stubHost) Send(uuid.UUID, string, map[string]string) {}

func (h *stubHost) Format(key string, _ map[string]string) string { return key }

func (h *stubHost) Drop(_ *domain.Player, items []*domain.ItemStack) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropped = append(h.dropped, items...)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:              t.TempDir(),
		LogLevel:             "debug",
		LogFormat:            "text",
		LogDir:               filepath.Join(t.TempDir(), "logs"),
		Environment:          "test",
		ServiceName:          "inventory-restore",
		Version:              "test",
		ViewPollInterval:     20 * time.Millisecond,
		QueueShutdownTimeout: 5 * time.Second,
		PurgeInterval:        time.Hour,
		View:                 view.DefaultLayout(),
		NicknameCacheSize:    4,
		NicknameCacheTTL:     time.Second,
	}
}

func keepDefaultLogger(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
}

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("session_2025-01-%02d_10-00-00.log", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	cleanupLogs(dir, 8)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, 9)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2025-01-12_10-00-00.log")
	assert.Contains(t, names, "session_2025-01-05_10-00-00.log")
	assert.NotContains(t, names, "session_2025-01-04_10-00-00.log")
}

func TestCleanupLogs_MissingDir(t *testing.T) {
	assert.NotPanics(t, func() { cleanupLogs(filepath.Join(t.TempDir(), "absent"), 9) })
}

func TestSetupLogger_WritesToFileAndStdout(t *testing.T) {
	keepDefaultLogger(t)
	cfg := testConfig(t)
	var stdout bytes.Buffer

	file, err := setupLogger(cfg, &stdout)
	require.NoError(t, err)
	slog.Info("hello from test")
	require.NoError(t, file.Close())

	written, err := os.ReadFile(file.Name())
	require.NoError(t, err)
	assert.Contains(t, string(written), LogMsgLoggingInitialized)
	assert.Contains(t, string(written), "hello from test")
	assert.Contains(t, stdout.String(), "hello from test")
	assert.True(t, strings.HasPrefix(filepath.Base(file.Name()), "session_"))
}

func TestSetupLogger_FailsOnUnusableDir(t *testing.T) {
	keepDefaultLogger(t)
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	cfg.LogDir = filepath.Join(blocker, "logs")

	_, err := setupLogger(cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedCreateLogsDir)
}

func TestNewRuntime_RequiresHost(t *testing.T) {
	_, err := NewRuntime(context.Background(), testConfig(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgHostRequired)
}

func TestNewRuntime_RejectsInvalidLayout(t *testing.T) {
	cfg := testConfig(t)
	cfg.View.Helmet = cfg.View.Boots

	_, err := NewRuntime(context.Background(), cfg, newStubHost())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedCreateView)
}

func TestRuntime_StartRetentionPurgesOnStartup(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.RetentionDays = 7

	rt, err := NewRuntime(ctx, cfg, newStubHost())
	require.NoError(t, err)
	t.Cleanup(func() { _ = GracefulShutdown(ctx, rt) })

	stale := &domain.Record{
		Kind:      domain.KindDeath,
		Timestamp: "01/01/20 00:00:00",
		ActorID:   uuid.New(),
		Nickname:  "Steve",
		Inventory: "old",
		Death:     &domain.DeathDetails{Cause: "Fall"},
	}
	fresh := *stale
	fresh.Timestamp = time.Now().Format(domain.TimestampLayout)
	fresh.Inventory = "fresh"

	staleID, err := rt.Store.Save(ctx, stale)
	require.NoError(t, err)
	freshID, err := rt.Store.Save(ctx, &fresh)
	require.NoError(t, err)

	rt.StartRetention(ctx)
	require.NoError(t, rt.Queue.Flush(ctx))

	_, err = rt.Store.FindByID(ctx, domain.KindDeath, staleID)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	_, err = rt.Store.FindByID(ctx, domain.KindDeath, freshID)
	assert.NoError(t, err)
}

func TestRuntime_StartRetentionDisabled(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, testConfig(t), newStubHost())
	require.NoError(t, err)
	t.Cleanup(func() { _ = GracefulShutdown(ctx, rt) })

	rt.StartRetention(ctx)
	assert.Equal(t, 0, rt.Queue.Len())
}

func TestGracefulShutdown_SavesOfflineEdits(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	host := newStubHost()
	viewer := &domain.Player{ID: uuid.New(), Name: "Admin", Equipment: domain.NewEquipment()}
	host.players[viewer.ID] = viewer

	rt, err := NewRuntime(ctx, cfg, host)
	require.NoError(t, err)

	eq := domain.NewEquipment()
	eq.Storage[0] = domain.NewItem("STONE", 12)
	targetID := uuid.New()
	_, err = rt.Store.Save(ctx, &domain.Record{
		Kind:      domain.KindDisconnection,
		Timestamp: time.Now().Format(domain.TimestampLayout),
		ActorID:   targetID,
		Nickname:  "Alex",
		Inventory: codec.Serialize(codec.Capture(eq)),
	})
	require.NoError(t, err)

	require.NoError(t, rt.Loop.Call(ctx, func() error {
		if err := rt.Views.Open(ctx, viewer.ID, "Alex", true); err != nil {
			return err
		}
		session, ok := rt.Views.Session(viewer.ID)
		if !ok {
			return view.ErrNoSession
		}
		session.Display().SetItem(3, domain.NewItem("DIAMOND", 2))
		return rt.Views.Interact(viewer.ID)
	}))

	require.NoError(t, GracefulShutdown(ctx, rt))

	store, err := sqlite.Open(ctx, cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	pending, err := store.FindPendingByActor(ctx, targetID)
	require.NoError(t, err)
	snapshot, err := codec.Deserialize(pending.Inventory)
	require.NoError(t, err)
	assert.Equal(t, 12, snapshot.ContentAt(0).Amount)
	assert.Equal(t, "DIAMOND", snapshot.ContentAt(3).Material)
	assert.Equal(t, "Alex", pending.Nickname)
}

// holdQueue parks the write queue worker until the returned func is called.
func holdQueue(t *testing.T, rt *Runtime) func() {
	t.Helper()
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	require.NoError(t, rt.Queue.Execute("hold", worker.TaskFunc(func(context.Context) error {
		<-release
		return nil
	})))
	t.Cleanup(unblock)
	return unblock
}

func TestRuntime_OfflineEditAppliedOnConnectWhileQueueBusy(t *testing.T) {
	ctx := context.Background()
	host := newStubHost()
	viewer := &domain.Player{ID: uuid.New(), Name: "Admin", Equipment: domain.NewEquipment()}
	host.players[viewer.ID] = viewer

	rt, err := NewRuntime(ctx, testConfig(t), host)
	require.NoError(t, err)
	t.Cleanup(func() { _ = GracefulShutdown(ctx, rt) })

	stored := domain.NewEquipment()
	stored.Storage[0] = domain.NewItem("STONE", 12)
	targetID := uuid.New()
	_, err = rt.Store.Save(ctx, &domain.Record{
		Kind:      domain.KindDisconnection,
		Timestamp: time.Now().Format(domain.TimestampLayout),
		ActorID:   targetID,
		Nickname:  "Alex",
		Inventory: codec.Serialize(codec.Capture(stored)),
	})
	require.NoError(t, err)

	release := holdQueue(t, rt)

	require.NoError(t, rt.Loop.Call(ctx, func() error {
		if err := rt.Views.Open(ctx, viewer.ID, "Alex", true); err != nil {
			return err
		}
		session, ok := rt.Views.Session(viewer.ID)
		if !ok {
			return view.ErrNoSession
		}
		session.Display().SetItem(3, domain.NewItem("DIAMOND", 2))
		return rt.Views.Interact(viewer.ID)
	}))
	require.NoError(t, rt.Loop.Call(ctx, func() error {
		rt.Views.Close(viewer.ID)
		return nil
	}))

	alex := &domain.Player{ID: targetID, Name: "Alex", Equipment: domain.NewEquipment()}
	alex.Equipment.Storage[0] = domain.NewItem("GOLD_INGOT", 1)
	host.mu.Lock()
	host.players[alex.ID] = alex
	host.mu.Unlock()

	var connected domain.Equipment
	require.NoError(t, rt.Loop.Call(ctx, func() error {
		if err := rt.Recorder.OnConnect(ctx, alex); err != nil {
			return err
		}
		connected = *alex.Equipment
		return nil
	}))

	require.NotNil(t, connected.Storage[3])
	assert.Equal(t, "DIAMOND", connected.Storage[3].Material)
	assert.Equal(t, "STONE", connected.Storage[0].Material)

	release()
	require.NoError(t, rt.Queue.Flush(ctx))

	_, err = rt.Store.FindPendingByActor(ctx, targetID)
	assert.ErrorIs(t, err, domain.ErrPendingNotFound, "applied pending inventory must not survive the connect")
	assert.Equal(t, 0, rt.Pending.Queued())
}

func TestGracefulShutdown_SecondCallReportsStoppedLoop(t *testing.T) {
	ctx := context.Background()
	rt, err := NewRuntime(ctx, testConfig(t), newStubHost())
	require.NoError(t, err)

	require.NoError(t, GracefulShutdown(ctx, rt))
	assert.ErrorIs(t, GracefulShutdown(ctx, rt), scheduler.ErrLoopStopped)
}

func TestNewRuntime_OpsServerOnlyWhenConfigured(t *testing.T) {
	ctx := context.Background()

	rt, err := NewRuntime(ctx, testConfig(t), newStubHost())
	require.NoError(t, err)
	assert.Nil(t, rt.Ops)
	require.NoError(t, GracefulShutdown(ctx, rt))

	cfg := testConfig(t)
	cfg.MetricsAddr = "127.0.0.1:0"
	rt, err = NewRuntime(ctx, cfg, newStubHost())
	require.NoError(t, err)
	require.NotNil(t, rt.Ops)
	assert.Equal(t, "127.0.0.1:0", rt.Ops.Addr())
	require.NoError(t, GracefulShutdown(ctx, rt))
}
