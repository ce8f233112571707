package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/database/sqlite"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

type seeded struct {
	dir     string
	deathID int64
	stale   int64
	actor   uuid.UUID
}

func sampleInventory() string {
	eq := domain.NewEquipment()
	eq.Storage[0] = domain.NewItem("STONE", 32)
	eq.Armor[domain.ArmorHelmet] = domain.NewItem("IRON_HELMET", 1)
	eq.Offhand = domain.NewItem("SHIELD", 1)
	return codec.Serialize(codec.Capture(eq))
}

func seedStore(t *testing.T) seeded {
	t.Helper()
	ctx := context.Background()
	s := seeded{dir: t.TempDir(), actor: uuid.New()}

	store, err := sqlite.Open(ctx, s.dir)
	require.NoError(t, err)
	defer store.Close()

	death := &domain.Record{
		Kind:      domain.KindDeath,
		Timestamp: time.Now().Format(domain.TimestampLayout),
		ActorID:   s.actor,
		Nickname:  "Steve",
		Inventory: sampleInventory(),
		Location:  "10, 64, -4",
		World:     "world",
		Death:     &domain.DeathDetails{Cause: "Fall"},
	}
	s.deathID, err = store.Save(ctx, death)
	require.NoError(t, err)

	old := *death
	old.Timestamp = "01/01/20 00:00:00"
	old.Death = &domain.DeathDetails{Cause: "Lava"}
	s.stale, err = store.Save(ctx, &old)
	require.NoError(t, err)

	_, err = store.Save(ctx, &domain.Record{
		Kind:      domain.KindConnection,
		Timestamp: time.Now().Format(domain.TimestampLayout),
		ActorID:   uuid.New(),
		Nickname:  "alex",
		Inventory: sampleInventory(),
	})
	require.NoError(t, err)

	require.NoError(t, store.SavePending(ctx, domain.PendingInventory{
		ActorID:   s.actor,
		Nickname:  "Steve",
		Inventory: sampleInventory(),
	}))
	return s
}

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App(&out)
	app.ErrWriter = &bytes.Buffer{}
	err := app.Run(append([]string{"admin", "--data-dir", dir}, args...))
	return out.String(), err
}

func TestList(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "list", "Steve")
	require.NoError(t, err)
	assert.Contains(t, out, "Fall")
	assert.Contains(t, out, "Lava")
	assert.Contains(t, out, "34")
	assert.Contains(t, out, "Page 1 of 1 (2 records)")

	out, err = run(t, s.dir, "list", "--kind", "teleport", "Steve")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNoRecords)
}

func TestList_Errors(t *testing.T) {
	s := seedStore(t)

	_, err := run(t, s.dir, "list")
	assert.ErrorContains(t, err, ErrMsgMissingArgument)

	_, err = run(t, s.dir, "list", "--kind", "chest", "Steve")
	assert.ErrorIs(t, err, domain.ErrInvalidRecordKind)
}

func TestShow(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "show", "death", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Steve")
	assert.Contains(t, out, "STONE")
	assert.Contains(t, out, "helmet")
	assert.Contains(t, out, "offhand")

	out, err = run(t, s.dir, "show", "--json", "death", "1")
	require.NoError(t, err)
	var view recordView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, s.deathID, view.Record.ID)
	assert.Len(t, view.Items, 3)
}

func TestShow_Errors(t *testing.T) {
	s := seedStore(t)

	_, err := run(t, s.dir, "show", "death", "abc")
	assert.ErrorContains(t, err, ErrMsgInvalidID)

	_, err = run(t, s.dir, "show", "death", "999")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestErase(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "erase", "death", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Erased death record 1")

	_, err = run(t, s.dir, "show", "death", "1")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestNicknames(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "nicknames")
	require.NoError(t, err)
	assert.Equal(t, "alex\nSteve\n", out)

	out, err = run(t, s.dir, "nicknames", "--kind", "connection")
	require.NoError(t, err)
	assert.Equal(t, "alex\n", out)
}

func TestPurge(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "purge")
	require.NoError(t, err)
	assert.Contains(t, out, MsgRetentionOff)

	out, err = run(t, s.dir, "purge", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "death")
	assert.Contains(t, out, "total")

	_, err = run(t, s.dir, "show", "death", "2")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	out, err = run(t, s.dir, "purge", "--days", "30")
	require.NoError(t, err)
	assert.Contains(t, out, MsgNothingPurged)
}

func TestPending(t *testing.T) {
	s := seedStore(t)

	out, err := run(t, s.dir, "pending", "show", "steve")
	require.NoError(t, err)
	assert.Contains(t, out, s.actor.String())
	assert.Contains(t, out, "SHIELD")

	out, err = run(t, s.dir, "pending", "clear", "Steve")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared pending inventory of Steve")

	_, err = run(t, s.dir, "pending", "show", "Steve")
	assert.ErrorIs(t, err, domain.ErrPendingNotFound)
}
