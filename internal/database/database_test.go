package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

func TestOpen_CreatesSchemaInDataDir(t *testing.T) {
	ctx := context.Background()
	path := FilePath(t.TempDir())

	db, err := Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, DirName, filepath.Base(filepath.Dir(db.Path())))

	err = db.Do(func(conn *sql.DB) error {
		for _, table := range append(RecordTables, "pending_inventory") {
			var name string
			if err := conn.QueryRowContext(ctx,
				"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name); err != nil {
				return err
			}
		}
		return nil
	})
	assert.NoError(t, err)
}

func TestOpen_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := FilePath(t.TempDir())

	first, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestOpen_UpgradesLegacyDatabase(t *testing.T) {
	ctx := context.Background()
	path := FilePath(t.TempDir())

	// Seed a database the way the earliest releases laid it out: no returned flag,
	// no location columns, returned rows marked in the inventory column.
	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	legacy, err := sql.Open(DriverName, path)
	require.NoError(t, err)
	for _, stmt := range []string{
		"DROP TABLE death",
		"DROP TABLE goose_db_version",
		`CREATE TABLE death (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			death_type TEXT NOT NULL,
			death_date TEXT NOT NULL,
			uuid TEXT NOT NULL,
			nickname TEXT NOT NULL,
			inventory TEXT NOT NULL
		)`,
		`INSERT INTO death (death_type, death_date, uuid, nickname, inventory)
			VALUES ('Lava', '01/02/24 10:00:00', 'u', 'Steve', 'RETURNED'),
			       ('Fall', '01/02/24 11:00:00', 'u', 'Steve', 'blob')`,
	} {
		_, err := legacy.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	require.NoError(t, legacy.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var returned []int
	err = db.Do(func(conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, "SELECT returned, location, world FROM death ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				flag            int
				location, world sql.NullString
			)
			if err := rows.Scan(&flag, &location, &world); err != nil {
				return err
			}
			returned = append(returned, flag)
		}
		return rows.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, returned)
}

func TestDB_DoAfterClose(t *testing.T) {
	db, err := Open(context.Background(), FilePath(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, db.Close())

	err = db.Do(func(*sql.DB) error { return nil })
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), ErrMsgDatabaseClosed)
}

func TestWrapError(t *testing.T) {
	cause := sql.ErrConnDone
	err := WrapError("failed to save", cause)

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save")
}
