package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// legacyColumnsVersion is the Go migration that repairs databases written by older releases.
const legacyColumnsVersion = 2

// RecordTables lists the table of every record kind.
var RecordTables = []string{"death", "world", "teleport", "connection", "disconnection"}

type column struct {
	name       string
	definition string
}

// commonColumns exist on every record table.
var commonColumns = []column{
	{"uuid", "TEXT"},
	{"nickname", "TEXT"},
	{"inventory", "TEXT"},
	{"location", "TEXT"},
	{"world", "TEXT"},
	{"returned", "INTEGER NOT NULL DEFAULT 0"},
}

var kindColumns = map[string][]column{
	"death":         {{"death_type", "TEXT"}, {"death_date", "TEXT"}},
	"world":         {{"from_world", "TEXT"}, {"to_world", "TEXT"}, {"event_date", "TEXT"}},
	"teleport":      {{"from_location", "TEXT"}, {"to_location", "TEXT"}, {"event_date", "TEXT"}},
	"connection":    {{"event_date", "TEXT"}},
	"disconnection": {{"event_date", "TEXT"}},
}

func migrate(ctx context.Context, conn *sql.DB) error {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return WrapError(ErrMsgFailedToLoadMigrations, err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, fsys,
		goose.WithGoMigrations(
			goose.NewGoMigration(legacyColumnsVersion, &goose.GoFunc{RunTx: upLegacyColumns}, nil),
		),
	)
	if err != nil {
		return WrapError(ErrMsgFailedToLoadMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return WrapError(ErrMsgFailedToMigrate, err)
	}
	for _, result := range results {
		logger.FromContext(ctx).Info(LogMsgMigrationApplied,
			"version", result.Source.Version,
			"duration", result.Duration)
	}
	return nil
}

// upLegacyColumns adds columns that older databases lack and flags rows holding the
// legacy returned marker. Tables only ever gain columns.
func upLegacyColumns(ctx context.Context, tx *sql.Tx) error {
	log := logger.FromContext(ctx)

	for _, table := range RecordTables {
		existing, err := tableColumns(ctx, tx, table)
		if err != nil {
			return err
		}

		wanted := append(append([]column{}, commonColumns...), kindColumns[table]...)
		for _, col := range wanted {
			if existing[col.name] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, col.name, col.definition)
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return WrapError(fmt.Sprintf("%s %s.%s", ErrMsgFailedToAddColumn, table, col.name), err)
			}
			log.Info(LogMsgLegacyColumnAdded, "table", table, "column", col.name)
		}

		res, err := tx.ExecContext(ctx,
			fmt.Sprintf("UPDATE %s SET returned = 1 WHERE LOWER(TRIM(inventory)) = ? AND returned = 0", table),
			LegacyReturnedMarker)
		if err != nil {
			return WrapError(ErrMsgFailedToSyncReturned, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			log.Info(LogMsgLegacyRowsFlagged, "table", table, "rows", n)
		}
	}
	return nil
}

func tableColumns(ctx context.Context, tx *sql.Tx, table string) (map[string]bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, WrapError(ErrMsgFailedToInspectTable, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name       string
			columnType string
			notNull    int
			defaultVal sql.NullString
			primaryKey int
		)
		if err := rows.Scan(&cid, &name, &columnType, &notNull, &defaultVal, &primaryKey); err != nil {
			return nil, WrapError(ErrMsgFailedToInspectTable, err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrMsgFailedToInspectTable, err)
	}
	return columns, nil
}
