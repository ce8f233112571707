// Package sqlite implements the record and pending inventory repositories on the
// shared SQLite connection.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/InventoryRestore_Go/internal/database"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store implements repository.Store for SQLite
type Store struct {
	db *database.DB
}

// NewStore creates a new Store
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Open opens the database inside dataDir and returns a ready store.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	db, err := database.Open(ctx, database.FilePath(dataDir))
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.db.Close()
}

// exec runs a statement and returns the number of affected rows.
func (s *Store) exec(ctx context.Context, errMsg, query string, args ...any) (int64, error) {
	var affected int64
	err := s.db.Do(func(conn *sql.DB) error {
		res, err := conn.ExecContext(ctx, query, args...)
		if err != nil {
			return database.WrapError(errMsg, err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return database.WrapError(ErrMsgFailedToReadAffectedRows, err)
		}
		return nil
	})
	return affected, err
}

// queryRow runs a single-row query. It reports false when no row matched.
func (s *Store) queryRow(ctx context.Context, errMsg, query string, args []any, dest ...any) (bool, error) {
	found := true
	err := s.db.Do(func(conn *sql.DB) error {
		err := conn.QueryRowContext(ctx, query, args...).Scan(dest...)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		if err != nil {
			return database.WrapError(errMsg, err)
		}
		return nil
	})
	return found, err
}

// query runs a query and calls scan once per row while the lock is held.
func (s *Store) query(ctx context.Context, errMsg, query string, args []any, scan func(rows *sql.Rows) error) error {
	return s.db.Do(func(conn *sql.DB) error {
		rows, err := conn.QueryContext(ctx, query, args...)
		if err != nil {
			return database.WrapError(errMsg, err)
		}
		defer rows.Close()

		for rows.Next() {
			if err := scan(rows); err != nil {
				return database.WrapError(errMsg, err)
			}
		}
		if err := rows.Err(); err != nil {
			return database.WrapError(errMsg, err)
		}
		return nil
	})
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidRecordID, id)
	}
	return nil
}
