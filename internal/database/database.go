package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
)

// DB is the single SQLite connection shared by the write queue and the foreground loop.
// All access goes through Do, which holds one coarse lock for the duration of the call.
type DB struct {
	mu   sync.Mutex
	conn *sql.DB
	path string
}

// FilePath returns the database file location inside a data directory.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, DirName, FileName)
}

// Open opens or creates the database file at path and applies pending migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpeningDatabase, "path", path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, WrapError(ErrMsgFailedToCreateDataDir, err)
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(%d)", path, BusyTimeoutMillis)
	conn, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, WrapError(ErrMsgFailedToOpenDatabase, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, WrapError(ErrMsgFailedToPingDatabase, err)
	}

	if err := migrate(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	// One connection: SQLite serializes writers anyway and the lock below keeps callers from interleaving.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	log.Info(LogMsgDatabaseReady, "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// Do runs fn with exclusive use of the connection.
func (d *DB) Do(fn func(conn *sql.DB) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return fmt.Errorf("%w: %s", domain.ErrStorage, ErrMsgDatabaseClosed)
	}
	return fn(d.conn)
}

// Ping checks that the database file is still reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Do(func(conn *sql.DB) error {
		if err := conn.PingContext(ctx); err != nil {
			return WrapError(ErrMsgFailedToPingDatabase, err)
		}
		return nil
	})
}

// Close closes the connection. Later calls to Do fail with domain.ErrStorage.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	if err != nil {
		return WrapError(ErrMsgFailedToCloseDatabase, err)
	}
	return nil
}

// WrapError wraps a database fault so that it matches both domain.ErrStorage and the cause.
func WrapError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStorage, msg, err)
}
