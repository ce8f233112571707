package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// Save inserts a record and returns its id. record.ID is set on success.
func (s *Store) Save(ctx context.Context, record *domain.Record) (int64, error) {
	if err := record.Validate(); err != nil {
		return 0, err
	}
	if domain.IsLegacyReturned(record.Inventory) {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidRecord, ErrMsgLegacyMarkerWrite)
	}
	t, err := tableFor(record.Kind)
	if err != nil {
		return 0, err
	}

	args := []any{
		record.Timestamp,
		record.ActorID.String(),
		record.Nickname,
		record.Inventory,
		boolToInt(record.Returned),
		nullString(record.Location),
		nullString(record.World),
	}
	args = append(args, detailValues(record)...)

	var id int64
	err = s.db.Do(func(conn *sql.DB) error {
		res, err := conn.ExecContext(ctx, t.insertStatement(), args...)
		if err != nil {
			return wrapKindError(ErrMsgFailedToSaveRecord, record.Kind, err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return wrapKindError(ErrMsgFailedToSaveRecord, record.Kind, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	record.ID = id
	return id, nil
}

// ListByNickname returns one page of a player's records, newest first.
// The nickname match ignores case. A non-positive limit returns every record.
func (s *Store) ListByNickname(ctx context.Context, kind domain.RecordKind, nickname string, limit, offset int) ([]domain.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = noLimit
	}
	offset = max(offset, 0)

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE nickname = ? COLLATE NOCASE ORDER BY id DESC LIMIT ? OFFSET ?",
		t.selectColumns(), t.name)

	records := []domain.Record{}
	err = s.query(ctx, ErrMsgFailedToListRecords, query, []any{nickname, limit, offset}, func(rows *sql.Rows) error {
		record, err := t.scanRecord(kind, rows)
		if err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CountByNickname counts a player's records, ignoring nickname case.
func (s *Store) CountByNickname(ctx context.Context, kind domain.RecordKind, nickname string) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE nickname = ? COLLATE NOCASE", t.name)
	if _, err := s.queryRow(ctx, ErrMsgFailedToCountRecords, query, []any{nickname}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

// FindByID returns a single record or domain.ErrRecordNotFound.
func (s *Store) FindByID(ctx context.Context, kind domain.RecordKind, id int64) (*domain.Record, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.selectColumns(), t.name)
	return s.findOne(ctx, t, kind, query, id)
}

// FindLatestByNickname returns the newest record of a player or domain.ErrRecordNotFound.
func (s *Store) FindLatestByNickname(ctx context.Context, kind domain.RecordKind, nickname string) (*domain.Record, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE nickname = ? COLLATE NOCASE ORDER BY id DESC LIMIT 1",
		t.selectColumns(), t.name)
	return s.findOne(ctx, t, kind, query, nickname)
}

func (s *Store) findOne(ctx context.Context, t table, kind domain.RecordKind, query string, args ...any) (*domain.Record, error) {
	var (
		record domain.Record
		found  bool
	)
	err := s.query(ctx, ErrMsgFailedToFindRecord, query, args, func(rows *sql.Rows) error {
		var err error
		record, err = t.scanRecord(kind, rows)
		found = err == nil
		return err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s %v", domain.ErrRecordNotFound, kind, args[0])
	}
	return &record, nil
}

// DeleteByID removes a record. Deleting a missing record fails with domain.ErrRecordNotFound.
func (s *Store) DeleteByID(ctx context.Context, kind domain.RecordKind, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	n, err := s.exec(ctx, ErrMsgFailedToDeleteRecord, fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.name), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrRecordNotFound, kind, id)
	}
	return nil
}

// MarkReturned flips the returned flag of a record.
func (s *Store) MarkReturned(ctx context.Context, kind domain.RecordKind, id int64) error {
	if err := validateID(id); err != nil {
		return err
	}
	t, err := tableFor(kind)
	if err != nil {
		return err
	}

	n, err := s.exec(ctx, ErrMsgFailedToMarkReturned, fmt.Sprintf("UPDATE %s SET returned = 1 WHERE id = ?", t.name), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", domain.ErrRecordNotFound, kind, id)
	}
	return nil
}

// DistinctNicknames lists every nickname with at least one record, sorted ignoring case.
// Spellings that differ only in case are one nickname, reported as last recorded.
func (s *Store) DistinctNicknames(ctx context.Context, kind domain.RecordKind) ([]string, error) {
	t, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	// With a single max() aggregate SQLite takes bare columns from the max row.
	query := fmt.Sprintf(`SELECT TRIM(nickname), MAX(id) FROM %s
		WHERE nickname IS NOT NULL AND TRIM(nickname) <> ''
		GROUP BY TRIM(nickname) COLLATE NOCASE
		ORDER BY TRIM(nickname) COLLATE NOCASE`, t.name)

	nicknames := []string{}
	err = s.query(ctx, ErrMsgFailedToListNicknames, query, nil, func(rows *sql.Rows) error {
		var (
			nickname string
			newest   int64
		)
		if err := rows.Scan(&nickname, &newest); err != nil {
			return err
		}
		nicknames = append(nicknames, nickname)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nicknames, nil
}

// HasRecords reports whether a player has any record of the kind.
func (s *Store) HasRecords(ctx context.Context, kind domain.RecordKind, nickname string) (bool, error) {
	t, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	var exists int
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE nickname = ? COLLATE NOCASE)", t.name)
	if _, err := s.queryRow(ctx, ErrMsgFailedToCheckRecords, query, []any{nickname}, &exists); err != nil {
		return false, err
	}
	return exists == 1, nil
}

func wrapKindError(msg string, kind domain.RecordKind, err error) error {
	return fmt.Errorf("%w: %s (%s): %w", domain.ErrStorage, msg, kind, err)
}
