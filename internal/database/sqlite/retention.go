package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// expiredClause matches rows whose dd/mm/yy timestamp is blank, unparseable or
// older than the bound threshold. The text is reordered into 20yy-mm-dd first so
// SQLite can compare it as epoch seconds.
func expiredClause(col string) string {
	sortable := fmt.Sprintf(
		"'20' || substr(%[1]s, 7, 2) || '-' || substr(%[1]s, 4, 2) || '-' || substr(%[1]s, 1, 2) || ' ' || substr(%[1]s, 10)",
		col)
	return fmt.Sprintf(
		"%[1]s IS NULL OR TRIM(%[1]s) = '' OR strftime('%%s', %[2]s) IS NULL "+
			"OR CAST(strftime('%%s', %[2]s) AS INTEGER) < CAST(strftime('%%s', ?) AS INTEGER)",
		col, sortable)
}

// DeleteOlderThan removes records of one kind stamped before threshold, along with
// every record whose timestamp cannot be read.
func (s *Store) DeleteOlderThan(ctx context.Context, kind domain.RecordKind, threshold time.Time) (int64, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE %s", t.name, expiredClause(t.dateCol))
	n, err := s.exec(ctx, ErrMsgFailedToPurgeRecords, query, threshold.Format(domain.SortableTimestampLayout))
	if err != nil {
		return 0, err
	}
	return n, nil
}

// PurgeExpired runs DeleteOlderThan for every kind. Kinds are purged one by one
// without a shared transaction; on failure the counts gathered so far are returned.
func (s *Store) PurgeExpired(ctx context.Context, threshold time.Time) (domain.PurgeReport, error) {
	report := make(domain.PurgeReport, len(domain.RecordKinds))
	for _, kind := range domain.RecordKinds {
		n, err := s.DeleteOlderThan(ctx, kind, threshold)
		if err != nil {
			return report, err
		}
		report[kind] = n
	}
	return report, nil
}
