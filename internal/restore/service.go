// Package restore records equipment snapshots at player events and implements
// the operator actions on stored records.
package restore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/osse101/InventoryRestore_Go/internal/codec"
	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/metrics"
	"github.com/osse101/InventoryRestore_Go/internal/repository"
)

// ErrTargetOffline is returned when a record's owner must be online but is not.
var ErrTargetOffline = errors.New(ErrMsgTargetOffline)

// Service defines the operator actions on stored records.
type Service interface {
	ListRecords(ctx context.Context, kind domain.RecordKind, nickname string, page int) (*RecordPage, error)
	RecordSnapshot(ctx context.Context, kind domain.RecordKind, id int64) (*domain.Record, domain.Snapshot, error)
	// RestoreRecord mutates live equipment and must run on the foreground loop.
	RestoreRecord(ctx context.Context, kind domain.RecordKind, id int64) (*RestoreResult, error)
	EraseRecord(ctx context.Context, kind domain.RecordKind, id int64) error
	HasAnyRecords(ctx context.Context, nickname string) (bool, error)
	Nicknames(ctx context.Context, kind domain.RecordKind) ([]string, error)
	KnownNicknames(ctx context.Context) ([]string, error)
	PurgeExpired(ctx context.Context, now time.Time, days int) (domain.PurgeReport, error)
}

// RecordPage is one page of a player's records, newest first.
type RecordPage struct {
	Records []domain.Record `json:"records"`
	// Page is zero based and clamped to the available pages.
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
}

// RestoreResult describes a completed restore.
type RestoreResult struct {
	Record  domain.Record `json:"record"`
	Target  string        `json:"target"`
	Dropped int           `json:"dropped"`
}

// Options tunes the service. Zero values select the defaults.
type Options struct {
	PageSize          int
	NicknameCacheSize int
	NicknameCacheTTL  time.Duration
}

type service struct {
	store     repository.Store
	players   Players
	dropper   Dropper
	pageSize  int
	nicknames *nicknameCache
}

// NewService creates a new restore service
func NewService(store repository.Store, players Players, dropper Dropper, opts Options) Service {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.NicknameCacheSize <= 0 {
		opts.NicknameCacheSize = DefaultNicknameCacheSize
	}
	if opts.NicknameCacheTTL <= 0 {
		opts.NicknameCacheTTL = DefaultNicknameCacheTTL
	}
	return &service{
		store:     store,
		players:   players,
		dropper:   dropper,
		pageSize:  opts.PageSize,
		nicknames: newNicknameCache(opts.NicknameCacheSize, opts.NicknameCacheTTL),
	}
}

func (s *service) ListRecords(ctx context.Context, kind domain.RecordKind, nickname string, page int) (*RecordPage, error) {
	total, err := s.store.CountByNickname(ctx, kind, nickname)
	if err != nil {
		return nil, err
	}

	pages := max(1, (total+s.pageSize-1)/s.pageSize)
	page = min(max(page, 0), pages-1)
	result := &RecordPage{Page: page, Pages: pages, Total: total}
	if total == 0 {
		return result, nil
	}

	result.Records, err = s.store.ListByNickname(ctx, kind, nickname, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) RecordSnapshot(ctx context.Context, kind domain.RecordKind, id int64) (*domain.Record, domain.Snapshot, error) {
	record, err := s.store.FindByID(ctx, kind, id)
	if err != nil {
		return nil, domain.Snapshot{}, err
	}
	snapshot, err := codec.Deserialize(record.Inventory)
	if err != nil {
		return record, domain.Snapshot{}, err
	}
	return record, snapshot, nil
}

// RestoreRecord merges the record into its owner's equipment, drops what does not fit
// and marks the record returned before returning, so a second restore is rejected.
func (s *service) RestoreRecord(ctx context.Context, kind domain.RecordKind, id int64) (*RestoreResult, error) {
	log := logger.FromContext(ctx)

	record, err := s.store.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if record.Returned {
		return nil, fmt.Errorf("%w: %s #%d", domain.ErrAlreadyReturned, kind, id)
	}
	snapshot, err := codec.Deserialize(record.Inventory)
	if err != nil {
		return nil, err
	}

	target, ok := findPlayer(s.players, record.ActorID, record.Nickname)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetOffline, record.Nickname)
	}
	if target.Equipment == nil {
		target.Equipment = domain.NewEquipment()
	}

	leftovers := codec.Restore(target.Equipment, snapshot)
	dropped := domain.CountItems(leftovers)
	if len(leftovers) > 0 {
		s.dropper.Drop(target, leftovers)
		log.Info(LogMsgItemsDropped, "player", target.Name, "items", dropped)
	}

	if err := s.store.MarkReturned(ctx, kind, id); err != nil {
		log.Error(LogMsgMarkReturnedFailed, "kind", kind.Key(), "id", id, "error", err)
		return nil, err
	}
	record.Returned = true
	metrics.RecordsRestored.WithLabelValues(kind.Key()).Inc()
	log.Info(LogMsgRecordRestored, "kind", kind.Key(), "id", id, "player", target.Name)

	return &RestoreResult{Record: *record, Target: target.Name, Dropped: dropped}, nil
}

func (s *service) EraseRecord(ctx context.Context, kind domain.RecordKind, id int64) error {
	if err := s.store.DeleteByID(ctx, kind, id); err != nil {
		return err
	}
	s.nicknames.Clear()
	logger.FromContext(ctx).Info(LogMsgRecordErased, "kind", kind.Key(), "id", id)
	return nil
}

// HasAnyRecords reports whether any kind holds a record for nickname.
func (s *service) HasAnyRecords(ctx context.Context, nickname string) (bool, error) {
	for _, kind := range domain.RecordKinds {
		found, err := s.store.HasRecords(ctx, kind, nickname)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// Nicknames lists the nicknames that have records of kind, briefly cached.
func (s *service) Nicknames(ctx context.Context, kind domain.RecordKind) ([]string, error) {
	if names, ok := s.nicknames.Get(kind.Key()); ok {
		logger.FromContext(ctx).Debug(LogMsgNicknameCacheHit, "kind", kind.Key())
		return names, nil
	}
	names, err := s.store.DistinctNicknames(ctx, kind)
	if err != nil {
		return nil, err
	}
	s.nicknames.Set(kind.Key(), names)
	logger.FromContext(ctx).Debug(LogMsgNicknameCacheFilled, "kind", kind.Key(), "count", len(names))
	return names, nil
}

// KnownNicknames lists nicknames across every kind, sorted ignoring case.
func (s *service) KnownNicknames(ctx context.Context) ([]string, error) {
	if names, ok := s.nicknames.Get(allKindsKey); ok {
		return names, nil
	}

	seen := make(map[string]struct{})
	var names []string
	for _, kind := range domain.RecordKinds {
		kindNames, err := s.Nicknames(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, name := range kindNames {
			key := strings.ToLower(name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	s.nicknames.Set(allKindsKey, names)
	return names, nil
}

// PurgeExpired deletes records older than days before now. days <= 0 disables the sweep.
func (s *service) PurgeExpired(ctx context.Context, now time.Time, days int) (domain.PurgeReport, error) {
	log := logger.FromContext(ctx)
	if days <= 0 {
		log.Debug(LogMsgRetentionDisabled)
		return domain.PurgeReport{}, nil
	}

	report, err := s.store.PurgeExpired(ctx, now.AddDate(0, 0, -days))
	for kind, n := range report {
		metrics.RecordsPurged.WithLabelValues(kind.Key()).Add(float64(n))
	}
	if report.Total() > 0 {
		s.nicknames.Clear()
	}
	if err != nil {
		return report, err
	}
	log.Info(LogMsgRecordsPurged, "days", days, "total", report.Total())
	return report, nil
}
