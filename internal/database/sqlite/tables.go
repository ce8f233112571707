package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// table describes where one record kind lives.
type table struct {
	name    string
	dateCol string
	// detailCols hold the kind payload, in the order detailValues returns them.
	detailCols []string
}

func tableFor(kind domain.RecordKind) (table, error) {
	switch kind {
	case domain.KindDeath:
		return table{name: "death", dateCol: "death_date", detailCols: []string{"death_type"}}, nil
	case domain.KindWorldChange:
		return table{name: "world", dateCol: "event_date", detailCols: []string{"from_world", "to_world"}}, nil
	case domain.KindTeleport:
		return table{name: "teleport", dateCol: "event_date", detailCols: []string{"from_location", "to_location"}}, nil
	case domain.KindConnection:
		return table{name: "connection", dateCol: "event_date"}, nil
	case domain.KindDisconnection:
		return table{name: "disconnection", dateCol: "event_date"}, nil
	default:
		return table{}, fmt.Errorf("%w: %d", domain.ErrInvalidRecordKind, int(kind))
	}
}

// detailValues returns the payload columns of a validated record.
func detailValues(r *domain.Record) []any {
	switch r.Kind {
	case domain.KindDeath:
		return []any{r.Death.Cause}
	case domain.KindWorldChange:
		return []any{r.WorldChange.FromWorld, r.WorldChange.ToWorld}
	case domain.KindTeleport:
		return []any{r.Teleport.FromLocation, r.Teleport.ToLocation}
	case domain.KindConnection, domain.KindDisconnection:
		return nil
	default:
		return nil
	}
}

// applyDetails sets the payload of r from its scanned payload columns.
func applyDetails(r *domain.Record, details []sql.NullString) {
	switch r.Kind {
	case domain.KindDeath:
		r.Death = &domain.DeathDetails{Cause: details[0].String}
	case domain.KindWorldChange:
		r.WorldChange = &domain.WorldChangeDetails{FromWorld: details[0].String, ToWorld: details[1].String}
	case domain.KindTeleport:
		r.Teleport = &domain.TeleportDetails{FromLocation: details[0].String, ToLocation: details[1].String}
	case domain.KindConnection, domain.KindDisconnection:
	}
}

func (t table) selectColumns() string {
	cols := append([]string{"id", t.dateCol, "uuid", "nickname", "inventory", "returned", "location", "world"}, t.detailCols...)
	return strings.Join(cols, ", ")
}

func (t table) insertStatement() string {
	cols := append([]string{t.dateCol, "uuid", "nickname", "inventory", "returned", "location", "world"}, t.detailCols...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.name, strings.Join(cols, ", "), placeholders)
}

type scanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one row selected with selectColumns.
// Rows holding the legacy marker come back returned, with the marker as inventory.
func (t table) scanRecord(kind domain.RecordKind, row scanner) (domain.Record, error) {
	var (
		id                                        int64
		date, actor, nickname, inventory, loc, wd sql.NullString
		returned                                  sql.NullInt64
	)
	details := make([]sql.NullString, len(t.detailCols))
	dest := []any{&id, &date, &actor, &nickname, &inventory, &returned, &loc, &wd}
	for i := range details {
		dest = append(dest, &details[i])
	}
	if err := row.Scan(dest...); err != nil {
		return domain.Record{}, err
	}

	record := domain.Record{
		ID:        id,
		Kind:      kind,
		Timestamp: date.String,
		Nickname:  nickname.String,
		Inventory: inventory.String,
		Returned:  returned.Int64 == 1,
		Location:  loc.String,
		World:     wd.String,
	}
	if parsed, err := uuid.Parse(actor.String); err == nil {
		record.ActorID = parsed
	}
	if domain.IsLegacyReturned(record.Inventory) {
		record.Returned = true
		record.Inventory = domain.LegacyReturnedInventory
	}
	applyDetails(&record, details)
	return record, nil
}
