package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RecordKind identifies which event produced a stored inventory.
type RecordKind int

const (
	KindDeath RecordKind = iota + 1
	KindWorldChange
	KindTeleport
	KindConnection
	KindDisconnection
)

// RecordKinds lists every kind in display order.
var RecordKinds = []RecordKind{
	KindDeath,
	KindWorldChange,
	KindTeleport,
	KindConnection,
	KindDisconnection,
}

// Key returns the stable lowercase key of the kind ("death", "world", ...).
func (k RecordKind) Key() string {
	switch k {
	case KindDeath:
		return "death"
	case KindWorldChange:
		return "world"
	case KindTeleport:
		return "teleport"
	case KindConnection:
		return "connection"
	case KindDisconnection:
		return "disconnection"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k RecordKind) String() string { return k.Key() }

// Valid reports whether k is one of the known kinds.
func (k RecordKind) Valid() bool {
	return k >= KindDeath && k <= KindDisconnection
}

// ParseRecordKind resolves a kind key, case-insensitively.
func ParseRecordKind(key string) (RecordKind, error) {
	normalized := strings.ToLower(strings.TrimSpace(key))
	for _, kind := range RecordKinds {
		if kind.Key() == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRecordKind, key)
}

// DeathDetails is the payload of a death record.
type DeathDetails struct {
	Cause string `json:"cause"`
}

// WorldChangeDetails is the payload of a world change record.
type WorldChangeDetails struct {
	FromWorld string `json:"from_world"`
	ToWorld   string `json:"to_world"`
}

// TeleportDetails is the payload of a teleport record.
type TeleportDetails struct {
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
}

// Record is a persisted snapshot plus event metadata.
//
// Exactly one of Death, WorldChange or Teleport is set for the matching kind;
// connection and disconnection records carry no payload.
type Record struct {
	ID        int64      `json:"id"`
	Kind      RecordKind `json:"kind"`
	Timestamp string     `json:"timestamp"`
	ActorID   uuid.UUID  `json:"uuid"`
	Nickname  string     `json:"nickname"`
	Inventory string     `json:"inventory"`
	Returned  bool       `json:"returned"`
	Location  string     `json:"location,omitempty"`
	World     string     `json:"world,omitempty"`

	Death       *DeathDetails       `json:"death,omitempty"`
	WorldChange *WorldChangeDetails `json:"world_change,omitempty"`
	Teleport    *TeleportDetails    `json:"teleport,omitempty"`
}

// Validate checks that the record kind is known and that its payload matches the kind.
func (r *Record) Validate() error {
	switch r.Kind {
	case KindDeath:
		if r.Death == nil || r.WorldChange != nil || r.Teleport != nil {
			return fmt.Errorf("%w: death record needs only death details", ErrInvalidRecord)
		}
	case KindWorldChange:
		if r.WorldChange == nil || r.Death != nil || r.Teleport != nil {
			return fmt.Errorf("%w: world record needs only world change details", ErrInvalidRecord)
		}
	case KindTeleport:
		if r.Teleport == nil || r.Death != nil || r.WorldChange != nil {
			return fmt.Errorf("%w: teleport record needs only teleport details", ErrInvalidRecord)
		}
	case KindConnection, KindDisconnection:
		if r.Death != nil || r.WorldChange != nil || r.Teleport != nil {
			return fmt.Errorf("%w: %s record carries no details", ErrInvalidRecord, r.Kind)
		}
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRecordKind, int(r.Kind))
	}
	if strings.TrimSpace(r.Nickname) == "" {
		return fmt.Errorf("%w: nickname is required", ErrInvalidRecord)
	}
	if r.Inventory == "" {
		return fmt.Errorf("%w: inventory is required", ErrInvalidRecord)
	}
	return nil
}

// IsLegacyReturned reports whether the inventory column holds the pre-flag sentinel.
func IsLegacyReturned(inventory string) bool {
	return strings.EqualFold(strings.TrimSpace(inventory), LegacyReturnedInventory)
}

// PendingInventory is a snapshot waiting to be applied at the actor's next connection.
type PendingInventory struct {
	ActorID   uuid.UUID `json:"uuid"`
	Nickname  string    `json:"nickname"`
	Inventory string    `json:"inventory"`
}

// PurgeReport counts the records removed per kind by a retention sweep.
type PurgeReport map[RecordKind]int64

// Total returns the number of removed records across kinds.
func (r PurgeReport) Total() int64 {
	var total int64
	for _, n := range r {
		total += n
	}
	return total
}
