package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// Location is a point in a named world.
type Location struct {
	World string  `json:"world"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// BlockX returns the block coordinate containing X.
func (l Location) BlockX() int { return int(math.Floor(l.X)) }

// BlockY returns the block coordinate containing Y.
func (l Location) BlockY() int { return int(math.Floor(l.Y)) }

// BlockZ returns the block coordinate containing Z.
func (l Location) BlockZ() int { return int(math.Floor(l.Z)) }

// WorldName returns the world name or Unknown.
func (l Location) WorldName() string {
	return Sanitize(l.World)
}

// Coordinates formats the block coordinates as "x, y, z".
func (l Location) Coordinates() string {
	return fmt.Sprintf("%d, %d, %d", l.BlockX(), l.BlockY(), l.BlockZ())
}

// String formats the location as "world: x, y, z".
func (l Location) String() string {
	return l.WorldName() + ": " + l.Coordinates()
}

// SameBlock reports whether both locations fall in the same block of the same world.
func (l Location) SameBlock(other Location) bool {
	return l.World == other.World &&
		l.BlockX() == other.BlockX() &&
		l.BlockY() == other.BlockY() &&
		l.BlockZ() == other.BlockZ()
}

// Sanitize returns value, or Unknown when it is blank.
func Sanitize(value string) string {
	if strings.TrimSpace(value) == "" {
		return Unknown
	}
	return value
}

// Player is a connected actor as seen by the foreground loop.
type Player struct {
	ID        uuid.UUID
	Name      string
	Location  Location
	Equipment *Equipment
}
