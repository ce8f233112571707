package restore

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// DeathCause describes what killed a player. The most specific field set wins.
type DeathCause struct {
	// Killer is the name of the player responsible, used as is.
	Killer string
	// Entity is the type of the mob responsible, e.g. CAVE_SPIDER.
	Entity string
	// Damage is the damage cause, e.g. FALL.
	Damage string
}

// String returns the cause as stored in death records.
func (c DeathCause) String() string {
	switch {
	case strings.TrimSpace(c.Killer) != "":
		return c.Killer
	case strings.TrimSpace(c.Entity) != "":
		return FormatName(c.Entity)
	default:
		return FormatName(c.Damage)
	}
}

// FormatName turns an enum style name into words: ENTITY_EXPLOSION becomes "Entity Explosion".
func FormatName(name string) string {
	words := strings.Fields(strings.ReplaceAll(strings.ToLower(name), "_", " "))
	if len(words) == 0 {
		return domain.Unknown
	}
	return cases.Title(language.English).String(strings.Join(words, " "))
}
