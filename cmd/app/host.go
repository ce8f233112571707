package main

import (
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
	"github.com/osse101/InventoryRestore_Go/internal/logger"
	"github.com/osse101/InventoryRestore_Go/internal/view"
)

// messages is the English catalog used when no game server supplies one.
var messages = map[string]string{
	view.MsgKeyTitle:         "Inventory of {player}",
	view.MsgKeyNotFound:      "No stored inventory for {player}",
	view.MsgKeyInvalid:       "The stored inventory of {player} cannot be read",
	view.MsgKeyTargetOffline: "{player} went offline",
}

// headlessHost is the host of a process running without a game server:
// nobody is connected and nothing is shown.
type headlessHost struct{}

func (headlessHost) Player(uuid.UUID) (*domain.Player, bool) { return nil, false }

func (headlessHost) PlayerByName(string) (*domain.Player, bool) { return nil, false }

func (headlessHost) Show(uuid.UUID, string, *view.Display) {}

func (headlessHost) Showing(uuid.UUID) *view.Display { return nil }

func (headlessHost) Close(uuid.UUID) {}

func (h headlessHost) Send(viewer uuid.UUID, key string, args map[string]string) {
	logger.Info(h.Format(key, args), "viewer", viewer)
}

func (headlessHost) Format(key string, args map[string]string) string {
	text, ok := messages[key]
	if !ok {
		text = key
	}
	pairs := make([]string, 0, 2*len(args))
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

func (headlessHost) Drop(player *domain.Player, items []*domain.ItemStack) {
	logger.Warn("Dropping items without a world", "player", player.Name, "stacks", len(items))
}
