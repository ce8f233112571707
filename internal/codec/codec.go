// Package codec converts live equipment into immutable snapshots and
// snapshots into their durable text encoding.
package codec

import "github.com/osse101/InventoryRestore_Go/internal/domain"

// Capture deep-copies the live equipment into a snapshot.
// The result shares no memory with equipment and stays valid after it changes.
func Capture(equipment *domain.Equipment) domain.Snapshot {
	if equipment == nil {
		return domain.NewSnapshot(make([]*domain.ItemStack, domain.StorageSize), make([]*domain.ItemStack, domain.ArmorSize), make([]*domain.ItemStack, domain.ExtraSize))
	}
	return domain.NewSnapshot(equipment.Storage[:], equipment.Armor[:], []*domain.ItemStack{equipment.Offhand})
}

// IsEmpty reports whether main storage, armor and offhand are all empty.
func IsEmpty(equipment *domain.Equipment) bool {
	return equipment == nil || equipment.IsEmpty()
}
