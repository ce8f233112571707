package codec

import "github.com/osse101/InventoryRestore_Go/internal/domain"

// Restore merges a snapshot into target without overwriting anything the target holds.
//
// Main storage goes through AddItem. Armor and offhand pieces are placed only when the
// matching target slot is empty. Extra slots past the offhand are overflow carryover.
// Everything that could not be placed is offered to main storage once more, and what
// still does not fit is returned for the caller to drop.
func Restore(target *domain.Equipment, snapshot domain.Snapshot) []*domain.ItemStack {
	overflow := target.AddItem(domain.NonEmpty(snapshot.Contents())...)

	for i, item := range snapshot.Armor() {
		if item.IsEmpty() {
			continue
		}
		if i < domain.ArmorSize && target.Armor[i].IsEmpty() {
			target.Armor[i] = item
			continue
		}
		overflow = append(overflow, item)
	}

	if offhand := snapshot.Offhand(); offhand != nil {
		if target.Offhand.IsEmpty() {
			target.Offhand = offhand
		} else {
			overflow = append(overflow, offhand)
		}
	}

	overflow = append(overflow, carryover(snapshot)...)
	return target.AddItem(overflow...)
}

// ApplyOverwrite replaces main storage, armor and offhand slot for slot with the snapshot.
// Carryover items are added on top and whatever does not fit is returned.
func ApplyOverwrite(target *domain.Equipment, snapshot domain.Snapshot) []*domain.ItemStack {
	for i := range target.Storage {
		target.Storage[i] = snapshot.ContentAt(i)
	}
	for i := range target.Armor {
		target.Armor[i] = snapshot.ArmorAt(i)
	}
	target.Offhand = snapshot.Offhand()

	extra := carryover(snapshot)
	if armor := snapshot.Armor(); len(armor) > domain.ArmorSize {
		extra = append(extra, domain.NonEmpty(armor[domain.ArmorSize:])...)
	}
	if contents := snapshot.Contents(); len(contents) > domain.StorageSize {
		extra = append(extra, domain.NonEmpty(contents[domain.StorageSize:])...)
	}
	return target.AddItem(extra...)
}

// carryover returns the extra slots after the offhand.
func carryover(snapshot domain.Snapshot) []*domain.ItemStack {
	extra := snapshot.Extra()
	if len(extra) <= domain.ExtraOffhand+1 {
		return nil
	}
	return domain.NonEmpty(extra[domain.ExtraOffhand+1:])
}
