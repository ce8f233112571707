package view

import (
	"fmt"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// Layout maps equipment slots onto display slots.
type Layout struct {
	Size int `validate:"min=9,max=54"`
	// ContentSlots[i] is the display slot of main storage slot i.
	ContentSlots []int `validate:"min=1,max=36"`
	Offhand      int
	Boots        int
	Leggings     int
	Chestplate   int
	Helmet       int
}

// DefaultLayout shows main storage in the first four rows and equipment on the bottom row.
func DefaultLayout() Layout {
	content := make([]int, domain.StorageSize)
	for i := range content {
		content[i] = i
	}
	return Layout{
		Size:         DefaultSize,
		ContentSlots: content,
		Offhand:      DefaultOffhandSlot,
		Boots:        DefaultBootsSlot,
		Leggings:     DefaultLeggingsSlot,
		Chestplate:   DefaultChestplateSlot,
		Helmet:       DefaultHelmetSlot,
	}
}

// armorSlots returns the display slots of boots, leggings, chestplate and helmet, in armor order.
func (l Layout) armorSlots() [domain.ArmorSize]int {
	return [domain.ArmorSize]int{l.Boots, l.Leggings, l.Chestplate, l.Helmet}
}

// Validate checks that the display size is whole rows and that every slot is in range and used once.
func (l Layout) Validate() error {
	if l.Size < RowWidth || l.Size > MaxSize || l.Size%RowWidth != 0 {
		return fmt.Errorf("%s: size %d must be a multiple of %d up to %d", ErrMsgInvalidLayout, l.Size, RowWidth, MaxSize)
	}
	if len(l.ContentSlots) == 0 || len(l.ContentSlots) > domain.StorageSize {
		return fmt.Errorf("%s: %d content slots, want 1 to %d", ErrMsgInvalidLayout, len(l.ContentSlots), domain.StorageSize)
	}

	seen := make(map[int]string, len(l.ContentSlots)+domain.ArmorSize+1)
	check := func(name string, slot int) error {
		if slot < 0 || slot >= l.Size {
			return fmt.Errorf("%s: %s slot %d outside display of %d", ErrMsgInvalidLayout, name, slot, l.Size)
		}
		if other, dup := seen[slot]; dup {
			return fmt.Errorf("%s: slot %d used by both %s and %s", ErrMsgInvalidLayout, slot, other, name)
		}
		seen[slot] = name
		return nil
	}

	for i, slot := range l.ContentSlots {
		if err := check(fmt.Sprintf("content %d", i), slot); err != nil {
			return err
		}
	}
	for _, named := range []struct {
		name string
		slot int
	}{
		{"offhand", l.Offhand},
		{"boots", l.Boots},
		{"leggings", l.Leggings},
		{"chestplate", l.Chestplate},
		{"helmet", l.Helmet},
	} {
		if err := check(named.name, named.slot); err != nil {
			return err
		}
	}
	return nil
}

// Render clears the tracked slots of d and draws the snapshot into them.
func (l Layout) Render(d *Display, snapshot domain.Snapshot) {
	for i, slot := range l.ContentSlots {
		d.SetItem(slot, snapshot.ContentAt(i))
	}
	for i, slot := range l.armorSlots() {
		d.SetItem(slot, snapshot.ArmorAt(i))
	}
	d.SetItem(l.Offhand, snapshot.Offhand())
}

// Capture reads the tracked slots of d back into a snapshot. Main storage slots
// without a display slot, and carryover past the offhand, are taken from base.
func (l Layout) Capture(d *Display, base domain.Snapshot) domain.Snapshot {
	contents := make([]*domain.ItemStack, domain.StorageSize)
	for i := range contents {
		if i < len(l.ContentSlots) {
			contents[i] = d.Item(l.ContentSlots[i])
		} else {
			contents[i] = base.ContentAt(i)
		}
	}

	armor := make([]*domain.ItemStack, domain.ArmorSize)
	for i, slot := range l.armorSlots() {
		armor[i] = d.Item(slot)
	}

	extra := []*domain.ItemStack{d.Item(l.Offhand)}
	if baseExtra := base.Extra(); len(baseExtra) > domain.ExtraSize {
		extra = append(extra, baseExtra[domain.ExtraSize:]...)
	}
	return domain.NewSnapshot(contents, armor, extra)
}
