package view

import "github.com/osse101/InventoryRestore_Go/internal/domain"

// Display is the slot grid a viewer sees. The UI layer writes operator edits into
// it; the controller renders snapshots into it and captures it back.
// Like live equipment, a display belongs to the foreground loop.
type Display struct {
	slots []*domain.ItemStack
}

// NewDisplay creates an empty display with size slots.
func NewDisplay(size int) *Display {
	return &Display{slots: make([]*domain.ItemStack, size)}
}

// Size returns the number of slots.
func (d *Display) Size() int {
	return len(d.slots)
}

// Item returns a copy of the item in slot, nil when empty or out of range.
func (d *Display) Item(slot int) *domain.ItemStack {
	if slot < 0 || slot >= len(d.slots) {
		return nil
	}
	return d.slots[slot].Clone()
}

// SetItem stores a copy of item in slot. Out of range slots are ignored.
func (d *Display) SetItem(slot int, item *domain.ItemStack) {
	if slot < 0 || slot >= len(d.slots) {
		return
	}
	d.slots[slot] = item.Clone()
}

// Clear empties every slot.
func (d *Display) Clear() {
	clear(d.slots)
}
