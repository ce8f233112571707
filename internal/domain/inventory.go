package domain

// Equipment is the live, mutable equipment of a player.
// It is owned by the foreground loop and must only be touched there.
type Equipment struct {
	Storage [StorageSize]*ItemStack
	Armor   [ArmorSize]*ItemStack
	Offhand *ItemStack
}

// NewEquipment returns an empty equipment state.
func NewEquipment() *Equipment {
	return &Equipment{}
}

// IsEmpty reports whether main storage, armor and offhand are all empty.
func (e *Equipment) IsEmpty() bool {
	for _, item := range e.Storage {
		if !item.IsEmpty() {
			return false
		}
	}
	for _, item := range e.Armor {
		if !item.IsEmpty() {
			return false
		}
	}
	return e.Offhand.IsEmpty()
}

// ItemCount sums every item amount held in the equipment.
func (e *Equipment) ItemCount() int {
	return CountItems(e.Storage[:]) + CountItems(e.Armor[:]) + CountItems([]*ItemStack{e.Offhand})
}

// FirstEmpty returns the first empty main storage slot, or -1 when storage is full.
func (e *Equipment) FirstEmpty() int {
	for i, item := range e.Storage {
		if item.IsEmpty() {
			return i
		}
	}
	return -1
}

// AddItem places items into main storage the way a player inventory does:
// similar partial stacks are topped up first in slot order, then empty slots are filled.
// Stacks above the material's stack limit are split. Whatever does not fit is returned.
func (e *Equipment) AddItem(items ...*ItemStack) []*ItemStack {
	var leftovers []*ItemStack
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		remaining := item.Amount
		limit := item.MaxStackSize()

		for i := range e.Storage {
			if remaining == 0 {
				break
			}
			slot := e.Storage[i]
			if !slot.IsSimilar(item) || slot.Amount >= limit {
				continue
			}
			moved := min(limit-slot.Amount, remaining)
			slot.Amount += moved
			remaining -= moved
		}

		for remaining > 0 {
			free := e.FirstEmpty()
			if free < 0 {
				break
			}
			moved := min(limit, remaining)
			e.Storage[free] = item.WithAmount(moved)
			remaining -= moved
		}

		if remaining > 0 {
			leftovers = append(leftovers, item.WithAmount(remaining))
		}
	}
	return leftovers
}

// Clear empties every slot.
func (e *Equipment) Clear() {
	*e = Equipment{}
}
