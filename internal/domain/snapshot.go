package domain

// Snapshot is an immutable copy of an equipment state.
//
// It holds three slot groups: contents (main storage), armor (boots, leggings,
// chestplate, helmet) and extra (offhand first, overflow carryover after it).
// Groups may be longer or shorter than their canonical size; the *At accessors
// default missing slots to empty.
type Snapshot struct {
	contents []*ItemStack
	armor    []*ItemStack
	extra    []*ItemStack
}

// NewSnapshot deep-copies the given groups into a snapshot.
func NewSnapshot(contents, armor, extra []*ItemStack) Snapshot {
	return Snapshot{
		contents: CloneItems(contents),
		armor:    CloneItems(armor),
		extra:    CloneItems(extra),
	}
}

// Contents returns a copy of the main storage group.
func (s Snapshot) Contents() []*ItemStack { return CloneItems(s.contents) }

// Armor returns a copy of the armor group.
func (s Snapshot) Armor() []*ItemStack { return CloneItems(s.armor) }

// Extra returns a copy of the extra group.
func (s Snapshot) Extra() []*ItemStack { return CloneItems(s.extra) }

// ContentAt returns a copy of main storage slot i, nil when absent or empty.
func (s Snapshot) ContentAt(i int) *ItemStack { return at(s.contents, i) }

// ArmorAt returns a copy of armor slot i, nil when absent or empty.
func (s Snapshot) ArmorAt(i int) *ItemStack { return at(s.armor, i) }

// ExtraAt returns a copy of extra slot i, nil when absent or empty.
func (s Snapshot) ExtraAt(i int) *ItemStack { return at(s.extra, i) }

// Offhand returns a copy of the offhand item.
func (s Snapshot) Offhand() *ItemStack { return at(s.extra, ExtraOffhand) }

// Len returns the declared sizes of the three groups.
func (s Snapshot) Len() (contents, armor, extra int) {
	return len(s.contents), len(s.armor), len(s.extra)
}

// Items returns copies of every non-empty stack across all groups.
func (s Snapshot) Items() []*ItemStack {
	items := NonEmpty(s.contents)
	items = append(items, NonEmpty(s.armor)...)
	return append(items, NonEmpty(s.extra)...)
}

// ItemCount sums the amounts of all stacks in the snapshot.
func (s Snapshot) ItemCount() int {
	return CountItems(s.contents) + CountItems(s.armor) + CountItems(s.extra)
}

// IsEmpty reports whether the snapshot holds no items.
func (s Snapshot) IsEmpty() bool {
	return s.ItemCount() == 0
}

// Equal reports whether both snapshots hold equal stacks at the same indexes.
// Trailing empty slots are ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	return groupEqual(s.contents, other.contents) &&
		groupEqual(s.armor, other.armor) &&
		groupEqual(s.extra, other.extra)
}

func at(items []*ItemStack, i int) *ItemStack {
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i].Clone()
}

func groupEqual(a, b []*ItemStack) bool {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var left, right *ItemStack
		if i < len(a) {
			left = a[i]
		}
		if i < len(b) {
			right = b[i]
		}
		if !left.Equal(right) {
			return false
		}
	}
	return true
}
