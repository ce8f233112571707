package domain

import (
	"maps"
	"slices"
	"strings"
)

// ItemStack is a single stack of items occupying one equipment slot.
type ItemStack struct {
	Material     string         `json:"material"`
	Amount       int            `json:"amount"`
	Damage       int            `json:"damage,omitempty"`
	DisplayName  string         `json:"display_name,omitempty"`
	Lore         []string       `json:"lore,omitempty"`
	Enchantments map[string]int `json:"enchantments,omitempty"`
}

// NewItem creates a plain stack of the given material.
func NewItem(material string, amount int) *ItemStack {
	return &ItemStack{Material: material, Amount: amount}
}

// IsEmpty reports whether the slot holding s should be treated as empty.
// A nil stack, a blank or AIR material, and a non-positive amount are all empty.
func (s *ItemStack) IsEmpty() bool {
	if s == nil || s.Amount <= 0 {
		return true
	}
	material := strings.TrimSpace(s.Material)
	return material == "" || strings.EqualFold(material, MaterialAir)
}

// Clone returns a deep copy of s, or nil when s is empty.
func (s *ItemStack) Clone() *ItemStack {
	if s.IsEmpty() {
		return nil
	}
	clone := *s
	clone.Lore = slices.Clone(s.Lore)
	if s.Enchantments != nil {
		clone.Enchantments = maps.Clone(s.Enchantments)
	}
	return &clone
}

// WithAmount returns a copy of s holding amount items.
func (s *ItemStack) WithAmount(amount int) *ItemStack {
	clone := *s
	clone.Lore = slices.Clone(s.Lore)
	if s.Enchantments != nil {
		clone.Enchantments = maps.Clone(s.Enchantments)
	}
	clone.Amount = amount
	return &clone
}

// IsSimilar reports whether two stacks can be merged: every attribute except amount matches.
func (s *ItemStack) IsSimilar(other *ItemStack) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	if !strings.EqualFold(s.Material, other.Material) ||
		s.Damage != other.Damage ||
		s.DisplayName != other.DisplayName {
		return false
	}
	if !slices.Equal(s.Lore, other.Lore) {
		return false
	}
	if len(s.Enchantments) != len(other.Enchantments) {
		return false
	}
	for name, level := range s.Enchantments {
		if otherLevel, ok := other.Enchantments[name]; !ok || otherLevel != level {
			return false
		}
	}
	return true
}

// Equal reports whether two stacks are similar and hold the same amount.
// Two empty stacks are equal.
func (s *ItemStack) Equal(other *ItemStack) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return s.IsEmpty() && other.IsEmpty()
	}
	return s.Amount == other.Amount && s.IsSimilar(other)
}

// MaxStackSize returns how many items of this material fit in one slot.
func (s *ItemStack) MaxStackSize() int {
	if s == nil {
		return DefaultMaxStackSize
	}
	return MaxStackSizeFor(s.Material)
}

// MaxStackSizeFor returns the stack limit for a material name.
func MaxStackSizeFor(material string) int {
	name := strings.ToUpper(strings.TrimSpace(material))
	if _, ok := smallStackMaterials[name]; ok {
		return SmallMaxStackSize
	}
	for _, suffix := range unstackableSuffixes {
		if strings.HasSuffix(name, suffix) {
			return 1
		}
	}
	for _, suffix := range smallStackSuffixes {
		if strings.HasSuffix(name, suffix) {
			return SmallMaxStackSize
		}
	}
	return DefaultMaxStackSize
}

// CountItems sums the amounts of all non-empty stacks.
func CountItems(items []*ItemStack) int {
	total := 0
	for _, item := range items {
		if !item.IsEmpty() {
			total += item.Amount
		}
	}
	return total
}

// CloneItems deep-copies a slot group, normalizing empty slots to nil.
func CloneItems(items []*ItemStack) []*ItemStack {
	clone := make([]*ItemStack, len(items))
	for i, item := range items {
		clone[i] = item.Clone()
	}
	return clone
}

// NonEmpty returns deep copies of the non-empty stacks in items, in order.
func NonEmpty(items []*ItemStack) []*ItemStack {
	out := make([]*ItemStack, 0, len(items))
	for _, item := range items {
		if !item.IsEmpty() {
			out = append(out, item.Clone())
		}
	}
	return out
}
