package codec

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

// Serialize encodes a snapshot into its durable text form.
//
// The payload is protobuf wire format (length-prefixed groups, sparse slots,
// enchantments sorted by name) armored with standard base64, so equal snapshots
// always produce equal blobs.
func Serialize(snapshot domain.Snapshot) string {
	b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, FormatVersion)
	b = appendGroup(b, fieldContents, snapshot.Contents())
	b = appendGroup(b, fieldArmor, snapshot.Armor())
	b = appendGroup(b, fieldExtra, snapshot.Extra())
	return base64.StdEncoding.EncodeToString(b)
}

// Deserialize decodes a blob produced by Serialize.
// Main storage beyond the canonical 36 slots is dropped. Any malformed input
// fails with an error wrapping domain.ErrInvalidFormat.
func Deserialize(blob string) (domain.Snapshot, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return domain.Snapshot{}, formatError(ErrMsgEmptyBlob, nil)
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return domain.Snapshot{}, formatError(ErrMsgBadBase64, err)
	}

	var (
		version    uint64
		hasVersion bool
		groups     [3][]*domain.ItemStack
		seen       [3]bool
	)
	err = walk(raw, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldVersion:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			version, hasVersion = v, true
			return n, nil
		case fieldContents, fieldArmor, fieldExtra:
			data, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			idx := int(num - fieldContents)
			if seen[idx] {
				return 0, formatError(ErrMsgDuplicateGroup, nil)
			}
			items, err := decodeGroup(data)
			if err != nil {
				return 0, err
			}
			groups[idx], seen[idx] = items, true
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	if !hasVersion {
		return domain.Snapshot{}, formatError(ErrMsgMissingVersion, nil)
	}
	if version != FormatVersion {
		return domain.Snapshot{}, formatError(fmt.Sprintf("%s %d", ErrMsgUnknownVersion, version), nil)
	}

	contents := groups[0]
	if len(contents) > domain.StorageSize {
		contents = contents[:domain.StorageSize]
	}
	return domain.NewSnapshot(contents, groups[1], groups[2]), nil
}

func appendGroup(b []byte, num protowire.Number, items []*domain.ItemStack) []byte {
	group := protowire.AppendTag(nil, fieldGroupSize, protowire.VarintType)
	group = protowire.AppendVarint(group, uint64(len(items)))
	for i, item := range items {
		if item.IsEmpty() {
			continue
		}
		slot := protowire.AppendTag(nil, fieldSlotIndex, protowire.VarintType)
		slot = protowire.AppendVarint(slot, uint64(i))
		slot = protowire.AppendTag(slot, fieldSlotItem, protowire.BytesType)
		slot = protowire.AppendBytes(slot, appendItem(nil, item))

		group = protowire.AppendTag(group, fieldGroupSlot, protowire.BytesType)
		group = protowire.AppendBytes(group, slot)
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, group)
}

func appendItem(b []byte, item *domain.ItemStack) []byte {
	b = protowire.AppendTag(b, fieldItemMaterial, protowire.BytesType)
	b = protowire.AppendString(b, item.Material)
	b = protowire.AppendTag(b, fieldItemAmount, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(item.Amount)))
	if item.Damage != 0 {
		b = protowire.AppendTag(b, fieldItemDamage, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(item.Damage)))
	}
	if item.DisplayName != "" {
		b = protowire.AppendTag(b, fieldItemDisplayName, protowire.BytesType)
		b = protowire.AppendString(b, item.DisplayName)
	}
	for _, line := range item.Lore {
		b = protowire.AppendTag(b, fieldItemLore, protowire.BytesType)
		b = protowire.AppendString(b, line)
	}

	names := make([]string, 0, len(item.Enchantments))
	for name := range item.Enchantments {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ench := protowire.AppendTag(nil, fieldEnchantmentName, protowire.BytesType)
		ench = protowire.AppendString(ench, name)
		ench = protowire.AppendTag(ench, fieldEnchantmentLevel, protowire.VarintType)
		ench = protowire.AppendVarint(ench, protowire.EncodeZigZag(int64(item.Enchantments[name])))

		b = protowire.AppendTag(b, fieldItemEnchantment, protowire.BytesType)
		b = protowire.AppendBytes(b, ench)
	}
	return b
}

type decodedSlot struct {
	index uint64
	item  *domain.ItemStack
}

func decodeGroup(data []byte) ([]*domain.ItemStack, error) {
	var (
		size  uint64
		slots []decodedSlot
	)
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldGroupSize:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			size = v
			return n, nil
		case fieldGroupSlot:
			raw, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			slot, err := decodeSlot(raw)
			if err != nil {
				return 0, err
			}
			slots = append(slots, slot)
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	if err != nil {
		return nil, err
	}
	if size > maxGroupSize {
		return nil, formatError(fmt.Sprintf("%s (%d)", ErrMsgGroupTooLarge, size), nil)
	}

	items := make([]*domain.ItemStack, size)
	for _, slot := range slots {
		if slot.index >= size {
			return nil, formatError(fmt.Sprintf("%s (%d >= %d)", ErrMsgSlotOutOfRange, slot.index, size), nil)
		}
		items[slot.index] = slot.item
	}
	return items, nil
}

func decodeSlot(data []byte) (decodedSlot, error) {
	var slot decodedSlot
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldSlotIndex:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			slot.index = v
			return n, nil
		case fieldSlotItem:
			raw, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			item, err := decodeItem(raw)
			if err != nil {
				return 0, err
			}
			slot.item = item
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	return slot, err
}

func decodeItem(data []byte) (*domain.ItemStack, error) {
	item := &domain.ItemStack{}
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldItemMaterial, fieldItemDisplayName, fieldItemLore:
			raw, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			switch num {
			case fieldItemMaterial:
				item.Material = string(raw)
			case fieldItemDisplayName:
				item.DisplayName = string(raw)
			default:
				item.Lore = append(item.Lore, string(raw))
			}
			return n, nil
		case fieldItemAmount, fieldItemDamage:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			if num == fieldItemAmount {
				item.Amount = int(protowire.DecodeZigZag(v))
			} else {
				item.Damage = int(protowire.DecodeZigZag(v))
			}
			return n, nil
		case fieldItemEnchantment:
			raw, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			name, level, err := decodeEnchantment(raw)
			if err != nil {
				return 0, err
			}
			if item.Enchantments == nil {
				item.Enchantments = make(map[string]int)
			}
			item.Enchantments[name] = level
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	if err != nil {
		return nil, err
	}
	if item.IsEmpty() {
		return nil, nil
	}
	return item, nil
}

func decodeEnchantment(data []byte) (string, int, error) {
	var (
		name  string
		level int
	)
	err := walk(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldEnchantmentName:
			raw, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}
			name = string(raw)
			return n, nil
		case fieldEnchantmentLevel:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, err
			}
			level = int(protowire.DecodeZigZag(v))
			return n, nil
		default:
			return skip(num, typ, b)
		}
	})
	return name, level, err
}

// walk visits every field of a message. fn returns how many bytes of the field value it consumed.
func walk(b []byte, fn func(num protowire.Number, typ protowire.Type, value []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return formatError(ErrMsgTruncated, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := fn(num, typ, b)
		if err != nil {
			return err
		}
		b = b[m:]
	}
	return nil
}

func consumeVarint(typ protowire.Type, b []byte) (uint64, int, error) {
	if typ != protowire.VarintType {
		return 0, 0, formatError(ErrMsgUnexpectedType, nil)
	}
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, formatError(ErrMsgTruncated, protowire.ParseError(n))
	}
	return v, n, nil
}

func consumeBytes(typ protowire.Type, b []byte) ([]byte, int, error) {
	if typ != protowire.BytesType {
		return nil, 0, formatError(ErrMsgUnexpectedType, nil)
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, formatError(ErrMsgTruncated, protowire.ParseError(n))
	}
	return v, n, nil
}

func skip(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
	n := protowire.ConsumeFieldValue(num, typ, b)
	if n < 0 {
		return 0, formatError(ErrMsgTruncated, protowire.ParseError(n))
	}
	return n, nil
}

func formatError(msg string, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrInvalidFormat, msg, cause)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidFormat, msg)
}
