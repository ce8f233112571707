package codec

import (
	"encoding/base64"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/osse101/InventoryRestore_Go/internal/domain"
)

func sampleEquipment() *domain.Equipment {
	eq := domain.NewEquipment()
	eq.Storage[0] = domain.NewItem("STONE", 32)
	eq.Storage[7] = &domain.ItemStack{
		Material:     "DIAMOND_SWORD",
		Amount:       1,
		Damage:       12,
		DisplayName:  "Oathkeeper",
		Lore:         []string{"first line", "second line"},
		Enchantments: map[string]int{"sharpness": 5, "unbreaking": 3, "looting": 2},
	}
	eq.Storage[35] = domain.NewItem("ENDER_PEARL", 16)
	eq.Armor[domain.ArmorHelmet] = domain.NewItem("IRON_HELMET", 1)
	eq.Offhand = domain.NewItem("SHIELD", 1)
	return eq
}

func TestCapture_DoesNotAliasEquipment(t *testing.T) {
	eq := sampleEquipment()
	snap := Capture(eq)

	eq.Storage[0].Amount = 1
	eq.Storage[7].Enchantments["sharpness"] = 1
	eq.Offhand = nil

	assert.Equal(t, 32, snap.ContentAt(0).Amount)
	assert.Equal(t, 5, snap.ContentAt(7).Enchantments["sharpness"])
	assert.Equal(t, "SHIELD", snap.Offhand().Material)

	contents, armor, extra := snap.Len()
	assert.Equal(t, domain.StorageSize, contents)
	assert.Equal(t, domain.ArmorSize, armor)
	assert.Equal(t, domain.ExtraSize, extra)
}

func TestSerialize_RoundTrip(t *testing.T) {
	snap := Capture(sampleEquipment())

	blob := Serialize(snap)
	decoded, err := Deserialize(blob)

	require.NoError(t, err)
	assert.True(t, snap.Equal(decoded))
	assert.Equal(t, "Oathkeeper", decoded.ContentAt(7).DisplayName)
	assert.Equal(t, []string{"first line", "second line"}, decoded.ContentAt(7).Lore)
	assert.Equal(t, 12, decoded.ContentAt(7).Damage)
	assert.Nil(t, decoded.ContentAt(1))
	assert.Equal(t, "IRON_HELMET", decoded.ArmorAt(domain.ArmorHelmet).Material)

	contents, armor, extra := decoded.Len()
	assert.Equal(t, domain.StorageSize, contents)
	assert.Equal(t, domain.ArmorSize, armor)
	assert.Equal(t, domain.ExtraSize, extra)
}

func TestSerialize_RoundTripEmptyAndCarryover(t *testing.T) {
	empty := Capture(domain.NewEquipment())
	decoded, err := Deserialize(Serialize(empty))
	require.NoError(t, err)
	assert.True(t, decoded.IsEmpty())

	withCarryover := domain.NewSnapshot(nil, nil, []*domain.ItemStack{nil, domain.NewItem("GOLD_INGOT", 9), domain.NewItem("DIRT", 3)})
	decoded, err = Deserialize(Serialize(withCarryover))
	require.NoError(t, err)
	assert.Nil(t, decoded.Offhand())
	assert.Equal(t, 9, decoded.ExtraAt(1).Amount)
	assert.Equal(t, 3, decoded.ExtraAt(2).Amount)
}

func TestSerialize_Deterministic(t *testing.T) {
	snap := Capture(sampleEquipment())
	first := Serialize(snap)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Serialize(Capture(sampleEquipment())))
	}
}

func TestDeserialize_TruncatesOversizedStorage(t *testing.T) {
	contents := make([]*domain.ItemStack, 40)
	contents[2] = domain.NewItem("STONE", 4)
	contents[38] = domain.NewItem("DIAMOND", 1)

	decoded, err := Deserialize(Serialize(domain.NewSnapshot(contents, nil, nil)))
	require.NoError(t, err)

	n, _, _ := decoded.Len()
	assert.Equal(t, domain.StorageSize, n)
	assert.Equal(t, 4, decoded.ContentAt(2).Amount)
	assert.Nil(t, decoded.ContentAt(38))
	assert.Equal(t, 4, decoded.ItemCount())
}

func TestDeserialize_SkipsUnknownFields(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(Serialize(Capture(sampleEquipment())))
	require.NoError(t, err)
	raw = protowire.AppendTag(raw, 15, protowire.BytesType)
	raw = protowire.AppendString(raw, "future data")

	decoded, err := Deserialize(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	assert.True(t, Capture(sampleEquipment()).Equal(decoded))
}

func TestDeserialize_Malformed(t *testing.T) {
	encode := func(b []byte) string { return base64.StdEncoding.EncodeToString(b) }
	versioned := func(version uint64) []byte {
		b := protowire.AppendTag(nil, fieldVersion, protowire.VarintType)
		return protowire.AppendVarint(b, version)
	}
	group := func(size, index uint64) []byte {
		slot := protowire.AppendTag(nil, fieldSlotIndex, protowire.VarintType)
		slot = protowire.AppendVarint(slot, index)
		g := protowire.AppendTag(nil, fieldGroupSize, protowire.VarintType)
		g = protowire.AppendVarint(g, size)
		g = protowire.AppendTag(g, fieldGroupSlot, protowire.BytesType)
		return protowire.AppendBytes(g, slot)
	}
	withGroup := func(num protowire.Number, g []byte) []byte {
		b := versioned(FormatVersion)
		b = protowire.AppendTag(b, num, protowire.BytesType)
		return protowire.AppendBytes(b, g)
	}

	tests := []struct {
		name string
		blob string
		msg  string
	}{
		{"empty", "   ", ErrMsgEmptyBlob},
		{"not base64", "%%%not-base64%%%", ErrMsgBadBase64},
		{"truncated tag", encode([]byte{0xff}), ErrMsgTruncated},
		{"truncated value", encode(protowire.AppendTag(nil, fieldContents, protowire.BytesType)), ErrMsgTruncated},
		{"no version field", encode(protowire.AppendBytes(protowire.AppendTag(nil, fieldArmor, protowire.BytesType), nil)), ErrMsgMissingVersion},
		{"future version", encode(versioned(FormatVersion + 1)), ErrMsgUnknownVersion},
		{"wrong wire type", encode(protowire.AppendVarint(protowire.AppendTag(nil, fieldContents, protowire.VarintType), 3)), ErrMsgUnexpectedType},
		{"group too large", encode(withGroup(fieldContents, group(maxGroupSize+1, 0))), ErrMsgGroupTooLarge},
		{"slot out of range", encode(withGroup(fieldArmor, group(4, 4))), ErrMsgSlotOutOfRange},
		{"duplicate group", encode(append(withGroup(fieldExtra, group(1, 0)), withGroup(fieldExtra, group(1, 0))[2:]...)), ErrMsgDuplicateGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(tt.blob)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidFormat)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestIsEmpty(t *testing.T) {
	eq := domain.NewEquipment()
	assert.True(t, IsEmpty(eq))

	eq.Storage[20] = domain.NewItem("STICK", 1)
	assert.False(t, IsEmpty(eq))

	eq = domain.NewEquipment()
	eq.Armor[domain.ArmorBoots] = domain.NewItem("LEATHER_BOOTS", 1)
	assert.False(t, IsEmpty(eq))

	eq = domain.NewEquipment()
	eq.Offhand = domain.NewItem("TORCH", 3)
	assert.False(t, IsEmpty(eq))
}

func TestRestore_MergesWithoutOverwriting(t *testing.T) {
	target := domain.NewEquipment()
	target.Storage[0] = domain.NewItem("DIRT", 10)
	target.Armor[domain.ArmorHelmet] = domain.NewItem("GOLDEN_HELMET", 1)

	source := domain.NewEquipment()
	source.Storage[0] = domain.NewItem("STONE", 5)
	source.Armor[domain.ArmorHelmet] = domain.NewItem("IRON_HELMET", 1)
	source.Armor[domain.ArmorBoots] = domain.NewItem("IRON_BOOTS", 1)
	source.Offhand = domain.NewItem("SHIELD", 1)

	overflow := Restore(target, Capture(source))

	assert.Empty(t, overflow)
	assert.Equal(t, "DIRT", target.Storage[0].Material)
	assert.Equal(t, "STONE", target.Storage[1].Material)
	assert.Equal(t, "GOLDEN_HELMET", target.Armor[domain.ArmorHelmet].Material)
	assert.Equal(t, "IRON_BOOTS", target.Armor[domain.ArmorBoots].Material)
	assert.Equal(t, "SHIELD", target.Offhand.Material)
	// displaced helmet lands in main storage
	assert.Equal(t, "IRON_HELMET", target.Storage[2].Material)
}

func TestRestore_ReturnsOverflowWhenFull(t *testing.T) {
	target := domain.NewEquipment()
	for i := range target.Storage {
		target.Storage[i] = domain.NewItem("COBBLESTONE", 64)
	}
	target.Offhand = domain.NewItem("TORCH", 1)

	source := domain.NewSnapshot(
		[]*domain.ItemStack{domain.NewItem("DIAMOND", 3)},
		nil,
		[]*domain.ItemStack{domain.NewItem("SHIELD", 1), domain.NewItem("EMERALD", 2)},
	)

	overflow := Restore(target, source)

	require.Len(t, overflow, 3)
	assert.Equal(t, 6, domain.CountItems(overflow))
}

func TestRestore_ConservesItems(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	materials := []string{"STONE", "DIRT", "ENDER_PEARL", "DIAMOND_SWORD", "IRON_HELMET", "SNOWBALL", "OAK_LOG"}

	randomGroup := func(size int, fill float64) []*domain.ItemStack {
		items := make([]*domain.ItemStack, size)
		for i := range items {
			if rng.Float64() < fill {
				material := materials[rng.IntN(len(materials))]
				items[i] = domain.NewItem(material, 1+rng.IntN(domain.MaxStackSizeFor(material)))
			}
		}
		return items
	}

	for round := 0; round < 200; round++ {
		target := domain.NewEquipment()
		copy(target.Storage[:], randomGroup(domain.StorageSize, rng.Float64()))
		copy(target.Armor[:], randomGroup(domain.ArmorSize, 0.5))
		target.Offhand = randomGroup(1, 0.5)[0]

		source := domain.NewSnapshot(
			randomGroup(domain.StorageSize+rng.IntN(4), rng.Float64()),
			randomGroup(domain.ArmorSize, 0.5),
			randomGroup(1+rng.IntN(3), 0.7),
		)

		before := target.ItemCount()
		overflow := Restore(target, source)

		require.Equal(t, before+source.ItemCount(), target.ItemCount()+domain.CountItems(overflow), "round %d", round)
	}
}

func TestApplyOverwrite(t *testing.T) {
	target := sampleEquipment()

	source := domain.NewSnapshot(
		[]*domain.ItemStack{nil, domain.NewItem("BREAD", 4)},
		[]*domain.ItemStack{domain.NewItem("CHAINMAIL_BOOTS", 1)},
		[]*domain.ItemStack{nil, domain.NewItem("APPLE", 2)},
	)

	overflow := ApplyOverwrite(target, source)

	assert.Empty(t, overflow)
	assert.Equal(t, "APPLE", target.Storage[0].Material)
	assert.Equal(t, "BREAD", target.Storage[1].Material)
	assert.Nil(t, target.Storage[7])
	assert.Nil(t, target.Storage[35])
	assert.Equal(t, "CHAINMAIL_BOOTS", target.Armor[domain.ArmorBoots].Material)
	assert.Nil(t, target.Armor[domain.ArmorHelmet])
	assert.Nil(t, target.Offhand)
}
