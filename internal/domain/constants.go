package domain

// ============================================================================
// Equipment Layout
// ============================================================================

// Canonical slot group sizes of a player's equipment
const (
	StorageSize = 36
	ArmorSize   = 4
	ExtraSize   = 1
)

// Armor slot indexes, in the order the armor group is stored
const (
	ArmorBoots      = 0
	ArmorLeggings   = 1
	ArmorChestplate = 2
	ArmorHelmet     = 3
)

// ExtraOffhand is the index of the offhand item inside the extra group.
const ExtraOffhand = 0

// ============================================================================
// Materials
// ============================================================================

// MaterialAir is the material of an empty slot.
const MaterialAir = "AIR"

// Stack limits
const (
	DefaultMaxStackSize = 64
	SmallMaxStackSize   = 16
)

var smallStackMaterials = map[string]struct{}{
	"ENDER_PEARL":  {},
	"SNOWBALL":     {},
	"EGG":          {},
	"BUCKET":       {},
	"HONEY_BOTTLE": {},
	"ARMOR_STAND":  {},
}

var unstackableSuffixes = []string{
	"_SWORD", "_AXE", "_PICKAXE", "_SHOVEL", "_HOE",
	"_HELMET", "_CHESTPLATE", "_LEGGINGS", "_BOOTS",
	"_BUCKET", "_BED", "_SHULKER_BOX", "SHULKER_BOX",
	"BOW", "CROSSBOW", "TRIDENT", "SHIELD", "ELYTRA", "TOTEM_OF_UNDYING",
	"FISHING_ROD", "FLINT_AND_STEEL", "SHEARS", "_BOAT", "MINECART",
	"POTION", "ENCHANTED_BOOK", "WRITABLE_BOOK", "_STEW", "_SOUP", "SADDLE",
}

var smallStackSuffixes = []string{"_SIGN", "_BANNER"}

// ============================================================================
// Record Formatting
// ============================================================================

// TimestampLayout is the layout of record timestamps (dd/mm/yy hh:mm:ss).
const TimestampLayout = "02/01/06 15:04:05"

// SortableTimestampLayout is the comparable form record timestamps are reordered into.
const SortableTimestampLayout = "2006-01-02 15:04:05"

// Unknown is stored when a location, world or cause cannot be resolved.
const Unknown = "Unknown"

// LegacyReturnedInventory is the literal older releases wrote into the inventory
// column once a record had been given back.
const LegacyReturnedInventory = "returned"
