package codec

// FormatVersion is written at the head of every encoded snapshot.
const FormatVersion = 1

// maxGroupSize bounds the slot count accepted for a single group while decoding.
const maxGroupSize = 4096

// Snapshot message fields
const (
	fieldVersion  = 1
	fieldContents = 2
	fieldArmor    = 3
	fieldExtra    = 4
)

// Group message fields
const (
	fieldGroupSize = 1
	fieldGroupSlot = 2
)

// Slot message fields
const (
	fieldSlotIndex = 1
	fieldSlotItem  = 2
)

// Item message fields
const (
	fieldItemMaterial    = 1
	fieldItemAmount      = 2
	fieldItemDamage      = 3
	fieldItemDisplayName = 4
	fieldItemLore        = 5
	fieldItemEnchantment = 6
)

// Enchantment message fields
const (
	fieldEnchantmentName  = 1
	fieldEnchantmentLevel = 2
)

// Error messages
const (
	ErrMsgEmptyBlob      = "inventory data is empty"
	ErrMsgBadBase64      = "inventory data is not valid base64"
	ErrMsgTruncated      = "inventory data is truncated"
	ErrMsgMissingVersion = "inventory data has no format version"
	ErrMsgUnknownVersion = "unsupported inventory format version"
	ErrMsgGroupTooLarge  = "slot group exceeds the supported size"
	ErrMsgSlotOutOfRange = "slot index outside its group"
	ErrMsgUnexpectedType = "unexpected wire type"
	ErrMsgDuplicateGroup = "slot group encoded twice"
)
