package arrhash

// Compile-time ABI widths (spec.md §3: "K, V, V' ... must be identical
// across every process that attaches the region"). Changing any of these
// changes the on-disk/on-segment layout; every attaching process must be
// built from the same revision.
const (
	// KeySize (K) is the number of inline key bytes stored in a head or
	// collision slot. Keys longer than this are truncated and disambiguated
	// with an MD5 digest of the full key (see §4.4's comparison rule).
	KeySize = 40

	// HeadValueSize (V) is the number of inline value bytes stored in a
	// head or collision slot, before spilling into continuation slots.
	HeadValueSize = 48

	// SpillValueSize (V') is the number of inline value bytes stored in a
	// spill fragment slot.
	SpillValueSize = 56
)

// Header layout: three signed 32-bit counters, zero-padded to a fixed size.
// There is no magic or version field (spec.md §6): compatibility is by
// build identity, not by a self-describing header.
const (
	headerOffMaxSlots   = 0
	headerOffUsedSlots  = 4
	headerOffNum        = 8
	headerSize          = 16 // padded; bytes [12:16) are reserved and left zero.
)

// Slot record layout. The fixed header (count/hash/link/size) is followed
// by a body whose interpretation depends on count: a key/value pair for a
// head or collision slot, or a bare value continuation for a spill
// fragment. Both interpretations start at the same body offset, mirroring
// the C union the ABI is modeled on (spec.md §3).
const (
	slotOffCount = 0
	slotOffHash  = 4
	slotOffLink  = 8
	slotOffSize  = 12
	slotOffBody  = 16

	pairOffKey    = slotOffBody
	pairOffMD5    = pairOffKey + KeySize
	pairOffKeyLen = pairOffMD5 + 16 // hash.MD5Size, spelled out to keep consts pure literals.
	pairOffValue  = pairOffKeyLen + 4
	pairBodySize  = KeySize + 16 + 4 + HeadValueSize

	spillOffValue = slotOffBody
	spillBodySize = SpillValueSize
)

// bodySize is the footprint shared by both body interpretations. The pair
// body is intentionally sized to be the larger of the two so a single
// slotSize covers both; see the TestBodySizeInvariant sanity check.
const bodySize = pairBodySize

// slotSize is the fixed size S of one slot record.
const slotSize = slotOffBody + bodySize

// slotOffset returns the byte offset of slot idx within the region.
func slotOffset(idx int) int {
	return headerSize + idx*slotSize
}

// RegionBytes returns the number of bytes a region must be at least to
// host maxSlots slots (spec.md §4.1's qhasharr_calculate_memsize
// equivalent).
func RegionBytes(maxSlots int) int {
	return headerSize + slotSize*maxSlots
}
