package arrhash

import "encoding/binary"

// Slot count tags (spec.md §3 "count tag encoding").
const (
	slotEmpty    int32 = 0
	slotSpill    int32 = -2
	slotCollision int32 = -1
	// Any value >= 1 is a head slot whose payload is a member of a chain
	// of that many elements (itself plus count-1 collision members).
)

func getCount(region []byte, idx int) int32 {
	return int32(binary.BigEndian.Uint32(region[slotOffset(idx)+slotOffCount:]))
}

func setCount(region []byte, idx int, v int32) {
	binary.BigEndian.PutUint32(region[slotOffset(idx)+slotOffCount:], uint32(v))
}

func getHash(region []byte, idx int) int32 {
	return int32(binary.BigEndian.Uint32(region[slotOffset(idx)+slotOffHash:]))
}

func setHash(region []byte, idx int, v int32) {
	binary.BigEndian.PutUint32(region[slotOffset(idx)+slotOffHash:], uint32(v))
}

func getLink(region []byte, idx int) int32 {
	return int32(binary.BigEndian.Uint32(region[slotOffset(idx)+slotOffLink:]))
}

func setLink(region []byte, idx int, v int32) {
	binary.BigEndian.PutUint32(region[slotOffset(idx)+slotOffLink:], uint32(v))
}

func getSize(region []byte, idx int) int32 {
	return int32(binary.BigEndian.Uint32(region[slotOffset(idx)+slotOffSize:]))
}

func setSize(region []byte, idx int, v int32) {
	binary.BigEndian.PutUint32(region[slotOffset(idx)+slotOffSize:], uint32(v))
}

// keyBytes returns a view (not a copy) of the inline key area of slot idx.
func keyBytes(region []byte, idx int) []byte {
	off := slotOffset(idx) + pairOffKey
	return region[off : off+KeySize]
}

func keyMD5(region []byte, idx int) []byte {
	off := slotOffset(idx) + pairOffMD5
	return region[off : off+16]
}

func getKeyLen(region []byte, idx int) int32 {
	off := slotOffset(idx) + pairOffKeyLen
	return int32(binary.BigEndian.Uint32(region[off:]))
}

func setKeyLen(region []byte, idx int, v int32) {
	off := slotOffset(idx) + pairOffKeyLen
	binary.BigEndian.PutUint32(region[off:], uint32(v))
}

// pairValueArea returns the fixed HeadValueSize inline value area of a
// head/collision slot.
func pairValueArea(region []byte, idx int) []byte {
	off := slotOffset(idx) + pairOffValue
	return region[off : off+HeadValueSize]
}

// spillValueArea returns the fixed SpillValueSize inline value area of a
// spill fragment slot.
func spillValueArea(region []byte, idx int) []byte {
	off := slotOffset(idx) + spillOffValue
	return region[off : off+SpillValueSize]
}

// valueArea returns whichever of the two value areas is appropriate given
// the slot's own count tag.
func valueArea(region []byte, idx int) []byte {
	if getCount(region, idx) == slotSpill {
		return spillValueArea(region, idx)
	}
	return pairValueArea(region, idx)
}

// zeroSlot clears every field of slot idx to its empty-slot value.
func zeroSlot(region []byte, idx int) {
	off := slotOffset(idx)
	for i := 0; i < slotSize; i++ {
		region[off+i] = 0
	}
}

// copySlotRaw copies the entire fixed-size record from src to dst.
func copySlotRaw(region []byte, dst, src int) {
	dstOff, srcOff := slotOffset(dst), slotOffset(src)
	copy(region[dstOff:dstOff+slotSize], region[srcOff:srcOff+slotSize])
}
