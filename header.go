package arrhash

import "encoding/binary"

// header mirrors the three counters stored at the front of the region.
// Table methods always re-read these from the region rather than caching
// them in Go fields, matching spec.md §2: "every public operation ...
// recomputes the slot base from the header."
type header struct {
	maxSlots   int32
	usedSlots  int32
	num        int32
}

func readHeader(region []byte) header {
	return header{
		maxSlots:  int32(binary.BigEndian.Uint32(region[headerOffMaxSlots:])),
		usedSlots: int32(binary.BigEndian.Uint32(region[headerOffUsedSlots:])),
		num:       int32(binary.BigEndian.Uint32(region[headerOffNum:])),
	}
}

func writeHeader(region []byte, h header) {
	binary.BigEndian.PutUint32(region[headerOffMaxSlots:], uint32(h.maxSlots))
	binary.BigEndian.PutUint32(region[headerOffUsedSlots:], uint32(h.usedSlots))
	binary.BigEndian.PutUint32(region[headerOffNum:], uint32(h.num))
}

func setMaxSlots(region []byte, v int32) {
	binary.BigEndian.PutUint32(region[headerOffMaxSlots:], uint32(v))
}

func setUsedSlots(region []byte, v int32) {
	binary.BigEndian.PutUint32(region[headerOffUsedSlots:], uint32(v))
}

func setNum(region []byte, v int32) {
	binary.BigEndian.PutUint32(region[headerOffNum:], uint32(v))
}

func getMaxSlots(region []byte) int32 { return int32(binary.BigEndian.Uint32(region[headerOffMaxSlots:])) }
func getUsedSlots(region []byte) int32 {
	return int32(binary.BigEndian.Uint32(region[headerOffUsedSlots:]))
}
func getNum(region []byte) int32 { return int32(binary.BigEndian.Uint32(region[headerOffNum:])) }
