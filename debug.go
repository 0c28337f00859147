package arrhash

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// SlotDump is a plain-data snapshot of one slot, for debugging only; it is
// not part of the ABI and its shape may change freely (qhasharr_debug,
// spec.md §1's "debug pretty-printing" collaborator).
type SlotDump struct {
	Index  int
	Count  int32
	Hash   int32
	Link   int32
	Size   int32
	KeyLen int32
	// Key is a copy of the inline key area (KeySize bytes). Only its first
	// KeyLen bytes are meaningful, and only when KeyLen <= KeySize; a
	// longer KeyLen means the original key was truncated on insert and Key
	// holds just the truncated prefix, not the full key.
	Key []byte
}

// Dump returns a SlotDump for every slot in index order, including empty
// ones, for feeding to a pretty-printer or a consistency scan.
func (t *Table) Dump() []SlotDump {
	maxSlots := t.maxSlots()
	out := make([]SlotDump, maxSlots)
	for i := 0; i < maxSlots; i++ {
		out[i] = SlotDump{
			Index:  i,
			Count:  getCount(t.bytes, i),
			Hash:   getHash(t.bytes, i),
			Link:   getLink(t.bytes, i),
			Size:   getSize(t.bytes, i),
			KeyLen: getKeyLen(t.bytes, i),
			Key:    append([]byte(nil), keyBytes(t.bytes, i)...),
		}
	}
	return out
}

// Debug writes a human-readable dump of every slot to w (qhasharr_debug).
func (t *Table) Debug(w io.Writer) {
	num, used, max := t.Size()
	spew.Fdump(w, struct {
		Num, UsedSlots, MaxSlots int
		Slots                    []SlotDump
	}{num, used, max, t.Dump()})
}
