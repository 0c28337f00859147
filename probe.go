package arrhash

import (
	"bytes"

	"github.com/arrhash/arrhash/hash"
)

// home returns the slot index key hashes to: murmur3_32(key) mod maxSlots
// (spec.md §4.2). Every process attaching the same region must compute
// this identically, so the hash function and the mod are part of the ABI.
func (t *Table) home(key []byte) int {
	return int(hash.Murmur3_32(key) % uint32(t.maxSlots()))
}

// findAvail returns the lowest index i >= start (wrapping to 0 at
// maxSlots) whose slot is empty, or -1 after a full ring traversal
// (spec.md §4.3).
func (t *Table) findAvail(start int) int {
	maxSlots := t.maxSlots()
	if start >= maxSlots || start < 0 {
		start = 0
	}

	idx := start
	for {
		if getCount(t.bytes, idx) == slotEmpty {
			return idx
		}

		idx++
		if idx >= maxSlots {
			idx = 0
		}
		if idx == start {
			return -1
		}
	}
}

// getIdx looks up key under the given home index, returning the slot
// holding it or -1 if absent (spec.md §4.4).
func (t *Table) getIdx(key []byte, home int) int {
	if getCount(t.bytes, home) <= 0 {
		return -1
	}

	maxSlots := t.maxSlots()
	target := int(getCount(t.bytes, home))
	keyLen := len(key)

	visited := 0
	idx := home
	for visited < target {
		c := getCount(t.bytes, idx)
		if int(getHash(t.bytes, idx)) == home && (c > 0 || c == slotCollision) {
			visited++

			if keyLen == int(getKeyLen(t.bytes, idx)) {
				if keyLen <= KeySize {
					if bytes.Equal(key, keyBytes(t.bytes, idx)[:keyLen]) {
						return idx
					}
				} else {
					digest := hash.MD5(key)
					if bytes.Equal(key[:KeySize], keyBytes(t.bytes, idx)) &&
						bytes.Equal(digest[:], keyMD5(t.bytes, idx)) {
						return idx
					}
				}
			}
		}

		idx++
		if idx >= maxSlots {
			idx = 0
		}
		if idx == home {
			break
		}
	}

	return -1
}
