package arrhash

import "github.com/arrhash/arrhash/hash"

// getData reassembles the full value stored in the chain starting at idx:
// first pass sums the size fields along the link chain, second pass copies
// each fragment into a freshly allocated buffer (spec.md §4.5).
func (t *Table) getData(idx int) []byte {
	total := 0
	for cur := idx; ; {
		total += int(getSize(t.bytes, cur))
		link := int(getLink(t.bytes, cur))
		if link == -1 {
			break
		}
		cur = link
	}

	value := make([]byte, total)
	pos := 0
	for cur := idx; ; {
		sz := int(getSize(t.bytes, cur))
		copy(value[pos:pos+sz], valueArea(t.bytes, cur)[:sz])
		pos += sz

		link := int(getLink(t.bytes, cur))
		if link == -1 {
			break
		}
		cur = link
	}

	return value
}

// putData writes a new element at idx: the key record (truncated to
// KeySize, plus keylen and MD5 digest), then the value streamed across the
// head slot and as many spill fragments as needed (spec.md §4.7).
//
// Precondition: slots[idx].count == 0. On failure partway through writing
// the value, the partial chain is unwound before returning ErrNoSpace.
func (t *Table) putData(idx, home int, key, value []byte, count int32) error {
	setCount(t.bytes, idx, count)
	setHash(t.bytes, idx, int32(home))
	setLink(t.bytes, idx, -1)

	copy(keyBytes(t.bytes, idx), key) // strncpy semantics: no terminator, comparisons are length-prefixed.
	digest := hash.MD5(key)
	copy(keyMD5(t.bytes, idx), digest[:])
	setKeyLen(t.bytes, idx, int32(len(key)))

	cur := idx
	saved := 0
	for saved < len(value) {
		if saved > 0 {
			next := t.findAvail(cur + 1)
			if next < 0 {
				t.removeDataChain(idx)
				return ErrNoSpace
			}

			zeroSlot(t.bytes, next)
			setCount(t.bytes, next, slotSpill)
			setHash(t.bytes, next, int32(cur)) // prev-link
			setLink(t.bytes, next, -1)
			setSize(t.bytes, next, 0)

			setLink(t.bytes, cur, int32(next))
			cur = next
		}

		remaining := len(value) - saved
		limit := HeadValueSize
		if getCount(t.bytes, cur) == slotSpill {
			limit = SpillValueSize
		}
		chunk := remaining
		if chunk > limit {
			chunk = limit
		}

		copy(valueArea(t.bytes, cur), value[saved:saved+chunk])
		setSize(t.bytes, cur, int32(chunk))
		saved += chunk

		if getCount(t.bytes, cur) != slotSpill {
			t.addNum(1)
		}
		t.addUsedSlots(1)
	}

	// A zero-length value skips the loop above entirely, but its head slot
	// is still occupied and still holds one key; account for both here.
	if len(value) == 0 {
		setSize(t.bytes, idx, 0)
		t.addNum(1)
		t.addUsedSlots(1)
	}

	return nil
}
