package arrhash

// GetNext walks the slot array in index order, skipping empty slots and
// spill fragments (which belong to a key already visited as their head),
// starting from *cursor. It writes the next key/value pair, advances
// *cursor past the slot it returned, and returns ErrIterationDone once the
// array is exhausted (qhasharr_getnext, spec.md §4.9).
//
// To remove the just-returned element during iteration, call
// RemoveByIdx(idx) and then set *cursor back to idx before the next call:
// removing a head that has collision members moves one of those members
// into idx, and GetNext would otherwise resume past it. Other mutations
// mid-iteration (Put's squatter eviction, removing a different key) may
// move an element to another index, so a key may then be seen twice or
// not at all.
func (t *Table) GetNext(cursor *int) (key, value []byte, idx int, err error) {
	maxSlots := t.maxSlots()

	for i := *cursor; i < maxSlots; i++ {
		count := getCount(t.bytes, i)
		if count == slotEmpty || count == slotSpill {
			continue
		}

		keyLen := int(getKeyLen(t.bytes, i))
		n := keyLen
		if n > KeySize {
			n = KeySize
		}
		key = append([]byte(nil), keyBytes(t.bytes, i)[:n]...)
		value = t.getData(i)

		*cursor = i + 1
		return key, value, i, nil
	}

	*cursor = maxSlots
	return nil, nil, -1, ErrIterationDone
}
