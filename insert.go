package arrhash

// Put inserts or overwrites key with value. Returns ErrNoSpace if the
// table has no free slot left, ErrInvalidArg if key is empty (qhasharr_put,
// spec.md §4.6).
//
// Four cases, mirroring the original: the home slot is empty (straight
// insert); the home slot is owned by this exact key (remove then re-insert,
// which recomputes everything cleanly) or by a different key hashing to the
// same home (collision member placed elsewhere, head's counter bumped); or
// the home slot is occupied by something that merely landed there while
// probing for its own different home (a "squatter" — a collision member or
// a spill fragment) and must be evicted to make room for the rightful head.
func (t *Table) Put(key, value []byte) error {
	if len(key) == 0 {
		return ErrInvalidArg
	}
	if t.usedSlots() >= t.maxSlots() {
		return ErrNoSpace
	}

	home := t.home(key)

	switch {
	case getCount(t.bytes, home) == slotEmpty:
		return t.putData(home, home, key, value, 1)

	case getCount(t.bytes, home) > 0:
		if idx := t.getIdx(key, home); idx >= 0 {
			if err := t.Remove(key); err != nil {
				return err
			}
			return t.Put(key, value)
		}

		idx := t.findAvail(home)
		if idx < 0 {
			return ErrNoSpace
		}
		if err := t.putData(idx, home, key, value, slotCollision); err != nil {
			return err
		}
		setCount(t.bytes, home, getCount(t.bytes, home)+1)
		return nil

	default:
		// home is squatted by a collision member (-1) or spill fragment
		// (-2) that belongs to some other key's chain; relocate it.
		idx := t.findAvail(home + 1)
		if idx < 0 {
			return ErrNoSpace
		}

		t.claimSlot(idx, home)
		t.removeSlot(home)

		if getCount(t.bytes, idx) == slotSpill {
			prev := int(getHash(t.bytes, idx))
			setLink(t.bytes, prev, int32(idx))
			if link := int(getLink(t.bytes, idx)); link != -1 {
				setHash(t.bytes, link, int32(idx))
			}
		}

		return t.putData(home, home, key, value, 1)
	}
}
