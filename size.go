package arrhash

// Size reports the table's current occupancy: num is the count of stored
// keys, usedSlots is the count of physically occupied slots (a key with a
// big value occupies more than one), and maxSlots is the fixed capacity
// set at Open time (spec.md §4.10).
func (t *Table) Size() (num, usedSlots, maxSlots int) {
	return t.numKeys(), t.usedSlots(), t.maxSlots()
}

// Clear removes every key, resetting the table to the state Open leaves it
// in, without touching maxSlots (qhasharr_clear, spec.md §4.10).
func (t *Table) Clear() {
	maxSlots := t.maxSlots()
	for i := 0; i < maxSlots; i++ {
		zeroSlot(t.bytes, i)
	}
	t.setUsedSlots(0)
	t.setNum(0)
}
