package arrhash

// Get returns the value stored under key, or ErrNotFound if key is absent
// (qhasharr_get, spec.md §4.5). A zero-length stored value and an absent
// key are distinguishable: the former returns a zero-length slice and a
// nil error, the latter returns a nil slice and ErrNotFound.
func (t *Table) Get(key []byte) ([]byte, error) {
	idx := t.getIdx(key, t.home(key))
	if idx < 0 {
		return nil, ErrNotFound
	}
	return t.getData(idx), nil
}
