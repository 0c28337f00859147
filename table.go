// Package arrhash implements a fixed-capacity, in-place hash table that
// lives entirely inside a caller-supplied contiguous memory region: open
// addressing with linear probing, counter-based collision chains rooted on
// the home slot, linked spill chains for values too big for one slot, and
// home-slot eviction when a key's home is squatted by a foreigner.
//
// The table keeps no out-of-region pointers — every link is a slot index —
// so the region can be a shared-memory segment or a memory-mapped file
// attached by more than one process (see the region package). The table
// itself performs no synchronization; callers sharing a region across
// goroutines or processes must serialize access externally.
package arrhash

import "github.com/arrhash/arrhash/region"

// Table is a bound handle to a region: a region pointer plus the dispatch
// of operations defined in this package. Table creates no hidden state
// other than this small handle; destroying it with Close never touches the
// region's contents.
type Table struct {
	r     region.Region
	bytes []byte
	log   func(msg string, args ...interface{})
}

// Open initializes a fresh table inside r. The region is zeroed, its
// maxSlots is computed from len(r.Bytes()), and usedSlots/num are set to
// zero. Returns ErrInvalidRegion if the region cannot host even one slot.
// A nil opts uses defaultOptions.
//
// This is the "byte count is positive" path of spec.md §4.1.
func Open(r region.Region, opts *Options) (*Table, error) {
	o := resolveOptions(opts)

	b := r.Bytes()
	if len(b) < headerSize+slotSize {
		return nil, ErrInvalidRegion
	}

	maxSlots := (len(b) - headerSize) / slotSize
	if maxSlots < 1 {
		return nil, ErrInvalidRegion
	}
	o.Log("arrhash: opening fresh table, maxSlots=%d", maxSlots)

	for i := range b {
		b[i] = 0
	}
	setMaxSlots(b, int32(maxSlots))
	setUsedSlots(b, 0)
	setNum(b, 0)

	return &Table{r: r, bytes: b, log: o.Log}, nil
}

// OpenExisting re-attaches to a region a previous call to Open already
// initialized, trusting the header already present in it. No bytes are
// written. This is the "byte count is zero" path of spec.md §4.1. A nil
// opts uses defaultOptions.
func OpenExisting(r region.Region, opts *Options) (*Table, error) {
	o := resolveOptions(opts)

	b := r.Bytes()
	if len(b) < headerSize {
		return nil, ErrInvalidRegion
	}

	t := &Table{r: r, bytes: b, log: o.Log}
	if t.maxSlots() < 1 {
		return nil, ErrInvalidRegion
	}
	o.Log("arrhash: attaching existing table, maxSlots=%d numKeys=%d", t.maxSlots(), t.numKeys())
	return t, nil
}

// Close destroys the handle and closes the region.Region it was opened
// with, releasing whatever OS resource backs it. The region's contents are
// left as they are.
func (t *Table) Close() error {
	t.log("arrhash: closing table")
	return t.r.Close()
}

func (t *Table) maxSlots() int  { return int(getMaxSlots(t.bytes)) }
func (t *Table) usedSlots() int { return int(getUsedSlots(t.bytes)) }
func (t *Table) numKeys() int   { return int(getNum(t.bytes)) }

func (t *Table) setUsedSlots(v int) { setUsedSlots(t.bytes, int32(v)) }
func (t *Table) setNum(v int)       { setNum(t.bytes, int32(v)) }

func (t *Table) addUsedSlots(delta int) { t.setUsedSlots(t.usedSlots() + delta) }
func (t *Table) addNum(delta int)       { t.setNum(t.numKeys() + delta) }
