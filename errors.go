package arrhash

import "errors"

// Sentinel errors returned by Table operations, matching the error kinds
// named in spec.md §7. Callers should compare with errors.Is.
var (
	// ErrInvalidArg is returned by Put for an empty (or nil) key and by
	// RemoveByIdx for an out-of-range index.
	ErrInvalidArg = errors.New("arrhash: invalid argument")

	// ErrInvalidRegion is returned by Open/OpenExisting when the region is
	// too small to host even one slot, or its header is unusable.
	ErrInvalidRegion = errors.New("arrhash: region too small for one slot")

	// ErrNoSpace is returned when the slot ring has no empty slot left for
	// a new head, collision member, or spill fragment.
	ErrNoSpace = errors.New("arrhash: no space")

	// ErrNotFound is returned when a key (or index) has no live element.
	ErrNotFound = errors.New("arrhash: key not found")

	// ErrOutOfMemory is returned when allocating the buffer for a returned
	// value fails. Go's allocator panics rather than returning an error in
	// practice, so this exists mainly to complete the error-kind contract.
	ErrOutOfMemory = errors.New("arrhash: allocation failed")

	// ErrCorrupt indicates an invariant check inside RemoveByIdx failed:
	// a slot tagged as head-with-collisions has no locatable sibling, or a
	// collision member's home counter was not positive. Non-recoverable;
	// it means the region's invariants were violated, most likely by a
	// racing writer that should have been excluded by the caller.
	ErrCorrupt = errors.New("arrhash: invariant violation")

	// ErrIterationDone is returned by GetNext once the cursor has passed
	// the last slot.
	ErrIterationDone = errors.New("arrhash: iteration complete")
)
