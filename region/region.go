// Package region supplies the backing memory for an arrhash table: a plain
// in-process buffer, a memory-mapped file, or a POSIX shared-memory
// segment. The arrhash core only ever requires a Region; attaching or
// allocating the bytes behind it is explicitly this package's job, never
// the core's (spec.md §1 Non-goals).
package region

// Region hands the arrhash core a contiguous, mutable byte slice and a way
// to release whatever OS resource backs it. Implementations never
// reallocate the slice returned by Bytes after construction — the core
// relies on that to keep slot indices stable across calls.
type Region interface {
	// Bytes returns the live backing slice. Mutations through the returned
	// slice are visible to any other attachment of the same region.
	Bytes() []byte

	// Close releases OS resources associated with this attachment. It does
	// not zero or otherwise modify the region's contents, so a second
	// attachment via OpenExisting can still observe them.
	Close() error
}
