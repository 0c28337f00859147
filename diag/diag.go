// Package diag walks a live table's raw slot array and checks the
// invariants the table is supposed to maintain on its own, for use by
// operators who suspect a region has been corrupted by something outside
// the table's control (a crashed writer, a misbehaving second attacher).
package diag

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arrhash/arrhash"
	"github.com/arrhash/arrhash/hash"
)

// Report is the result of a consistency Scan.
type Report struct {
	NumKeys    int
	UsedSlots  int
	MaxSlots   int
	Violations []string
	// SkippedTruncatedKeys counts head/collision slots whose stored key was
	// truncated on insert (spec.md §4.4), and which I5 therefore could not
	// re-hash to verify; these are not violations.
	SkippedTruncatedKeys int
	// Checksum is an xxhash-64 digest over every slot's count/hash/link/size
	// fields, in index order; two regions with an identical Checksum have
	// identical chain structure (though not necessarily identical payload
	// bytes beyond what those fields describe).
	Checksum uint64
}

// Clean reports whether Scan found no invariant violations.
func (r Report) Clean() bool { return len(r.Violations) == 0 }

// Scan checks, for every slot in t:
//
//   - I1: usedSlots and num recorded in the header match what a full
//     sweep actually counts.
//   - I2: every collision member's home (its hash field) points at a head
//     slot whose counter is consistent with the number of live collision
//     members pointing at it, and no head with a counter above 1 is left
//     without collision members.
//   - I3: every spill fragment is reachable by following the link chain of
//     some head or collision slot exactly once (no orphans, no slot linked
//     from two chains).
//   - I5: every head/collision slot's hash field equals
//     murmur3_32(storedKey) mod maxSlots. Skipped, and counted in
//     SkippedTruncatedKeys instead of flagged, for slots whose key was too
//     long to store inline (spec.md §4.4) — the truncated prefix alone
//     doesn't hash to the same value as the original key.
//
// It never repairs anything; it only reports.
func Scan(t *arrhash.Table) Report {
	dump := t.Dump()
	num, usedSlots, maxSlots := t.Size()

	report := Report{NumKeys: num, UsedSlots: usedSlots, MaxSlots: maxSlots}

	digest := xxhash.New()
	for _, s := range dump {
		fmt.Fprintf(digest, "%d:%d:%d:%d;", s.Count, s.Hash, s.Link, s.Size)
	}
	report.Checksum = digest.Sum64()

	countedUsed := 0
	countedNum := 0
	reachedBySomeChain := make([]bool, len(dump))
	collisionCount := make(map[int]int) // home -> live collision members found

	for _, s := range dump {
		if s.Count == 0 {
			continue
		}
		countedUsed++

		switch {
		case s.Count > 0:
			countedNum++
			walkChain(dump, s.Index, reachedBySomeChain, &report)
			checkHomeHash(s, int32(maxSlots), &report)
		case s.Count == -1:
			countedNum++
			collisionCount[int(s.Hash)]++
			walkChain(dump, s.Index, reachedBySomeChain, &report)
			checkHomeHash(s, int32(maxSlots), &report)
		case s.Count == -2:
			// accounted for by walkChain from whichever head or collision
			// member owns it; flagged below if nothing claimed it.
		default:
			report.Violations = append(report.Violations,
				fmt.Sprintf("slot %d: invalid count tag %d", s.Index, s.Count))
		}
	}

	for _, s := range dump {
		if s.Count == -2 && !reachedBySomeChain[s.Index] {
			report.Violations = append(report.Violations,
				fmt.Sprintf("slot %d: spill fragment not reachable from any head or collision slot's link chain", s.Index))
		}
	}

	for home, n := range collisionCount {
		if home < 0 || home >= len(dump) {
			report.Violations = append(report.Violations,
				fmt.Sprintf("collision member(s) point at out-of-range home %d", home))
			continue
		}
		head := dump[home]
		if int(head.Count) != n+1 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("home %d: counter is %d but %d live collision member(s) found", home, head.Count, n))
		}
	}
	for _, s := range dump {
		if s.Count > 1 && collisionCount[s.Index] == 0 {
			report.Violations = append(report.Violations,
				fmt.Sprintf("home %d: counter is %d but 0 live collision member(s) found", s.Index, s.Count))
		}
	}

	if countedUsed != usedSlots {
		report.Violations = append(report.Violations,
			fmt.Sprintf("header usedSlots=%d but sweep counted %d occupied slots", usedSlots, countedUsed))
	}
	if countedNum != num {
		report.Violations = append(report.Violations,
			fmt.Sprintf("header num=%d but sweep counted %d head and collision slots", num, countedNum))
	}

	return report
}

// checkHomeHash verifies I5 for a single head or collision slot: its
// stored hash field must equal murmur3_32 of its stored key, mod
// maxSlots. A key longer than arrhash.KeySize was truncated on insert, so
// only its prefix survived and re-hashing it can't reproduce the original
// digest; such slots are skipped and counted instead of flagged.
func checkHomeHash(s arrhash.SlotDump, maxSlots int32, report *Report) {
	if s.KeyLen > int32(arrhash.KeySize) {
		report.SkippedTruncatedKeys++
		return
	}

	want := int32(hash.Murmur3_32(s.Key[:s.KeyLen]) % uint32(maxSlots))
	if s.Hash != want {
		report.Violations = append(report.Violations,
			fmt.Sprintf("slot %d: hash field is %d but murmur3_32(key) mod maxSlots is %d", s.Index, s.Hash, want))
	}
}

// walkChain follows the link chain starting at slot head (a head or
// collision slot), marking every spill fragment it passes through as
// reached, and flags a chain that revisits a slot (a cycle, which should
// never occur), reaches a slot another chain already reached, or runs off
// the end of the array.
func walkChain(dump []arrhash.SlotDump, head int, reached []bool, report *Report) {
	cur := head
	seen := map[int]bool{}
	for {
		link := int(dump[cur].Link)
		if link == -1 {
			return
		}
		if link < 0 || link >= len(dump) {
			report.Violations = append(report.Violations,
				fmt.Sprintf("head %d: link chain points out of range at slot %d (link=%d)", head, cur, link))
			return
		}
		if seen[link] {
			report.Violations = append(report.Violations,
				fmt.Sprintf("head %d: link chain revisits slot %d, likely a cycle", head, link))
			return
		}
		if reached[link] {
			report.Violations = append(report.Violations,
				fmt.Sprintf("head %d: link chain reaches slot %d, already linked from another chain", head, link))
			return
		}
		seen[link] = true
		reached[link] = true
		cur = link
	}
}
