package diag_test

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arrhash/arrhash"
	"github.com/arrhash/arrhash/diag"
	"github.com/arrhash/arrhash/region"
)

// hashFieldOffset returns the byte offset of slot idx's hash field within
// buf. The header/slot layout (count, hash, link, size, each 4 bytes, in
// that order) is part of the fixed ABI (spec.md §3) and won't change.
func hashFieldOffset(idx int) int {
	headerSize := arrhash.RegionBytes(0)
	slotSize := arrhash.RegionBytes(1) - headerSize
	const hashFieldWithinSlot = 4
	return headerSize + idx*slotSize + hashFieldWithinSlot
}

func TestScanCleanOnFreshTable(t *testing.T) {
	buf := region.NewBuffer(arrhash.RegionBytes(32))
	tbl, err := arrhash.Open(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tbl.Close()

	for i := 0; i < 20; i++ {
		key := []byte{byte(i), byte(i >> 8), 'k'}
		if err := tbl.Put(key, []byte("value")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	report := diag.Scan(tbl)
	if !report.Clean() {
		t.Fatalf("expected no violations, got: %v", report.Violations)
	}

	want := diag.Report{NumKeys: report.NumKeys, UsedSlots: report.UsedSlots, MaxSlots: 32, Checksum: report.Checksum}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
}

func TestScanChecksumStableAcrossIdenticalState(t *testing.T) {
	build := func() *arrhash.Table {
		buf := region.NewBuffer(arrhash.RegionBytes(16))
		tbl, err := arrhash.Open(buf, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 5; i++ {
			key := []byte{byte('a' + i)}
			if err := tbl.Put(key, []byte("v")); err != nil {
				t.Fatal(err)
			}
		}
		return tbl
	}

	a := diag.Scan(build())
	b := diag.Scan(build())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("two identically-built tables produced different reports (-a +b):\n%s", diff)
	}
}

func TestScanCatchesCorruptedHashField(t *testing.T) {
	buf := region.NewBuffer(arrhash.RegionBytes(32))
	tbl, err := arrhash.Open(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tbl.Close()

	if err := tbl.Put([]byte("k"), []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}

	dump := tbl.Dump()
	victim := -1
	for _, s := range dump {
		if s.Count > 0 {
			victim = s.Index
			break
		}
	}
	if victim < 0 {
		t.Fatal("no head slot found after a successful put")
	}

	off := hashFieldOffset(victim)
	corrupted := dump[victim].Hash + 1
	binary.BigEndian.PutUint32(buf.Bytes()[off:off+4], uint32(corrupted))

	report := diag.Scan(tbl)
	if report.Clean() {
		t.Fatal("expected a violation after corrupting a head slot's hash field, got none")
	}
	if len(report.Violations) != 1 {
		t.Fatalf("violations = %v, want exactly one", report.Violations)
	}
}

func TestScanSkipsTruncatedKeysInHashCheck(t *testing.T) {
	buf := region.NewBuffer(arrhash.RegionBytes(16))
	tbl, err := arrhash.Open(buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer tbl.Close()

	long := make([]byte, arrhash.KeySize+5)
	for i := range long {
		long[i] = byte('a' + i%26)
	}
	if err := tbl.Put(long, []byte("v")); err != nil {
		t.Fatalf("put: %v", err)
	}

	report := diag.Scan(tbl)
	if !report.Clean() {
		t.Fatalf("expected no violations, got: %v", report.Violations)
	}
	if report.SkippedTruncatedKeys != 1 {
		t.Fatalf("SkippedTruncatedKeys = %d, want 1", report.SkippedTruncatedKeys)
	}
}
