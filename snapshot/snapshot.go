// Package snapshot exports and imports the key/value contents of an
// arrhash.Table as a portable file, independent of the region backing the
// live table. Unlike the table's own byte layout, a snapshot carries no
// ABI assumptions: it is a plain list of records, checksummed as a whole.
package snapshot

import (
	"bytes"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/natefinch/atomic"
	"github.com/zeebo/blake3"

	"github.com/arrhash/arrhash"
)

// record is one key/value pair as stored in a snapshot file.
type record struct {
	Key   []byte `cbor:"k"`
	Value []byte `cbor:"v"`
}

const checksumSize = 32 // blake3.New's default digest size

// Export writes every key/value pair currently in t to path: a CBOR-encoded
// list of records followed by a BLAKE3 checksum of that payload, written
// atomically so a crash mid-write never leaves a half-written file visible
// under path.
func Export(t *arrhash.Table, path string) error {
	var records []record

	cursor := 0
	for {
		key, value, _, err := t.GetNext(&cursor)
		if err != nil {
			if err == arrhash.ErrIterationDone {
				break
			}
			return fmt.Errorf("snapshot export: %w", err)
		}
		records = append(records, record{Key: key, Value: value})
	}

	payload, err := cbor.Marshal(records)
	if err != nil {
		return fmt.Errorf("snapshot export: encoding records: %w", err)
	}

	sum := blake3.Sum256(payload)

	var out bytes.Buffer
	out.Write(payload)
	out.Write(sum[:])

	return atomic.WriteFile(path, &out)
}

// Import reads a file written by Export and Puts every record into t,
// returning the number of records restored. The checksum is verified
// before any decoding is attempted.
func Import(t *arrhash.Table, path string) (int, error) {
	raw, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return 0, fmt.Errorf("snapshot import: %w", err)
	}
	if len(raw) < checksumSize {
		return 0, fmt.Errorf("snapshot import: file too small to contain a checksum")
	}

	payload, wantSum := raw[:len(raw)-checksumSize], raw[len(raw)-checksumSize:]
	gotSum := blake3.Sum256(payload)
	if !bytes.Equal(gotSum[:], wantSum) {
		return 0, fmt.Errorf("snapshot import: checksum mismatch, file is corrupt")
	}

	var records []record
	if err := cbor.Unmarshal(payload, &records); err != nil {
		return 0, fmt.Errorf("snapshot import: decoding records: %w", err)
	}

	for _, r := range records {
		if err := t.Put(r.Key, r.Value); err != nil {
			return 0, fmt.Errorf("snapshot import: restoring key %q: %w", r.Key, err)
		}
	}
	return len(records), nil
}
