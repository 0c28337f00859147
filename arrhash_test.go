package arrhash_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrhash/arrhash"
	"github.com/arrhash/arrhash/region"
)

func newTable(t *testing.T, maxSlots int) *arrhash.Table {
	t.Helper()
	buf := region.NewBuffer(arrhash.RegionBytes(maxSlots))
	tbl, err := arrhash.Open(buf, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tbl.Close() })
	return tbl
}

// mustGet fetches key and fails the test if it isn't found.
func mustGet(t *testing.T, tbl *arrhash.Table, key []byte) []byte {
	t.Helper()
	value, err := tbl.Get(key)
	require.NoError(t, err)
	return value
}

func TestBasicPutGet(t *testing.T) {
	tbl := newTable(t, 16)

	require.NoError(t, tbl.Put([]byte("alpha"), []byte("one")))
	require.NoError(t, tbl.Put([]byte("beta"), []byte("two")))

	require.Equal(t, []byte("one"), mustGet(t, tbl, []byte("alpha")))
	require.Equal(t, []byte("two"), mustGet(t, tbl, []byte("beta")))

	_, err := tbl.Get([]byte("missing"))
	require.ErrorIs(t, err, arrhash.ErrNotFound)
}

func TestLastWriteWins(t *testing.T) {
	tbl := newTable(t, 16)

	require.NoError(t, tbl.Put([]byte("k"), []byte("first")))
	require.NoError(t, tbl.Put([]byte("k"), []byte("second, and longer")))

	require.Equal(t, []byte("second, and longer"), mustGet(t, tbl, []byte("k")))

	num, _, _ := tbl.Size()
	require.Equal(t, 1, num, "overwriting a key must not create a second entry")
}

func TestRemoveThenMiss(t *testing.T) {
	tbl := newTable(t, 16)
	require.NoError(t, tbl.Put([]byte("k"), []byte("v")))

	require.NoError(t, tbl.Remove([]byte("k")))
	_, err := tbl.Get([]byte("k"))
	require.ErrorIs(t, err, arrhash.ErrNotFound)
	require.ErrorIs(t, tbl.Remove([]byte("k")), arrhash.ErrNotFound)
}

func TestBigValueSpansMultipleSlots(t *testing.T) {
	tbl := newTable(t, 16)

	big := make([]byte, arrhash.HeadValueSize+3*arrhash.SpillValueSize+1)
	for i := range big {
		big[i] = byte(i)
	}

	require.NoError(t, tbl.Put([]byte("blob"), big))
	require.Equal(t, big, mustGet(t, tbl, []byte("blob")))

	_, used, _ := tbl.Size()
	require.Greater(t, used, 1, "a value bigger than one slot must occupy spill fragments")
}

func TestTruncatedKeyDisambiguation(t *testing.T) {
	tbl := newTable(t, 16)

	base := make([]byte, arrhash.KeySize+10)
	for i := range base {
		base[i] = 'a'
	}
	key1 := append([]byte(nil), base...)
	key2 := append([]byte(nil), base...)
	key2[len(key2)-1] = 'b' // differ only past the truncation point

	require.NoError(t, tbl.Put(key1, []byte("v1")))
	require.NoError(t, tbl.Put(key2, []byte("v2")))

	require.Equal(t, []byte("v1"), mustGet(t, tbl, key1))
	require.Equal(t, []byte("v2"), mustGet(t, tbl, key2))
}

func TestTableFullReturnsErrNoSpace(t *testing.T) {
	tbl := newTable(t, 4)

	filled := 0
	for i := 0; i < 100; i++ {
		key := []byte(fmt.Sprintf("key-%d", i))
		err := tbl.Put(key, []byte("v"))
		if err != nil {
			require.ErrorIs(t, err, arrhash.ErrNoSpace)
			break
		}
		filled++
	}

	require.Less(t, filled, 100, "a 4-slot table must eventually report ErrNoSpace")

	_, used, max := tbl.Size()
	require.Equal(t, max, used, "ErrNoSpace should coincide with a fully used table")
}

func TestIterationVisitsEveryKeyExactlyOnce(t *testing.T) {
	tbl := newTable(t, 32)

	const n = 12
	want := map[string]string{}
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("item-%02d", i)
		val := fmt.Sprintf("value-%02d", i)
		require.NoError(t, tbl.Put([]byte(key), []byte(val)))
		want[key] = val
	}

	got := map[string]string{}
	cursor := 0
	for {
		key, value, _, err := tbl.GetNext(&cursor)
		if err != nil {
			require.ErrorIs(t, err, arrhash.ErrIterationDone)
			break
		}
		got[string(key)] = string(value)
	}

	require.Equal(t, want, got)
}

func TestClearResetsButKeepsCapacity(t *testing.T) {
	tbl := newTable(t, 8)
	require.NoError(t, tbl.Put([]byte("a"), []byte("1")))
	require.NoError(t, tbl.Put([]byte("b"), []byte("2")))

	tbl.Clear()

	num, used, max := tbl.Size()
	require.Equal(t, 0, num)
	require.Equal(t, 0, used)
	require.Equal(t, 8, max)
	_, err := tbl.Get([]byte("a"))
	require.ErrorIs(t, err, arrhash.ErrNotFound)
}

func TestTypedAccessors(t *testing.T) {
	tbl := newTable(t, 16)

	require.NoError(t, tbl.PutString([]byte("name"), "qlibc"))
	str, ok := tbl.GetString([]byte("name"))
	require.True(t, ok)
	require.Equal(t, "qlibc", str)

	require.NoError(t, tbl.PutInt64([]byte("count"), 42))
	require.EqualValues(t, 42, tbl.GetInt64([]byte("count")))

	require.NoError(t, tbl.PutFormatted([]byte("greeting"), "hello, %s!", "world"))
	str, ok = tbl.GetString([]byte("greeting"))
	require.True(t, ok)
	require.Equal(t, "hello, world!", str)

	require.Zero(t, tbl.GetInt64([]byte("missing")))
}

func TestOpenExistingAttachesToPriorState(t *testing.T) {
	buf := region.NewBuffer(arrhash.RegionBytes(16))

	tbl, err := arrhash.Open(buf, nil)
	require.NoError(t, err)
	require.NoError(t, tbl.Put([]byte("k"), []byte("v")))

	reattached, err := arrhash.OpenExisting(buf, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("v"), mustGet(t, reattached, []byte("k")))
}

func TestRemoveByIdxRejectsBadIndex(t *testing.T) {
	tbl := newTable(t, 8)

	require.ErrorIs(t, tbl.RemoveByIdx(-1), arrhash.ErrInvalidArg)
	require.ErrorIs(t, tbl.RemoveByIdx(8), arrhash.ErrInvalidArg)
	require.ErrorIs(t, tbl.RemoveByIdx(1000), arrhash.ErrInvalidArg)
}

func TestOpenRejectsUndersizedRegion(t *testing.T) {
	buf := region.NewBuffer(4)
	_, err := arrhash.Open(buf, nil)
	require.ErrorIs(t, err, arrhash.ErrInvalidRegion)
}

// TestCollisionAndEvictionSurviveManyKeys exercises hash collisions and
// home-slot eviction indirectly: with a small table and enough distinct
// keys, the pigeonhole principle guarantees some keys share a home and
// some home slots get squatted and later reclaimed, all without needing to
// know murmur3's output for any particular key ahead of time.
func TestCollisionAndEvictionSurviveManyKeys(t *testing.T) {
	tbl := newTable(t, 64)

	want := map[string][]byte{}
	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("k%d", i)
		val := []byte(fmt.Sprintf("val-%d-payload", i))
		require.NoError(t, tbl.Put([]byte(key), val))
		want[key] = val
	}

	for key, val := range want {
		require.Equal(t, val, mustGet(t, tbl, []byte(key)), "key %q", key)
	}

	num, _, _ := tbl.Size()
	require.Equal(t, len(want), num)

	// Remove half, confirm the rest survive.
	i := 0
	for key := range want {
		if i%2 == 0 {
			require.NoError(t, tbl.Remove([]byte(key)))
			delete(want, key)
		}
		i++
	}
	for key, val := range want {
		require.Equal(t, val, mustGet(t, tbl, []byte(key)), "key %q after partial removal", key)
	}
}
