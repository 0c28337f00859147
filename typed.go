package arrhash

import (
	"fmt"
	"strconv"
)

// PutString stores str under key as a NUL-terminated byte string, matching
// qhasharr_putstr's on-disk convention so a region written by this package
// and one written by the original C stay byte-compatible.
func (t *Table) PutString(key []byte, str string) error {
	return t.Put(key, append([]byte(str), 0))
}

// PutFormatted is PutString with fmt.Sprintf applied to format and args
// first (qhasharr_putstrf).
func (t *Table) PutFormatted(key []byte, format string, args ...interface{}) error {
	return t.PutString(key, fmt.Sprintf(format, args...))
}

// PutInt64 stores num as its decimal string representation, NUL-terminated
// (qhasharr_putint).
func (t *Table) PutInt64(key []byte, num int64) error {
	return t.PutString(key, strconv.FormatInt(num, 10))
}

// GetString returns the string stored at key with its trailing NUL
// stripped, and whether key was found (qhasharr_getstr).
func (t *Table) GetString(key []byte) (string, bool) {
	value, err := t.Get(key)
	if err != nil {
		return "", false
	}

	if n := len(value); n > 0 && value[n-1] == 0 {
		value = value[:n-1]
	}
	return string(value), true
}

// GetInt64 parses the string stored at key as a base-10 int64, returning 0
// if key is absent or the stored string doesn't parse (qhasharr_getint,
// which defers to atoll's permissive partial-parse; strconv.ParseInt is
// stricter, so a non-numeric stored string yields 0 here too).
func (t *Table) GetInt64(key []byte) int64 {
	str, ok := t.GetString(key)
	if !ok {
		return 0
	}
	num, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0
	}
	return num
}
