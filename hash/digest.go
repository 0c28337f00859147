package hash

import "crypto/md5" //nolint:gosec // digest only used for truncated-key disambiguation, not security.

// MD5Size is the byte width of an MD5 digest as stored inline in a slot.
const MD5Size = md5.Size

// MD5 returns the MD5 digest of data. Used only to disambiguate keys that
// had to be truncated to fit the inline key area; see arrhash's key
// comparison rules.
func MD5(data []byte) [MD5Size]byte {
	return md5.Sum(data)
}
