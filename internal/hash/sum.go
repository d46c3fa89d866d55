package hash

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Sum computes the xxHash64 of an encoded message.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// ETag returns a strong HTTP entity tag for an encoded message sent with the
// given content coding. Each coding is a distinct representation, so any
// coding other than "" or "identity" is appended to the tag.
func ETag(data []byte, coding string) string {
	tag := strconv.FormatUint(Sum(data), 16)
	if coding != "" && coding != "identity" {
		tag += "-" + coding
	}

	return `"` + tag + `"`
}
