package hash

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ra2003/prodint/internal/pool"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// KeyID computes the xxHash64 identity of a cache key rendered as
// "rangeName|name1,name2,...". Names must already be in canonical
// (sorted) order; the separator bytes keep adjacent fields from
// colliding structurally.
func KeyID(rangeName string, names []string) uint64 {
	buf := pool.GetKeyBuffer()
	defer pool.PutKeyBuffer(buf)

	buf.MustWriteString(rangeName)
	buf.MustWriteByte('|')
	for i, name := range names {
		if i > 0 {
			buf.MustWriteByte(',')
		}
		buf.MustWriteString(name)
	}

	return xxhash.Sum64(buf.Bytes())
}
