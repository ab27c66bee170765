// Package snapshot serializes decomposition-cache keys for warm starts.
//
// Rebuilding a cached decomposition from its key is deterministic, so the
// keys alone reproduce a product's cache: export them with Product.CacheKeys,
// persist the encoded payload, and replay it later through Product.Prime.
// The partial-integral terms themselves are never serialized.
//
// Payload layout: a 4-byte magic, a version byte, a compression tag byte,
// then the compressed body. The body is a uvarint key count followed by,
// per key, the range name and the uvarint-counted variable names, each as a
// uvarint length prefix plus bytes.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ra2003/prodint/cache"
	"github.com/ra2003/prodint/compress"
	"github.com/ra2003/prodint/errs"
	"github.com/ra2003/prodint/internal/pool"
)

var magic = []byte("PISN")

const (
	version    = 0x1
	headerSize = 6 // magic + version + compression tag
)

// Encode serializes keys into a snapshot payload compressed with the given
// codec type.
func Encode(keys []cache.Key, codecType compress.Type) ([]byte, error) {
	codec, err := compress.GetCodec(codecType)
	if err != nil {
		return nil, err
	}

	buf := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(buf)

	buf.B = binary.AppendUvarint(buf.B, uint64(len(keys)))
	for _, key := range keys {
		appendString(buf, key.Range())
		names := key.Names()
		buf.B = binary.AppendUvarint(buf.B, uint64(len(names)))
		for _, name := range names {
			appendString(buf, name)
		}
	}

	body, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, headerSize+len(body))
	out = append(out, magic...)
	out = append(out, version, byte(codecType))
	out = append(out, body...)

	return out, nil
}

// Decode parses a snapshot payload back into cache keys.
func Decode(data []byte) ([]cache.Key, error) {
	if len(data) < headerSize || !bytes.Equal(data[:len(magic)], magic) {
		return nil, fmt.Errorf("%w: bad magic", errs.ErrInvalidSnapshot)
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidSnapshot, data[4])
	}

	codec, err := compress.GetCodec(compress.Type(data[5]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSnapshot, err)
	}
	body, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidSnapshot, err)
	}

	r := reader{buf: body}
	count := r.count("key count")
	keys := make([]cache.Key, 0, count)
	for i := uint64(0); i < count && r.err == nil; i++ {
		rangeName := r.string()
		nameCount := r.count("name count")
		names := make([]string, 0, nameCount)
		for j := uint64(0); j < nameCount && r.err == nil; j++ {
			names = append(names, r.string())
		}
		keys = append(keys, cache.NewKey(names, rangeName))
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.pos != len(r.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes after %d keys", errs.ErrInvalidSnapshot, len(r.buf)-r.pos, count)
	}

	return keys, nil
}

func appendString(buf *pool.ByteBuffer, s string) {
	buf.B = binary.AppendUvarint(buf.B, uint64(len(s)))
	buf.MustWriteString(s)
}

// reader walks a decoded body, latching the first framing error.
type reader struct {
	buf []byte
	pos int
	err error
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}

	v, n := binary.Uvarint(r.buf[r.pos:])
	if n <= 0 {
		r.err = fmt.Errorf("%w: truncated varint at offset %d", errs.ErrInvalidSnapshot, r.pos)
		return 0
	}
	r.pos += n

	return v
}

// count reads a uvarint element count and bounds it against the remaining
// body: every counted element occupies at least one byte, so a larger claim
// is corrupt and must fail before it sizes an allocation.
func (r *reader) count(what string) uint64 {
	n := r.uvarint()
	if r.err != nil {
		return 0
	}
	if remaining := uint64(len(r.buf) - r.pos); n > remaining {
		r.err = fmt.Errorf("%w: %s %d exceeds %d remaining bytes", errs.ErrInvalidSnapshot, what, n, remaining)
		return 0
	}

	return n
}

func (r *reader) string() string {
	n := r.uvarint()
	if r.err != nil {
		return ""
	}
	if uint64(len(r.buf)-r.pos) < n {
		r.err = fmt.Errorf("%w: truncated string at offset %d", errs.ErrInvalidSnapshot, r.pos)
		return ""
	}

	s := string(r.buf[r.pos : r.pos+int(n)])
	r.pos += int(n)

	return s
}
