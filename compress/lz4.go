package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// Leading flag byte of an LZ4 payload. The block format is not
// self-describing, and CompressBlock reports incompressible input by writing
// nothing, so such payloads are stored raw behind a flag.
const (
	lz4FlagRaw   = 0x0
	lz4FlagBlock = 0x1
)

// LZ4Codec compresses snapshot payloads with LZ4 block compression.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Compress compresses the input data using a pooled LZ4 block compressor.
// Incompressible input is stored raw.
func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4FlagBlock

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		out := make([]byte, 1+len(data))
		out[0] = lz4FlagRaw
		copy(out[1:], data)

		return out, nil
	}

	return dst[:1+n], nil
}

// Decompress decompresses an LZ4 payload. The block format does not record
// the decompressed size, so the buffer starts at 4x the compressed size and
// doubles on ErrInvalidSourceShortBuffer up to a safety limit.
func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4FlagRaw:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	case lz4FlagBlock:
	default:
		return nil, fmt.Errorf("lz4: unknown payload flag 0x%x", data[0])
	}
	block := data[1:]

	bufSize := len(block) * 4
	const maxSize = 16 * 1024 * 1024 // snapshots are small; anything past this is corrupt

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
