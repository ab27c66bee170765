package compress

import "fmt"

// Type identifies a compression algorithm. The value is stored verbatim in
// snapshot headers, so existing values must never be renumbered.
type Type uint8

const (
	None Type = 0x1 // None bypasses compression.
	Zstd Type = 0x2 // Zstd is Zstandard compression.
	S2   Type = 0x3 // S2 is S2 (Snappy-compatible) compression.
	LZ4  Type = 0x4 // LZ4 is LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case None:
		return "None"
	case Zstd:
		return "Zstd"
	case S2:
		return "S2"
	case LZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a complete payload in one call.
//
// Memory management:
//   - The returned slice is newly allocated and owned by the caller, except
//     for pass-through implementations which document otherwise.
//   - The input slice is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor for the same algorithm. Implementations
// validate the input framing and return an error for corrupted data.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[Type]Codec{
	None: NewNoOpCodec(),
	Zstd: NewZstdCodec(),
	S2:   NewS2Codec(),
	LZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the given type.
func GetCodec(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", t)
}
