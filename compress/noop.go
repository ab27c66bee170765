package compress

// NoOpCodec bypasses compression, returning input slices as-is.
//
// Both directions return the input slice without copying, so callers must
// not modify the input afterwards if they keep the returned slice.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a pass-through codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
