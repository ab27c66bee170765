package pool

import (
	"io"
	"sync"
)

const (
	// KeyBufferDefaultSize covers typical cache-key renderings (a range name
	// plus a handful of variable names).
	KeyBufferDefaultSize  = 256
	KeyBufferMaxThreshold = 1024 * 4

	// SnapshotBufferDefaultSize covers typical snapshot bodies before
	// compression.
	SnapshotBufferDefaultSize  = 1024 * 4
	SnapshotBufferMaxThreshold = 1024 * 256
)

// ByteBuffer is a reusable byte slice wrapper handed out by ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// MustWriteString appends s to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWriteString(s string) {
	bb.B = append(bb.B, s...)
}

// MustWriteByte appends a single byte to the buffer.
func (bb *ByteBuffer) MustWriteByte(b byte) {
	bb.B = append(bb.B, b)
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally. A maximum size threshold avoids retaining
// overly large buffers that would lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	keyDefaultPool      = NewByteBufferPool(KeyBufferDefaultSize, KeyBufferMaxThreshold)
	snapshotDefaultPool = NewByteBufferPool(SnapshotBufferDefaultSize, SnapshotBufferMaxThreshold)
)

// GetKeyBuffer retrieves a ByteBuffer from the default cache-key pool.
func GetKeyBuffer() *ByteBuffer {
	return keyDefaultPool.Get()
}

// PutKeyBuffer returns a ByteBuffer to the default cache-key pool.
func PutKeyBuffer(bb *ByteBuffer) {
	keyDefaultPool.Put(bb)
}

// GetSnapshotBuffer retrieves a ByteBuffer from the default snapshot pool.
func GetSnapshotBuffer() *ByteBuffer {
	return snapshotDefaultPool.Get()
}

// PutSnapshotBuffer returns a ByteBuffer to the default snapshot pool.
func PutSnapshotBuffer(bb *ByteBuffer) {
	snapshotDefaultPool.Put(bb)
}
