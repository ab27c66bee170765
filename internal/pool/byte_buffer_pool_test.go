package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWriteString("range")
	bb.MustWriteByte('|')
	bb.MustWrite([]byte("x,y"))
	require.Equal(t, "range|x,y", string(bb.Bytes()))
	require.Equal(t, 9, bb.Len())

	n, err := bb.Write([]byte("!"))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	var out bytes.Buffer
	written, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(10), written)
	require.Equal(t, "range|x,y!", out.String())

	bb.Reset()
	require.Zero(t, bb.Len())
}

func TestByteBufferPool_Reuse(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.MustWriteString("payload")
	p.Put(bb)

	bb2 := p.Get()
	require.Zero(t, bb2.Len(), "pooled buffers come back reset")
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(4, 8)

	bb := p.Get()
	bb.MustWrite(make([]byte, 128))
	p.Put(bb) // over threshold, dropped

	require.Zero(t, p.Get().Len())

	p.Put(nil) // must not panic
}
