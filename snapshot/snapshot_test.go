package snapshot

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ra2003/prodint/cache"
	"github.com/ra2003/prodint/compress"
	"github.com/ra2003/prodint/errs"
)

func sampleKeys() []cache.Key {
	return []cache.Key{
		cache.NewKey([]string{"x", "y"}, ""),
		cache.NewKey([]string{"x"}, "window"),
		cache.NewKey(nil, "signal"),
	}
}

func requireSameKeys(t *testing.T, want, got []cache.Key) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].ID(), got[i].ID())
		require.Equal(t, want[i].Names(), got[i].Names())
		require.Equal(t, want[i].Range(), got[i].Range())
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	keys := sampleKeys()

	for _, typ := range []compress.Type{compress.None, compress.Zstd, compress.S2, compress.LZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			data, err := Encode(keys, typ)
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			requireSameKeys(t, keys, decoded)
		})
	}
}

func TestEncodeDecode_Empty(t *testing.T) {
	data, err := Encode(nil, compress.None)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestEncode_UnknownCodec(t *testing.T) {
	_, err := Encode(sampleKeys(), compress.Type(0x7f))
	require.Error(t, err)
}

func TestDecode_Malformed(t *testing.T) {
	valid, err := Encode(sampleKeys(), compress.None)
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[0] = 'X'
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("short payload", func(t *testing.T) {
		_, err := Decode([]byte("PISN"))
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("unsupported version", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[4] = 0x7f
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("unknown compression tag", func(t *testing.T) {
		data := append([]byte(nil), valid...)
		data[5] = 0x7f
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("truncated body", func(t *testing.T) {
		_, err := Decode(valid[:len(valid)-3])
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("key count larger than the body", func(t *testing.T) {
		// A tiny payload claiming 2^62 keys must fail validation, not size
		// an allocation from the hostile count.
		data := append([]byte("PISN"), 0x1, byte(compress.None))
		data = binary.AppendUvarint(data, 1<<62)
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("name count larger than the body", func(t *testing.T) {
		data := append([]byte("PISN"), 0x1, byte(compress.None))
		data = binary.AppendUvarint(data, 1) // one key
		data = binary.AppendUvarint(data, 0) // empty range name
		data = binary.AppendUvarint(data, 1<<62)
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("trailing bytes after the last key", func(t *testing.T) {
		data := append(append([]byte(nil), valid...), 0xde, 0xad)
		_, err := Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})

	t.Run("corrupted compressed body", func(t *testing.T) {
		data, err := Encode(sampleKeys(), compress.Zstd)
		require.NoError(t, err)
		data[len(data)-1] ^= 0xff
		_, err = Decode(data)
		require.True(t, errors.Is(err, errs.ErrInvalidSnapshot))
	})
}
