package compress

import (
	"encoding/binary"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// wordStream builds a synthetic encoded word stream with the redundancy
// these codecs are expected to exploit: long runs of similar words.
func wordStream(words int) []byte {
	rng := rand.New(rand.NewSource(42))
	buf := make([]byte, 0, words*8)
	word := uint64(0x3007_0007_0007_0007)
	for i := 0; i < words; i++ {
		if i%16 == 0 {
			word = rng.Uint64()
		}
		buf = binary.LittleEndian.AppendUint64(buf, word)
	}

	return buf
}

func TestNewCodec(t *testing.T) {
	tests := []struct {
		typ  Type
		want Codec
	}{
		{TypeNone, NoOpCompressor{}},
		{TypeZstd, ZstdCompressor{}},
		{TypeS2, S2Compressor{}},
		{TypeLZ4, LZ4Compressor{}},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			codec, err := NewCodec(tt.typ)
			require.NoError(t, err)
			require.IsType(t, tt.want, codec)
		})
	}

	_, err := NewCodec(Type(0xAA))
	require.Error(t, err)
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "None", TypeNone.String())
	require.Equal(t, "Zstd", TypeZstd.String())
	require.Equal(t, "S2", TypeS2.String())
	require.Equal(t, "LZ4", TypeLZ4.String())
	require.Equal(t, "Unknown", Type(0).String())
}

func TestCodecRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":      nil,
		"single":     wordStream(1),
		"small":      wordStream(8),
		"repetitive": wordStream(4096),
	}

	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := NewCodec(typ)
		require.NoError(t, err)

		for name, payload := range payloads {
			t.Run(fmt.Sprintf("%s/%s", typ, name), func(t *testing.T) {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, payload, decompressed)
			})
		}
	}
}

func TestCodecCompresses(t *testing.T) {
	// Repetitive word streams should shrink under every real codec.
	payload := wordStream(4096)

	for _, typ := range []Type{TypeZstd, TypeS2, TypeLZ4} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := NewCodec(typ)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload))
		})
	}
}

func TestNoOpAliasesInput(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := wordStream(4)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, &payload[0], &compressed[0])
}

func TestDecompressCorruptedInput(t *testing.T) {
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03, 0x04}

	for _, typ := range []Type{TypeZstd, TypeS2} {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := NewCodec(typ)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4LargeExpansion(t *testing.T) {
	// Highly compressible payload forces the decompressor to grow its
	// output buffer past the initial 4x estimate.
	payload := make([]byte, 1<<20)
	codec := NewLZ4Compressor()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Less(t, len(compressed)*4, len(payload))

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}
