// Package compress provides optional general-purpose compression for
// encoded Simple-8b word streams.
//
// A finished word stream is already bit-packed, but long streams still
// carry exploitable redundancy (repeated selector patterns, recurring
// deltas). These codecs are applied to whole streams for storage or
// transport; they are not part of the block codec itself and never change
// word boundaries inside a stream.
package compress

import "fmt"

// Type identifies a compression algorithm for a stored word stream.
type Type uint8

const (
	TypeNone Type = 0x1 // TypeNone stores the stream as-is.
	TypeZstd Type = 0x2 // TypeZstd selects Zstandard compression.
	TypeS2   Type = 0x3 // TypeS2 selects S2 (Snappy-compatible) compression.
	TypeLZ4  Type = 0x4 // TypeLZ4 selects LZ4 block compression.
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a byte payload, typically a finished word stream.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller unless
	// the implementation documents otherwise; the input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// payload. Corrupted input, or input compressed with a different
	// algorithm, yields an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// NewCodec returns the codec for the given type.
func NewCodec(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NewNoOpCompressor(), nil
	case TypeZstd:
		return NewZstdCompressor(), nil
	case TypeS2:
		return NewS2Compressor(), nil
	case TypeLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: unknown compression type 0x%02x", uint8(t))
	}
}
