// Package simple8b provides a word-aligned integer compression codec based
// on Simple-8b with selector extensions.
//
// The codec densely packs sequences of unsigned integers, up to 128-bit
// magnitudes, into fixed 64-bit words, with native run-length compression of
// repeated values and explicit missing-value markers. It targets
// delta-encoded columnar data such as timestamps and counters, where values
// cluster around small magnitudes or repeat in long runs, and where readers
// need to decode or skip through compressed blocks cheaply.
//
// # Basic Usage
//
// Encoding a sequence of small integers:
//
//	wb := simple8b.NewWordBuffer()
//	defer wb.Finish()
//
//	b := simple8b.NewUint64Builder(wb.Push)
//	for _, v := range values {
//	    b.Append(v)
//	}
//	b.Flush()
//	data := wb.Bytes() // concatenated little-endian words
//
// Decoding it back, including missing-value slots:
//
//	dec, _ := simple8b.NewUint64Decoder(data)
//	for slot := range dec.All() {
//	    if slot.Present {
//	        fmt.Println(slot.Val)
//	    }
//	}
//
// For streams without missing values the EncodeUint64s and DecodeUint64s
// helpers cover the common case in one call.
//
// # Package Structure
//
// This package provides convenient wrappers around the encoding package,
// which holds the codec itself. The u128 package supplies the 128-bit
// element type, endian the word byte order, and compress optional
// general-purpose compression of finished word streams.
package simple8b

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/arloliu/simple8b/encoding"
	"github.com/arloliu/simple8b/endian"
	"github.com/arloliu/simple8b/internal/pool"
	"github.com/arloliu/simple8b/u128"
)

// Instantiations of the generic codec for the two supported element widths.
type (
	Uint64Builder  = encoding.Builder[uint64, encoding.Uint64Ops]
	Uint128Builder = encoding.Builder[u128.Uint128, encoding.Uint128Ops]
	Uint64Decoder  = encoding.Decoder[uint64, encoding.Uint64Ops]
	Uint128Decoder = encoding.Decoder[u128.Uint128, encoding.Uint128Ops]
)

// ErrValueTooLarge reports a value whose significant bits exceed the widest
// selector extension.
var ErrValueTooLarge = errors.New("simple8b: value exceeds widest selector extension")

// ErrMissingValue reports a missing-value slot in a helper that decodes to
// a plain slice.
var ErrMissingValue = errors.New("simple8b: encoded stream contains missing values")

// NewUint64Builder creates a Builder for uint64 values feeding emit.
func NewUint64Builder(emit func(uint64)) *Uint64Builder {
	return encoding.NewBuilder[uint64, encoding.Uint64Ops](emit)
}

// NewUint128Builder creates a Builder for 128-bit values feeding emit.
func NewUint128Builder(emit func(uint64)) *Uint128Builder {
	return encoding.NewBuilder[u128.Uint128, encoding.Uint128Ops](emit)
}

// NewUint64Decoder creates a Decoder over a little-endian word span.
func NewUint64Decoder(data []byte) (*Uint64Decoder, error) {
	return encoding.NewDecoder[uint64, encoding.Uint64Ops](data, endian.GetLittleEndianEngine())
}

// NewUint128Decoder creates a Decoder over a little-endian word span of
// 128-bit values.
func NewUint128Decoder(data []byte) (*Uint128Decoder, error) {
	return encoding.NewDecoder[u128.Uint128, encoding.Uint128Ops](data, endian.GetLittleEndianEngine())
}

// WordBuffer is a ready-made Builder sink that serializes each emitted word
// into a pooled, little-endian byte buffer.
//
// A WordBuffer is single-producer, matching the Builder it feeds. Call
// Finish to return the underlying buffer to the pool once the encoded bytes
// have been copied or consumed.
type WordBuffer struct {
	engine endian.EndianEngine
	buf    *pool.ByteBuffer
}

// NewWordBuffer creates a WordBuffer with little-endian word order, the
// standard for this module.
func NewWordBuffer() *WordBuffer {
	return NewWordBufferWithEngine(endian.GetLittleEndianEngine())
}

// NewWordBufferWithEngine creates a WordBuffer serializing words with the
// given byte-order engine. Decode with a Decoder built on the same engine.
func NewWordBufferWithEngine(engine endian.EndianEngine) *WordBuffer {
	return &WordBuffer{
		engine: engine,
		buf:    pool.GetWordBuffer(),
	}
}

// Push appends one finalized word. It is the sink to hand to NewBuilder.
//
// Panics if Finish has been called.
func (wb *WordBuffer) Push(word uint64) {
	if wb.buf == nil {
		panic("simple8b: WordBuffer used after Finish")
	}

	wb.buf.B = wb.engine.AppendUint64(wb.buf.B, word)
}

// Bytes returns the accumulated word stream. The slice is valid until the
// next Push, Reset or Finish; copy it to retain.
func (wb *WordBuffer) Bytes() []byte {
	if wb.buf == nil {
		return nil
	}

	return wb.buf.Bytes()
}

// Words returns the number of words pushed so far.
func (wb *WordBuffer) Words() int {
	if wb.buf == nil {
		return 0
	}

	return wb.buf.Len() / 8
}

// Reset empties the buffer for a new stream, retaining its capacity.
func (wb *WordBuffer) Reset() {
	if wb.buf != nil {
		wb.buf.Reset()
	}
}

// Finish returns the underlying buffer to the pool. The WordBuffer is no
// longer usable afterwards; subsequent Push calls panic.
func (wb *WordBuffer) Finish() {
	pool.PutWordBuffer(wb.buf)
	wb.buf = nil
}

// EncodeUint64s compresses values into a little-endian word stream.
//
// Returns ErrValueTooLarge (with the offending index) if any value exceeds
// the widest selector extension; values of 60 significant bits or fewer
// always encode.
func EncodeUint64s(values []uint64) ([]byte, error) {
	wb := NewWordBuffer()
	defer wb.Finish()

	b := NewUint64Builder(wb.Push)
	for i, v := range values {
		if !b.Append(v) {
			return nil, fmt.Errorf("value %d: %w", i, ErrValueTooLarge)
		}
	}
	b.Flush()

	return bytes.Clone(wb.Bytes()), nil
}

// DecodeUint64s decompresses a little-endian word stream produced by
// EncodeUint64s. Streams containing missing-value slots yield
// ErrMissingValue; use a Decoder directly to observe missing slots.
func DecodeUint64s(data []byte) ([]uint64, error) {
	dec, err := NewUint64Decoder(data)
	if err != nil {
		return nil, err
	}

	values := make([]uint64, 0, dec.Words()*8)
	it := dec.Iterate()
	for it.Next() {
		v, present := it.Value()
		if !present {
			return nil, ErrMissingValue
		}
		values = append(values, v)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}

	return values, nil
}
