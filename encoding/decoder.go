package encoding

import (
	"errors"
	"fmt"
	"iter"

	"github.com/arloliu/simple8b/endian"
)

// Decoding errors.
var (
	// ErrUnalignedSpan reports a byte span whose length is not a whole
	// number of 64-bit words.
	ErrUnalignedSpan = errors.New("simple8b: span length is not a multiple of 8 bytes")
	// ErrInvalidSelector reports a word whose selector bits name no defined
	// layout. It only occurs on corrupted or foreign data.
	ErrInvalidSelector = errors.New("simple8b: undefined selector bit pattern")
)

// Value is one decoded slot: a value, or a missing-value marker when
// Present is false.
type Value[T any] struct {
	Val     T
	Present bool
}

// Some wraps a present value.
func Some[T any](v T) Value[T] {
	return Value[T]{Val: v, Present: true}
}

// Missing returns the absent-value marker.
func Missing[T any]() Value[T] {
	return Value[T]{}
}

// Decoder reads values back out of a span of concatenated Simple-8b words.
//
// The Decoder borrows the span without copying; the caller must keep it
// valid and unmodified for the Decoder's lifetime. Decoding is read-only,
// so any number of iterators over the same span may run concurrently.
type Decoder[T comparable, O Integer[T]] struct {
	data   []byte
	engine endian.EndianEngine
}

// NewDecoder creates a Decoder over data, which must have been produced
// with the same byte-order engine. Returns ErrUnalignedSpan when the span
// is not a whole number of words.
func NewDecoder[T comparable, O Integer[T]](data []byte, engine endian.EndianEngine) (*Decoder[T, O], error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrUnalignedSpan, len(data))
	}

	return &Decoder[T, O]{data: data, engine: engine}, nil
}

// Words returns the number of physical 64-bit words in the span.
func (d *Decoder[T, O]) Words() int {
	return len(d.data) / 8
}

// Iterate returns a fresh forward iterator positioned before the first
// value.
func (d *Decoder[T, O]) Iterate() *Iterator[T, O] {
	return &Iterator[T, O]{
		data:        d.data,
		engine:      d.engine,
		prevPresent: true,
	}
}

// All returns an iterator over every decoded slot in order. It stops early
// on malformed data; use Iterate directly when the error detail matters.
func (d *Decoder[T, O]) All() iter.Seq[Value[T]] {
	return func(yield func(Value[T]) bool) {
		it := d.Iterate()
		for it.Next() {
			v, present := it.Value()
			if !yield(Value[T]{Val: v, Present: present}) {
				return
			}
		}
	}
}

// blockLayout is the decoded shape of the word an iterator is positioned
// on: either a run-length word or a packed word with its slot geometry.
type blockLayout struct {
	rle       bool
	repeats   int
	slots     int
	slotBits  uint
	countBits uint
	countMult uint
	shift     uint
}

// Iterator walks a word span one logical slot at a time. The zero value is
// not usable; obtain iterators from Decoder.Iterate.
//
// The iteration protocol follows the usual scanner shape:
//
//	it := dec.Iterate()
//	for it.Next() {
//		v, present := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[T comparable, O Integer[T]] struct {
	ops    O
	engine endian.EndianEngine
	data   []byte

	pos    int // byte offset of the loaded word
	word   uint64
	lay    blockLayout
	loaded bool

	idx   int  // slots or repeats already yielded from the loaded word
	shift uint // bit offset of the next slot in a packed word

	val     T
	present bool

	// prevVal/prevPresent track the last decoded slot, which run-length
	// words re-yield. Before any word the implied previous value is zero.
	prevVal     T
	prevPresent bool

	err error
}

// Next advances to the next logical slot. It returns false when the span is
// exhausted or a malformed word was encountered; check Err to distinguish.
func (it *Iterator[T, O]) Next() bool {
	if it.err != nil {
		return false
	}

	for {
		if !it.loaded {
			if it.pos >= len(it.data) {
				return false
			}
			if !it.loadBlock() {
				return false
			}
		}

		if it.lay.rle {
			if it.idx < it.lay.repeats {
				it.idx++
				it.val, it.present = it.prevVal, it.prevPresent

				return true
			}
		} else if it.idx < it.lay.slots {
			it.decodeSlot()
			it.idx++
			it.shift += it.lay.slotBits

			return true
		}

		it.pos += 8
		it.loaded = false
	}
}

// Value returns the slot at the current position. The second result is
// false for a missing-value slot. Only valid after a true Next.
func (it *Iterator[T, O]) Value() (T, bool) {
	return it.val, it.present
}

// Err returns the error that terminated iteration, if any. Malformed words
// are reported by the Next call that first observes them; the iterator then
// stays terminated.
func (it *Iterator[T, O]) Err() error {
	return it.err
}

// BlockSize returns the number of logical values the current physical word
// holds, with run-length expansion applied. It returns 0 past the end of
// the span. Together with AdvanceBlock this lets consumers skip whole words
// by value count without decoding each slot.
func (it *Iterator[T, O]) BlockSize() int {
	if it.err != nil {
		return 0
	}
	if !it.loaded {
		if it.pos >= len(it.data) || !it.loadBlock() {
			return 0
		}
	}

	if it.lay.rle {
		return it.lay.repeats
	}

	return it.lay.slots
}

// AdvanceBlock jumps to the first slot of the next physical word, bypassing
// any remaining slots or repeats of the current one. It returns false when
// no further word exists or the current word is malformed.
//
// Skipping a packed word leaves the previous-value tracking at the last
// slot actually decoded, so a consumer mixing AdvanceBlock with run-length
// words must derive the repeated value from its own block summaries, as the
// original values are not re-read.
func (it *Iterator[T, O]) AdvanceBlock() bool {
	if it.err != nil {
		return false
	}
	if !it.loaded {
		if it.pos >= len(it.data) || !it.loadBlock() {
			return false
		}
	}

	it.pos += 8
	it.loaded = false

	return it.pos < len(it.data)
}

// loadBlock decodes the selector of the word at pos and prepares the slot
// geometry. Reports false after recording ErrInvalidSelector.
func (it *Iterator[T, O]) loadBlock() bool {
	word := it.engine.Uint64(it.data[it.pos : it.pos+8])
	base := word & selectorMask

	var lay blockLayout
	switch base {
	case rleSelector:
		lay.rle = true
		lay.repeats = rleRepeats(word)
	default:
		var entry decodeEntry
		switch base {
		case sevenSelector:
			entry = sevenDecodeTable[word>>extSelectorShift&selectorMask]
		case eightSelector:
			entry = eightDecodeTable[word>>extSelectorShift&selectorMask]
		default:
			entry = baseDecodeTable[base]
		}

		if !entry.ok {
			it.err = fmt.Errorf("simple8b: word %d: %w", it.pos/8, ErrInvalidSelector)
			return false
		}

		lay.slots = int(entry.row.slots)
		lay.countBits = uint(countBitsOf[entry.ext])
		lay.countMult = uint(countMultOf[entry.ext])
		lay.slotBits = uint(entry.row.valueBits) + lay.countBits
		lay.shift = uint(payloadShiftOf[entry.ext])
	}

	it.word = word
	it.lay = lay
	it.idx = 0
	it.shift = lay.shift
	it.loaded = true

	return true
}

// decodeSlot extracts the slot at the current bit offset. The missing-value
// sentinel is tested on the raw slot pattern before the trailing-zero shift
// is applied.
func (it *Iterator[T, O]) decodeSlot() {
	mask := allOnes(it.lay.slotBits)
	raw := it.word >> it.shift & mask

	if raw == mask {
		var zero T
		it.val, it.present = zero, false
	} else {
		elided := uint(raw&allOnes(it.lay.countBits)) * it.lay.countMult
		it.val = it.ops.Lsh(it.ops.FromUint64(raw>>it.lay.countBits), elided)
		it.present = true
	}

	it.prevVal, it.prevPresent = it.val, it.present
}
