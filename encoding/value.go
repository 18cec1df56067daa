package encoding

import (
	"math/bits"

	"github.com/arloliu/simple8b/u128"
)

// Integer is the capability set the codec requires from its element type:
// equality (via comparable), bit-width and trailing-zero queries, shifts,
// and conversion to and from the low 64 bits that land in a word slot.
//
// Implementations are stateless value types so the compiler can devirtualize
// and inline them when the codec is instantiated.
type Integer[T comparable] interface {
	// BitLen returns the number of bits required to represent v; BitLen of
	// zero is 0.
	BitLen(v T) int
	// TrailingZeros returns the number of trailing zero bits of v; for the
	// zero value it returns the type's full width.
	TrailingZeros(v T) int
	// Lsh returns v shifted left by n bits.
	Lsh(v T, n uint) T
	// Rsh returns v shifted right by n bits.
	Rsh(v T, n uint) T
	// Low64 returns the low 64 bits of v.
	Low64(v T) uint64
	// FromUint64 widens a 64-bit slot payload back to T.
	FromUint64(v uint64) T
}

// Uint64Ops implements Integer for uint64 elements.
type Uint64Ops struct{}

func (Uint64Ops) BitLen(v uint64) int        { return bits.Len64(v) }
func (Uint64Ops) TrailingZeros(v uint64) int { return bits.TrailingZeros64(v) }
func (Uint64Ops) Lsh(v uint64, n uint) uint64 {
	if n >= 64 {
		return 0
	}

	return v << n
}
func (Uint64Ops) Rsh(v uint64, n uint) uint64 {
	if n >= 64 {
		return 0
	}

	return v >> n
}
func (Uint64Ops) Low64(v uint64) uint64      { return v }
func (Uint64Ops) FromUint64(v uint64) uint64 { return v }

// Uint128Ops implements Integer for u128.Uint128 elements, the instantiation
// used for decimal128 deltas and other wide magnitudes.
type Uint128Ops struct{}

func (Uint128Ops) BitLen(v u128.Uint128) int              { return v.BitLen() }
func (Uint128Ops) TrailingZeros(v u128.Uint128) int       { return v.TrailingZeros() }
func (Uint128Ops) Lsh(v u128.Uint128, n uint) u128.Uint128 { return v.Lsh(n) }
func (Uint128Ops) Rsh(v u128.Uint128, n uint) u128.Uint128 { return v.Rsh(n) }
func (Uint128Ops) Low64(v u128.Uint128) uint64            { return v.Lo }
func (Uint128Ops) FromUint64(v uint64) u128.Uint128       { return u128.From64(v) }

// impossibleBits marks an extension that cannot hold a pending value at all.
const impossibleBits = 0xFF

// pendingValue is a value accepted by the Builder but not yet committed to
// an output word. For every extension it caches the slot width the value
// would need and the trailing zeros that would be elided, so fit tests never
// rescan the raw value.
type pendingValue[T comparable] struct {
	val T
	// bitCount is the minimum value-field width per extension, or
	// impossibleBits where the value exceeds the extension entirely.
	bitCount [numExtensions]uint8
	// trailingZeros is the zero-tail length actually elided per extension,
	// already rounded to the extension's multiplier and cap.
	trailingZeros [numExtensions]uint8
	skip          bool
}

// makePending computes the per-extension accounting for v. The second result
// is false when v fits no extension, in which case the caller must reject it
// without mutating any encoder state.
func makePending[T comparable, O Integer[T]](ops O, v T) (pendingValue[T], bool) {
	pv := pendingValue[T]{val: v}

	total := ops.BitLen(v)
	if total == 0 {
		pv.bitCount = minDataBits
		return pv, true
	}

	tz := ops.TrailingZeros(v)
	encodable := false
	for e := range numExtensions {
		stored := 0
		if e != extBase {
			mult := int(countMultOf[e])
			stored = tz - tz%mult
			if stored > int(maxStoredZeros[e]) {
				stored = int(maxStoredZeros[e])
			}
		}

		meaningful := total - stored
		width := max(meaningful, int(minDataBits[e]))

		// A value field of all ones would collide with the missing-value
		// sentinel whenever the chosen slot is exactly that wide, so such
		// values are accounted one bit wider.
		if width == meaningful && meaningful <= 64 {
			low := ops.Low64(ops.Rsh(v, uint(stored)))
			if low == allOnes(uint(meaningful)) {
				width++
			}
		}

		if width > int(maxValueBitsOf[e]) {
			pv.bitCount[e] = impossibleBits
			continue
		}

		pv.bitCount[e] = uint8(width)       //nolint:gosec
		pv.trailingZeros[e] = uint8(stored) //nolint:gosec
		encodable = true
	}

	return pv, encodable
}

// skipPending returns the pending entry for a missing value. Skips occupy
// each extension's minimum width and never force a wider selector.
func skipPending[T comparable]() pendingValue[T] {
	return pendingValue[T]{bitCount: minDataBits, skip: true}
}
