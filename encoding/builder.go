package encoding

// Builder compresses a series of integers into a chain of 64-bit Simple-8b
// words, handing each finalized word to a sink callback in emission order.
//
// Values accumulate in a pending buffer until they no longer jointly fit in
// one word under any selector extension; the densest legal prefix is then
// packed and emitted. Consecutive repeats of the last value written are
// tracked separately and emitted as run-length words, so long identical runs
// cost almost nothing to encode.
//
// The ops type parameter supplies the integer arithmetic for T; use
// Uint64Ops or Uint128Ops, or provide your own for another element type.
//
// A Builder is not safe for concurrent use. The sink is invoked
// synchronously from Append, Skip and Flush, never afterwards.
type Builder[T comparable, O Integer[T]] struct {
	ops  O
	emit func(uint64)

	// pending holds values waiting for a full word, oldest first. Its length
	// is bounded by the widest row's slot count (60).
	pending []pendingValue[T]

	// rleCount is the number of consecutive repeats of lastInPrevWord seen
	// since the last word boundary; the run state is meaningful only while
	// it is non-zero.
	rleCount       int
	lastInPrevWord pendingValue[T]

	// currMaxBits and possible aggregate the pending buffer per extension,
	// maintained incrementally so fit tests never rescan the buffer.
	currMaxBits [numExtensions]uint8
	possible    [numExtensions]bool

	count int
}

// NewBuilder creates a Builder that passes each finalized 64-bit word to
// emit. Serializing words to bytes (and choosing a byte order) is the sink's
// concern; see the root package's WordBuffer for a ready-made sink.
//
// Panics if emit is nil.
func NewBuilder[T comparable, O Integer[T]](emit func(uint64)) *Builder[T, O] {
	if emit == nil {
		panic("simple8b: nil emit callback")
	}

	b := &Builder[T, O]{emit: emit}
	b.resetAggregates()

	return b
}

// Append adds a value to the chain of words being built.
//
// It returns false, leaving all state untouched, only when the value has
// more significant bits than the widest selector extension can store
// (more than 60 plain bits, or more than 51 bits after trailing-zero
// elision). Producers respecting the documented width limits never see
// false.
func (b *Builder[T, O]) Append(v T) bool {
	if b.rlePossible() && !b.lastInPrevWord.skip && v == b.lastInPrevWord.val {
		b.rleCount++
		b.count++

		return true
	}

	pv, ok := makePending(b.ops, v)
	if !ok {
		return false
	}

	b.handleRleTermination()
	b.add(pv, true)
	b.count++

	return true
}

// Skip records a missing value. The slot decodes as absent rather than zero.
// Runs of consecutive missing values are run-length compressed like any
// other repeat.
func (b *Builder[T, O]) Skip() {
	if b.rlePossible() && b.lastInPrevWord.skip {
		b.rleCount++
		b.count++

		return
	}

	b.handleRleTermination()
	b.add(skipPending[T](), true)
	b.count++
}

// Flush drains all remaining state: an in-progress run first, then the
// pending buffer as one or more packed words. The final word may use a wider
// selector than its values need, since no unused slots are ever emitted.
//
// Flushing an empty Builder emits nothing. After Flush the Builder is ready
// for a new independent sequence; the run-length baseline resets to zero.
func (b *Builder[T, O]) Flush() {
	b.handleRleTermination()
	for len(b.pending) > 0 {
		b.emitLargestPossibleWord()
	}

	b.lastInPrevWord = pendingValue[T]{}
}

// Len returns the number of values (including skips) accepted since
// construction or the last Reset.
func (b *Builder[T, O]) Len() int {
	return b.count
}

// Reset discards all pending state without emitting, readying the Builder
// for a new sequence.
func (b *Builder[T, O]) Reset() {
	b.pending = b.pending[:0]
	b.rleCount = 0
	b.lastInPrevWord = pendingValue[T]{}
	b.count = 0
	b.resetAggregates()
}

// rlePossible reports whether a run may start or continue: runs only form
// at word boundaries, while nothing is pending.
func (b *Builder[T, O]) rlePossible() bool {
	return len(b.pending) == 0 || b.rleCount > 0
}

// add places pv in the pending buffer, draining words first while the
// buffer no longer accommodates it.
//
// When draining empties the buffer and pv repeats the last value of the word
// just written, a new run starts instead of buffering pv again. tryRle is
// false while re-adding the remainder of a terminated run, which would
// otherwise restart the same run forever.
func (b *Builder[T, O]) add(pv pendingValue[T], tryRle bool) {
	drained := false
	for !b.fits(pv) {
		b.emitLargestPossibleWord()
		drained = true
	}

	if tryRle && drained && len(b.pending) == 0 &&
		pv.skip == b.lastInPrevWord.skip && (pv.skip || pv.val == b.lastInPrevWord.val) {
		b.rleCount = 1

		return
	}

	b.pending = append(b.pending, pv)
	b.updateAggregates(&pv)
}

// fits tests whether the pending buffer plus pv still fits one word under
// any extension. Extensions that fail are flagged impossible so later
// appends skip them until the buffer next shrinks.
func (b *Builder[T, O]) fits(pv pendingValue[T]) bool {
	fit := false
	for e := range numExtensions {
		if !b.possible[e] {
			continue
		}

		width := max(b.currMaxBits[e], pv.bitCount[e])
		row, ok := findPackRow(e, width)
		if !ok || int(row.slots) < len(b.pending)+1 {
			b.possible[e] = false
			continue
		}

		fit = true
	}

	return fit
}

// handleRleTermination ends the current run: repeats worth at least one full
// run-length word are emitted as such, and the remainder re-enters the
// pending buffer as plain values.
func (b *Builder[T, O]) handleRleTermination() {
	if b.rleCount == 0 {
		return
	}

	count := b.rleCount
	b.rleCount = 0

	for count >= rleMultiplier {
		units := min(count/rleMultiplier, maxRleUnits)
		b.emit(rleWord(units))
		count -= units * rleMultiplier
	}

	last := b.lastInPrevWord
	for range count {
		if last.skip {
			b.add(skipPending[T](), false)
			continue
		}

		// The repeated value was encodable when first appended.
		pv, _ := makePending(b.ops, last.val)
		b.add(pv, false)
	}
}

// emitLargestPossibleWord packs the longest prefix of the pending buffer
// that exactly fills a word shape, preferring the shape holding the most
// values and, on ties, the one spending fewer bits per slot. The consumed
// prefix is removed and the per-extension aggregates are rebuilt from the
// remainder.
func (b *Builder[T, O]) emitLargestPossibleWord() {
	bestExt := -1
	bestN := 0
	bestSlotBits := uint8(0xFF)
	var bestRow packRow

	for e := range numExtensions {
		for _, row := range packRows[e] {
			n := int(row.slots)
			if n > len(b.pending) {
				continue
			}
			if b.prefixMaxBits(e, n) > row.valueBits {
				continue
			}

			slotBits := row.valueBits + countBitsOf[e]
			if n > bestN || (n == bestN && slotBits < bestSlotBits) {
				bestExt, bestN, bestSlotBits, bestRow = e, n, slotBits, row
			}

			break // rows narrow as slots shrink; the first hit is this extension's best
		}
	}

	if bestExt < 0 {
		// Unreachable: every pending value fits alone under some extension,
		// and every extension has a single-slot row.
		panic("simple8b: no selector accommodates pending values")
	}

	b.emit(b.packWord(b.pending[:bestN], bestExt, bestRow))
	b.lastInPrevWord = b.pending[bestN-1]

	n := copy(b.pending, b.pending[bestN:])
	b.pending = b.pending[:n]
	b.resetAggregates()
	for i := range b.pending {
		b.updateAggregates(&b.pending[i])
	}
}

// packWord assembles one packed word from vals using the given extension and
// row, slots growing from the least significant payload bit.
func (b *Builder[T, O]) packWord(vals []pendingValue[T], ext int, row packRow) uint64 {
	countBits := uint(countBitsOf[ext])
	slotBits := uint(row.valueBits) + countBits
	mult := uint64(countMultOf[ext])

	word := uint64(row.selector) | uint64(row.extSelector)<<extSelectorShift
	shift := uint(payloadShiftOf[ext])
	for i := range vals {
		var slot uint64
		if vals[i].skip {
			slot = allOnes(slotBits)
		} else {
			stored := uint(vals[i].trailingZeros[ext])
			meaningful := b.ops.Low64(b.ops.Rsh(vals[i].val, stored))
			slot = meaningful<<countBits | uint64(stored)/mult
		}

		word |= slot << shift
		shift += slotBits
	}

	return word
}

// prefixMaxBits returns the widest value field among the first n pending
// values under extension ext.
func (b *Builder[T, O]) prefixMaxBits(ext, n int) uint8 {
	var widest uint8
	for i := range n {
		widest = max(widest, b.pending[i].bitCount[ext])
	}

	return widest
}

func (b *Builder[T, O]) updateAggregates(pv *pendingValue[T]) {
	for e := range numExtensions {
		if pv.bitCount[e] == impossibleBits {
			b.possible[e] = false
			continue
		}

		b.currMaxBits[e] = max(b.currMaxBits[e], pv.bitCount[e])
	}
}

func (b *Builder[T, O]) resetAggregates() {
	b.currMaxBits = minDataBits
	for e := range numExtensions {
		b.possible[e] = true
	}
}
