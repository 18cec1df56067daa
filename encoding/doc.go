// Package encoding implements the Simple-8b block codec with selector
// extensions: a word-aligned integer compression scheme that packs runs of
// small unsigned integers, missing-value markers, and wide values with long
// trailing-zero tails into fixed 64-bit words.
//
// # Word layout
//
// Every encoded word carries a 4-bit base selector in its lowest bits:
//
//   - Selector 0 is a run-length word: bits 4-7 hold a count and the word
//     repeats the last value of the previous word count*120 times.
//   - Selectors 7 and 8 carry an extended selector in bits 4-7 and pack
//     slots that pair a value with an embedded trailing-zero count, trading
//     slot count for the ability to elide long zero tails (the route by
//     which 128-bit magnitudes fit into 64-bit words).
//   - All other selectors pack equal-width value slots into the remaining
//     60 bits.
//
// A slot whose entire bit pattern is all ones marks a missing value.
// The concrete selector tables are documented configuration constants of
// this package; see the selector tables in selector.go.
//
// # Usage
//
// Builder consumes one value at a time and hands finalized words to a sink
// callback; Decoder walks a read-only span of concatenated words:
//
//	var words []uint64
//	b := encoding.NewBuilder[uint64, encoding.Uint64Ops](func(w uint64) {
//		words = append(words, w)
//	})
//	b.Append(1)
//	b.Skip()
//	b.Append(3)
//	b.Flush()
//
// Encoding and decoding share no mutable state; any number of iterators may
// read the same span concurrently. A Builder instance is single-producer.
package encoding
