package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/simple8b/endian"
)

func wordsToBytes(words ...uint64) []byte {
	engine := endian.GetLittleEndianEngine()
	data := make([]byte, 0, len(words)*8)
	for _, w := range words {
		data = engine.AppendUint64(data, w)
	}

	return data
}

func TestNewDecoderUnaligned(t *testing.T) {
	engine := endian.GetLittleEndianEngine()

	_, err := NewDecoder[uint64, Uint64Ops](make([]byte, 7), engine)
	require.ErrorIs(t, err, ErrUnalignedSpan)

	_, err = NewDecoder[uint64, Uint64Ops](make([]byte, 15), engine)
	require.ErrorIs(t, err, ErrUnalignedSpan)

	dec, err := NewDecoder[uint64, Uint64Ops](nil, engine)
	require.NoError(t, err)
	require.Equal(t, 0, dec.Words())
}

func TestDecoderEmptySpan(t *testing.T) {
	dec, err := NewDecoder[uint64, Uint64Ops](nil, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	it := dec.Iterate()
	require.False(t, it.Next())
	require.NoError(t, it.Err())
	require.Equal(t, 0, it.BlockSize())
	require.False(t, it.AdvanceBlock())
}

func TestDecoderInvalidSelector(t *testing.T) {
	// Base selectors 7 and 8 escape to an extended selector; extended
	// selector 0 is undefined for both.
	for _, word := range []uint64{0x07, 0x08} {
		dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(word), endian.GetLittleEndianEngine())
		require.NoError(t, err)

		it := dec.Iterate()
		require.False(t, it.Next())
		require.ErrorIs(t, it.Err(), ErrInvalidSelector)

		// The iterator stays terminated.
		require.False(t, it.Next())
		require.Equal(t, 0, it.BlockSize())
		require.False(t, it.AdvanceBlock())
	}
}

func TestDecoderInvalidSelectorPosition(t *testing.T) {
	good := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		b.Append(9)
	})
	data := wordsToBytes(good[0], 0x07)

	dec, err := NewDecoder[uint64, Uint64Ops](data, endian.GetLittleEndianEngine())
	require.NoError(t, err)

	it := dec.Iterate()
	require.True(t, it.Next())
	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrInvalidSelector)
	require.Contains(t, it.Err().Error(), "word 1")
}

func TestDecoderBlockSize(t *testing.T) {
	// 30 copies of 5 pack as one word of 20 slots, then the remainder.
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		for range 30 {
			b.Append(5)
		}
	})
	require.Len(t, words, 2)

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	it := dec.Iterate()
	require.Equal(t, 20, it.BlockSize())
	require.True(t, it.AdvanceBlock())
	require.Equal(t, 10, it.BlockSize())
	require.False(t, it.AdvanceBlock())
	require.Equal(t, 0, it.BlockSize())
}

func TestDecoderBlockSizeRle(t *testing.T) {
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		for range 500 {
			b.Append(0)
		}
	})
	require.Len(t, words, 2)

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	it := dec.Iterate()
	require.Equal(t, 480, it.BlockSize())
	require.True(t, it.AdvanceBlock())
	require.Equal(t, 20, it.BlockSize())
}

func TestDecoderAdvanceBlockMidWord(t *testing.T) {
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		for range 30 {
			b.Append(5)
		}
	})

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	// Consume three slots, then jump to the next word.
	it := dec.Iterate()
	for range 3 {
		require.True(t, it.Next())
	}
	require.True(t, it.AdvanceBlock())

	remaining := 0
	for it.Next() {
		v, present := it.Value()
		require.True(t, present)
		require.Equal(t, uint64(5), v)
		remaining++
	}
	require.NoError(t, it.Err())
	require.Equal(t, 10, remaining)
}

func TestDecoderRleAfterSkips(t *testing.T) {
	// A run-length word repeats whatever the previous slot decoded to,
	// including the missing marker.
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		for range 300 {
			b.Skip()
		}
	})

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	n := 0
	for v := range dec.All() {
		require.False(t, v.Present)
		n++
	}
	require.Equal(t, 300, n)
}

func TestDecoderAll(t *testing.T) {
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		b.Append(1)
		b.Skip()
		b.Append(3)
	})

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	var got []Value[uint64]
	for v := range dec.All() {
		got = append(got, v)
	}
	require.Equal(t, []Value[uint64]{Some(uint64(1)), Missing[uint64](), Some(uint64(3))}, got)

	// Early break leaves the underlying data reusable.
	for range dec.All() {
		break
	}
}

func TestDecoderIndependentIterators(t *testing.T) {
	words := collectWords(func(b *Builder[uint64, Uint64Ops]) {
		for i := range uint64(25) {
			b.Append(i)
		}
	})

	dec, err := NewDecoder[uint64, Uint64Ops](wordsToBytes(words...), endian.GetLittleEndianEngine())
	require.NoError(t, err)

	a, c := dec.Iterate(), dec.Iterate()
	for i := range uint64(25) {
		require.True(t, a.Next())
		v, _ := a.Value()
		require.Equal(t, i, v)
	}
	require.True(t, c.Next())
	v, _ := c.Value()
	require.Equal(t, uint64(0), v)
}

func TestSomeMissing(t *testing.T) {
	require.Equal(t, Value[uint64]{Val: 4, Present: true}, Some(uint64(4)))
	require.Equal(t, Value[uint64]{}, Missing[uint64]())
}
