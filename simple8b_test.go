package simple8b

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/simple8b/u128"
)

func TestEncodeDecodeUint64s(t *testing.T) {
	tests := []struct {
		name   string
		values []uint64
	}{
		{"empty", nil},
		{"single", []uint64{1}},
		{"small", []uint64{5, 5, 5, 5, 5}},
		{"mixed", []uint64{0, 1, 100, 1 << 40, 7, 0}},
		{"run", make([]uint64, 5000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeUint64s(tt.values)
			require.NoError(t, err)
			require.Zero(t, len(data)%8)

			decoded, err := DecodeUint64s(data)
			require.NoError(t, err)
			if len(tt.values) == 0 {
				require.Empty(t, decoded)
			} else {
				require.Equal(t, tt.values, decoded)
			}
		})
	}
}

func TestEncodeUint64sTooLarge(t *testing.T) {
	_, err := EncodeUint64s([]uint64{1, 2, ^uint64(0) >> 1})
	require.ErrorIs(t, err, ErrValueTooLarge)
	require.Contains(t, err.Error(), "value 2")
}

func TestDecodeUint64sMissingValue(t *testing.T) {
	wb := NewWordBuffer()
	defer wb.Finish()

	b := NewUint64Builder(wb.Push)
	b.Append(1)
	b.Skip()
	b.Append(3)
	b.Flush()

	_, err := DecodeUint64s(wb.Bytes())
	require.ErrorIs(t, err, ErrMissingValue)
}

func TestSmallRepeatsPackOneWord(t *testing.T) {
	data, err := EncodeUint64s([]uint64{5, 5, 5, 5, 5})
	require.NoError(t, err)
	require.Len(t, data, 8)
}

func TestDecoderMissingValues(t *testing.T) {
	wb := NewWordBuffer()
	defer wb.Finish()

	b := NewUint64Builder(wb.Push)
	require.True(t, b.Append(1))
	b.Skip()
	require.True(t, b.Append(3))
	b.Flush()

	dec, err := NewUint64Decoder(wb.Bytes())
	require.NoError(t, err)

	var vals []uint64
	var present []bool
	it := dec.Iterate()
	for it.Next() {
		v, ok := it.Value()
		vals = append(vals, v)
		present = append(present, ok)
	}
	require.NoError(t, it.Err())
	require.Equal(t, []uint64{1, 0, 3}, vals)
	require.Equal(t, []bool{true, false, true}, present)
}

func TestUint128RoundTrip(t *testing.T) {
	wb := NewWordBuffer()
	defer wb.Finish()

	input := []u128.Uint128{
		u128.From64(1),
		u128.From64(12345).Lsh(64),
		u128.From64(1).Lsh(120),
	}

	b := NewUint128Builder(wb.Push)
	for _, v := range input {
		require.True(t, b.Append(v))
	}
	b.Flush()

	dec, err := NewUint128Decoder(wb.Bytes())
	require.NoError(t, err)

	var decoded []u128.Uint128
	for slot := range dec.All() {
		require.True(t, slot.Present)
		decoded = append(decoded, slot.Val)
	}
	require.Equal(t, input, decoded)
}

func TestWordBuffer(t *testing.T) {
	wb := NewWordBuffer()
	require.Empty(t, wb.Bytes())
	require.Equal(t, 0, wb.Words())

	wb.Push(0x0102030405060708)
	wb.Push(42)
	require.Equal(t, 2, wb.Words())
	require.Len(t, wb.Bytes(), 16)

	// Words serialize little-endian.
	require.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, wb.Bytes()[:8])

	wb.Reset()
	require.Equal(t, 0, wb.Words())
	require.Empty(t, wb.Bytes())

	wb.Finish()
	require.Nil(t, wb.Bytes())
	require.Equal(t, 0, wb.Words())
	require.Panics(t, func() { wb.Push(1) })
	require.NotPanics(t, wb.Reset)
}

func TestWordBufferBuilderIntegration(t *testing.T) {
	wb := NewWordBuffer()
	defer wb.Finish()

	b := NewUint64Builder(wb.Push)
	for i := range uint64(100) {
		require.True(t, b.Append(i))
	}
	b.Flush()

	decoded, err := DecodeUint64s(wb.Bytes())
	require.NoError(t, err)
	require.Len(t, decoded, 100)
	for i, v := range decoded {
		require.Equal(t, uint64(i), v) //nolint:gosec
	}
}
