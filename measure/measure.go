package measure

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/arloliu/simple8b"
	"github.com/arloliu/simple8b/compress"
	"github.com/arloliu/simple8b/internal/options"
)

// ErrDigestMismatch reports that the decoded stream did not reproduce the
// workload, meaning a codec defect for the measured shape.
var ErrDigestMismatch = errors.New("measure: decoded stream digest mismatch")

// Result holds the metrics of one measured workload.
type Result struct {
	Workload     string
	Values       int     // slots pushed, including missing ones
	Words        int     // 64-bit words emitted
	EncodedBytes int     // Words * 8
	BitsPerValue float64 // EncodedBytes * 8 / Values
	Digest       uint64  // xxhash64 of the verified slot stream

	// Compressed maps each measured codec to the compressed stream size.
	Compressed map[compress.Type]int
}

// Run encodes the workload, verifies the round trip, and reports sizes.
//
// Returns an error when a value exceeds the widest selector extension, when
// the decoded stream diverges from the input, or when a configured
// compression codec fails.
func Run(w Workload, opts ...Option) (Result, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Result{}, err
	}

	wb := simple8b.NewWordBuffer()
	defer wb.Finish()

	b := simple8b.NewUint64Builder(wb.Push)
	for i, s := range w.Slots {
		if !s.Present {
			b.Skip()
			continue
		}
		if !b.Append(s.Val) {
			return Result{}, fmt.Errorf("workload %s, slot %d: %w", w.Name, i, simple8b.ErrValueTooLarge)
		}
	}
	b.Flush()

	data := wb.Bytes()

	want := digestSlots(w.Slots)
	got, err := digestDecoded(data, len(w.Slots))
	if err != nil {
		return Result{}, fmt.Errorf("workload %s: %w", w.Name, err)
	}
	if got != want {
		return Result{}, fmt.Errorf("workload %s: %w", w.Name, ErrDigestMismatch)
	}

	res := Result{
		Workload:     w.Name,
		Values:       len(w.Slots),
		Words:        wb.Words(),
		EncodedBytes: len(data),
		Digest:       want,
		Compressed:   make(map[compress.Type]int, len(cfg.Codecs)),
	}
	if res.Values > 0 {
		res.BitsPerValue = float64(res.EncodedBytes) * 8 / float64(res.Values)
	}

	for _, typ := range cfg.Codecs {
		codec, err := compress.NewCodec(typ)
		if err != nil {
			return Result{}, err
		}
		compressed, err := codec.Compress(data)
		if err != nil {
			return Result{}, fmt.Errorf("workload %s, codec %s: %w", w.Name, typ, err)
		}
		res.Compressed[typ] = len(compressed)
	}

	return res, nil
}

// digestSlots hashes a slot sequence: one presence byte then eight value
// bytes per slot, so a shifted or dropped slot changes the digest.
func digestSlots(slots []Slot) uint64 {
	d := xxhash.New()
	var buf [9]byte
	for _, s := range slots {
		buf[0] = 0
		if s.Present {
			buf[0] = 1
		}
		buf[1] = byte(s.Val)
		buf[2] = byte(s.Val >> 8)
		buf[3] = byte(s.Val >> 16)
		buf[4] = byte(s.Val >> 24)
		buf[5] = byte(s.Val >> 32)
		buf[6] = byte(s.Val >> 40)
		buf[7] = byte(s.Val >> 48)
		buf[8] = byte(s.Val >> 56)
		_, _ = d.Write(buf[:])
	}

	return d.Sum64()
}

func digestDecoded(data []byte, wantSlots int) (uint64, error) {
	dec, err := simple8b.NewUint64Decoder(data)
	if err != nil {
		return 0, err
	}

	slots := make([]Slot, 0, wantSlots)
	it := dec.Iterate()
	for it.Next() {
		v, present := it.Value()
		slots = append(slots, Slot{Val: v, Present: present})
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	if len(slots) != wantSlots {
		return 0, fmt.Errorf("decoded %d slots, want %d: %w", len(slots), wantSlots, ErrDigestMismatch)
	}

	return digestSlots(slots), nil
}
