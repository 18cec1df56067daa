package measure

import "math/rand"

// Slot is one logical position in a workload: a value, or a missing marker
// when Present is false.
type Slot struct {
	Val     uint64
	Present bool
}

// Workload is a named sequence of slots to push through the codec.
type Workload struct {
	Name  string
	Slots []Slot
}

// ConstantRun produces n copies of v. Exercises the run-length path.
func ConstantRun(n int, v uint64) Workload {
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{Val: v, Present: true}
	}

	return Workload{Name: "constant-run", Slots: slots}
}

// SteppedDeltas produces n values of step plus jitter in [0, jitter), the
// shape of delta-encoded timestamps from a regular sampling interval.
func SteppedDeltas(n int, step, jitter uint64, seed int64) Workload {
	rng := rand.New(rand.NewSource(seed))
	slots := make([]Slot, n)
	for i := range slots {
		v := step
		if jitter > 0 {
			v += rng.Uint64() % jitter
		}
		slots[i] = Slot{Val: v, Present: true}
	}

	return Workload{Name: "stepped-deltas", Slots: slots}
}

// Sparse produces n slots with one value present every presentEvery slots
// and missing markers elsewhere. Exercises the skip path.
func Sparse(n, presentEvery int, bits uint, seed int64) Workload {
	rng := rand.New(rand.NewSource(seed))
	slots := make([]Slot, n)
	for i := range slots {
		if i%presentEvery == 0 {
			slots[i] = Slot{Val: rng.Uint64() & mask(bits), Present: true}
		}
	}

	return Workload{Name: "sparse", Slots: slots}
}

// RandomBits produces n uniformly random values of at most the given bit
// width. The least compressible shape for a given magnitude.
func RandomBits(n int, bits uint, seed int64) Workload {
	rng := rand.New(rand.NewSource(seed))
	slots := make([]Slot, n)
	for i := range slots {
		slots[i] = Slot{Val: rng.Uint64() & mask(bits), Present: true}
	}

	return Workload{Name: "random-bits", Slots: slots}
}

// DefaultWorkloads returns a standard suite covering the codec's main
// behaviors with deterministic seeds.
func DefaultWorkloads() []Workload {
	return []Workload{
		ConstantRun(10_000, 60),
		SteppedDeltas(10_000, 1000, 16, 1),
		Sparse(10_000, 5, 20, 2),
		RandomBits(10_000, 12, 3),
	}
}

func mask(bits uint) uint64 {
	if bits >= 64 {
		return ^uint64(0)
	}

	return (uint64(1) << bits) - 1
}
