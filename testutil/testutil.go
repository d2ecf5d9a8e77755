package testutil

import (
	"math/rand"
	"sort"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// SortedDistinct returns n strictly increasing values. The first value is in
// [0, maxGap) and consecutive values differ by a random gap in [1, maxGap].
// Locks only once per call.
func (r *RNG) SortedDistinct(n, maxGap int) []int {
	if maxGap < 1 {
		maxGap = 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	seq := make([]int, n)
	v := r.rand.Intn(maxGap)
	for i := range seq {
		if i > 0 {
			v += 1 + r.rand.Intn(maxGap)
		}
		seq[i] = v
	}
	return seq
}

// Absent returns values that do not occur in the strictly increasing seq:
// one below the first element, one above the last, and every gap value
// between neighbours (at most limit values in total).
func Absent(seq []int, limit int) []int {
	if len(seq) == 0 {
		return nil
	}

	out := []int{seq[0] - 1, seq[len(seq)-1] + 1}
	for i := 1; i < len(seq) && len(out) < limit; i++ {
		for v := seq[i-1] + 1; v < seq[i] && len(out) < limit; v++ {
			out = append(out, v)
		}
	}
	return out
}

// Ascending returns 1..n.
func Ascending(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return seq
}

// ReferenceSearch returns the 1-based position of target in the sorted seq
// or 0 if it is absent.
func ReferenceSearch(seq []int, target int) int {
	i := sort.SearchInts(seq, target)
	if i < len(seq) && seq[i] == target {
		return i + 1
	}
	return 0
}
