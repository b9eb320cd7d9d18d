package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG wraps a seeded random source. It is safe for concurrent use.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Source returns a fresh *rand.Rand seeded like r, for APIs that take one.
func (r *RNG) Source() *rand.Rand {
	return rand.New(rand.NewSource(r.seed)) //nolint:gosec // test data
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uniform returns n values in [minVal, maxVal).
func (r *RNG) Uniform(n int, minVal, maxVal float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	span := maxVal - minVal
	for i := range out {
		out[i] = minVal + r.rand.Float64()*span
	}
	return out
}

// GaussianVectors generates vectors with standard normal coordinates.
// Uses a single backing array.
func (r *RNG) GaussianVectors(num, dim int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)
	for i := range num {
		vec := data[i*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = r.rand.NormFloat64()
		}
		vectors[i] = vec
	}
	return vectors
}

// ClusteredVectors generates vectors around well separated centres and
// returns them with the index of the centre each one was drawn from.
// Vector i belongs to cluster i % clusters.
//
// Centre c sits at 10·c on every coordinate, so a spread well below 1 gives
// clusters no sensible algorithm can confuse.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float64) ([][]float64, []int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float64, num*dim)
	vectors := make([][]float64, num)
	truth := make([]int, num)
	for i := range num {
		c := i % clusters
		vec := data[i*dim : (i+1)*dim]
		for j := range vec {
			vec[j] = 10*float64(c) + r.rand.NormFloat64()*spread
		}
		vectors[i] = vec
		truth[i] = c
	}
	return vectors, truth
}

// ExpressionProfiles generates log-normally distributed, non-negative
// expression values, one row per sample and one column per gene. Each gene
// has its own baseline so that rows are correlated the way real profiles are.
func (r *RNG) ExpressionProfiles(samples, genes int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	base := make([]float64, genes)
	for g := range base {
		base[g] = r.rand.NormFloat64() * 2
	}

	out := make([][]float64, samples)
	for s := range out {
		row := make([]float64, genes)
		for g := range row {
			row[g] = math.Exp(base[g] + r.rand.NormFloat64()*0.5)
		}
		out[s] = row
	}
	return out
}

// SamePartition reports whether a and b describe the same partition, that is
// whether they are equal up to a renaming of labels. Negative labels must
// match exactly.
func SamePartition(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	fwd := make(map[int]int)
	rev := make(map[int]int)
	for i := range a {
		if a[i] < 0 || b[i] < 0 {
			if a[i] != b[i] {
				return false
			}
			continue
		}
		if x, ok := fwd[a[i]]; ok && x != b[i] {
			return false
		}
		if y, ok := rev[b[i]]; ok && y != a[i] {
			return false
		}
		fwd[a[i]] = b[i]
		rev[b[i]] = a[i]
	}
	return true
}
