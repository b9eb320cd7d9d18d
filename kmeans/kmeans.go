package kmeans

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Excluded marks an element that takes no part in a run.
const Excluded = -1

// Result is the outcome of a k-means run.
type Result[T any] struct {
	// Centroids holds one value per cluster, indexed by cluster id.
	Centroids []T
	// Iterations is the number of assignment steps performed.
	Iterations int
	// Converged is false when the iteration cap was reached while elements
	// were still changing cluster.
	Converged bool
}

// KMeans clusters a fixed set of elements into K groups.
//
// The assignment vector passed to New is owned by the caller and is mutated
// in place by Compute, Refine and ComputeIteratedBinary. A KMeans must not be
// used from several goroutines at once.
type KMeans[T any] struct {
	data    []T
	assign  []int
	k       int
	maxIter int
	space   Space[T]
	opts    options
}

// New validates the inputs and returns a KMeans ready to run. Nothing is
// mutated on failure.
func New[T any](data []T, assignments []int, k, maxIter int, space Space[T], optFns ...Option) (*KMeans[T], error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}
	if maxIter < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMaxIter, maxIter)
	}
	if len(data) != len(assignments) {
		return nil, fmt.Errorf("%w: %d elements, %d assignments", ErrLengthMismatch, len(data), len(assignments))
	}
	if space == nil {
		return nil, ErrNilSpace
	}
	if v, ok := space.(Validator[T]); ok {
		for i, d := range data {
			if err := v.Validate(d); err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
	}

	km := &KMeans[T]{
		data:    data,
		assign:  assignments,
		k:       k,
		maxIter: maxIter,
		space:   space,
		opts:    applyOptions(optFns),
	}
	if err := km.checkAssignments(); err != nil {
		return nil, err
	}
	return km, nil
}

// K returns the number of clusters.
func (km *KMeans[T]) K() int {
	return km.k
}

// Compute picks K distinct random centroids among the non-excluded elements
// and runs Lloyd iterations from there.
//
// It returns ErrInsufficientData, without touching the assignment vector,
// when fewer than K distinct values are available.
func (km *KMeans[T]) Compute() (Result[T], error) {
	if err := km.checkAssignments(); err != nil {
		return Result[T]{}, err
	}
	active := km.activeSet()
	centroids, err := km.initCentroids(active)
	if err != nil {
		return Result[T]{}, err
	}
	return km.run(active, centroids)
}

// Refine runs Lloyd iterations starting from the given centroids.
//
// Refining an already converged result reproduces it exactly.
func (km *KMeans[T]) Refine(centroids []T) (Result[T], error) {
	if len(centroids) != km.k {
		return Result[T]{}, fmt.Errorf("%w: %d centroids for k=%d", ErrInvalidK, len(centroids), km.k)
	}
	if err := km.checkAssignments(); err != nil {
		return Result[T]{}, err
	}
	return km.run(km.activeSet(), append([]T(nil), centroids...))
}

func (km *KMeans[T]) checkAssignments() error {
	for i, a := range km.assign {
		if a != Excluded && (a < 0 || a >= km.k) {
			return fmt.Errorf("%w: element %d has %d, want -1 or [0, %d)", ErrInvalidAssignment, i, a, km.k)
		}
	}
	return nil
}

func (km *KMeans[T]) activeSet() *roaring.Bitmap {
	active := roaring.New()
	for i, a := range km.assign {
		if a != Excluded {
			active.Add(uint32(i))
		}
	}
	return active
}

// initCentroids samples active elements in random order and keeps each one
// whose value differs from every centroid chosen so far.
func (km *KMeans[T]) initCentroids(active *roaring.Bitmap) ([]T, error) {
	idx := active.ToArray()
	centroids := make([]T, 0, km.k)
	for _, p := range km.opts.rng.Perm(len(idx)) {
		v := km.data[idx[p]]
		if km.isCentroid(v, centroids) {
			continue
		}
		centroids = append(centroids, v)
		if len(centroids) == km.k {
			return centroids, nil
		}
	}
	return nil, fmt.Errorf("%w: %d distinct among %d active elements, k=%d",
		ErrInsufficientData, len(centroids), len(idx), km.k)
}

func (km *KMeans[T]) isCentroid(v T, centroids []T) bool {
	for _, c := range centroids {
		if km.space.Distance(v, c) == 0 {
			return true
		}
	}
	return false
}

func (km *KMeans[T]) run(active *roaring.Bitmap, centroids []T) (Result[T], error) {
	res := Result[T]{Centroids: centroids}
	idx := active.ToArray()

	// settled is true once the centroids are the means of the current
	// assignment; only then does an unchanged assignment mean convergence.
	settled := false
	for res.Iterations < km.maxIter {
		res.Iterations++
		if changed := km.assignStep(idx, centroids); !changed && settled {
			res.Converged = true
			break
		}
		if err := km.updateStep(idx, centroids); err != nil {
			return res, err
		}
		settled = true
	}

	if !res.Converged {
		km.opts.logger.Warn("k-means did not converge",
			"k", km.k,
			"max_iterations", km.maxIter,
			"active", len(idx),
		)
	}

	km.relabel(centroids)
	return res, nil
}

// assignStep moves every active element to its closest centroid. Ties go to
// the lowest cluster id.
func (km *KMeans[T]) assignStep(idx []uint32, centroids []T) bool {
	changed := false
	for _, u := range idx {
		i := int(u)
		best, bestDist := 0, km.space.Distance(km.data[i], centroids[0])
		for c := 1; c < len(centroids); c++ {
			if d := km.space.Distance(km.data[i], centroids[c]); d < bestDist {
				best, bestDist = c, d
			}
		}
		if km.assign[i] != best {
			km.assign[i] = best
			changed = true
		}
	}
	return changed
}

func (km *KMeans[T]) updateStep(idx []uint32, centroids []T) error {
	sums := make([]T, km.k)
	counts := make([]int, km.k)
	for c := range sums {
		sums[c] = km.space.Zero()
	}
	for _, u := range idx {
		c := km.assign[u]
		sums[c] = km.space.Add(sums[c], km.data[u])
		counts[c]++
	}

	for c := range centroids {
		if counts[c] > 0 {
			centroids[c] = km.space.Divide(sums[c], float64(counts[c]))
			continue
		}
		switch km.opts.policy {
		case FailOnEmpty:
			return fmt.Errorf("%w: cluster %d", ErrEmptyCluster, c)
		case Reseed:
			if v, ok := km.reseed(idx, centroids, c); ok {
				centroids[c] = v
				km.opts.logger.Debug("empty cluster reseeded", "cluster", c)
				continue
			}
			km.opts.logger.Debug("empty cluster found no distinct value to reseed from", "cluster", c)
		default:
			km.opts.logger.Debug("empty cluster kept previous centroid", "cluster", c)
		}
	}
	return nil
}

// reseed draws active elements in random order and returns the first value
// that no other centroid holds.
func (km *KMeans[T]) reseed(idx []uint32, centroids []T, empty int) (T, bool) {
	others := make([]T, 0, len(centroids)-1)
	others = append(others, centroids[:empty]...)
	others = append(others, centroids[empty+1:]...)
	for _, p := range km.opts.rng.Perm(len(idx)) {
		if v := km.data[idx[p]]; !km.isCentroid(v, others) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// relabel renumbers clusters by ascending centroid when the space is ordered.
func (km *KMeans[T]) relabel(centroids []T) {
	ord, ok := km.space.(Orderer[T])
	if !ok {
		return
	}

	perm := make([]int, len(centroids))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return ord.Less(centroids[perm[a]], centroids[perm[b]])
	})

	newID := make([]int, len(perm))
	sorted := make([]T, len(perm))
	for to, from := range perm {
		newID[from] = to
		sorted[to] = centroids[from]
	}
	copy(centroids, sorted)

	for i, a := range km.assign {
		if a != Excluded {
			km.assign[i] = newID[a]
		}
	}
}
