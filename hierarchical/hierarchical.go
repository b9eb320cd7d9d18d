package hierarchical

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/nicolas-legroux/tcgaExplorer/internal/unionfind"
	"github.com/nicolas-legroux/tcgaExplorer/matrix"
)

// Clusterer runs agglomerative clustering over a fixed matrix.
//
// The Clusterer itself is immutable; every Compute call builds and discards
// its own working state, so one Clusterer may serve several calls, including
// concurrent ones.
type Clusterer struct {
	m       *matrix.Matrix
	linkage Linkage
	opts    options
}

// New creates a Clusterer for m using the given linkage. The matrix type
// (similarity or distance) is taken from m.
func New(m *matrix.Matrix, linkage Linkage, optFns ...Option) (*Clusterer, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if !linkage.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLinkage, int(linkage))
	}
	if !m.Type().Valid() {
		return nil, fmt.Errorf("hierarchical: %w", matrix.ErrUnknownType)
	}
	return &Clusterer{
		m:       m,
		linkage: linkage,
		opts:    applyOptions(optFns),
	}, nil
}

// Linkage returns the configured linkage.
func (c *Clusterer) Linkage() Linkage {
	return c.linkage
}

// Compute merges clusters until exactly k remain and returns, for every
// sample, the id of its cluster representative.
func (c *Clusterer) Compute(k int) ([]int, error) {
	n := c.m.N()
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrInvalidK, k, n)
	}

	st := newState(c.m)
	for merges := 0; st.uf.Count() > k; merges++ {
		left, right, value := st.closestPair()
		m := st.merge(c.linkage, left, right, value)
		if c.opts.observe != nil {
			c.opts.observe(m)
		}
		c.opts.logger.Debug("clusters merged",
			"step", merges+1,
			"left", m.Left,
			"right", m.Right,
			"value", m.Value,
			"size", m.Size,
		)
	}

	c.opts.logger.Debug("hierarchical clustering completed",
		"n", n,
		"k", k,
		"linkage", c.linkage.String(),
		"matrix_type", c.m.Type().String(),
	)
	return st.uf.Labels(), nil
}

// state is the per-call working set.
type state struct {
	n    int
	typ  matrix.Type
	d    []float64 // live matrix, row-major, indexed by representative
	uf   *unionfind.UnionFind
	live *roaring.Bitmap
}

func newState(m *matrix.Matrix) *state {
	n := m.N()
	live := roaring.New()
	live.AddRange(0, uint64(n))

	return &state{
		n:    n,
		typ:  m.Type(),
		d:    m.Clone(),
		uf:   unionfind.New(n),
		live: live,
	}
}

func (s *state) at(i, j int) float64 {
	return s.d[i*s.n+j]
}

func (s *state) set(i, j int, v float64) {
	s.d[i*s.n+j] = v
	s.d[j*s.n+i] = v
}

// closestPair scans all unordered pairs of live representatives in
// ascending order and returns the first most favourable one.
func (s *state) closestPair() (int, int, float64) {
	reps := s.live.ToArray()
	bestI, bestJ := -1, -1
	best := s.typ.Sentinel()
	for a := 0; a < len(reps); a++ {
		i := int(reps[a])
		for b := a + 1; b < len(reps); b++ {
			j := int(reps[b])
			v := s.at(i, j)
			if bestI < 0 || s.typ.Better(v, best) {
				bestI, bestJ, best = i, j, v
			}
		}
	}
	return bestI, bestJ, best
}

// merge joins the clusters represented by i and j (i < j), retires j and
// rewrites the survivor's row.
func (s *state) merge(l Linkage, i, j int, value float64) Merge {
	sizeI, sizeJ := s.uf.Size(i), s.uf.Size(j)

	survivor := s.uf.Union(i, j)
	retired := j
	if survivor == j {
		retired = i
	}
	s.live.Remove(uint32(retired))

	it := s.live.Iterator()
	for it.HasNext() {
		r := int(it.Next())
		if r == survivor {
			continue
		}
		s.set(survivor, r, l.combine(s.typ, s.at(i, r), s.at(j, r), sizeI, sizeJ))
	}

	return Merge{
		Left:     i,
		Right:    j,
		Survivor: survivor,
		Value:    value,
		Size:     sizeI + sizeJ,
	}
}

// Compact maps representative ids to dense cluster numbers 0..k-1, numbered
// in order of first appearance.
func Compact(labels []int) []int {
	ids := make(map[int]int)
	out := make([]int, len(labels))
	for i, l := range labels {
		id, ok := ids[l]
		if !ok {
			id = len(ids)
			ids[l] = id
		}
		out[i] = id
	}
	return out
}
