// Package unionfind implements a disjoint-set forest over the dense index
// space [0, n).
//
// Unlike a textbook union-by-rank forest, the root of every set is always its
// smallest member. The hierarchical engine relies on this: the surviving
// cluster representative after a merge is the smaller id.
package unionfind

// UnionFind is a disjoint-set forest with path compression.
// It is not safe for concurrent use.
type UnionFind struct {
	parent []int
	size   []int
	count  int
}

// New creates a UnionFind with n singleton sets.
func New(n int) *UnionFind {
	if n < 0 {
		n = 0
	}
	uf := &UnionFind{
		parent: make([]int, n),
		size:   make([]int, n),
		count:  n,
	}
	for i := range uf.parent {
		uf.parent[i] = i
		uf.size[i] = 1
	}
	return uf
}

// Count returns the number of disjoint sets.
func (uf *UnionFind) Count() int {
	return uf.count
}

// Find returns the representative of the set containing x.
func (uf *UnionFind) Find(x int) int {
	root := x
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	// Path compression.
	for uf.parent[x] != root {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// Union merges the sets containing a and b and returns the surviving
// representative, which is the smaller of the two roots. If a and b are
// already in the same set, their representative is returned unchanged.
func (uf *UnionFind) Union(a, b int) int {
	ra, rb := uf.Find(a), uf.Find(b)
	if ra == rb {
		return ra
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	uf.size[ra] += uf.size[rb]
	uf.count--
	return ra
}

// Size returns the number of elements in the set containing x.
func (uf *UnionFind) Size(x int) int {
	return uf.size[uf.Find(x)]
}

// Labels returns the representative of every element.
func (uf *UnionFind) Labels() []int {
	out := make([]int, len(uf.parent))
	for i := range out {
		out[i] = uf.Find(i)
	}
	return out
}
