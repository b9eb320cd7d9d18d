package hierarchical

import (
	"testing"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoPairs is d(0,1)=d(2,3)=0.1 with every cross pair at 10.
func twoPairs(t *testing.T, typ matrix.Type) *matrix.Matrix {
	t.Helper()
	near, far := 0.1, 10.0
	if typ == matrix.Similarity {
		near, far = 0.9, -0.5
	}
	m, err := matrix.FromRows([][]float64{
		{0, near, far, far},
		{near, 0, far, far},
		{far, far, 0, near},
		{far, far, near, 0},
	}, typ)
	require.NoError(t, err)
	return m
}

// trioWithOutlier holds a tight trio (0,1,2), an outlier (3) close to sample 2
// only, and a loose pair (4,5) far from everything else.
func trioWithOutlier(t *testing.T) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromRows([][]float64{
		{0, 1, 1, 3, 10, 10},
		{1, 0, 1, 3, 10, 10},
		{1, 1, 0, 1.2, 10, 10},
		{3, 3, 1.2, 0, 10, 10},
		{10, 10, 10, 10, 0, 2},
		{10, 10, 10, 10, 2, 0},
	}, matrix.Distance)
	require.NoError(t, err)
	return m
}

func TestCompute_WellSeparatedPairs(t *testing.T) {
	for _, typ := range []matrix.Type{matrix.Distance, matrix.Similarity} {
		for _, l := range []Linkage{Complete, Single, Average} {
			t.Run(typ.String()+"/"+l.String(), func(t *testing.T) {
				c, err := New(twoPairs(t, typ), l)
				require.NoError(t, err)

				labels, err := c.Compute(2)
				require.NoError(t, err)
				assert.Equal(t, []int{0, 0, 2, 2}, labels)
				assert.Equal(t, []int{0, 0, 1, 1}, Compact(labels))
			})
		}
	}
}

func TestCompute_SingleAbsorbsOutlierEarlier(t *testing.T) {
	m := trioWithOutlier(t)

	single, err := New(m, Single)
	require.NoError(t, err)
	labels, err := single.Compute(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 4, 5}, labels)

	complete, err := New(m, Complete)
	require.NoError(t, err)
	labels, err = complete.Compute(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 3, 4, 4}, labels)
}

func TestCompute_KEqualsN(t *testing.T) {
	var merges []Merge
	c, err := New(twoPairs(t, matrix.Distance), Complete, WithMergeObserver(func(m Merge) {
		merges = append(merges, m)
	}))
	require.NoError(t, err)

	labels, err := c.Compute(4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, labels)
	assert.Empty(t, merges)
}

func TestCompute_InvalidK(t *testing.T) {
	c, err := New(twoPairs(t, matrix.Distance), Complete)
	require.NoError(t, err)

	for _, k := range []int{-1, 0, 5} {
		_, err := c.Compute(k)
		assert.ErrorIs(t, err, ErrInvalidK)
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, Complete)
	assert.ErrorIs(t, err, ErrNilMatrix)

	_, err = New(twoPairs(t, matrix.Distance), Linkage(42))
	assert.ErrorIs(t, err, ErrUnknownLinkage)
}

func TestCompute_AverageIsSizeWeighted(t *testing.T) {
	m, err := matrix.FromRows([][]float64{
		{0, 1, 1, 3},
		{1, 0, 1, 3},
		{1, 1, 0, 1.2},
		{3, 3, 1.2, 0},
	}, matrix.Distance)
	require.NoError(t, err)

	var values []float64
	c, err := New(m, Average, WithMergeObserver(func(m Merge) {
		values = append(values, m.Value)
	}))
	require.NoError(t, err)

	_, err = c.Compute(1)
	require.NoError(t, err)
	require.Len(t, values, 3)
	// Mean over all pairs between {0,1,2} and {3}: (3+3+1.2)/3.
	assert.InDelta(t, 2.4, values[2], 1e-12)
}

func TestCompute_RepresentativeCountShrinksByOne(t *testing.T) {
	m := trioWithOutlier(t)
	n := m.N()

	for k := n; k >= 1; k-- {
		var merges []Merge
		c, err := New(m, Average, WithMergeObserver(func(m Merge) {
			merges = append(merges, m)
		}))
		require.NoError(t, err)

		labels, err := c.Compute(k)
		require.NoError(t, err)
		assert.Len(t, merges, n-k)

		distinct := map[int]bool{}
		for i, l := range labels {
			distinct[l] = true
			// Every sample maps to a live representative, which represents itself.
			assert.Equal(t, l, labels[l], "sample %d", i)
			assert.LessOrEqual(t, l, i)
		}
		assert.Len(t, distinct, k)

		for _, mg := range merges {
			assert.Less(t, mg.Left, mg.Right)
			assert.Equal(t, mg.Left, mg.Survivor)
		}
	}
}

func TestCompute_MergeSizesMatchMembership(t *testing.T) {
	m := trioWithOutlier(t)

	for _, l := range []Linkage{Complete, Single, Average} {
		t.Run(l.String(), func(t *testing.T) {
			sizes := map[int]int{}
			size := func(id int) int {
				if n, ok := sizes[id]; ok {
					return n
				}
				return 1
			}

			c, err := New(m, l, WithMergeObserver(func(mg Merge) {
				assert.Equal(t, size(mg.Left)+size(mg.Right), mg.Size)
				delete(sizes, mg.Right)
				sizes[mg.Survivor] = mg.Size
			}))
			require.NoError(t, err)

			labels, err := c.Compute(2)
			require.NoError(t, err)

			members := map[int]int{}
			for _, rep := range labels {
				members[rep]++
			}
			for rep, n := range members {
				assert.Equal(t, n, size(rep), "representative %d", rep)
			}
		})
	}
}

func TestCompute_MergeValuesAreMonotone(t *testing.T) {
	tests := []struct {
		linkage Linkage
		typ     matrix.Type
	}{
		{Single, matrix.Distance},
		{Complete, matrix.Distance},
		{Single, matrix.Similarity},
		{Complete, matrix.Similarity},
	}

	rows := [][]float64{
		{0, 2, 6, 10, 9},
		{2, 0, 5, 9, 8},
		{6, 5, 0, 4, 5},
		{10, 9, 4, 0, 3},
		{9, 8, 5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.linkage.String()+"/"+tt.typ.String(), func(t *testing.T) {
			in := rows
			if tt.typ == matrix.Similarity {
				in = make([][]float64, len(rows))
				for i := range rows {
					in[i] = make([]float64, len(rows[i]))
					for j := range rows[i] {
						in[i][j] = -rows[i][j]
					}
				}
			}
			m, err := matrix.FromRows(in, tt.typ)
			require.NoError(t, err)

			var values []float64
			c, err := New(m, tt.linkage, WithMergeObserver(func(m Merge) {
				values = append(values, m.Value)
			}))
			require.NoError(t, err)
			_, err = c.Compute(1)
			require.NoError(t, err)

			for i := 1; i < len(values); i++ {
				assert.False(t, tt.typ.Better(values[i], values[i-1]),
					"merge %d (%g) is more favourable than merge %d (%g)", i, values[i], i-1, values[i-1])
			}
		})
	}
}

func TestCompute_TiesPickFirstPair(t *testing.T) {
	m, err := matrix.FromRows([][]float64{
		{0, 1, 5, 5},
		{1, 0, 5, 5},
		{5, 5, 0, 1},
		{5, 5, 1, 0},
	}, matrix.Distance)
	require.NoError(t, err)

	var first *Merge
	c, err := New(m, Single, WithMergeObserver(func(m Merge) {
		if first == nil {
			first = &m
		}
	}))
	require.NoError(t, err)

	_, err = c.Compute(3)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 0, first.Left)
	assert.Equal(t, 1, first.Right)
}

func TestCompute_Reusable(t *testing.T) {
	c, err := New(trioWithOutlier(t), Complete)
	require.NoError(t, err)

	a, err := c.Compute(2)
	require.NoError(t, err)
	_, err = c.Compute(5)
	require.NoError(t, err)
	b, err := c.Compute(2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseLinkage(t *testing.T) {
	l, err := ParseLinkage("AVERAGE")
	require.NoError(t, err)
	assert.Equal(t, Average, l)

	_, err = ParseLinkage("ward")
	assert.ErrorIs(t, err, ErrUnknownLinkage)

	assert.Equal(t, "single", Single.String())
	assert.Equal(t, "Unknown(9)", Linkage(9).String())
}

func TestCompact(t *testing.T) {
	assert.Equal(t, []int{0, 1, 0, 2}, Compact([]int{3, 1, 3, 0}))
	assert.Empty(t, Compact(nil))
}
