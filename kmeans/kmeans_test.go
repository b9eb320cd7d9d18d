package kmeans

import (
	"bytes"
	"log/slog"
	"math/rand"
	"sort"
	"testing"

	"github.com/nicolas-legroux/tcgaExplorer/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func TestNew_Validation(t *testing.T) {
	data := []float64{0, 1, 2}

	tests := []struct {
		name    string
		assign  []int
		k       int
		maxIter int
		space   Space[float64]
		wantErr error
	}{
		{"zero k", []int{0, 0, 0}, 0, 10, Scalar{}, ErrInvalidK},
		{"zero max iter", []int{0, 0, 0}, 2, 0, Scalar{}, ErrInvalidMaxIter},
		{"length mismatch", []int{0, 0}, 2, 10, Scalar{}, ErrLengthMismatch},
		{"assignment too large", []int{0, 2, 0}, 2, 10, Scalar{}, ErrInvalidAssignment},
		{"assignment below sentinel", []int{0, -2, 0}, 2, 10, Scalar{}, ErrInvalidAssignment},
		{"nil space", []int{0, 0, 0}, 2, 10, nil, ErrNilSpace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(data, tt.assign, tt.k, tt.maxIter, tt.space)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_VectorDimension(t *testing.T) {
	data := [][]float64{{0, 0}, {1}}
	_, err := New(data, []int{0, 0}, 1, 10, Vector{Dim: 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCompute_Scalar(t *testing.T) {
	data := []float64{0, 0, 1, 1, 8, 8, 8}

	for seed := int64(1); seed <= 20; seed++ {
		assign := make([]int, len(data))
		km, err := New(data, assign, 2, 10, Scalar{}, seeded(seed))
		require.NoError(t, err)

		res, err := km.Compute()
		require.NoError(t, err)
		assert.True(t, res.Converged)
		require.Len(t, res.Centroids, 2)
		assert.InDelta(t, 0.5, res.Centroids[0], 1e-12)
		assert.InDelta(t, 8.0, res.Centroids[1], 1e-12)
		assert.Equal(t, []int{0, 0, 0, 0, 1, 1, 1}, assign)
	}
}

func TestCompute_ExcludedStaysExcluded(t *testing.T) {
	data := []float64{0, 0, 1, 1, 8, 8, 8}
	assign := []int{0, 0, 0, 0, Excluded, 0, 0}

	km, err := New(data, assign, 2, 10, Scalar{}, seeded(3))
	require.NoError(t, err)

	res, err := km.Compute()
	require.NoError(t, err)
	assert.Equal(t, Excluded, assign[4])
	assert.Equal(t, []int{0, 0, 0, 0, Excluded, 1, 1}, assign)
	assert.InDelta(t, 0.5, res.Centroids[0], 1e-12)
	assert.InDelta(t, 8.0, res.Centroids[1], 1e-12)
}

func TestCompute_ExcludedDoesNotContribute(t *testing.T) {
	// The outlier would drag the upper centroid to 28 if it took part.
	data := []float64{0, 1, 8, 8, 100}
	assign := []int{0, 0, 0, 0, Excluded}

	km, err := New(data, assign, 2, 10, Scalar{}, seeded(5))
	require.NoError(t, err)

	res, err := km.Compute()
	require.NoError(t, err)
	assert.InDelta(t, 8.0, res.Centroids[1], 1e-12)
	assert.Equal(t, Excluded, assign[4])
}

func TestCompute_InsufficientData(t *testing.T) {
	data := []float64{1, 1, 2, 2, 2}
	assign := []int{0, 1, 0, 1, Excluded}
	before := append([]int(nil), assign...)

	km, err := New(data, assign, 3, 10, Scalar{}, seeded(1))
	require.NoError(t, err)

	_, err = km.Compute()
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.Equal(t, before, assign)
}

func TestCompute_AllExcluded(t *testing.T) {
	assign := []int{Excluded, Excluded}
	km, err := New([]float64{1, 2}, assign, 1, 10, Scalar{})
	require.NoError(t, err)

	_, err = km.Compute()
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestCompute_CentroidsAscending(t *testing.T) {
	rng := testutil.NewRNG(4711)
	data := rng.Uniform(200, -50, 50)

	for _, k := range []int{2, 3, 5, 8} {
		assign := make([]int, len(data))
		km, err := New(data, assign, k, 1000, Scalar{}, WithRand(rng.Source()))
		require.NoError(t, err)

		res, err := km.Compute()
		require.NoError(t, err)
		assert.True(t, sort.Float64sAreSorted(res.Centroids), "k=%d: %v", k, res.Centroids)

		// Every element sits with its nearest centroid.
		for i, v := range data {
			got := Scalar{}.Distance(v, res.Centroids[assign[i]])
			for c := range res.Centroids {
				assert.LessOrEqual(t, got, Scalar{}.Distance(v, res.Centroids[c]))
			}
		}
	}
}

func TestCompute_NonConvergenceIsReported(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	data := []float64{0, 0, 1, 1, 8, 8, 8}
	assign := make([]int, len(data))
	km, err := New(data, assign, 2, 1, Scalar{}, seeded(1), WithLogger(logger))
	require.NoError(t, err)

	res, err := km.Compute()
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Equal(t, 1, res.Iterations)
	assert.Len(t, res.Centroids, 2)
	assert.Contains(t, buf.String(), "k-means did not converge")
}

func TestRefine_ConvergedIsFixedPoint(t *testing.T) {
	rng := testutil.NewRNG(99)
	data, _ := rng.ClusteredVectors(40, 3, 2, 0.3)

	assign := make([]int, len(data))
	km, err := New(data, assign, 2, 100, Vector{Dim: 3}, WithRand(rng.Source()))
	require.NoError(t, err)

	first, err := km.Compute()
	require.NoError(t, err)
	require.True(t, first.Converged)
	assignBefore := append([]int(nil), assign...)

	again, err := km.Refine(first.Centroids)
	require.NoError(t, err)
	assert.True(t, again.Converged)
	assert.Equal(t, assignBefore, assign)
	assert.Equal(t, first.Centroids, again.Centroids)
}

func TestRefine_WrongCentroidCount(t *testing.T) {
	km, err := New([]float64{0, 1}, []int{0, 0}, 2, 10, Scalar{})
	require.NoError(t, err)

	_, err = km.Refine([]float64{0})
	assert.ErrorIs(t, err, ErrInvalidK)
}

func TestCompute_Vector(t *testing.T) {
	for _, norm := range []Norm{Euclidean, Manhattan} {
		t.Run(norm.String(), func(t *testing.T) {
			rng := testutil.NewRNG(4711)
			data, truth := rng.ClusteredVectors(40, 3, 2, 0.2)

			assign := make([]int, len(data))
			km, err := New(data, assign, 2, 100, Vector{Dim: 3, Norm: norm}, WithRand(rng.Source()))
			require.NoError(t, err)

			res, err := km.Compute()
			require.NoError(t, err)
			assert.True(t, res.Converged)
			assert.True(t, testutil.SamePartition(truth, assign))
			assert.True(t, Vector{}.Less(res.Centroids[0], res.Centroids[1]))
			assert.InDelta(t, 0, res.Centroids[0][0], 0.5)
			assert.InDelta(t, 10, res.Centroids[1][0], 0.5)
		})
	}
}

func TestEmptyClusterPolicy(t *testing.T) {
	data := []float64{0, 1, 2}

	t.Run("retain", func(t *testing.T) {
		assign := make([]int, len(data))
		km, err := New(data, assign, 2, 10, Scalar{})
		require.NoError(t, err)

		res, err := km.Refine([]float64{1, 100})
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 100}, res.Centroids)
		assert.Equal(t, []int{0, 0, 0}, assign)
	})

	t.Run("fail", func(t *testing.T) {
		assign := make([]int, len(data))
		km, err := New(data, assign, 2, 10, Scalar{}, WithEmptyClusterPolicy(FailOnEmpty))
		require.NoError(t, err)

		_, err = km.Refine([]float64{1, 100})
		assert.ErrorIs(t, err, ErrEmptyCluster)
	})

	t.Run("reseed", func(t *testing.T) {
		assign := make([]int, len(data))
		km, err := New(data, assign, 2, 10, Scalar{}, WithEmptyClusterPolicy(Reseed), seeded(2))
		require.NoError(t, err)

		res, err := km.Refine([]float64{1, 100})
		require.NoError(t, err)
		require.Len(t, res.Centroids, 2)
		for _, c := range res.Centroids {
			assert.LessOrEqual(t, c, 2.0)
		}
		for _, a := range assign {
			assert.Contains(t, []int{0, 1}, a)
		}
	})

	t.Run("reseed skips taken values", func(t *testing.T) {
		// The surviving centroid settles on 2, a value two elements hold.
		data := []float64{0, 2, 2, 4}
		for seed := int64(1); seed <= 20; seed++ {
			assign := make([]int, len(data))
			km, err := New(data, assign, 2, 10, Scalar{}, WithEmptyClusterPolicy(Reseed), seeded(seed))
			require.NoError(t, err)

			res, err := km.Refine([]float64{2, 100})
			require.NoError(t, err)
			assert.NotEqual(t, res.Centroids[0], res.Centroids[1], "seed %d", seed)
			assert.Contains(t, assign, 0, "seed %d", seed)
			assert.Contains(t, assign, 1, "seed %d", seed)
		}
	})

	t.Run("reseed without distinct values", func(t *testing.T) {
		data := []float64{3, 3, 3}
		assign := make([]int, len(data))
		km, err := New(data, assign, 2, 10, Scalar{}, WithEmptyClusterPolicy(Reseed), seeded(1))
		require.NoError(t, err)

		res, err := km.Refine([]float64{3, 100})
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 100}, res.Centroids)
		assert.Equal(t, []int{0, 0, 0}, assign)
	})
}

func TestParseEmptyClusterPolicy(t *testing.T) {
	p, err := ParseEmptyClusterPolicy("Reseed")
	require.NoError(t, err)
	assert.Equal(t, Reseed, p)

	p, err = ParseEmptyClusterPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RetainPrevious, p)

	_, err = ParseEmptyClusterPolicy("panic")
	assert.Error(t, err)
}

func TestVector_Space(t *testing.T) {
	s := Vector{Dim: 2}
	a, b := []float64{1, 2}, []float64{4, 6}

	assert.InDelta(t, 5.0, s.Distance(a, b), 1e-12)
	assert.InDelta(t, 7.0, Vector{Dim: 2, Norm: Manhattan}.Distance(a, b), 1e-12)
	assert.Equal(t, []float64{5, 8}, s.Add(a, b))
	assert.Equal(t, []float64{0.5, 1}, s.Divide(a, 2))
	assert.Equal(t, []float64{0, 0}, s.Zero())
	assert.Equal(t, []float64{1, 2}, a, "arguments must not be modified")

	assert.True(t, s.Less([]float64{1, 5}, []float64{2, 0}))
	assert.True(t, s.Less([]float64{1, 0}, []float64{1, 1}))
	assert.False(t, s.Less(a, a))
}
