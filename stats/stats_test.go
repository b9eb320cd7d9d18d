package stats

import (
	"math"
	"testing"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanStdDev(t *testing.T) {
	x := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	assert.InDelta(t, 5.0, Mean(x), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), StdDev(x), 1e-12)

	assert.True(t, math.IsNaN(Mean(nil)))
	assert.True(t, math.IsNaN(StdDev([]float64{1})))
}

func TestRanks(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"distinct", []float64{30, 10, 20}, []float64{3, 1, 2}},
		{"ties", []float64{1, 2, 2, 3}, []float64{1, 2.5, 2.5, 4}},
		{"all equal", []float64{7, 7, 7}, []float64{2, 2, 2}},
		{"empty", nil, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ranks(tt.in))
		})
	}
}

func TestQuantile(t *testing.T) {
	x := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, 3.0, Quantile(x, 0.5))
	assert.Equal(t, 5.0, Quantile(x, 1))
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, x)
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestClassStats(t *testing.T) {
	m, err := matrix.FromRows([][]float64{
		{1, 0.8, 0.1, 0.3},
		{0.8, 1, 0.2, 0.4},
		{0.1, 0.2, 1, 0.6},
		{0.3, 0.4, 0.6, 1},
	}, matrix.Similarity)
	require.NoError(t, err)

	table, err := ClassStats(m, []Class{
		{Name: "BRCA-Control", Members: []int{0, 1}},
		{Name: "BRCA-Tumor", Members: []int{2, 3}},
	})
	require.NoError(t, err)

	within := table.Cells[0][0]
	assert.Equal(t, 2, within.Count)
	assert.InDelta(t, 0.8, within.Mean, 1e-12)
	assert.InDelta(t, 0.0, within.StdDev, 1e-12)

	cross := table.Cells[0][1]
	assert.Equal(t, 4, cross.Count)
	assert.InDelta(t, 0.25, cross.Mean, 1e-12)
	assert.Equal(t, cross, table.Cells[1][0])

	_, err = ClassStats(m, []Class{{Name: "x", Members: []int{4}}})
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestClusterSizes(t *testing.T) {
	assert.Equal(t, []int{2, 1, 3}, ClusterSizes([]int{0, 2, 2, 1, 0, 2}))
	assert.Equal(t, []int{1}, ClusterSizes([]int{-1, 0}))
	assert.Empty(t, ClusterSizes(nil))
}

func TestTopColumns(t *testing.T) {
	rows := [][]float64{
		{0, 1, 1, 0},
		{1, 1, 0, 0},
		{0, 1, 1, 0},
	}
	assert.Equal(t, []int{1, 2}, TopColumns(rows, 2))
	assert.Equal(t, []int{1, 2, 0, 3}, TopColumns(rows, 10))
	assert.Nil(t, TopColumns(nil, 3))
}
