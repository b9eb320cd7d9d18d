package tcgaexplorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicolas-legroux/tcgaExplorer/distance"
	"github.com/nicolas-legroux/tcgaExplorer/hierarchical"
	"github.com/nicolas-legroux/tcgaExplorer/kmeans"
	"github.com/nicolas-legroux/tcgaExplorer/normalize"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want Algorithm
		ok   bool
	}{
		{"", Hierarchical, true},
		{"Hierarchical", Hierarchical, true},
		{"k-means", KMeans, true},
		{"K_MEANS", KMeans, true},
		{"kmeans", KMeans, true},
		{"spectral", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnknownAlgorithm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "Algorithm(9)", Algorithm(9).String())
}

func TestCohort_Defaults(t *testing.T) {
	p, err := Cohort{Name: "brca", Manifest: "m.tsv"}.plan()
	require.NoError(t, err)

	assert.Equal(t, []string{"BRCA", "LUAD"}, p.limits.Cancers)
	assert.Equal(t, 20, p.limits.MaxControl)
	assert.Equal(t, 20, p.limits.MaxTumor)
	assert.Equal(t, normalize.MethodBinaryQuantile, p.normalize.Method)
	assert.InDelta(t, 0.995, p.normalize.Quantile, 1e-12)
	assert.Equal(t, 2, p.normalize.K)
	assert.Equal(t, 1000, p.normalize.MaxIterations)
	assert.Equal(t, distance.Pearson, p.metric)
	assert.Equal(t, Hierarchical, p.algorithm)
	assert.Equal(t, hierarchical.Complete, p.linkage)
	assert.Equal(t, 2, p.k)
	assert.Equal(t, kmeans.RetainPrevious, p.policy)
	assert.Equal(t, 15, p.topGenes)
	assert.True(t, p.heatMap)
}

func TestCohort_Validate(t *testing.T) {
	tests := []struct {
		name string
		c    Cohort
		ok   bool
	}{
		{"minimal", Cohort{Name: "a", Manifest: "m"}, true},
		{"no name", Cohort{Manifest: "m"}, false},
		{"no manifest", Cohort{Name: "a"}, false},
		{"negative clusters", Cohort{Name: "a", Manifest: "m", Clusters: -1}, false},
		{"no top genes", Cohort{Name: "a", Manifest: "m", TopGenes: -1}, true},
		{"empty cluster policy", Cohort{Name: "a", Manifest: "m", EmptyClusters: "reseed"}, true},
		{"bad cluster policy", Cohort{Name: "a", Manifest: "m", EmptyClusters: "panic"}, false},
		{"uncapped", Cohort{Name: "a", Manifest: "m", MaxControl: -1, MaxTumor: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
