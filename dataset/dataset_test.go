package dataset

import (
	"strings"
	"testing"

	"github.com/nicolas-legroux/tcgaExplorer/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleID(t *testing.T) {
	s := SampleID{Cancer: "BRCA", Patient: "TCGA-A1-A0SJ", Tumor: true}
	assert.Equal(t, "BRCA-Tumor", s.Class())
	assert.Equal(t, "BRCA-Tumor-TCGA-A1-A0SJ", s.String())

	c := SampleID{Cancer: "BRCA", Patient: "TCGA-ZZ", Tumor: false}
	assert.Equal(t, "BRCA-Control", c.Class())

	assert.True(t, Less(c, s), "controls sort before tumors")
	assert.True(t, Less(s, SampleID{Cancer: "LUAD", Patient: "A"}))
	assert.True(t, Less(SampleID{Cancer: "BRCA", Patient: "A"}, SampleID{Cancer: "BRCA", Patient: "B"}))
	assert.False(t, Less(s, s))
}

func TestDataset_SortAndClasses(t *testing.T) {
	ds := &Dataset{
		Samples: []SampleID{
			{Cancer: "LUAD", Patient: "p1", Tumor: true},
			{Cancer: "BRCA", Patient: "p2", Tumor: true},
			{Cancer: "BRCA", Patient: "p1", Tumor: false},
			{Cancer: "BRCA", Patient: "p1", Tumor: true},
		},
		Genes:  []string{"g"},
		Values: [][]float64{{4}, {2}, {1}, {3}},
	}
	require.NoError(t, ds.Validate())

	ds.Sort()
	assert.Equal(t, [][]float64{{1}, {3}, {2}, {4}}, ds.Values, "values follow their samples")
	assert.Equal(t, []string{"BRCA-Control", "BRCA-Tumor", "BRCA-Tumor", "LUAD-Tumor"}, ds.ClassLabels())

	assert.Equal(t, []stats.Class{
		{Name: "BRCA-Control", Members: []int{0}},
		{Name: "BRCA-Tumor", Members: []int{1, 2}},
		{Name: "LUAD-Tumor", Members: []int{3}},
	}, ds.Classes())
}

func TestDataset_Validate(t *testing.T) {
	ds := &Dataset{
		Samples: []SampleID{{Cancer: "BRCA", Patient: "p"}},
		Genes:   []string{"a", "b"},
		Values:  [][]float64{{1}},
	}
	assert.ErrorIs(t, ds.Validate(), ErrShape)

	ds.Values = nil
	assert.ErrorIs(t, ds.Validate(), ErrShape)
}

func TestDataset_Clone(t *testing.T) {
	ds := &Dataset{
		Samples: []SampleID{{Cancer: "BRCA", Patient: "p"}},
		Genes:   []string{"a"},
		Values:  [][]float64{{1}},
	}
	c := ds.Clone()
	c.Values[0][0] = 9
	c.Samples[0].Patient = "q"
	assert.Equal(t, 1.0, ds.Values[0][0])
	assert.Equal(t, "p", ds.Samples[0].Patient)
}

func TestParseManifest(t *testing.T) {
	in := strings.Join([]string{
		"# cancer\tkind\tpatient\tblob",
		"BRCA\ttumor\tTCGA-1\tbrca/t1.tsv",
		"BRCA\tControl\tTCGA-1\tbrca/c1.tsv.zst",
		"LUAD\ttumor\tTCGA-9\tluad/t9.tsv",
		"",
	}, "\n")

	entries, err := ParseManifest(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []Entry{
		{Sample: SampleID{Cancer: "BRCA", Patient: "TCGA-1", Tumor: true}, Blob: "brca/t1.tsv"},
		{Sample: SampleID{Cancer: "BRCA", Patient: "TCGA-1", Tumor: false}, Blob: "brca/c1.tsv.zst"},
		{Sample: SampleID{Cancer: "LUAD", Patient: "TCGA-9", Tumor: true}, Blob: "luad/t9.tsv"},
	}, entries)
}

func TestParseManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"too few fields", "BRCA\ttumor\tTCGA-1\n", ErrMalformedManifest},
		{"bad kind", "BRCA\tnormal\tTCGA-1\tb.tsv\n", ErrMalformedManifest},
		{"empty patient", "BRCA\ttumor\t\tb.tsv\n", ErrMalformedManifest},
		{"duplicate", "BRCA\ttumor\tP\ta.tsv\nBRCA\ttumor\tP\tb.tsv\n", ErrDuplicateSample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseManifest(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseSample(t *testing.T) {
	genes, values, err := ParseSample(strings.NewReader("gene_id\tnormalized_count\nA1BG|1\t12.5\nTP53|7157\t0\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1BG|1", "TP53|7157"}, genes)
	assert.Equal(t, []float64{12.5, 0}, values)

	genes, _, err = ParseSample(strings.NewReader("A1BG\t1e3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A1BG"}, genes)
}

func TestParseSample_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"empty":       "",
		"header only": "gene\tvalue\n",
		"bad value":   "A\t1\nB\tx\n",
		"missing col": "A\t1\nB\n",
		"not finite":  "A\tNaN\n",
		"infinite":    "A\t1\nB\t+Inf\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseSample(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrMalformedSample)
		})
	}
}

func TestLimits_Select(t *testing.T) {
	var entries []Entry
	for _, c := range []string{"BRCA", "LUAD", "KIRC"} {
		for i := 0; i < 3; i++ {
			entries = append(entries,
				Entry{Sample: SampleID{Cancer: c, Patient: string(rune('a' + i)), Tumor: true}},
				Entry{Sample: SampleID{Cancer: c, Patient: string(rune('a' + i))}},
			)
		}
	}

	got := Limits{Cancers: []string{"BRCA", "LUAD"}, MaxControl: 1, MaxTumor: 2}.Select(entries)
	counts := map[string]int{}
	for _, e := range got {
		counts[e.Sample.Class()]++
	}
	assert.Equal(t, map[string]int{
		"BRCA-Tumor": 2, "BRCA-Control": 1,
		"LUAD-Tumor": 2, "LUAD-Control": 1,
	}, counts)
	assert.Equal(t, "a", got[0].Sample.Patient, "first come first served")

	assert.Len(t, Limits{}.Select(entries), len(entries))
	assert.Equal(t, Limits{Cancers: []string{"BRCA", "LUAD"}, MaxControl: 20, MaxTumor: 20}, DefaultLimits())
}
