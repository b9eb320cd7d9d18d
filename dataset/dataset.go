package dataset

import (
	"fmt"
	"sort"

	"github.com/nicolas-legroux/tcgaExplorer/stats"
)

// SampleID identifies one expression profile: a patient's tumor or control
// tissue for a given cancer type.
type SampleID struct {
	Cancer  string `json:"cancer"`
	Patient string `json:"patient"`
	Tumor   bool   `json:"tumor"`
}

// Kind returns "Tumor" or "Control".
func (s SampleID) Kind() string {
	if s.Tumor {
		return "Tumor"
	}
	return "Control"
}

// Class returns the class label, e.g. "BRCA-Tumor".
func (s SampleID) Class() string {
	return s.Cancer + "-" + s.Kind()
}

// String returns e.g. "BRCA-Tumor-TCGA-A1-A0SJ".
func (s SampleID) String() string {
	return s.Class() + "-" + s.Patient
}

// Less orders samples by cancer, then controls before tumors, then patient.
func Less(a, b SampleID) bool {
	if a.Cancer != b.Cancer {
		return a.Cancer < b.Cancer
	}
	if a.Tumor != b.Tumor {
		return !a.Tumor
	}
	return a.Patient < b.Patient
}

// Dataset is a samples×genes expression matrix. Values[i] is the profile of
// Samples[i] over Genes.
type Dataset struct {
	Samples []SampleID
	Genes   []string
	Values  [][]float64
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.Samples)
}

// Validate checks that Values is len(Samples)×len(Genes).
func (d *Dataset) Validate() error {
	if len(d.Values) != len(d.Samples) {
		return fmt.Errorf("%w: %d samples, %d rows", ErrShape, len(d.Samples), len(d.Values))
	}
	for i, row := range d.Values {
		if len(row) != len(d.Genes) {
			return fmt.Errorf("%w: sample %s has %d values for %d genes", ErrShape, d.Samples[i], len(row), len(d.Genes))
		}
	}
	return nil
}

// Sort puts samples in Less order so that every class is contiguous.
func (d *Dataset) Sort() {
	sort.Stable(byClass{d})
}

type byClass struct{ d *Dataset }

func (b byClass) Len() int           { return len(b.d.Samples) }
func (b byClass) Less(i, j int) bool { return Less(b.d.Samples[i], b.d.Samples[j]) }
func (b byClass) Swap(i, j int) {
	b.d.Samples[i], b.d.Samples[j] = b.d.Samples[j], b.d.Samples[i]
	b.d.Values[i], b.d.Values[j] = b.d.Values[j], b.d.Values[i]
}

// Classes groups consecutive samples of the same class, in order of
// appearance. On a sorted dataset every class appears exactly once.
func (d *Dataset) Classes() []stats.Class {
	var classes []stats.Class
	for i, s := range d.Samples {
		name := s.Class()
		if n := len(classes); n > 0 && classes[n-1].Name == name {
			classes[n-1].Members = append(classes[n-1].Members, i)
			continue
		}
		classes = append(classes, stats.Class{Name: name, Members: []int{i}})
	}
	return classes
}

// ClassLabels returns the class name of every sample.
func (d *Dataset) ClassLabels() []string {
	out := make([]string, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.Class()
	}
	return out
}

// Clone returns a deep copy, so normalisation can run without touching the
// loaded data.
func (d *Dataset) Clone() *Dataset {
	values := make([][]float64, len(d.Values))
	for i, row := range d.Values {
		values[i] = append([]float64(nil), row...)
	}
	return &Dataset{
		Samples: append([]SampleID(nil), d.Samples...),
		Genes:   append([]string(nil), d.Genes...),
		Values:  values,
	}
}
