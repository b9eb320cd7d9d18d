package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
	"github.com/nicolas-legroux/tcgaExplorer/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrUnknownMetric is returned for a metric outside the supported set.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrDimensionMismatch is returned when samples differ in length.
	ErrDimensionMismatch = errors.New("distance: dimension mismatch")

	// ErrNoSamples is returned when Pairwise receives no samples.
	ErrNoSamples = errors.New("distance: no samples")
)

// Metric selects how two samples are compared.
type Metric int

const (
	Pearson Metric = iota
	Spearman
	Euclidean
	Manhattan
	Cosine
)

func (m Metric) String() string {
	switch m {
	case Pearson:
		return "pearson-correlation"
	case Spearman:
		return "spearman-correlation"
	case Euclidean:
		return "euclidean-distance"
	case Manhattan:
		return "manhattan-distance"
	case Cosine:
		return "cosine-similarity"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMetric accepts either the full name ("pearson-correlation") or its
// first word ("pearson"), case-insensitive.
func ParseMetric(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, m := range []Metric{Pearson, Spearman, Euclidean, Manhattan, Cosine} {
		name := m.String()
		if s == name || s == name[:strings.IndexByte(name, '-')] {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, s)
}

// MatrixType returns the type of the matrix the metric produces.
func (m Metric) MatrixType() matrix.Type {
	switch m {
	case Euclidean, Manhattan:
		return matrix.Distance
	default:
		return matrix.Similarity
	}
}

// Func compares two samples of equal length.
type Func func(a, b []float64) float64

// Provider returns the comparison function for m.
//
// Pairwise does not call the Spearman function per pair; it ranks every
// sample once and correlates the ranks.
func Provider(m Metric) (Func, error) {
	switch m {
	case Pearson:
		return PearsonCorrelation, nil
	case Euclidean:
		return EuclideanDistance, nil
	case Manhattan:
		return ManhattanDistance, nil
	case Cosine:
		return CosineSimilarity, nil
	case Spearman:
		return SpearmanCorrelation, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}

// PearsonCorrelation returns the Pearson correlation of a and b.
func PearsonCorrelation(a, b []float64) float64 {
	return defined(stat.Correlation(a, b, nil))
}

// SpearmanCorrelation returns the Spearman rank correlation of a and b.
func SpearmanCorrelation(a, b []float64) float64 {
	return PearsonCorrelation(stats.Ranks(a), stats.Ranks(b))
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

// ManhattanDistance returns the L1 distance between a and b.
func ManhattanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

// CosineSimilarity returns the cosine of the angle between a and b.
func CosineSimilarity(a, b []float64) float64 {
	return defined(floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2)))
}

func defined(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Pairwise compares every pair of samples and returns the resulting matrix,
// tagged with the metric's MatrixType. The diagonal holds each sample
// compared with itself.
func Pairwise(samples [][]float64, m Metric) (*matrix.Matrix, error) {
	fn, err := Provider(m)
	if err != nil {
		return nil, err
	}
	n := len(samples)
	if n == 0 {
		return nil, ErrNoSamples
	}
	dim := len(samples[0])
	for i, s := range samples {
		if len(s) != dim {
			return nil, fmt.Errorf("%w: sample %d has %d values, want %d", ErrDimensionMismatch, i, len(s), dim)
		}
	}

	if m == Spearman {
		ranked := make([][]float64, n)
		for i, s := range samples {
			ranked[i] = stats.Ranks(s)
		}
		samples, fn = ranked, PearsonCorrelation
	}

	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := fn(samples[i], samples[j])
			data[i*n+j] = v
			data[j*n+i] = v
		}
	}
	return matrix.New(n, data, m.MatrixType())
}
