package kmeans

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Space is the capability set k-means needs from an element type.
//
// Add and Divide must not modify their arguments.
type Space[T any] interface {
	// Distance returns a non-negative dissimilarity between a and b.
	Distance(a, b T) float64
	// Add returns a + b.
	Add(a, b T) T
	// Divide returns a / n.
	Divide(a T, n float64) T
	// Zero returns the additive identity.
	Zero() T
}

// Orderer is an optional Space capability used to relabel clusters by
// ascending centroid.
type Orderer[T any] interface {
	Less(a, b T) bool
}

// Validator is an optional Space capability used to reject malformed
// elements before a run.
type Validator[T any] interface {
	Validate(v T) error
}

// Scalar is the 1-D space over float64 with |a-b| as distance.
type Scalar struct{}

func (Scalar) Distance(a, b float64) float64 { return math.Abs(a - b) }
func (Scalar) Add(a, b float64) float64 { return a + b }
func (Scalar) Divide(a, n float64) float64 { return a / n }
func (Scalar) Zero() float64 { return 0 }
func (Scalar) Less(a, b float64) bool { return a < b }

// Norm selects the norm used by Vector.
type Norm int

const (
	// Euclidean is the L2 norm.
	Euclidean Norm = iota
	// Manhattan is the L1 norm.
	Manhattan
)

func (n Norm) String() string {
	switch n {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("Unknown(%d)", int(n))
	}
}

// Vector is the space of fixed-length float64 vectors.
//
// Vectors are ordered lexicographically: the first differing coordinate
// decides.
type Vector struct {
	Dim  int
	Norm Norm
}

// Distance returns the L2 or L1 distance between a and b.
func (s Vector) Distance(a, b []float64) float64 {
	if s.Norm == Manhattan {
		return floats.Distance(a, b, 1)
	}
	return floats.Distance(a, b, 2)
}

// Add returns a freshly allocated a + b.
func (s Vector) Add(a, b []float64) []float64 {
	return floats.AddTo(make([]float64, len(a)), a, b)
}

// Divide returns a freshly allocated a / n.
func (s Vector) Divide(a []float64, n float64) []float64 {
	return floats.ScaleTo(make([]float64, len(a)), 1/n, a)
}

// Zero returns a zero vector of length Dim.
func (s Vector) Zero() []float64 {
	return make([]float64, s.Dim)
}

// Less orders vectors lexicographically.
func (s Vector) Less(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Validate checks that v has length Dim.
func (s Vector) Validate(v []float64) error {
	if len(v) != s.Dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(v), s.Dim)
	}
	return nil
}
