package normalize

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/nicolas-legroux/tcgaExplorer/kmeans"
	"github.com/nicolas-legroux/tcgaExplorer/stats"
)

var (
	// ErrUnknownMethod is returned for an unsupported normalisation method.
	ErrUnknownMethod = errors.New("normalize: unknown method")
	// ErrInvalidParam is returned for out-of-range parameters.
	ErrInvalidParam = errors.New("normalize: invalid parameter")
)

// Method selects a normalisation.
type Method int

const (
	// MethodNone leaves profiles untouched.
	MethodNone Method = iota
	// MethodBinaryQuantile maps values above the q-quantile to 1, the rest to 0.
	MethodBinaryQuantile
	// MethodRank replaces values by their tie-averaged rank scaled to [0, 1].
	MethodRank
	// MethodKMeans replaces values by their 1-D k-means cluster index.
	MethodKMeans
	// MethodIteratedBinaryKMeans peels off the high end with repeated 2-means.
	MethodIteratedBinaryKMeans
)

var methodNames = [...]string{
	MethodNone:                 "none",
	MethodBinaryQuantile:       "binary-quantile",
	MethodRank:                 "rank",
	MethodKMeans:               "k-means",
	MethodIteratedBinaryKMeans: "iterated-binary-k-means",
}

func (m Method) String() string {
	if m >= 0 && int(m) < len(methodNames) {
		return methodNames[m]
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses a method name. Case is ignored and underscores count as
// dashes. The empty string is MethodNone.
func ParseMethod(s string) (Method, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if norm == "" {
		return MethodNone, nil
	}
	for m, name := range methodNames {
		if name == norm {
			return Method(m), nil
		}
	}
	return MethodNone, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// BinaryQuantile maps every value strictly above the empirical q-quantile of
// values to 1 and the rest to 0.
func BinaryQuantile(values []float64, q float64) ([]float64, error) {
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("%w: quantile %g not in [0, 1]", ErrInvalidParam, q)
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	cut := stats.Quantile(values, q)
	for i, v := range values {
		if v > cut {
			out[i] = 1
		}
	}
	return out, nil
}

// Rank replaces every value by (rank-1)/(n-1), ties sharing their mean rank.
// A single value maps to 0.
func Rank(values []float64) []float64 {
	ranks := stats.Ranks(values)
	if len(ranks) < 2 {
		return make([]float64, len(ranks))
	}
	scale := float64(len(ranks) - 1)
	for i, r := range ranks {
		ranks[i] = (r - 1) / scale
	}
	return ranks
}

// KMeans runs 1-D k-means over values and returns each value's cluster index.
// Clusters are numbered by ascending centroid, so a higher index means higher
// expression. A profile with fewer than k distinct values maps to all zeros
// and reports ok == false.
func KMeans(values []float64, k, maxIter int, rng *rand.Rand) (out []float64, ok bool, err error) {
	assign := make([]int, len(values))
	km, err := kmeans.New(values, assign, k, maxIter, kmeans.Scalar{}, kmeans.WithRand(rng))
	if err != nil {
		return nil, false, err
	}
	if _, err := km.Compute(); err != nil {
		if errors.Is(err, kmeans.ErrInsufficientData) {
			return make([]float64, len(values)), false, nil
		}
		return nil, false, err
	}
	return toFloats(assign), true, nil
}

// IteratedBinaryKMeans runs the given number of 2-means splits over values,
// each time keeping only the low half. Values split off in any round map to
// 1, the survivors to 0. A profile that cannot be split at all maps to all
// zeros and reports ok == false.
func IteratedBinaryKMeans(values []float64, rounds, maxIter int, rng *rand.Rand) (out []float64, ok bool, err error) {
	assign := make([]int, len(values))
	km, err := kmeans.New(values, assign, 2, maxIter, kmeans.Scalar{}, kmeans.WithRand(rng))
	if err != nil {
		return nil, false, err
	}
	if _, err := km.ComputeIteratedBinary(rounds); err != nil {
		if errors.Is(err, kmeans.ErrInsufficientData) {
			return make([]float64, len(values)), false, nil
		}
		return nil, false, err
	}
	return toFloats(assign), true, nil
}

func toFloats(assign []int) []float64 {
	out := make([]float64, len(assign))
	for i, a := range assign {
		out[i] = float64(a)
	}
	return out
}
