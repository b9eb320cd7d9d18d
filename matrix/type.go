package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Type tags a pairwise matrix with the direction of "closer".
type Type int

const (
	// Similarity marks matrices where larger values mean closer samples.
	Similarity Type = iota
	// Distance marks matrices where smaller values mean closer samples.
	Distance
)

func (t Type) String() string {
	switch t {
	case Similarity:
		return "similarity"
	case Distance:
		return "distance"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	return t == Similarity || t == Distance
}

// ParseType parses "similarity" or "distance" (case-insensitive).
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "similarity":
		return Similarity, nil
	case "distance":
		return Distance, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// Better reports whether a is strictly more favourable than b.
func (t Type) Better(a, b float64) bool {
	if t == Similarity {
		return a > b
	}
	return a < b
}

// Best returns the more favourable of a and b.
func (t Type) Best(a, b float64) float64 {
	if t.Better(b, a) {
		return b
	}
	return a
}

// Worst returns the less favourable of a and b.
func (t Type) Worst(a, b float64) float64 {
	if t.Better(b, a) {
		return a
	}
	return b
}

// Sentinel returns the least favourable value, used to seed "find best" scans.
func (t Type) Sentinel() float64 {
	if t == Similarity {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
