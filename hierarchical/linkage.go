package hierarchical

import (
	"fmt"
	"strings"

	"github.com/nicolas-legroux/tcgaExplorer/matrix"
)

// Linkage selects how the distance between a merged cluster and the
// remaining clusters is derived.
type Linkage int

const (
	// Complete linkage keeps the worst case of the two merged clusters.
	Complete Linkage = iota
	// Single linkage keeps the best case of the two merged clusters.
	Single
	// Average linkage keeps the size-weighted mean of the two merged clusters.
	Average
)

func (l Linkage) String() string {
	switch l {
	case Complete:
		return "complete"
	case Single:
		return "single"
	case Average:
		return "average"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// Valid reports whether l is a supported linkage.
func (l Linkage) Valid() bool {
	return l == Complete || l == Single || l == Average
}

// ParseLinkage parses "complete", "single" or "average" (case-insensitive).
func ParseLinkage(s string) (Linkage, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "complete":
		return Complete, nil
	case "single":
		return Single, nil
	case "average":
		return Average, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownLinkage, s)
	}
}

// combine returns the value between the union of clusters a and b and a third
// cluster, given the value of a and b to that cluster and their sizes before
// the merge.
func (l Linkage) combine(t matrix.Type, va, vb float64, sizeA, sizeB int) float64 {
	switch l {
	case Single:
		return t.Best(va, vb)
	case Average:
		wa, wb := float64(sizeA), float64(sizeB)
		return (wa*va + wb*vb) / (wa + wb)
	default:
		return t.Worst(va, vb)
	}
}
