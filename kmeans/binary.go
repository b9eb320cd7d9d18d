package kmeans

import (
	"errors"
	"fmt"
)

// BinaryResult is the outcome of ComputeIteratedBinary.
type BinaryResult[T any] struct {
	// Rounds is the number of splits performed. It is lower than requested
	// when the surviving half ran out of distinct values.
	Rounds int
	// Centroids are the two centroids of the last split.
	Centroids []T
	// Converged is true when every split converged.
	Converged bool
}

// ComputeIteratedBinary bisects the data with 2-means, keeps the half labelled
// 0 and bisects it again, for the given number of rounds.
//
// On return every element that was split off in any round is labelled 1, the
// elements that survived every round are labelled 0 and caller-excluded
// elements stay Excluded. The first round must be able to split: it fails
// with ErrInsufficientData like Compute does. A later round that cannot split
// ends the run early.
func (km *KMeans[T]) ComputeIteratedBinary(rounds int) (BinaryResult[T], error) {
	if km.k != 2 {
		return BinaryResult[T]{}, fmt.Errorf("%w: got %d", ErrBinaryRequiresTwo, km.k)
	}
	if rounds < 1 {
		return BinaryResult[T]{}, fmt.Errorf("%w: got %d", ErrInvalidRounds, rounds)
	}
	if err := km.checkAssignments(); err != nil {
		return BinaryResult[T]{}, err
	}

	work := make([]int, len(km.assign))
	for i, a := range km.assign {
		if a == Excluded {
			work[i] = Excluded
		}
	}
	peeled := make([]bool, len(work))

	inner := &KMeans[T]{
		data:    km.data,
		assign:  work,
		k:       2,
		maxIter: km.maxIter,
		space:   km.space,
		opts:    km.opts,
	}

	res := BinaryResult[T]{Converged: true}
	for r := 0; r < rounds; r++ {
		split, err := inner.Compute()
		if errors.Is(err, ErrInsufficientData) && r > 0 {
			km.opts.logger.Debug("iterated binary k-means stopped early",
				"round", r+1,
				"requested", rounds,
			)
			break
		}
		if err != nil {
			return BinaryResult[T]{}, err
		}

		for i, a := range work {
			if a == 1 {
				peeled[i] = true
				work[i] = Excluded
			}
		}
		res.Rounds++
		res.Centroids = split.Centroids
		res.Converged = res.Converged && split.Converged
	}

	for i, a := range km.assign {
		switch {
		case a == Excluded:
		case peeled[i]:
			km.assign[i] = 1
		default:
			km.assign[i] = 0
		}
	}
	return res, nil
}
