package kmeans

import "errors"

var (
	// ErrInvalidK is returned when K < 1.
	ErrInvalidK = errors.New("kmeans: k must be at least 1")

	// ErrInvalidMaxIter is returned when the iteration cap is < 1.
	ErrInvalidMaxIter = errors.New("kmeans: max iterations must be at least 1")

	// ErrInvalidRounds is returned when an iterated binary run asks for < 1 round.
	ErrInvalidRounds = errors.New("kmeans: rounds must be at least 1")

	// ErrLengthMismatch is returned when data and assignments differ in length.
	ErrLengthMismatch = errors.New("kmeans: data and assignments length mismatch")

	// ErrInvalidAssignment is returned for an assignment outside {-1} ∪ [0, K).
	ErrInvalidAssignment = errors.New("kmeans: invalid assignment")

	// ErrNilSpace is returned when no Space is supplied.
	ErrNilSpace = errors.New("kmeans: nil space")

	// ErrInsufficientData is returned when fewer than K distinct values are
	// available among the non-excluded elements.
	ErrInsufficientData = errors.New("kmeans: fewer distinct elements than clusters")

	// ErrEmptyCluster is returned under FailOnEmpty when a cluster loses all
	// of its members.
	ErrEmptyCluster = errors.New("kmeans: empty cluster")

	// ErrBinaryRequiresTwo is returned by ComputeIteratedBinary when K != 2.
	ErrBinaryRequiresTwo = errors.New("kmeans: iterated binary k-means requires k == 2")

	// ErrDimensionMismatch is returned when a vector does not have the
	// dimension of its Space.
	ErrDimensionMismatch = errors.New("kmeans: dimension mismatch")
)
