package hierarchical

import "errors"

var (
	// ErrInvalidK is returned when the requested cluster count is outside [1, N].
	ErrInvalidK = errors.New("hierarchical: k must be in [1, n]")

	// ErrUnknownLinkage is returned for a linkage outside {Complete, Single, Average}.
	ErrUnknownLinkage = errors.New("hierarchical: unknown linkage method")

	// ErrNilMatrix is returned when no matrix is supplied.
	ErrNilMatrix = errors.New("hierarchical: nil matrix")
)
