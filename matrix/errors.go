package matrix

import "errors"

var (
	// ErrBadShape is returned when the requested size is not positive or the
	// backing data does not hold n*n values.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrNonSquare signals that a square matrix was required but the input wasn't.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that m[i][j] and m[j][i] differ by more than the
	// symmetry tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrUnknownType is returned for a matrix type outside {Similarity, Distance}.
	ErrUnknownType = errors.New("matrix: unknown matrix type")

	// ErrOutOfRange indicates that an index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")
)
