package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultSymmetryEps is the tolerance used by the constructors when
// comparing m[i][j] against m[j][i].
const DefaultSymmetryEps = 1e-9

// Matrix is an immutable N×N symmetric matrix tagged with a Type.
type Matrix struct {
	sym *mat.SymDense
	typ Type
}

// New builds a Matrix from n*n row-major values.
//
// The data slice is copied; later changes to it do not affect the Matrix.
func New(n int, data []float64, t Type) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n=%d", ErrBadShape, n)
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: want %d values for n=%d, got %d", ErrBadShape, n*n, n, len(data))
	}
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := data[i*n+j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: at (%d,%d)", ErrNaNInf, i, j)
			}
			if j > i && math.Abs(v-data[j*n+i]) > DefaultSymmetryEps {
				return nil, fmt.Errorf("%w: (%d,%d)=%g vs (%d,%d)=%g", ErrAsymmetry, i, j, v, j, i, data[j*n+i])
			}
		}
	}

	cp := make([]float64, len(data))
	copy(cp, data)
	return &Matrix{sym: mat.NewSymDense(n, cp), typ: t}, nil
}

// FromRows builds a Matrix from a slice of rows.
func FromRows(rows [][]float64, t Type) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadShape)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrNonSquare, i, len(row), n)
		}
		data = append(data, row...)
	}
	return New(n, data, t)
}

// FromSym wraps an existing gonum symmetric matrix. The matrix is copied.
func FromSym(s *mat.SymDense, t Type) (*Matrix, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrBadShape)
	}
	n := s.SymmetricDim()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = s.At(i, j)
		}
	}
	return New(n, data, t)
}

// N returns the number of samples (rows == columns).
func (m *Matrix) N() int {
	return m.sym.SymmetricDim()
}

// Type returns the matrix tag.
func (m *Matrix) Type() Type {
	return m.typ
}

// At returns the value at (i, j). It panics on out-of-range indices, like
// gonum matrices do; use Get for a checked accessor.
func (m *Matrix) At(i, j int) float64 {
	return m.sym.At(i, j)
}

// Get returns the value at (i, j) or ErrOutOfRange.
func (m *Matrix) Get(i, j int) (float64, error) {
	n := m.N()
	if i < 0 || j < 0 || i >= n || j >= n {
		return 0, fmt.Errorf("%w: (%d,%d) for n=%d", ErrOutOfRange, i, j, n)
	}
	return m.sym.At(i, j), nil
}

// Clone returns a mutable row-major copy of the full matrix.
func (m *Matrix) Clone() []float64 {
	n := m.N()
	out := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := m.sym.At(i, j)
			out[i*n+j] = v
			out[j*n+i] = v
		}
	}
	return out
}

// Rows returns the matrix as a fresh slice of rows.
func (m *Matrix) Rows() [][]float64 {
	n := m.N()
	flat := m.Clone()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = flat[i*n : (i+1)*n : (i+1)*n]
	}
	return rows
}

// Sym exposes the underlying gonum matrix for read-only use.
func (m *Matrix) Sym() mat.Symmetric {
	return m.sym
}
