// Package matrix provides the tagged pairwise matrix consumed by the
// clustering engines.
//
// A Matrix is square, symmetric and real-valued. It carries a Type that tells
// the engines which direction is "closer":
//
//   - Similarity: larger values mean closer samples (correlations, cosine)
//   - Distance:   smaller values mean closer samples (Euclidean, Manhattan)
//
// Validation happens here, at load time. The engines assume a valid matrix
// and never re-check shape or symmetry.
//
// # Usage
//
//	m, err := matrix.FromRows([][]float64{
//	    {0, 0.1, 10},
//	    {0.1, 0, 10},
//	    {10, 10, 0},
//	}, matrix.Distance)
package matrix
