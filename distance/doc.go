// Package distance turns sample vectors into a tagged pairwise matrix.
//
// # Supported Metrics
//
//   - Pearson:   Pearson correlation (similarity)
//   - Spearman:  Pearson correlation of average-tie ranks (similarity)
//   - Cosine:    cosine similarity (similarity)
//   - Euclidean: L2 distance (distance)
//   - Manhattan: L1 distance (distance)
//
// Correlations and cosine similarity of a zero-variance or zero-norm vector
// are undefined; they are reported as 0.
//
// # Usage
//
//	m, err := distance.Pairwise(samples, distance.Pearson)
//	m.Type() // matrix.Similarity
package distance
