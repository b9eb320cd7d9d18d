// Package hierarchical implements agglomerative clustering over a tagged
// pairwise matrix.
//
// The engine keeps a live working copy of the matrix indexed by cluster
// representative. Every step merges the two most favourable live clusters
// (closest for a distance matrix, most similar for a similarity matrix) and
// rewrites the merged cluster's row according to the linkage criterion:
//
//   - Complete: least favourable of the two previous values
//   - Single:   most favourable of the two previous values
//   - Average:  mean of the two previous values weighted by cluster size
//
// Ties are broken deterministically: the first pair met when scanning live
// representatives in ascending order wins. The survivor of a merge is always
// the smaller representative id.
//
// # Usage
//
//	c, err := hierarchical.New(m, hierarchical.Average)
//	labels, err := c.Compute(3)          // representative id per sample
//	groups := hierarchical.Compact(labels) // 0..k-1
//
// Complexity is O(N³) time and O(N²) memory, which is fine for the tens to
// low hundreds of samples a cohort holds.
package hierarchical
