// Package stats holds the descriptive statistics used for reporting:
// means, standard deviations, ranks and per-class summaries of a pairwise
// matrix.
package stats
