// Package normalize turns raw expression profiles into discrete or rank
// profiles before pairwise comparison.
//
// Every method works on one sample at a time. Apply runs the configured
// method over every sample of a dataset, concurrently.
package normalize
