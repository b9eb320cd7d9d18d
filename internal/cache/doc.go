// Package cache provides a byte-budgeted LRU for immutable blob contents.
//
// Cohorts that share samples read the same expression tables; the cache
// keeps recently read tables in memory so the second cohort does not hit
// the backing store again. Memory held by the cache is charged to a
// resource.Controller when one is given, so cached data and cohort matrices
// share one budget.
package cache
