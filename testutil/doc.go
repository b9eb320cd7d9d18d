// Package testutil provides test helpers for tcgaExplorer.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	vecs, truth := rng.ClusteredVectors(60, 8, 3, 0.1)
//	expr := rng.ExpressionProfiles(20, 500)
//
// # Partitions
//
//	testutil.SamePartition(labelsA, labelsB) // equal up to renaming
package testutil
