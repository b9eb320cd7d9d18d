// Package kmeans implements Lloyd's k-means over any element type.
//
// Elements are opaque to the engine. Everything it needs comes from a Space:
// a distance, pairwise addition, division by a scalar and a zero value for
// accumulation. Scalar (1-D float64) and Vector (fixed-length []float64) are
// provided.
//
// The caller owns the assignment vector. Entries set to Excluded (-1) before
// a run are skipped entirely: they are never assigned and never contribute to
// a centroid. Every other entry must be a cluster id in [0, K) and is
// overwritten in place.
//
// When the Space also implements Orderer, clusters are relabelled after the
// last iteration so that centroid 0 is the smallest, centroid 1 the next and
// so on.
//
// # Usage
//
//	assign := make([]int, len(values))
//	km, err := kmeans.New(values, assign, 2, 100, kmeans.Scalar{},
//	    kmeans.WithRand(rand.New(rand.NewSource(1))))
//	res, err := km.Compute()
//	// res.Centroids[0] <= res.Centroids[1]; assign holds 0 or 1 per value
//
// ComputeIteratedBinary repeatedly bisects the surviving half of the data
// with 2-means and labels everything peeled off along the way as cluster 1.
package kmeans
