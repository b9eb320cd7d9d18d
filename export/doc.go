// Package export writes analysis results to a blobstore.
//
// Tabular outputs are tab-separated text. A name ending in ".zst" or ".lz4"
// is compressed with the matching codec on the way out.
package export
