// Package dataset models a cohort of expression samples and loads it from a
// blob store.
//
// A cohort is described by a manifest, a TSV file with one line per sample:
//
//	cancer<TAB>tumor|control<TAB>patient<TAB>blob
//
// Each referenced blob is a TSV expression table, one "gene<TAB>value" line
// per gene, optionally preceded by a header line. Blobs whose name ends in
// .zst or .lz4 are decompressed on the fly. Every sample must list the same
// genes in the same order.
package dataset
