// Package tcgaexplorer clusters gene-expression cohorts.
//
// An Explorer reads a cohort of tumor and control samples from a blob store
// and normalises each expression profile. It compares every pair of samples
// and groups them with hierarchical clustering or k-means, then writes the
// matrix, the class statistics, the clusters and a JSON report back to a
// blob store.
//
// # Quick Start
//
//	store := blobstore.NewLocalStore("./data")
//	ex, _ := tcgaexplorer.New(store, tcgaexplorer.WithOutputPrefix("results/"))
//	report, _ := ex.Analyze(ctx, tcgaexplorer.DefaultCohort("brca-luad", "manifest.tsv"))
//	fmt.Println(report.ClusterSizes)
//
// # Input Layout
//
// The manifest is a tab-separated file with one line per sample:
//
//	BRCA	tumor	TCGA-A1-A0SJ	BRCA/tumor/TCGA-A1-A0SJ.tsv
//	BRCA	control	TCGA-BH-A0B3	BRCA/control/TCGA-BH-A0B3.tsv.zst
//
// Each sample blob holds "gene_id<TAB>value" lines, optionally compressed with
// zstd or lz4 as the extension says.
//
// # Clustering Engines
//
// The engines live in their own packages and can be used directly:
//
//   - hierarchical: agglomerative clustering over a similarity or distance
//     matrix with complete, single or average linkage.
//   - kmeans: generic k-means over any Space, plus iterated binary splitting.
//
// # Configuration
//
// Batch runs are described in TOML, see LoadConfig. The tcgaexplorer command
// runs every configured cohort.
package tcgaexplorer
