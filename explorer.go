package tcgaexplorer

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/dataset"
	"github.com/nicolas-legroux/tcgaExplorer/distance"
	"github.com/nicolas-legroux/tcgaExplorer/export"
	"github.com/nicolas-legroux/tcgaExplorer/hierarchical"
	"github.com/nicolas-legroux/tcgaExplorer/internal/compress"
	"github.com/nicolas-legroux/tcgaExplorer/kmeans"
	"github.com/nicolas-legroux/tcgaExplorer/matrix"
	"github.com/nicolas-legroux/tcgaExplorer/normalize"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
	"github.com/nicolas-legroux/tcgaExplorer/stats"
)

// Result file names, relative to a cohort's output directory.
const (
	MatrixFile   = "distance_matrix.out"
	PatientsFile = "patients.out"
	LabelsFile   = "heatmap_labels.out"
	ClassFile    = "class_stats.out"
	ClustersFile = "clusters.out"
	TopGenesFile = "most_expressed_genes.out"
	HeatMapFile  = "heatmap.png"
	ReportFile   = "report.json"
)

// RunRecorder keeps a versioned history of finished analyses.
// blobstore/s3.RunLog implements it on DynamoDB.
type RunRecorder interface {
	Record(ctx context.Context, cohort, report string) (uint64, error)
}

// Report summarises one cohort analysis.
type Report struct {
	Cohort        string             `json:"cohort"`
	Samples       []dataset.SampleID `json:"samples"`
	Genes         int                `json:"genes"`
	Normalization normalize.Method   `json:"normalization"`
	Metric        string             `json:"metric"`
	MatrixType    string             `json:"matrix_type"`
	Algorithm     Algorithm          `json:"algorithm"`
	Linkage       string             `json:"linkage,omitempty"`
	K             int                `json:"k"`

	// Labels holds the cluster of every sample, in sample order.
	Labels       []int `json:"labels"`
	ClusterSizes []int `json:"cluster_sizes"`
	// Composition counts, per cluster, the samples of every class.
	Composition []map[string]int `json:"composition"`
	// Centroids, Iterations and Converged describe k-means runs.
	Centroids  [][]float64 `json:"centroids,omitempty"`
	Iterations int         `json:"iterations,omitempty"`
	Converged  bool        `json:"converged"`

	LoadTime    time.Duration `json:"load_ns"`
	MatrixTime  time.Duration `json:"matrix_ns"`
	ClusterTime time.Duration `json:"cluster_ns"`

	Codec   string   `json:"codec"`
	Outputs []string `json:"outputs"`
	// RunVersion is the run log version, zero without a RunRecorder.
	RunVersion uint64 `json:"-"`
}

// Explorer runs cohort analyses: load, normalise, compare, cluster and
// export.
//
// An Explorer holds no per-cohort state; Analyze may be called from several
// goroutines at once.
type Explorer struct {
	store       blobstore.BlobStore
	out         blobstore.BlobStore
	compression compress.Type
	opts        options
}

// New creates an Explorer reading cohorts from store.
func New(store blobstore.BlobStore, optFns ...Option) (*Explorer, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	opts := applyOptions(optFns)
	ct, err := compress.ParseType(opts.compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	out := opts.output
	if out == nil {
		out = store
	}
	return &Explorer{
		store:       store,
		out:         out,
		compression: ct,
		opts:        opts,
	}, nil
}

// Analyze runs the full pipeline for one cohort. It holds one of the
// resource controller's worker slots for the duration of the run.
func (e *Explorer) Analyze(ctx context.Context, c Cohort) (*Report, error) {
	p, err := c.plan()
	if err != nil {
		return nil, err
	}
	if err := e.opts.rc.AcquireWorker(ctx); err != nil {
		return nil, err
	}
	defer e.opts.rc.ReleaseWorker()
	return e.analyze(ctx, p)
}

// AnalyzeAll analyses cohorts concurrently and returns their reports in
// input order. The first failure cancels the remaining runs.
func (e *Explorer) AnalyzeAll(ctx context.Context, cohorts []Cohort) ([]*Report, error) {
	seen := make(map[string]bool, len(cohorts))
	for _, c := range cohorts {
		if seen[c.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCohort, c.Name)
		}
		seen[c.Name] = true
	}

	reports := make([]*Report, len(cohorts))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range cohorts {
		g.Go(func() error {
			r, err := e.Analyze(ctx, c)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (e *Explorer) analyze(ctx context.Context, p plan) (*Report, error) {
	log := e.opts.logger.WithCohort(p.name)
	rep := &Report{
		Cohort:        p.name,
		Normalization: p.normalize.Method,
		Metric:        p.metric.String(),
		MatrixType:    p.metric.MatrixType().String(),
		Algorithm:     p.algorithm,
		K:             p.k,
		Codec:         e.opts.codec.Name(),
	}
	if p.algorithm == Hierarchical {
		rep.Linkage = p.linkage.String()
	}
	w := export.NewWriter(e.out,
		export.WithLogger(log.Logger),
		export.WithResourceController(e.opts.rc),
		export.WithCodec(e.opts.codec),
		export.WithCellSize(e.opts.cellSize),
	)

	ds, err := e.load(ctx, p, log, rep)
	if err != nil {
		return nil, stageError(p.name, StageLoad, err)
	}
	rep.Samples = ds.Samples
	rep.Genes = len(ds.Genes)

	if p.topGenes > 0 {
		if err := e.export(ctx, p, log, rep, TopGenesFile, true, func(name string) error {
			return w.TopGenes(ctx, name, ds, p.topGenes)
		}); err != nil {
			return nil, err
		}
	}

	if err := normalize.Apply(ctx, ds, p.normalize, normalize.WithLogger(log.Logger)); err != nil {
		return nil, stageError(p.name, StageNormalize, err)
	}

	bytes := resource.MatrixBytes(ds.Len())
	if err := e.opts.rc.AcquireMemory(ctx, bytes); err != nil {
		return nil, stageError(p.name, StageMatrix, err)
	}
	defer e.opts.rc.ReleaseMemory(bytes)

	start := time.Now()
	m, err := distance.Pairwise(ds.Values, p.metric)
	rep.MatrixTime = time.Since(start)
	e.opts.metricsCollector.RecordMatrix(ds.Len(), rep.MatrixTime, err)
	log.LogMatrix(ctx, rep.Metric, ds.Len(), rep.MatrixTime, err)
	if err != nil {
		return nil, stageError(p.name, StageMatrix, err)
	}

	start = time.Now()
	err = e.cluster(p, ds, m, log, rep)
	rep.ClusterTime = time.Since(start)
	e.opts.metricsCollector.RecordClustering(p.algorithm, rep.ClusterTime, err)
	if err != nil {
		log.LogClustering(ctx, p.algorithm.String(), p.k, nil, err)
		return nil, stageError(p.name, StageCluster, err)
	}
	rep.ClusterSizes = stats.ClusterSizes(rep.Labels)
	rep.Composition = composition(ds, rep.Labels, len(rep.ClusterSizes))
	log.LogClustering(ctx, p.algorithm.String(), p.k, rep.ClusterSizes, nil)

	table, err := stats.ClassStats(m, ds.Classes())
	if err != nil {
		return nil, stageError(p.name, StageStats, err)
	}

	steps := []exportStep{
		{MatrixFile, true, func(name string) error { return w.Matrix(ctx, name, m) }},
		{PatientsFile, true, func(name string) error { return w.Patients(ctx, name, ds.Samples) }},
		{LabelsFile, true, func(name string) error { return w.Labels(ctx, name, ds.Samples) }},
		{ClassFile, true, func(name string) error { return w.ClassStats(ctx, name, table) }},
		{ClustersFile, true, func(name string) error { return w.Clusters(ctx, name, ds.Samples, rep.Labels) }},
	}
	if p.heatMap {
		steps = append(steps, exportStep{HeatMapFile, false, func(name string) error { return w.HeatMap(ctx, name, m) }})
	}
	for _, s := range steps {
		if err := e.export(ctx, p, log, rep, s.file, s.tabular, s.write); err != nil {
			return nil, err
		}
	}

	reportName := e.outputName(p.name, ReportFile, false)
	rep.Outputs = append(rep.Outputs, reportName)
	start = time.Now()
	err = w.Report(ctx, reportName, rep)
	e.opts.metricsCollector.RecordExport(time.Since(start), err)
	log.LogExport(ctx, reportName, err)
	if err != nil {
		return nil, stageError(p.name, StageExport, err)
	}

	if e.opts.recorder != nil {
		version, err := e.opts.recorder.Record(ctx, p.name, reportName)
		log.LogRun(ctx, version, err)
		if err != nil {
			return nil, stageError(p.name, StageRecord, err)
		}
		rep.RunVersion = version
	}
	return rep, nil
}

func (e *Explorer) load(ctx context.Context, p plan, log *Logger, rep *Report) (*dataset.Dataset, error) {
	loader := dataset.NewLoader(e.store,
		dataset.WithLogger(log.Logger),
		dataset.WithConcurrency(e.opts.loadConcurrency),
		dataset.WithResourceController(e.opts.rc),
	)

	start := time.Now()
	ds, err := loader.Load(ctx, p.manifest, p.limits)
	rep.LoadTime = time.Since(start)
	if err != nil {
		e.opts.metricsCollector.RecordLoad(0, rep.LoadTime, err)
		log.LogLoad(ctx, 0, 0, rep.LoadTime, err)
		return nil, err
	}
	e.opts.metricsCollector.RecordLoad(ds.Len(), rep.LoadTime, nil)
	log.LogLoad(ctx, ds.Len(), len(ds.Genes), rep.LoadTime, nil)
	return ds, nil
}

func (e *Explorer) cluster(p plan, ds *dataset.Dataset, m *matrix.Matrix, log *Logger, rep *Report) error {
	switch p.algorithm {
	case Hierarchical:
		hc, err := hierarchical.New(m, p.linkage, hierarchical.WithLogger(log.Logger))
		if err != nil {
			return err
		}
		labels, err := hc.Compute(p.k)
		if err != nil {
			return err
		}
		rep.Labels = hierarchical.Compact(labels)
		rep.Converged = true
		return nil

	case KMeans:
		norm := kmeans.Euclidean
		if p.metric == distance.Manhattan {
			norm = kmeans.Manhattan
		}
		assign := make([]int, ds.Len())
		km, err := kmeans.New(ds.Values, assign, p.k, p.maxIter,
			kmeans.Vector{Dim: len(ds.Genes), Norm: norm},
			kmeans.WithRand(rand.New(rand.NewSource(p.seed))), //nolint:gosec // reproducible initialisation, not security
			kmeans.WithLogger(log.Logger),
			kmeans.WithEmptyClusterPolicy(p.policy),
		)
		if err != nil {
			return err
		}
		res, err := km.Compute()
		if err != nil {
			return err
		}
		rep.Labels = assign
		rep.Centroids = res.Centroids
		rep.Iterations = res.Iterations
		rep.Converged = res.Converged
		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, p.algorithm)
	}
}

// exportStep writes one result file. Tabular files are compressed.
type exportStep struct {
	file    string
	tabular bool
	write   func(name string) error
}

func (e *Explorer) export(ctx context.Context, p plan, log *Logger, rep *Report, file string, tabular bool, write func(string) error) error {
	name := e.outputName(p.name, file, tabular)
	start := time.Now()
	err := write(name)
	e.opts.metricsCollector.RecordExport(time.Since(start), err)
	log.LogExport(ctx, name, err)
	if err != nil {
		return stageError(p.name, StageExport, err)
	}
	rep.Outputs = append(rep.Outputs, name)
	return nil
}

// outputName places file in the cohort's output directory. Tabular files get
// the configured compression extension.
func (e *Explorer) outputName(cohort, file string, tabular bool) string {
	name := e.opts.outputPrefix + cohort + "/" + file
	if tabular {
		name += e.compression.Extension()
	}
	return name
}

// composition counts the classes of the samples in each of k clusters.
func composition(ds *dataset.Dataset, labels []int, k int) []map[string]int {
	out := make([]map[string]int, k)
	for i := range out {
		out[i] = make(map[string]int)
	}
	for i, l := range labels {
		if l >= 0 && l < k {
			out[l][ds.Samples[i].Class()]++
		}
	}
	return out
}
