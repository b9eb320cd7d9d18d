package tcgaexplorer

import (
	"fmt"
	"strings"

	"github.com/nicolas-legroux/tcgaExplorer/dataset"
	"github.com/nicolas-legroux/tcgaExplorer/distance"
	"github.com/nicolas-legroux/tcgaExplorer/hierarchical"
	"github.com/nicolas-legroux/tcgaExplorer/kmeans"
	"github.com/nicolas-legroux/tcgaExplorer/normalize"
)

// Algorithm selects the clustering engine.
type Algorithm int

const (
	// Hierarchical runs agglomerative clustering over the pairwise matrix.
	Hierarchical Algorithm = iota
	// KMeans runs k-means over the normalised sample profiles.
	KMeans
)

func (a Algorithm) String() string {
	switch a {
	case Hierarchical:
		return "hierarchical"
	case KMeans:
		return "k-means"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm parses "hierarchical" or "k-means". The empty string is
// Hierarchical.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", "hierarchical":
		return Hierarchical, nil
	case "k-means", "kmeans":
		return KMeans, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Normalization configures per-sample preprocessing. Zero fields take the
// defaults of normalize.DefaultParams.
type Normalization struct {
	Method        string  `toml:"method"`
	Quantile      float64 `toml:"quantile"`
	K             int     `toml:"k"`
	MaxIterations int     `toml:"max_iterations"`
	Rounds        int     `toml:"rounds"`
}

// Cohort describes one analysis: which samples to load and how to cluster
// them. Zero fields take the defaults of DefaultCohort.
type Cohort struct {
	Name     string `toml:"name"`
	Manifest string `toml:"manifest"`

	Cancers []string `toml:"cancers"`
	// MaxControl and MaxTumor cap the samples per cancer. A negative value
	// lifts the cap.
	MaxControl int `toml:"max_control"`
	MaxTumor   int `toml:"max_tumor"`

	Normalization Normalization `toml:"normalization"`

	Metric    string `toml:"metric"`
	Algorithm string `toml:"algorithm"`
	Linkage   string `toml:"linkage"`
	// Clusters is the number of clusters to produce.
	Clusters      int    `toml:"clusters"`
	MaxIterations int    `toml:"max_iterations"`
	EmptyClusters string `toml:"empty_clusters"`
	Seed          int64  `toml:"seed"`

	// TopGenes is the length of the most expressed genes list. A negative
	// value skips that export.
	TopGenes int   `toml:"top_genes"`
	HeatMap  *bool `toml:"heatmap"`
}

// DefaultCohort returns the BRCA/LUAD cohort with 20 controls and 20 tumors
// each, binary quantile normalisation, Pearson correlation and complete
// linkage into two clusters.
func DefaultCohort(name, manifest string) Cohort {
	limits := dataset.DefaultLimits()
	np := normalize.DefaultParams()
	heatMap := true
	return Cohort{
		Name:       name,
		Manifest:   manifest,
		Cancers:    limits.Cancers,
		MaxControl: limits.MaxControl,
		MaxTumor:   limits.MaxTumor,
		Normalization: Normalization{
			Method:        np.Method.String(),
			Quantile:      np.Quantile,
			K:             np.K,
			MaxIterations: np.MaxIterations,
			Rounds:        np.Rounds,
		},
		Metric:        distance.Pearson.String(),
		Algorithm:     Hierarchical.String(),
		Linkage:       hierarchical.Complete.String(),
		Clusters:      2,
		MaxIterations: 1000,
		EmptyClusters: kmeans.RetainPrevious.String(),
		Seed:          1,
		TopGenes:      15,
		HeatMap:       &heatMap,
	}
}

// withDefaults fills every zero field from DefaultCohort.
func (c Cohort) withDefaults() Cohort {
	d := DefaultCohort(c.Name, c.Manifest)
	if len(c.Cancers) == 0 {
		c.Cancers = d.Cancers
	}
	if c.MaxControl == 0 {
		c.MaxControl = d.MaxControl
	}
	if c.MaxTumor == 0 {
		c.MaxTumor = d.MaxTumor
	}
	n := &c.Normalization
	if n.Method == "" {
		n.Method = d.Normalization.Method
	}
	if n.Quantile == 0 {
		n.Quantile = d.Normalization.Quantile
	}
	if n.K == 0 {
		n.K = d.Normalization.K
	}
	if n.MaxIterations == 0 {
		n.MaxIterations = d.Normalization.MaxIterations
	}
	if n.Rounds == 0 {
		n.Rounds = d.Normalization.Rounds
	}
	if c.Metric == "" {
		c.Metric = d.Metric
	}
	if c.Algorithm == "" {
		c.Algorithm = d.Algorithm
	}
	if c.Linkage == "" {
		c.Linkage = d.Linkage
	}
	if c.Clusters == 0 {
		c.Clusters = d.Clusters
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = d.MaxIterations
	}
	if c.EmptyClusters == "" {
		c.EmptyClusters = d.EmptyClusters
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.TopGenes == 0 {
		c.TopGenes = d.TopGenes
	}
	if c.HeatMap == nil {
		c.HeatMap = d.HeatMap
	}
	return c
}

// plan is a validated Cohort with every name resolved.
type plan struct {
	name      string
	manifest  string
	limits    dataset.Limits
	normalize normalize.Params
	metric    distance.Metric
	algorithm Algorithm
	linkage   hierarchical.Linkage
	k         int
	maxIter   int
	policy    kmeans.EmptyClusterPolicy
	seed      int64
	topGenes  int
	heatMap   bool
}

// Validate checks the cohort after defaults are applied.
func (c Cohort) Validate() error {
	_, err := c.plan()
	return err
}

func (c Cohort) plan() (plan, error) {
	c = c.withDefaults()
	invalid := func(format string, args ...any) (plan, error) {
		return plan{}, fmt.Errorf("%w: cohort %q: %s", ErrInvalidConfig, c.Name, fmt.Sprintf(format, args...))
	}

	if c.Name == "" {
		return invalid("missing name")
	}
	if strings.ContainsAny(c.Name, `/\`) {
		return invalid("name must not contain path separators")
	}
	if c.Manifest == "" {
		return invalid("missing manifest")
	}
	if c.Clusters < 1 {
		return invalid("clusters=%d", c.Clusters)
	}
	if c.MaxIterations < 1 {
		return invalid("max_iterations=%d", c.MaxIterations)
	}

	method, err := normalize.ParseMethod(c.Normalization.Method)
	if err != nil {
		return invalid("%v", err)
	}
	np := normalize.Params{
		Method:        method,
		Quantile:      c.Normalization.Quantile,
		K:             c.Normalization.K,
		MaxIterations: c.Normalization.MaxIterations,
		Rounds:        c.Normalization.Rounds,
		Seed:          c.Seed,
	}
	if err := np.Validate(); err != nil {
		return invalid("%v", err)
	}
	metric, err := distance.ParseMetric(c.Metric)
	if err != nil {
		return invalid("%v", err)
	}
	algorithm, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		return invalid("%v", err)
	}
	linkage, err := hierarchical.ParseLinkage(c.Linkage)
	if err != nil {
		return invalid("%v", err)
	}
	policy, err := kmeans.ParseEmptyClusterPolicy(c.EmptyClusters)
	if err != nil {
		return invalid("%v", err)
	}

	return plan{
		name:     c.Name,
		manifest: c.Manifest,
		limits: dataset.Limits{
			Cancers:    c.Cancers,
			MaxControl: max(c.MaxControl, 0),
			MaxTumor:   max(c.MaxTumor, 0),
		},
		normalize: np,
		metric:    metric,
		algorithm: algorithm,
		linkage:   linkage,
		k:         c.Clusters,
		maxIter:   c.MaxIterations,
		policy:    policy,
		seed:      c.Seed,
		topGenes:  max(c.TopGenes, 0),
		heatMap:   *c.HeatMap,
	}, nil
}
