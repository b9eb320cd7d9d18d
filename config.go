package tcgaexplorer

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nicolas-legroux/tcgaExplorer/codec"
	"github.com/nicolas-legroux/tcgaExplorer/internal/compress"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
)

// StoreKind selects a blobstore backend.
type StoreKind string

// Supported backends.
const (
	StoreLocal StoreKind = "local"
	StoreS3    StoreKind = "s3"
	StoreMinIO StoreKind = "minio"
)

// StoreConfig locates input (or output) blobs.
type StoreConfig struct {
	Kind StoreKind `toml:"kind"`
	// Path is the root directory of a local store.
	Path string `toml:"path"`

	Bucket       string `toml:"bucket"`
	Prefix       string `toml:"prefix"`
	Region       string `toml:"region"`
	Endpoint     string `toml:"endpoint"`
	UsePathStyle bool   `toml:"use_path_style"`
	AccessKey    string `toml:"access_key"`
	SecretKey    string `toml:"secret_key"`
	Secure       bool   `toml:"secure"`
}

// Validate checks the fields the backend needs.
func (s StoreConfig) Validate() error {
	switch s.Kind {
	case StoreLocal:
		if s.Path == "" {
			return fmt.Errorf("%w: local store needs a path", ErrInvalidConfig)
		}
	case StoreS3:
		if s.Bucket == "" {
			return fmt.Errorf("%w: s3 store needs a bucket", ErrInvalidConfig)
		}
	case StoreMinIO:
		if s.Bucket == "" || s.Endpoint == "" {
			return fmt.Errorf("%w: minio store needs a bucket and an endpoint", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalidConfig, s.Kind)
	}
	return nil
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Store receives the results. Empty means the input store.
	Store  *StoreConfig `toml:"store"`
	Prefix string       `toml:"prefix"`
	// Compression is "zst", "lz4" or empty.
	Compression string `toml:"compression"`
	// Codec names the report codec: "json" or "go-json".
	Codec        string `toml:"codec"`
	HeatMapCells int    `toml:"heatmap_cell_size"`
}

// ResourceConfig bounds memory, concurrency and IO. Zero means unbounded.
type ResourceConfig struct {
	MemoryLimitBytes     int64 `toml:"memory_limit_bytes"`
	MaxConcurrentCohorts int64 `toml:"max_concurrent_cohorts"`
	IOLimitBytesPerSec   int64 `toml:"io_limit_bytes_per_sec"`
	LoadConcurrency      int   `toml:"load_concurrency"`
	// CacheBytes sizes the in-memory blob cache. Zero disables it.
	CacheBytes int64 `toml:"cache_bytes"`
}

// Controller builds the resource controller for r.
func (r ResourceConfig) Controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:     r.MemoryLimitBytes,
		MaxConcurrentCohorts: r.MaxConcurrentCohorts,
		IOLimitBytesPerSec:   r.IOLimitBytesPerSec,
	})
}

// RunLogConfig enables the DynamoDB run log.
type RunLogConfig struct {
	Table string `toml:"table"`
}

// Config is the complete, immutable description of a batch of analyses.
type Config struct {
	Store     StoreConfig    `toml:"store"`
	Output    OutputConfig   `toml:"output"`
	Resources ResourceConfig `toml:"resources"`
	RunLog    RunLogConfig   `toml:"run_log"`
	Cohorts   []Cohort       `toml:"cohort"`
}

// DefaultConfig reads "manifest.tsv" from ./data and writes to
// ./data/results/ with a single default cohort.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Kind: StoreLocal,
			Path: "data",
		},
		Output: OutputConfig{
			Prefix:       "results/",
			Codec:        codec.Default.Name(),
			HeatMapCells: 20,
		},
		Resources: ResourceConfig{
			MaxConcurrentCohorts: 2,
			LoadConcurrency:      8,
		},
		Cohorts: []Cohort{DefaultCohort("brca-luad", "manifest.tsv")},
	}
}

// LoadConfig reads a TOML configuration file. Sections missing from the
// file keep the values of DefaultConfig; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(string(data))
}

// ParseConfig is LoadConfig for an in-memory document.
func ParseConfig(doc string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Cohorts = nil

	md, err := toml.Decode(doc, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	if len(cfg.Cohorts) == 0 {
		cfg.Cohorts = DefaultConfig().Cohorts
	}
	for i := range cfg.Cohorts {
		cfg.Cohorts[i] = cfg.Cohorts[i].withDefaults()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the whole configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	if err := c.Store.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if c.Output.Store != nil {
		if err := c.Output.Store.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("output store: %w", err))
		}
	}
	if _, err := compress.ParseType(c.Output.Compression); err != nil {
		errs = append(errs, fmt.Errorf("%w: output: %w", ErrInvalidConfig, err))
	}
	if _, err := codec.Lookup(c.Output.Codec); err != nil {
		errs = append(errs, fmt.Errorf("%w: output: %w", ErrInvalidConfig, err))
	}
	r := c.Resources
	if r.MemoryLimitBytes < 0 || r.MaxConcurrentCohorts < 0 || r.IOLimitBytesPerSec < 0 || r.CacheBytes < 0 {
		errs = append(errs, fmt.Errorf("%w: negative resource limit", ErrInvalidConfig))
	}

	if len(c.Cohorts) == 0 {
		errs = append(errs, fmt.Errorf("%w: no cohorts", ErrInvalidConfig))
	}
	seen := make(map[string]bool, len(c.Cohorts))
	for _, co := range c.Cohorts {
		if seen[co.Name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateCohort, co.Name))
		}
		seen[co.Name] = true
		if err := co.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Options returns the Explorer options the configuration implies, apart
// from stores, which the caller builds.
func (c Config) Options(rc *resource.Controller) ([]Option, error) {
	cd, err := codec.Lookup(c.Output.Codec)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithCodec(cd),
		WithResourceController(rc),
		WithOutputPrefix(c.Output.Prefix),
		WithCompression(c.Output.Compression),
		WithLoadConcurrency(c.Resources.LoadConcurrency),
		WithHeatMapCellSize(c.Output.HeatMapCells),
	}, nil
}
