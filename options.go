package tcgaexplorer

import (
	"log/slog"

	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/codec"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
)

type options struct {
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
	rc               *resource.Controller
	output           blobstore.BlobStore
	outputPrefix     string
	compression      string
	recorder         RunRecorder
	loadConcurrency  int
	cellSize         int
}

// Option configures an Explorer.
type Option func(*options)

// WithCodec configures the codec reports are written with.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &tcgaexplorer.BasicMetricsCollector{}
//	ex, _ := tcgaexplorer.New(store, tcgaexplorer.WithMetricsCollector(metrics))
//	// ... run cohorts ...
//	stats := metrics.GetStats()
//	fmt.Printf("Samples: %d, Avg load: %dns\n", stats.SamplesLoaded, stats.LoadAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := tcgaexplorer.NewJSONLogger(slog.LevelInfo)
//	ex, _ := tcgaexplorer.New(store, tcgaexplorer.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResourceController bounds memory, concurrent cohorts and IO.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithOutputStore writes results to s instead of the input store.
func WithOutputStore(s blobstore.BlobStore) Option {
	return func(o *options) {
		o.output = s
	}
}

// WithOutputPrefix places every cohort's results under prefix + name + "/".
func WithOutputPrefix(prefix string) Option {
	return func(o *options) {
		o.outputPrefix = prefix
	}
}

// WithCompression compresses tabular results: "zst", "lz4" or "" for none.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}

// WithRunRecorder records every finished report, e.g. in a DynamoDB run log.
func WithRunRecorder(r RunRecorder) Option {
	return func(o *options) {
		o.recorder = r
	}
}

// WithLoadConcurrency sets how many sample blobs are fetched at once.
func WithLoadConcurrency(n int) Option {
	return func(o *options) {
		o.loadConcurrency = n
	}
}

// WithHeatMapCellSize sets the heat map cell edge, in pixels.
func WithHeatMapCellSize(n int) Option {
	return func(o *options) {
		o.cellSize = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            codec.Default,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
