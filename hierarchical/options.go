package hierarchical

import (
	"io"
	"log/slog"
)

// Merge describes one agglomeration step.
type Merge struct {
	// Left and Right are the representatives that were merged (Left < Right).
	Left, Right int
	// Survivor is the representative of the merged cluster (always Left).
	Survivor int
	// Value is the matrix value between the two clusters when they merged.
	Value float64
	// Size is the number of samples in the merged cluster.
	Size int
}

type options struct {
	logger  *slog.Logger
	observe func(Merge)
}

// Option configures a Clusterer.
type Option func(*options)

// WithLogger sets the logger used for debug records. Defaults to a
// discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMergeObserver registers a callback invoked after every merge, in merge
// order. It can be used to record the dendrogram.
func WithMergeObserver(fn func(Merge)) Option {
	return func(o *options) {
		o.observe = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
