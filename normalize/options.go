package normalize

import (
	"io"
	"log/slog"
	"runtime"
)

type options struct {
	logger      *slog.Logger
	concurrency int
}

// Option configures Apply.
type Option func(*options)

// WithLogger sets the logger for degenerate-sample warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency sets how many samples are normalised at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
