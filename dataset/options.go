package dataset

import (
	"io"
	"log/slog"

	"github.com/nicolas-legroux/tcgaExplorer/resource"
)

type options struct {
	logger      *slog.Logger
	concurrency int
	rc          *resource.Controller
}

// Option configures a Loader.
type Option func(*options)

// WithLogger sets the logger for load progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency sets how many sample blobs are fetched at once.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithResourceController throttles blob reads through rc's IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: 8,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
