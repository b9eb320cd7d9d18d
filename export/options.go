package export

import (
	"io"
	"log/slog"

	"github.com/nicolas-legroux/tcgaExplorer/codec"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
)

type options struct {
	logger   *slog.Logger
	rc       *resource.Controller
	codec    codec.Codec
	cellSize int
}

// Option configures a Writer.
type Option func(*options)

// WithLogger sets the logger for written blobs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithResourceController throttles writes through rc's IO limiter.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithCodec sets the codec reports are encoded with.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCellSize sets the heat map cell edge, in points.
func WithCellSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cellSize = n
		}
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		codec:    codec.Default,
		cellSize: DefaultCellSize,
	}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}
