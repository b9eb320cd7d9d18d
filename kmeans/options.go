package kmeans

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"time"
)

// EmptyClusterPolicy decides what happens to a centroid whose cluster ends an
// assignment step with no members.
type EmptyClusterPolicy int

const (
	// RetainPrevious keeps the centroid from the previous iteration.
	RetainPrevious EmptyClusterPolicy = iota
	// Reseed moves the centroid onto a random non-excluded element whose
	// value no other centroid holds, or keeps it when there is none.
	Reseed
	// FailOnEmpty aborts the run with ErrEmptyCluster.
	FailOnEmpty
)

func (p EmptyClusterPolicy) String() string {
	switch p {
	case RetainPrevious:
		return "retain"
	case Reseed:
		return "reseed"
	case FailOnEmpty:
		return "fail"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseEmptyClusterPolicy parses "retain", "reseed" or "fail".
func ParseEmptyClusterPolicy(s string) (EmptyClusterPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "retain":
		return RetainPrevious, nil
	case "reseed":
		return Reseed, nil
	case "fail":
		return FailOnEmpty, nil
	default:
		return 0, fmt.Errorf("kmeans: unknown empty cluster policy %q", s)
	}
}

type options struct {
	rng    *rand.Rand
	logger *slog.Logger
	policy EmptyClusterPolicy
}

// Option configures a KMeans run.
type Option func(*options)

// WithRand sets the random source used for centroid initialisation and
// reseeding. Pass a seeded source for reproducible runs.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rng = r
		}
	}
}

// WithLogger sets the logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEmptyClusterPolicy sets the empty cluster policy. Defaults to
// RetainPrevious.
func WithEmptyClusterPolicy(p EmptyClusterPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		policy: RetainPrevious,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // clustering, not crypto
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
