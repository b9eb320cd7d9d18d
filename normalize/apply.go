package normalize

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/nicolas-legroux/tcgaExplorer/dataset"
)

// Params configures Apply.
type Params struct {
	Method Method
	// Quantile is the cut for MethodBinaryQuantile.
	Quantile float64
	// K is the cluster count for MethodKMeans.
	K int
	// MaxIterations caps every k-means run.
	MaxIterations int
	// Rounds is the split count for MethodIteratedBinaryKMeans.
	Rounds int
	// Seed makes the k-means methods reproducible. Sample i uses Seed+i.
	Seed int64
}

// DefaultParams returns binary quantile normalisation at 0.995 with the
// k-means settings used when the method is switched.
func DefaultParams() Params {
	return Params{
		Method:        MethodBinaryQuantile,
		Quantile:      0.995,
		K:             2,
		MaxIterations: 1000,
		Rounds:        3,
		Seed:          1,
	}
}

// Validate checks the parameters the selected method uses.
func (p Params) Validate() error {
	switch p.Method {
	case MethodNone, MethodRank:
	case MethodBinaryQuantile:
		if p.Quantile < 0 || p.Quantile > 1 {
			return fmt.Errorf("%w: quantile %g not in [0, 1]", ErrInvalidParam, p.Quantile)
		}
	case MethodKMeans:
		if p.K < 1 {
			return fmt.Errorf("%w: k=%d", ErrInvalidParam, p.K)
		}
		if p.MaxIterations < 1 {
			return fmt.Errorf("%w: max_iterations=%d", ErrInvalidParam, p.MaxIterations)
		}
	case MethodIteratedBinaryKMeans:
		if p.Rounds < 1 {
			return fmt.Errorf("%w: rounds=%d", ErrInvalidParam, p.Rounds)
		}
		if p.MaxIterations < 1 {
			return fmt.Errorf("%w: max_iterations=%d", ErrInvalidParam, p.MaxIterations)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMethod, p.Method)
	}
	return nil
}

// Apply normalises every sample of ds in place.
func Apply(ctx context.Context, ds *dataset.Dataset, p Params, optFns ...Option) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.Method == MethodNone {
		return nil
	}
	opts := applyOptions(optFns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i := range ds.Values {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := p.sample(ds.Values[i], p.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("normalize: sample %s: %w", ds.Samples[i], err)
			}
			if out == nil {
				opts.logger.Warn("sample has too few distinct values, normalised to zeros",
					"sample", ds.Samples[i].String(),
					"method", p.Method.String(),
				)
				out = make([]float64, len(ds.Values[i]))
			}
			ds.Values[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	opts.logger.Debug("dataset normalised",
		"method", p.Method.String(),
		"samples", len(ds.Values),
	)
	return nil
}

// sample normalises one profile. A nil result without error means the
// profile was degenerate for the method.
func (p Params) sample(values []float64, seed int64) ([]float64, error) {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible initialisation, not security
	switch p.Method {
	case MethodBinaryQuantile:
		return BinaryQuantile(values, p.Quantile)
	case MethodRank:
		return Rank(values), nil
	case MethodKMeans:
		out, ok, err := KMeans(values, p.K, p.MaxIterations, rng)
		if err != nil || !ok {
			return nil, err
		}
		return out, nil
	case MethodIteratedBinaryKMeans:
		out, ok, err := IteratedBinaryKMeans(values, p.Rounds, p.MaxIterations, rng)
		if err != nil || !ok {
			return nil, err
		}
		return out, nil
	}
	return append([]float64(nil), values...), nil
}
