package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/internal/compress"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
	"golang.org/x/sync/errgroup"
)

// Loader reads cohorts from a blob store.
type Loader struct {
	store blobstore.BlobStore
	opts  options
}

// NewLoader creates a Loader over store.
func NewLoader(store blobstore.BlobStore, optFns ...Option) *Loader {
	return &Loader{
		store: store,
		opts:  applyOptions(optFns),
	}
}

// Manifest reads and parses the manifest blob.
func (l *Loader) Manifest(ctx context.Context, name string) ([]Entry, error) {
	r, err := l.open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	entries, err := ParseManifest(r)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", name, err)
	}
	return entries, nil
}

// Load reads the manifest, selects entries with limits and fetches every
// selected sample concurrently. The result is sorted so that classes are
// contiguous.
func (l *Loader) Load(ctx context.Context, manifest string, limits Limits) (*Dataset, error) {
	entries, err := l.Manifest(ctx, manifest)
	if err != nil {
		return nil, err
	}
	selected := limits.Select(entries)
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: manifest %s has %d entries", ErrEmpty, manifest, len(entries))
	}

	genes := make([][]string, len(selected))
	values := make([][]float64, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.concurrency)
	for i, e := range selected {
		g.Go(func() error {
			gs, vs, err := l.readSample(gctx, e.Blob)
			if err != nil {
				return fmt.Errorf("sample %s: %w", e.Sample, err)
			}
			genes[i], values[i] = gs, vs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := 1; i < len(genes); i++ {
		if !slices.Equal(genes[0], genes[i]) {
			return nil, fmt.Errorf("%w: %s (%d genes) vs %s (%d genes)",
				ErrGeneMismatch, selected[0].Sample, len(genes[0]), selected[i].Sample, len(genes[i]))
		}
	}

	ds := &Dataset{
		Samples: make([]SampleID, len(selected)),
		Genes:   genes[0],
		Values:  values,
	}
	for i, e := range selected {
		ds.Samples[i] = e.Sample
	}
	ds.Sort()

	l.opts.logger.Info("cohort loaded",
		"manifest", manifest,
		"samples", ds.Len(),
		"genes", len(ds.Genes),
		"classes", len(ds.Classes()),
	)
	return ds, nil
}

func (l *Loader) readSample(ctx context.Context, name string) ([]string, []float64, error) {
	r, err := l.open(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	return ParseSample(r)
}

// open returns a decompressing, rate-limited reader over a blob. Closing it
// closes the blob.
func (l *Loader) open(ctx context.Context, name string) (io.ReadCloser, error) {
	blob, err := l.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	limited := resource.NewRateLimitedReader(ctx, blobstore.NewReader(ctx, blob), l.opts.rc)
	r, err := compress.NewReader(compress.FromName(name), limited)
	if err != nil {
		_ = blob.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &blobReader{ReadCloser: r, blob: blob}, nil
}

type blobReader struct {
	io.ReadCloser
	blob blobstore.Blob
}

func (r *blobReader) Close() error {
	err := r.ReadCloser.Close()
	if cerr := r.blob.Close(); err == nil {
		err = cerr
	}
	return err
}

// Save writes ds back as a manifest plus one expression table per sample,
// named <prefix><cancer>/<kind>/<patient>.tsv. It is the inverse of Load.
func Save(ctx context.Context, store blobstore.BlobStore, manifest, prefix string, ds *Dataset) error {
	if err := ds.Validate(); err != nil {
		return err
	}

	var mf bytes.Buffer
	for i, s := range ds.Samples {
		blob := fmt.Sprintf("%s%s/%s/%s.tsv", prefix, s.Cancer, lowerKind(s), s.Patient)
		fmt.Fprintf(&mf, "%s\t%s\t%s\t%s\n", s.Cancer, lowerKind(s), s.Patient, blob)

		var buf bytes.Buffer
		buf.WriteString("gene_id\tvalue\n")
		for j, g := range ds.Genes {
			fmt.Fprintf(&buf, "%s\t%s\n", g, formatFloat(ds.Values[i][j]))
		}
		if err := store.Put(ctx, blob, buf.Bytes()); err != nil {
			return fmt.Errorf("save %s: %w", s, err)
		}
	}
	return store.Put(ctx, manifest, mf.Bytes())
}

func lowerKind(s SampleID) string {
	if s.Tumor {
		return "tumor"
	}
	return "control"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
