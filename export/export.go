package export

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nicolas-legroux/tcgaExplorer/blobstore"
	"github.com/nicolas-legroux/tcgaExplorer/codec"
	"github.com/nicolas-legroux/tcgaExplorer/dataset"
	"github.com/nicolas-legroux/tcgaExplorer/internal/compress"
	"github.com/nicolas-legroux/tcgaExplorer/matrix"
	"github.com/nicolas-legroux/tcgaExplorer/resource"
	"github.com/nicolas-legroux/tcgaExplorer/stats"
)

var (
	// ErrLengthMismatch is returned when parallel inputs differ in length.
	ErrLengthMismatch = errors.New("export: length mismatch")
	// ErrEmpty is returned for outputs that need at least one sample.
	ErrEmpty = errors.New("export: nothing to export")
)

// DefaultCellSize is the heat map cell edge, in points.
const DefaultCellSize = 20

// Writer writes result files into a blobstore.
type Writer struct {
	store blobstore.BlobStore
	opts  options
}

// NewWriter returns a Writer targeting store.
func NewWriter(store blobstore.BlobStore, optFns ...Option) *Writer {
	return &Writer{store: store, opts: applyOptions(optFns)}
}

// Codec returns the codec reports are written with.
func (w *Writer) Codec() codec.Codec {
	return w.opts.codec
}

// write streams fn's output into the named blob, compressed per the name's
// extension.
func (w *Writer) write(ctx context.Context, name string, fn func(*bufio.Writer) error) (err error) {
	blob, err := w.store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", name, err)
	}
	defer func() {
		if cerr := blob.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("export: close %s: %w", name, cerr)
		}
	}()

	var dst io.Writer = blob
	if w.opts.rc != nil {
		dst = resource.NewRateLimitedWriter(ctx, blob, w.opts.rc)
	}
	cw, err := compress.NewWriter(compress.FromName(name), dst)
	if err != nil {
		return fmt.Errorf("export: %s: %w", name, err)
	}

	bw := bufio.NewWriter(cw)
	if err := fn(bw); err != nil {
		_ = cw.Close()
		return fmt.Errorf("export: %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		_ = cw.Close()
		return fmt.Errorf("export: %s: %w", name, err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("export: %s: %w", name, err)
	}

	w.opts.logger.Debug("result exported", "name", name)
	return nil
}

// Matrix writes m as n tab-separated rows.
func (w *Writer) Matrix(ctx context.Context, name string, m *matrix.Matrix) error {
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		n := m.N()
		var buf []byte
		for i := 0; i < n; i++ {
			buf = buf[:0]
			for j := 0; j < n; j++ {
				if j > 0 {
					buf = append(buf, '\t')
				}
				buf = strconv.AppendFloat(buf, m.At(i, j), 'g', -1, 64)
			}
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Patients writes one sample identifier per line, in matrix order.
func (w *Writer) Patients(ctx context.Context, name string, samples []dataset.SampleID) error {
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		for _, s := range samples {
			if _, err := fmt.Fprintln(bw, s.String()); err != nil {
				return err
			}
		}
		return nil
	})
}

// Labels writes the heat map axis labels: one "class count" line per run of
// consecutive samples sharing a class.
func (w *Writer) Labels(ctx context.Context, name string, samples []dataset.SampleID) error {
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		for _, r := range Runs(samples) {
			if _, err := fmt.Fprintf(bw, "%s %d\n", r.Class, r.Count); err != nil {
				return err
			}
		}
		return nil
	})
}

// Run is a maximal sequence of consecutive samples of one class.
type Run struct {
	Class string
	Count int
}

// Runs run-length encodes the classes of samples.
func Runs(samples []dataset.SampleID) []Run {
	var runs []Run
	for _, s := range samples {
		c := s.Class()
		if len(runs) > 0 && runs[len(runs)-1].Class == c {
			runs[len(runs)-1].Count++
			continue
		}
		runs = append(runs, Run{Class: c, Count: 1})
	}
	return runs
}

// ClassStats writes the class table as a grid of "mean (stddev)" cells,
// headed by the class names and their sizes.
func (w *Writer) ClassStats(ctx context.Context, name string, t *stats.ClassTable) error {
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		if _, err := bw.WriteString("CLASSES"); err != nil {
			return err
		}
		for _, c := range t.Classes {
			if _, err := fmt.Fprintf(bw, "\t%s (%d)", c.Name, len(c.Members)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}

		for a, c := range t.Classes {
			if _, err := fmt.Fprintf(bw, "%s (%d)", c.Name, len(c.Members)); err != nil {
				return err
			}
			for b := range t.Classes {
				s := t.Cells[a][b]
				if _, err := fmt.Fprintf(bw, "\t%.4f (%.4f)", s.Mean, s.StdDev); err != nil {
					return err
				}
			}
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		return nil
	})
}

// Clusters writes "sample<TAB>cluster" lines.
func (w *Writer) Clusters(ctx context.Context, name string, samples []dataset.SampleID, labels []int) error {
	if len(samples) != len(labels) {
		return fmt.Errorf("%w: %d samples, %d labels", ErrLengthMismatch, len(samples), len(labels))
	}
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		for i, s := range samples {
			if _, err := fmt.Fprintf(bw, "%s\t%d\n", s.String(), labels[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// DefaultTopGenes is the number of genes TopGenes lists by default.
const DefaultTopGenes = 15

// TopGenes writes the n genes with the highest total expression over all
// samples, one "gene<TAB>total" line each, highest first.
func (w *Writer) TopGenes(ctx context.Context, name string, ds *dataset.Dataset, n int) error {
	if ds.Len() == 0 {
		return ErrEmpty
	}
	top := stats.TopColumns(ds.Values, n)
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		for _, g := range top {
			total := 0.0
			for _, row := range ds.Values {
				total += row[g]
			}
			if _, err := fmt.Fprintf(bw, "%s\t%s\n", ds.Genes[g], strconv.FormatFloat(total, 'g', -1, 64)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Report encodes v with the writer's codec.
func (w *Writer) Report(ctx context.Context, name string, v any) error {
	data, err := codec.Pretty(w.opts.codec, v)
	if err != nil {
		return fmt.Errorf("export: encode %s: %w", name, err)
	}
	return w.write(ctx, name, func(bw *bufio.Writer) error {
		if _, err := bw.Write(data); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	})
}
