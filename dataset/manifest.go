package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Entry is one manifest line: a sample and the blob holding its profile.
type Entry struct {
	Sample SampleID
	Blob   string
}

// Limits selects which manifest entries are loaded.
type Limits struct {
	// Cancers restricts loading to these cancer types. Empty means all.
	Cancers []string
	// MaxControl caps control samples per cancer. Zero means no cap.
	MaxControl int
	// MaxTumor caps tumor samples per cancer. Zero means no cap.
	MaxTumor int
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		Cancers:    []string{"BRCA", "LUAD"},
		MaxControl: 20,
		MaxTumor:   20,
	}
}

// Select keeps the entries allowed by l, first come first served, in
// manifest order.
func (l Limits) Select(entries []Entry) []Entry {
	allowed := make(map[string]bool, len(l.Cancers))
	for _, c := range l.Cancers {
		allowed[c] = true
	}

	type bucket struct {
		cancer string
		tumor  bool
	}
	counts := make(map[bucket]int)

	var out []Entry
	for _, e := range entries {
		if len(allowed) > 0 && !allowed[e.Sample.Cancer] {
			continue
		}
		limit := l.MaxControl
		if e.Sample.Tumor {
			limit = l.MaxTumor
		}
		b := bucket{e.Sample.Cancer, e.Sample.Tumor}
		if limit > 0 && counts[b] >= limit {
			continue
		}
		counts[b]++
		out = append(out, e)
	}
	return out
}

func newTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// ParseManifest reads manifest lines "cancer, tumor|control, patient, blob".
// Lines starting with '#' are comments.
func ParseManifest(r io.Reader) ([]Entry, error) {
	cr := newTSVReader(r)
	seen := make(map[SampleID]bool)

	var entries []Entry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedManifest, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != 4 {
			return nil, fmt.Errorf("%w: line %d: want 4 fields, got %d", ErrMalformedManifest, line, len(rec))
		}

		var tumor bool
		switch strings.ToLower(strings.TrimSpace(rec[1])) {
		case "tumor":
			tumor = true
		case "control":
		default:
			return nil, fmt.Errorf("%w: line %d: kind %q, want tumor or control", ErrMalformedManifest, line, rec[1])
		}

		id := SampleID{
			Cancer:  strings.TrimSpace(rec[0]),
			Patient: strings.TrimSpace(rec[2]),
			Tumor:   tumor,
		}
		blob := strings.TrimSpace(rec[3])
		if id.Cancer == "" || id.Patient == "" || blob == "" {
			return nil, fmt.Errorf("%w: line %d: empty field", ErrMalformedManifest, line)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSample, id)
		}
		seen[id] = true
		entries = append(entries, Entry{Sample: id, Blob: blob})
	}
	return entries, nil
}

// ParseSample reads an expression table of "gene, value" lines. A first line
// whose value is not a number is taken as a header.
func ParseSample(r io.Reader) (genes []string, values []float64, err error) {
	cr := newTSVReader(r)
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrMalformedSample, err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%w: line %d: want gene and value", ErrMalformedSample, line)
		}

		v, perr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if perr != nil {
			if first {
				first = false
				continue
			}
			return nil, nil, fmt.Errorf("%w: line %d: %w", ErrMalformedSample, line, perr)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, fmt.Errorf("%w: line %d: non-finite value %q", ErrMalformedSample, line, rec[1])
		}
		first = false
		genes = append(genes, strings.TrimSpace(rec[0]))
		values = append(values, v)
	}
	if len(genes) == 0 {
		return nil, nil, fmt.Errorf("%w: no genes", ErrMalformedSample)
	}
	return genes, values, nil
}
