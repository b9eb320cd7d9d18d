package dataset

import "errors"

var (
	// ErrMalformedManifest is returned for manifest lines that cannot be parsed.
	ErrMalformedManifest = errors.New("dataset: malformed manifest")
	// ErrMalformedSample is returned for expression tables that cannot be parsed.
	ErrMalformedSample = errors.New("dataset: malformed sample")
	// ErrGeneMismatch is returned when samples do not share one gene list.
	ErrGeneMismatch = errors.New("dataset: gene lists differ between samples")
	// ErrDuplicateSample is returned when a manifest lists a sample twice.
	ErrDuplicateSample = errors.New("dataset: duplicate sample")
	// ErrEmpty is returned when no sample survives selection.
	ErrEmpty = errors.New("dataset: no samples selected")
	// ErrShape is returned when values do not match samples and genes.
	ErrShape = errors.New("dataset: values do not match samples and genes")
)
