package tcgaexplorer

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStore is returned by New when no input store is given.
	ErrNilStore = errors.New("tcgaexplorer: nil store")
	// ErrInvalidConfig is returned for configurations that fail validation.
	ErrInvalidConfig = errors.New("tcgaexplorer: invalid config")
	// ErrUnknownAlgorithm is returned for an unsupported clustering algorithm.
	ErrUnknownAlgorithm = errors.New("tcgaexplorer: unknown algorithm")
	// ErrDuplicateCohort is returned by AnalyzeAll when two cohorts share a
	// name, since their outputs would collide.
	ErrDuplicateCohort = errors.New("tcgaexplorer: duplicate cohort")
)

// Stage names a step of the analysis pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageLoad      Stage = "load"
	StageNormalize Stage = "normalize"
	StageMatrix    Stage = "matrix"
	StageCluster   Stage = "cluster"
	StageStats     Stage = "stats"
	StageExport    Stage = "export"
	StageRecord    Stage = "record"
)

// CohortError reports which cohort and stage an analysis failed in.
//
// The original underlying error can be accessed via errors.Unwrap.
type CohortError struct {
	Cohort string
	Stage  Stage
	cause  error
}

func (e *CohortError) Error() string {
	return fmt.Sprintf("cohort %s: %s: %v", e.Cohort, e.Stage, e.cause)
}

func (e *CohortError) Unwrap() error { return e.cause }

func stageError(cohort string, stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &CohortError{Cohort: cohort, Stage: stage, cause: err}
}
