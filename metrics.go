package tcgaexplorer

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting pipeline metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordLoad is called after a cohort has been read from the store.
	RecordLoad(samples int, duration time.Duration, err error)

	// RecordMatrix is called after a pairwise matrix over n samples.
	RecordMatrix(n int, duration time.Duration, err error)

	// RecordClustering is called after a clustering run.
	RecordClustering(algorithm Algorithm, duration time.Duration, err error)

	// RecordExport is called after each written result.
	RecordExport(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(int, time.Duration, error)             {}
func (NoopMetricsCollector) RecordMatrix(int, time.Duration, error)           {}
func (NoopMetricsCollector) RecordClustering(Algorithm, time.Duration, error) {}
func (NoopMetricsCollector) RecordExport(time.Duration, error)                {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LoadCount         atomic.Int64
	LoadErrors        atomic.Int64
	SamplesLoaded     atomic.Int64
	LoadTotalNanos    atomic.Int64
	MatrixCount       atomic.Int64
	MatrixErrors      atomic.Int64
	MatrixTotalNanos  atomic.Int64
	ClusterCount      atomic.Int64
	ClusterErrors     atomic.Int64
	ClusterTotalNanos atomic.Int64
	ExportCount       atomic.Int64
	ExportErrors      atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(samples int, duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.SamplesLoaded.Add(int64(samples))
}

// RecordMatrix implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMatrix(n int, duration time.Duration, err error) {
	b.MatrixCount.Add(1)
	b.MatrixTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MatrixErrors.Add(1)
	}
}

// RecordClustering implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClustering(_ Algorithm, duration time.Duration, err error) {
	b.ClusterCount.Add(1)
	b.ClusterTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ClusterErrors.Add(1)
	}
}

// RecordExport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExport(_ time.Duration, err error) {
	b.ExportCount.Add(1)
	if err != nil {
		b.ExportErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LoadCount:       b.LoadCount.Load(),
		LoadErrors:      b.LoadErrors.Load(),
		SamplesLoaded:   b.SamplesLoaded.Load(),
		LoadAvgNanos:    avg(b.LoadTotalNanos.Load(), b.LoadCount.Load()),
		MatrixCount:     b.MatrixCount.Load(),
		MatrixErrors:    b.MatrixErrors.Load(),
		MatrixAvgNanos:  avg(b.MatrixTotalNanos.Load(), b.MatrixCount.Load()),
		ClusterCount:    b.ClusterCount.Load(),
		ClusterErrors:   b.ClusterErrors.Load(),
		ClusterAvgNanos: avg(b.ClusterTotalNanos.Load(), b.ClusterCount.Load()),
		ExportCount:     b.ExportCount.Load(),
		ExportErrors:    b.ExportErrors.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LoadCount       int64
	LoadErrors      int64
	SamplesLoaded   int64
	LoadAvgNanos    int64
	MatrixCount     int64
	MatrixErrors    int64
	MatrixAvgNanos  int64
	ClusterCount    int64
	ClusterErrors   int64
	ClusterAvgNanos int64
	ExportCount     int64
	ExportErrors    int64
}
