package genemanifest

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordIngest is called after each build with the line counters of the run.
	RecordIngest(lines, valid, invalid int, duration time.Duration, err error)

	// RecordLoad is called after a manifest was loaded into a lookup engine.
	RecordLoad(duration time.Duration, err error)

	// RecordQuery is called after each predicate query.
	// results is the number of matching records.
	RecordQuery(filters, results int, duration time.Duration, err error)

	// RecordFetch is called after each cache miss was filled from the object store.
	RecordFetch(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIngest(int, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(time.Duration, error)                  {}
func (NoopMetricsCollector) RecordQuery(int, int, time.Duration, error)       {}
func (NoopMetricsCollector) RecordFetch(int64, time.Duration, error)          {}

// MetricsOrNoop returns m, or a NoopMetricsCollector when m is nil.
func MetricsOrNoop(m MetricsCollector) MetricsCollector {
	if m == nil {
		return NoopMetricsCollector{}
	}
	return m
}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	IngestCount   atomic.Int64
	IngestErrors  atomic.Int64
	IngestLines   atomic.Int64
	IngestValid   atomic.Int64
	IngestInvalid atomic.Int64
	LoadCount     atomic.Int64
	LoadErrors    atomic.Int64
	QueryCount    atomic.Int64
	QueryErrors   atomic.Int64
	QueryResults  atomic.Int64
	QueryNanos    atomic.Int64
	FetchCount    atomic.Int64
	FetchErrors   atomic.Int64
	FetchBytes    atomic.Int64
	FetchNanos    atomic.Int64
}

// RecordIngest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIngest(lines, valid, invalid int, _ time.Duration, err error) {
	b.IngestCount.Add(1)
	b.IngestLines.Add(int64(lines))
	b.IngestValid.Add(int64(valid))
	b.IngestInvalid.Add(int64(invalid))
	if err != nil {
		b.IngestErrors.Add(1)
	}
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_, results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryResults.Add(int64(results))
}

// RecordFetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFetch(bytes int64, duration time.Duration, err error) {
	b.FetchCount.Add(1)
	b.FetchNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FetchErrors.Add(1)
		return
	}
	b.FetchBytes.Add(bytes)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		IngestCount:   b.IngestCount.Load(),
		IngestErrors:  b.IngestErrors.Load(),
		IngestLines:   b.IngestLines.Load(),
		IngestValid:   b.IngestValid.Load(),
		IngestInvalid: b.IngestInvalid.Load(),
		LoadCount:     b.LoadCount.Load(),
		LoadErrors:    b.LoadErrors.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryResults:  b.QueryResults.Load(),
		QueryAvgNanos: avg(b.QueryNanos.Load(), b.QueryCount.Load()),
		FetchCount:    b.FetchCount.Load(),
		FetchErrors:   b.FetchErrors.Load(),
		FetchBytes:    b.FetchBytes.Load(),
		FetchAvgNanos: avg(b.FetchNanos.Load(), b.FetchCount.Load()),
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
	IngestCount   int64
	IngestErrors  int64
	IngestLines   int64
	IngestValid   int64
	IngestInvalid int64
	LoadCount     int64
	LoadErrors    int64
	QueryCount    int64
	QueryErrors   int64
	QueryResults  int64
	QueryAvgNanos int64
	FetchCount    int64
	FetchErrors   int64
	FetchBytes    int64
	FetchAvgNanos int64
}
