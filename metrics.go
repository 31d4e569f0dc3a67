package netcmp

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordEntity is called after each per-entity computation.
	RecordEntity(duration time.Duration, err error)

	// RecordPair is called after each pairwise distance computation.
	RecordPair(duration time.Duration, err error)

	// RecordRun is called once per run with the entity count.
	RecordRun(entities int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEntity(time.Duration, error)   {}
func (NoopMetricsCollector) RecordPair(time.Duration, error)     {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EntityCount      atomic.Int64
	EntityErrors     atomic.Int64
	EntityTotalNanos atomic.Int64
	PairCount        atomic.Int64
	PairErrors       atomic.Int64
	PairTotalNanos   atomic.Int64
	RunCount         atomic.Int64
	RunErrors        atomic.Int64
	RunEntities      atomic.Int64
}

// RecordEntity implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEntity(duration time.Duration, err error) {
	b.EntityCount.Add(1)
	b.EntityTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.EntityErrors.Add(1)
	}
}

// RecordPair implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPair(duration time.Duration, err error) {
	b.PairCount.Add(1)
	b.PairTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PairErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(entities int, _ time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunEntities.Add(int64(entities))
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EntityCount:    b.EntityCount.Load(),
		EntityErrors:   b.EntityErrors.Load(),
		EntityAvgNanos: avg(b.EntityTotalNanos.Load(), b.EntityCount.Load()),
		PairCount:      b.PairCount.Load(),
		PairErrors:     b.PairErrors.Load(),
		PairAvgNanos:   avg(b.PairTotalNanos.Load(), b.PairCount.Load()),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunEntities:    b.RunEntities.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of metrics from BasicMetricsCollector.
type BasicMetricsStats struct {
	EntityCount    int64
	EntityErrors   int64
	EntityAvgNanos int64
	PairCount      int64
	PairErrors     int64
	PairAvgNanos   int64
	RunCount       int64
	RunErrors      int64
	RunEntities    int64
}
