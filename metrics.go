package crewpram

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting search metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the metrics/promcollector package).
type MetricsCollector interface {
	// RecordSearch is called after each Search call.
	// n is the sequence length, processors the virtual processor count,
	// stages and comparisons describe the work done, found reports a hit,
	// err is nil if the input was valid.
	RecordSearch(n, processors, stages, comparisons int, found bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

// RecordSearch implements MetricsCollector.
func (NoopMetricsCollector) RecordSearch(int, int, int, int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchHits       atomic.Int64
	StagesTotal      atomic.Int64
	ComparisonsTotal atomic.Int64
	SearchTotalNanos atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(n, processors, stages, comparisons int, found bool, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	if found {
		b.SearchHits.Add(1)
	}
	b.StagesTotal.Add(int64(stages))
	b.ComparisonsTotal.Add(int64(comparisons))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	count := b.SearchCount.Load()
	stats := BasicMetricsStats{
		SearchCount:      count,
		SearchErrors:     b.SearchErrors.Load(),
		SearchHits:       b.SearchHits.Load(),
		StagesTotal:      b.StagesTotal.Load(),
		ComparisonsTotal: b.ComparisonsTotal.Load(),
	}
	if count > 0 {
		stats.SearchAvgNanos = b.SearchTotalNanos.Load() / count
	}
	if ok := count - stats.SearchErrors; ok > 0 {
		stats.AvgStages = float64(stats.StagesTotal) / float64(ok)
		stats.AvgComparisons = float64(stats.ComparisonsTotal) / float64(ok)
	}
	return stats
}

// BasicMetricsStats is a snapshot of metrics from BasicMetricsCollector.
type BasicMetricsStats struct {
	SearchCount      int64
	SearchErrors     int64
	SearchHits       int64
	StagesTotal      int64
	ComparisonsTotal int64
	SearchAvgNanos   int64
	AvgStages        float64
	AvgComparisons   float64
}
