// Package promcollector exports crewpram search metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, err := promcollector.New(reg, "crewpram")
//	res, err := crewpram.Search(ctx, seq, target, p, crewpram.WithMetricsCollector(mc))
package promcollector

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/crewpram"
)

// Outcome label values.
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Collector implements crewpram.MetricsCollector on Prometheus metrics.
type Collector struct {
	searches    *prometheus.CounterVec
	stages      prometheus.Histogram
	comparisons prometheus.Histogram
	duration    prometheus.Histogram
}

var _ crewpram.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics on reg.
// If reg is nil, prometheus.DefaultRegisterer is used.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "total",
			Help:      "Searches by outcome.",
		}, []string{"outcome"}),
		stages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "stages",
			Help:      "Stages executed per search.",
			Buckets:   prometheus.LinearBuckets(1, 1, 12),
		}),
		comparisons: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "comparisons",
			Help:      "Frontier comparisons per search.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Search latency.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
	}

	for _, m := range []prometheus.Collector{c.searches, c.stages, c.comparisons, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordSearch implements crewpram.MetricsCollector.
func (c *Collector) RecordSearch(n, processors, stages, comparisons int, found bool, duration time.Duration, err error) {
	c.duration.Observe(duration.Seconds())

	switch {
	case err != nil:
		c.searches.WithLabelValues(OutcomeError).Inc()
		return
	case found:
		c.searches.WithLabelValues(OutcomeHit).Inc()
	default:
		c.searches.WithLabelValues(OutcomeMiss).Inc()
	}

	c.stages.Observe(float64(stages))
	c.comparisons.Observe(float64(comparisons))
}
