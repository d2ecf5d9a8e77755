package crewpram

import (
	"github.com/hupe1980/crewpram/internal/pram"
)

// Bounds selects how the stage budget and out-of-window frontiers are derived.
type Bounds uint8

const (
	// BoundsExact derives the stage budget with integer arithmetic and parks
	// out-of-window frontiers one past the window end. It never yields a
	// false negative.
	BoundsExact Bounds = iota

	// BoundsLegacy keeps the classic behavior: a floating-point stage
	// budget and out-of-window frontiers parked at high-1. The two last
	// positions of a window can be lost when a clamped frontier narrows it.
	BoundsLegacy
)

// String returns the bounds mode name.
func (b Bounds) String() string {
	switch b {
	case BoundsExact:
		return "exact"
	case BoundsLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

type options struct {
	observer         Observer
	logger           *Logger
	metricsCollector MetricsCollector
	evaluator        pram.Evaluator
	bounds           Bounds
	trusted          bool
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		evaluator:        pram.Sequential{},
		bounds:           BoundsExact,
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Option configures Search and NewStepper.
type Option func(*options)

// WithObserver registers an observer that receives every completed stage.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector used by Search.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithParallelReads evaluates the processors of each stage on up to workers
// goroutines. The narrowing step stays on the calling goroutine.
//
// If workers <= 0, GOMAXPROCS goroutines are used.
func WithParallelReads(workers int) Option {
	return func(o *options) {
		o.evaluator = pram.Parallel{Workers: workers}
	}
}

// WithBounds selects the bounds mode.
func WithBounds(b Bounds) Option {
	return func(o *options) {
		o.bounds = b
	}
}

// WithLegacyBounds is shorthand for WithBounds(BoundsLegacy).
func WithLegacyBounds() Option {
	return WithBounds(BoundsLegacy)
}

// WithTrustedInput skips the O(N) sortedness check.
// Results on unsorted input are then unspecified.
func WithTrustedInput() Option {
	return func(o *options) {
		o.trusted = true
	}
}
