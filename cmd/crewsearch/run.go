package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hupe1980/crewpram"
	"github.com/hupe1980/crewpram/internal/config"
	"github.com/hupe1980/crewpram/internal/resource"
	"github.com/hupe1980/crewpram/internal/sequence"
	"github.com/hupe1980/crewpram/metrics/promcollector"
	"github.com/hupe1980/crewpram/trace"
)

func runSearch(ctx context.Context, in io.Reader, out, errOut io.Writer, cfg *config.Config, f *rootFlags, logger *zap.Logger) error {
	bounds := sequence.Bounds{Min: cfg.Bounds.Min, Max: cfg.Bounds.Max}

	n := cfg.Size
	if n == 0 {
		var err error
		if n, err = promptSize(in, out, bounds); err != nil {
			return err
		}
	}
	if err := bounds.Check(n); err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes: cfg.Resources.MemoryLimitBytes,
		StagesPerSecond:  cfg.Resources.StagesPerSecond,
	})

	seq, err := sequence.Ascending(n, rc)
	if err != nil {
		logger.Error("allocation failed", zap.Int("size", n), zap.Error(err))
		return err
	}
	defer seq.Release()

	if err := sequence.CheckTarget(cfg.Target, n); err != nil {
		logger.Info("target skipped", zap.Int("target", cfg.Target), zap.Int("size", n))
		_, werr := fmt.Fprintf(out, "Element %d cannot be searched: the generated sequence holds 1 to %d\n", cfg.Target, n)
		return werr
	}

	opts := []crewpram.Option{
		crewpram.WithLogger(searchLogger(cfg, errOut)),
	}
	if cfg.Search.Legacy {
		opts = append(opts, crewpram.WithLegacyBounds())
	}
	if cfg.Search.Workers > 0 {
		opts = append(opts, crewpram.WithParallelReads(cfg.Search.Workers))
	}

	var (
		mc         *crewpram.BasicMetricsCollector
		reg        *prometheus.Registry
		collectors teeCollector
	)
	if f.metrics {
		mc = &crewpram.BasicMetricsCollector{}
		collectors = append(collectors, mc)
	}
	if f.promFile != "" {
		reg = prometheus.NewRegistry()
		pc, err := promcollector.New(reg, "crewpram")
		if err != nil {
			return err
		}
		collectors = append(collectors, pc)
	}
	if len(collectors) > 0 {
		opts = append(opts, crewpram.WithMetricsCollector(collectors))
	}

	var (
		tr    *trace.Text
		paced *pacedObserver
	)
	if !cfg.Search.Quiet {
		var topts []trace.Option
		switch {
		case cfg.Search.ShowValues < 0:
			topts = append(topts, trace.WithValues(seq.Values, 0))
		case cfg.Search.ShowValues > 0:
			topts = append(topts, trace.WithValues(seq.Values, cfg.Search.ShowValues))
		}
		tr = trace.New(out, topts...)
		paced = &pacedObserver{ctx: ctx, rc: rc, next: tr}
	} else if cfg.Resources.StagesPerSecond > 0 {
		paced = &pacedObserver{ctx: ctx, rc: rc}
	}
	if paced != nil {
		opts = append(opts, crewpram.WithObserver(paced))
	}

	res, err := crewpram.Search(ctx, seq.Values, cfg.Target, cfg.Processors, opts...)
	if err != nil {
		logger.Error("search failed", zap.Error(err))
		return err
	}
	if tr != nil && tr.Err() != nil {
		return tr.Err()
	}
	if paced != nil && paced.Err() != nil {
		logger.Error("stage pacing failed", zap.Error(paced.Err()))
		return paced.Err()
	}

	logger.Info("search finished",
		zap.Int("size", n),
		zap.Int("target", cfg.Target),
		zap.Int("processors", cfg.Processors),
		zap.Int("position", res.Position),
		zap.Int("stages", res.Stages),
		zap.Int("budget", res.Budget),
		zap.Int("comparisons", res.Comparisons),
		zap.Bool("legacy", cfg.Search.Legacy),
		zap.Int("throttled_stages", paced.Throttled()),
	)

	if err := trace.WriteResult(out, cfg.Target, res.Position); err != nil {
		return err
	}

	if reg != nil {
		if err := prometheus.WriteToTextfile(f.promFile, reg); err != nil {
			logger.Error("writing metrics failed", zap.String("path", f.promFile), zap.Error(err))
			return err
		}
	}

	if mc != nil {
		s := mc.GetStats()
		_, err = fmt.Fprintf(out, "searches=%d hits=%d stages=%d comparisons=%d probed=%d\n",
			s.SearchCount, s.SearchHits, s.StagesTotal, s.ComparisonsTotal, res.Probed.GetCardinality())
	}
	return err
}

// searchLogger returns a debug slog logger for the search when debug logging
// is enabled, a no-op logger otherwise.
func searchLogger(cfg *config.Config, w io.Writer) *crewpram.Logger {
	if cfg.Logging.Level != "debug" {
		return crewpram.NoopLogger()
	}
	return crewpram.NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// teeCollector forwards every search record to each collector in order.
type teeCollector []crewpram.MetricsCollector

func (t teeCollector) RecordSearch(n, processors, stages, comparisons int, found bool, duration time.Duration, err error) {
	for _, c := range t {
		c.RecordSearch(n, processors, stages, comparisons, found, duration, err)
	}
}

// pacedObserver holds every stage back until the controller's stage rate allows it.
// After the first pacing error it stops waiting and keeps the error for Err.
type pacedObserver struct {
	ctx  context.Context
	rc   *resource.Controller
	next crewpram.Observer

	throttled int
	err       error
}

func (p *pacedObserver) ObserveStage(s crewpram.Stage) {
	if p.err == nil && !p.rc.TryAcquireStage() {
		p.throttled++
		p.err = p.rc.AcquireStage(p.ctx)
	}
	if p.next != nil {
		p.next.ObserveStage(s)
	}
}

// Err returns the first pacing error.
func (p *pacedObserver) Err() error { return p.err }

// Throttled returns the number of stages that had to wait for the rate limiter.
func (p *pacedObserver) Throttled() int {
	if p == nil {
		return 0
	}
	return p.throttled
}

// promptSize asks for N until a value inside b is entered.
func promptSize(in io.Reader, out io.Writer, b sequence.Bounds) (int, error) {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	fmt.Fprintln(out, "Enter N to generate the sequence.")
	for sc.Scan() {
		n, err := strconv.Atoi(sc.Text())
		if err == nil && b.Check(n) == nil {
			return n, nil
		}
		fmt.Fprintf(out, "Error: N must be between %d and %d.\n", b.Min, b.Max)
		fmt.Fprintln(out, "Enter N again:")
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading size: %w", err)
	}
	return 0, fmt.Errorf("reading size: %w", io.ErrUnexpectedEOF)
}
