package pram

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Outcome is the result of one processor's comparison.
type Outcome uint8

const (
	// Less means the frontier element is smaller than the target.
	Less Outcome = iota
	// Greater means the frontier element is larger than the target.
	Greater
	// Equal means the frontier element is the target.
	Equal
	// Beyond means the frontier lies past the window end; no comparison was made.
	Beyond
)

// Probe is the record written by a single processor.
type Probe struct {
	// Position is the 1-based frontier position. For Beyond probes it is the
	// configured clamp position.
	Position int
	Outcome  Outcome
}

// Compared reports whether the probe read the sequence.
func (p Probe) Compared() bool { return p.Outcome != Beyond }

// Read describes one concurrent-read phase.
type Read struct {
	Sequence   []int
	Target     int
	Base       int // window low - 1
	Step       int
	High       int
	Processors int
	ClampTo    int
}

// Probe computes the frontier of processor i (1-based) and compares it.
func (r Read) Probe(i int) Probe {
	// base + i*step > high, without the multiplication.
	if r.Step > (r.High-r.Base)/i {
		return Probe{Position: r.ClampTo, Outcome: Beyond}
	}

	pos := r.Base + i*r.Step
	v := r.Sequence[pos-1]
	switch {
	case v == r.Target:
		return Probe{Position: pos, Outcome: Equal}
	case v > r.Target:
		return Probe{Position: pos, Outcome: Greater}
	default:
		return Probe{Position: pos, Outcome: Less}
	}
}

// Evaluator runs the read phase for all processors of a stage.
// The returned slice has one probe per processor, in processor order.
type Evaluator interface {
	Evaluate(ctx context.Context, r Read) ([]Probe, error)
}

// Sequential evaluates processors one after another on the calling goroutine.
type Sequential struct{}

// Evaluate implements Evaluator.
func (Sequential) Evaluate(ctx context.Context, r Read) ([]Probe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	probes := make([]Probe, r.Processors)
	for i := range probes {
		probes[i] = r.Probe(i + 1)
	}
	return probes, nil
}

// Parallel evaluates processors on separate goroutines.
//
// Every goroutine writes only its own slot of the result slice.
type Parallel struct {
	// Workers bounds the number of goroutines in flight.
	// If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int
}

// Evaluate implements Evaluator.
func (p Parallel) Evaluate(ctx context.Context, r Read) ([]Probe, error) {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	probes := make([]Probe, r.Processors)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range probes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			probes[i] = r.Probe(i + 1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return probes, nil
}
