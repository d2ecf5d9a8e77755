package crewpram

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// Direction tells where the target lies relative to a frontier.
type Direction uint8

const (
	// Right means the target, if present, lies right of the frontier.
	Right Direction = iota
	// Left means the target, if present, lies left of the frontier.
	Left
	// Hit marks a frontier whose element is the target.
	Hit
)

// String returns the single-letter direction code.
func (d Direction) String() string {
	switch d {
	case Right:
		return "R"
	case Left:
		return "L"
	case Hit:
		return "*"
	default:
		return "?"
	}
}

// Window is the live search region, 1-based and inclusive.
type Window struct {
	Low  int
	High int
}

// Width returns the number of positions in the window, or 0 if it is empty.
func (w Window) Width() int {
	if w.High < w.Low {
		return 0
	}
	return w.High - w.Low + 1
}

// Empty reports whether the window holds no positions.
func (w Window) Empty() bool { return w.Low > w.High }

// Frontier is one boundary of a stage's frontier set.
//
// Processor 0 and processor P+1 are virtual: they pin the window start with
// Right and the window end with Left.
type Frontier struct {
	Processor int
	Position  int
	Direction Direction
	// Clamped is set when the computed position fell past the window end.
	Clamped bool
	Virtual bool
}

// Stage is the record of one synchronized round.
type Stage struct {
	// Number counts stages from 1.
	Number int
	// Budget is the remaining stage count at entry.
	Budget int
	Step   int
	// Window is the region before narrowing, Next the region after it.
	Window Window
	Next   Window
	// Frontiers holds P+2 entries, sentinels included.
	Frontiers   []Frontier
	Comparisons int
	// Found is the 1-based hit position, or 0.
	Found int
}

// Observer receives every completed stage.
// The Stage value, including its Frontiers slice, is owned by the observer.
type Observer interface {
	ObserveStage(s Stage)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Stage)

// ObserveStage implements Observer.
func (f ObserverFunc) ObserveStage(s Stage) { f(s) }

// Result is the outcome of a search.
type Result struct {
	// Position is the 1-based index of the target, or 0 if not found.
	Position int
	// Budget is the stage count derived at search start.
	Budget      int
	Stages      int
	Comparisons int
	// Probed holds every 1-based position whose element was compared.
	Probed *roaring.Bitmap
}

// Found reports whether the target was located.
func (r Result) Found() bool { return r.Position != 0 }

// Search locates target in the sorted sequence seq using processors virtual
// CREW-PRAM processors.
//
// Each stage places one frontier per processor, compares the frontier
// elements with the target (the concurrent read) and narrows the window at
// the first change of direction (the exclusive write). An absent target is
// reported as Position 0 with a nil error.
func Search(ctx context.Context, seq []int, target, processors int, opts ...Option) (Result, error) {
	o := applyOptions(opts)
	start := time.Now()

	res, err := search(ctx, seq, target, processors, o)

	o.metricsCollector.RecordSearch(len(seq), processors, res.Stages, res.Comparisons, res.Found(), time.Since(start), err)
	o.logger.LogSearch(ctx, target, res, err)

	return res, err
}

func search(ctx context.Context, seq []int, target, processors int, o options) (Result, error) {
	s, err := newStepper(seq, target, processors, o)
	if err != nil {
		return Result{}, err
	}

	for !s.Done() {
		if _, err := s.Step(ctx); err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), nil
}

// Find is Search without options and context. It returns the 1-based
// position of target, or 0 if it is absent.
func Find(seq []int, target, processors int) (int, error) {
	res, err := Search(context.Background(), seq, target, processors)
	if err != nil {
		return 0, err
	}
	return res.Position, nil
}
