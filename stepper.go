package crewpram

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/crewpram/internal/pram"
)

// Stepper runs a search one stage at a time, for tracing tools and UIs that
// want to pace or inspect the narrowing.
//
// A Stepper is not safe for concurrent use.
type Stepper struct {
	seq        []int
	target     int
	processors int
	opts       options
	logger     *Logger

	window      Window
	initial     int
	budget      int
	found       int
	stages      int
	comparisons int
	probed      *roaring.Bitmap
}

// NewStepper validates the input and prepares a search without running any stage.
func NewStepper(seq []int, target, processors int, opts ...Option) (*Stepper, error) {
	return newStepper(seq, target, processors, applyOptions(opts))
}

func newStepper(seq []int, target, processors int, o options) (*Stepper, error) {
	if err := validate(seq, processors, o.trusted); err != nil {
		return nil, err
	}

	n := len(seq)
	budget := StageCount(n, processors)
	if o.bounds == BoundsLegacy {
		budget = LegacyStageCount(n, processors)
	}

	return &Stepper{
		seq:        seq,
		target:     target,
		processors: processors,
		opts:       o,
		logger:     o.logger.WithSize(n).WithProcessors(processors),
		window:     Window{Low: 1, High: n},
		initial:    budget,
		budget:     budget,
		probed:     roaring.New(),
	}, nil
}

// Done reports whether the search has finished: the target was found, the
// window collapsed or the stage budget ran out.
func (s *Stepper) Done() bool {
	return s.found != 0 || s.window.Empty() || s.budget <= 0
}

// Window returns the current search window.
func (s *Stepper) Window() Window { return s.window }

// Budget returns the number of stages left.
func (s *Stepper) Budget() int { return s.budget }

// Result returns the search outcome so far.
func (s *Stepper) Result() Result {
	return Result{
		Position:    s.found,
		Budget:      s.initial,
		Stages:      s.stages,
		Comparisons: s.comparisons,
		Probed:      s.probed.Clone(),
	}
}

// Step executes one stage and returns its record.
// It returns ErrSearchDone once Done reports true.
func (s *Stepper) Step(ctx context.Context) (Stage, error) {
	if s.Done() {
		return Stage{}, ErrSearchDone
	}

	step := intPow(s.processors+1, s.budget-1)
	probes, err := s.opts.evaluator.Evaluate(ctx, pram.Read{
		Sequence:   s.seq,
		Target:     s.target,
		Base:       s.window.Low - 1,
		Step:       step,
		High:       s.window.High,
		Processors: s.processors,
		ClampTo:    s.endPosition(),
	})
	if err != nil {
		return Stage{}, err
	}

	stage := Stage{
		Number:    s.stages + 1,
		Budget:    s.budget,
		Step:      step,
		Window:    s.window,
		Frontiers: s.frontiers(probes),
	}

	for _, p := range probes {
		if !p.Compared() {
			continue
		}
		stage.Comparisons++
		s.probed.Add(uint32(p.Position))
		if p.Outcome == pram.Equal && stage.Found == 0 {
			stage.Found = p.Position
		}
	}

	// Exclusive write: a single update of the shared state per stage.
	if stage.Found != 0 {
		s.found = stage.Found
	} else {
		s.window = s.narrow(stage.Frontiers)
	}
	stage.Next = s.window

	s.budget--
	s.stages++
	s.comparisons += stage.Comparisons

	s.logger.LogStage(ctx, stage)
	if s.opts.observer != nil {
		s.opts.observer.ObserveStage(stage)
	}

	return stage, nil
}

// endPosition is where clamped frontiers and the closing sentinel sit.
func (s *Stepper) endPosition() int {
	if s.opts.bounds == BoundsLegacy {
		return s.window.High - 1
	}
	return s.window.High + 1
}

func (s *Stepper) frontiers(probes []pram.Probe) []Frontier {
	fs := make([]Frontier, s.processors+2)
	fs[0] = Frontier{Position: s.window.Low - 1, Direction: Right, Virtual: true}

	for i, p := range probes {
		f := Frontier{Processor: i + 1, Position: p.Position}
		switch p.Outcome {
		case pram.Less:
			f.Direction = Right
		case pram.Greater:
			f.Direction = Left
		case pram.Equal:
			f.Direction = Hit
		case pram.Beyond:
			f.Direction = Left
			f.Clamped = true
		}
		fs[i+1] = f
	}

	last := s.processors + 1
	fs[last] = Frontier{Processor: last, Position: s.endPosition(), Direction: Left, Virtual: true}
	return fs
}

// narrow applies the first-flip rule. Later flips are ignored.
func (s *Stepper) narrow(fs []Frontier) Window {
	last := len(fs) - 1
	for i := 1; i <= last; i++ {
		if fs[i].Direction == fs[i-1].Direction {
			continue
		}
		if i == last {
			// Every processor pointed right: the target can only be in the tail.
			return Window{Low: fs[i-1].Position + 1, High: s.window.High}
		}
		return Window{Low: fs[i-1].Position + 1, High: fs[i].Position - 1}
	}
	return s.window
}
