package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/crewpram"
)

// Option configures a Text tracer.
type Option func(*Text)

// WithValues prints the window's elements of seq at every stage. At most limit
// values are shown; limit <= 0 shows the whole window.
func WithValues(seq []int, limit int) Option {
	return func(t *Text) {
		t.values = seq
		t.maxValues = limit
	}
}

// Text writes one block per stage: window bounds, the frontier table with
// direction codes and the narrowed window.
//
// Write errors are sticky: after the first failure nothing else is written
// and Err returns the error.
type Text struct {
	w         io.Writer
	values    []int
	maxValues int
	err       error
}

var _ crewpram.Observer = (*Text)(nil)

// New creates a Text tracer writing to w.
func New(w io.Writer, opts ...Option) *Text {
	t := &Text{w: w}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Err returns the first write error.
func (t *Text) Err() error { return t.err }

// ObserveStage implements crewpram.Observer.
func (t *Text) ObserveStage(s crewpram.Stage) {
	if s.Number == 1 {
		t.printf("low = %d, high = %d, processors = %d, stages = %d\n\n",
			s.Window.Low, s.Window.High, len(s.Frontiers)-2, s.Budget)
	}

	t.printf("stage %d: window [%d, %d], g = %d, step = %d\n", s.Number, s.Window.Low, s.Window.High, s.Budget, s.Step)
	if t.values != nil {
		t.printf("  values {%s}\n", t.window(s.Window))
	}

	fs := s.Frontiers
	for i := 0; i < len(fs); i++ {
		f := fs[i]
		if !f.Clamped {
			t.printf("  j[%d] = %d : c[%d] = %s\n", f.Processor, f.Position, f.Processor, f.Direction)
			continue
		}

		// Clamped frontiers share one position; print them as a run.
		j := i
		for j+1 < len(fs) && fs[j+1].Clamped {
			j++
		}
		if j == i {
			t.printf("  j[%d] = %d : c[%d] = %s (clamped)\n", f.Processor, f.Position, f.Processor, f.Direction)
		} else {
			t.printf("  j[%d..%d] = %d : c = %s (clamped)\n", f.Processor, fs[j].Processor, f.Position, f.Direction)
		}
		i = j
	}

	if s.Found != 0 {
		t.printf("  found at position %d\n\n", s.Found)
		return
	}
	t.printf("  g = %d, next window [%d, %d]\n\n", s.Budget-1, s.Next.Low, s.Next.High)
}

func (t *Text) window(w crewpram.Window) string {
	if w.Empty() {
		return ""
	}

	lo, hi := max(w.Low, 1), min(w.High, len(t.values))
	var b strings.Builder
	shown := 0
	for pos := lo; pos <= hi; pos++ {
		if t.maxValues > 0 && shown == t.maxValues {
			b.WriteString(", ...")
			break
		}
		if shown > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", t.values[pos-1])
		shown++
	}
	return b.String()
}

func (t *Text) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

// WriteResult writes the final result line for target.
func WriteResult(w io.Writer, target, position int) error {
	var err error
	if position != 0 {
		_, err = fmt.Fprintf(w, "Element %d found at position %d\n", target, position)
	} else {
		_, err = fmt.Fprintf(w, "Element %d not found in the sequence\n", target)
	}
	return err
}
