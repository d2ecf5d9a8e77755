package crewpram

import (
	"errors"
	"fmt"
)

// MaxProcessors is the largest processor count a search accepts. Every stage
// allocates one frontier per processor.
const MaxProcessors = 1 << 20

var (
	// ErrInvalidProcessorCount is returned when the processor count is outside
	// [1, MaxProcessors].
	ErrInvalidProcessorCount = errors.New("processor count must be between 1 and 1048576")

	// ErrEmptySequence is returned when the sequence has no elements.
	ErrEmptySequence = errors.New("sequence must contain at least one element")

	// ErrNotSorted is the sentinel wrapped by ErrUnsorted.
	ErrNotSorted = errors.New("sequence is not sorted")

	// ErrSearchDone is returned when stepping a finished Stepper.
	ErrSearchDone = errors.New("search already finished")
)

// ErrUnsorted reports the first position at which the sequence descends.
//
// errors.Is(err, ErrNotSorted) holds for every ErrUnsorted.
type ErrUnsorted struct {
	// Position is the 1-based position of the element smaller than its predecessor.
	Position int
	Previous int
	Value    int
}

func (e *ErrUnsorted) Error() string {
	return fmt.Sprintf("sequence is not sorted: position %d holds %d after %d", e.Position, e.Value, e.Previous)
}

func (e *ErrUnsorted) Unwrap() error { return ErrNotSorted }

func validate(seq []int, processors int, trusted bool) error {
	if processors < 1 || processors > MaxProcessors {
		return fmt.Errorf("%w: got %d", ErrInvalidProcessorCount, processors)
	}
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if trusted {
		return nil
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] < seq[i-1] {
			return &ErrUnsorted{Position: i + 1, Previous: seq[i-1], Value: seq[i]}
		}
	}
	return nil
}
