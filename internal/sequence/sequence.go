// Package sequence builds the working sequence for the crewsearch driver.
package sequence

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/crewpram/internal/resource"
)

const (
	// MinSize and MaxSize bound the sequence size the driver accepts.
	MinSize = 16
	MaxSize = 500
)

var (
	// ErrSizeOutOfRange is returned when a size falls outside the accepted bounds.
	ErrSizeOutOfRange = errors.New("sequence size out of range")

	// ErrAllocation is returned when the working sequence cannot be allocated.
	ErrAllocation = errors.New("cannot allocate sequence")

	// ErrTargetOutOfRange is returned when the target cannot occur in the
	// generated sequence.
	ErrTargetOutOfRange = errors.New("target outside generated range")
)

// Bounds is an inclusive size range.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds returns [MinSize, MaxSize].
func DefaultBounds() Bounds {
	return Bounds{Min: MinSize, Max: MaxSize}
}

// Check returns ErrSizeOutOfRange if n is outside b.
func (b Bounds) Check(n int) error {
	if n < b.Min || n > b.Max {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrSizeOutOfRange, n, b.Min, b.Max)
	}
	return nil
}

// Sequence is an ascending run 1..N whose memory is charged to a controller.
type Sequence struct {
	Values []int

	rc    *resource.Controller
	bytes int64
}

// Ascending allocates 1..n, charging the controller for its size.
// rc may be nil.
func Ascending(n int, rc *resource.Controller) (*Sequence, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrSizeOutOfRange, n)
	}

	bytes := int64(n) * strconv.IntSize / 8
	if err := rc.AcquireMemory(bytes); err != nil {
		return nil, fmt.Errorf("%w of %d elements: %w", ErrAllocation, n, err)
	}

	values := make([]int, n)
	for i := range values {
		values[i] = i + 1
	}

	return &Sequence{Values: values, rc: rc, bytes: bytes}, nil
}

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.Values) }

// Release returns the sequence's memory to the controller.
// Calling Release more than once is a no-op.
func (s *Sequence) Release() {
	if s == nil || s.bytes == 0 {
		return
	}
	s.rc.ReleaseMemory(s.bytes)
	s.bytes = 0
	s.Values = nil
}

// CheckTarget returns ErrTargetOutOfRange if target >= n, mirroring the
// driver's precondition that only targets below the size are searched.
func CheckTarget(target, n int) error {
	if target >= n {
		return fmt.Errorf("%w: %d >= %d", ErrTargetOutOfRange, target, n)
	}
	return nil
}
