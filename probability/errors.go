// probability/errors.go
package probability

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is matched by every input validation failure.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrLengthMismatch is returned when paired vectors differ in length.
	ErrLengthMismatch = fmt.Errorf("%w: vector lengths differ", ErrInvalidArgument)
	// ErrTooManyStates is returned when a joint state space does not fit in a uint32.
	ErrTooManyStates = fmt.Errorf("%w: joint state count overflows uint32", ErrInvalidArgument)
)

// lengthMismatch wraps ErrLengthMismatch with the offending lengths.
func lengthMismatch(first, second int) error {
	return fmt.Errorf("%w (%d != %d)", ErrLengthMismatch, first, second)
}

// AllocationError is the panic value raised when a working buffer cannot be
// allocated. It is never returned as an error.
type AllocationError struct {
	What  string
	Count uint64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("could not allocate %d elements for %s", e.Count, e.What)
}
