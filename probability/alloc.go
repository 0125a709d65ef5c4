// probability/alloc.go
package probability

import (
	"math"
	"unsafe"
)

// maxAllocBytes caps a single working buffer. Anything larger is treated the
// same way the runtime treats exhaustion: the process stops with a diagnostic.
const maxAllocBytes = math.MaxInt / 2

// allocate returns a zeroed slice of n elements or panics with an
// *AllocationError. There is no recoverable path.
func allocate[T any](n uint64, what string) []T {
	var zero T
	size := uint64(unsafe.Sizeof(zero))
	if size == 0 {
		size = 1
	}
	if n > uint64(maxAllocBytes)/size {
		panic(&AllocationError{What: what, Count: n})
	}
	return make([]T, n)
}
