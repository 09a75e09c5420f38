package kernel

import (
	"errors"
	"math"
	"sync"

	"lavka/internal/pkg/errs"
)

// ErrIDSpaceExhausted is returned once an allocator has handed out math.MaxInt64.
var ErrIDSpaceExhausted = errors.New("id space is exhausted")

// IDAllocator hands out strictly increasing ids for one entity kind.
// The first id is 1 unless the allocator was seeded with NewIDAllocatorFrom.
// An id is never returned twice, even when the caller fails to persist it.
//
// Example:
//
//	couriers := kernel.NewIDAllocator()
//	id, err := couriers.Next()
//	if errors.Is(err, kernel.ErrIDSpaceExhausted) {
//	    // reject the create request
//	}
type IDAllocator struct {
	mu   sync.Mutex
	last int64
}

// NewIDAllocator returns an allocator whose first id is 1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

// NewIDAllocatorFrom returns an allocator whose first id is last+1.
// It is used to continue numbering after the greatest persisted id.
func NewIDAllocatorFrom(last int64) (*IDAllocator, error) {
	if last < 0 {
		return nil, errs.NewValueIsOutOfRangeError("last id", last, int64(0), int64(math.MaxInt64))
	}
	return &IDAllocator{last: last}, nil
}

// Next returns the next id. The lock is held only for the increment.
func (a *IDAllocator) Next() (ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.last == math.MaxInt64 {
		return 0, ErrIDSpaceExhausted
	}
	a.last++

	return ID(a.last), nil
}
