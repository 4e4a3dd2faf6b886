package listbridge

import (
	"fmt"
	"sync"
)

// Allocator meters native-side allocations: one unit per list node plus one
// unit per byte of an owned byte-string copy. Reserve is charged before the
// allocation happens; a failed Reserve means nothing was allocated.
type Allocator interface {
	Reserve(n int) error
	Release(n int)
}

// Unlimited returns an allocator that never fails.
func Unlimited() Allocator {
	return unlimited{}
}

type unlimited struct{}

func (unlimited) Reserve(n int) error { return nil }
func (unlimited) Release(n int)       {}

// Quota is an Allocator with a fixed budget of units. Exhaustion surfaces
// upstream as an allocation failure with no partial state left behind.
type Quota struct {
	limit int
	used  int
	mu    sync.Mutex
}

// NewQuota creates an allocator limited to n units.
func NewQuota(n int) *Quota {
	return &Quota{limit: n}
}

func (q *Quota) Reserve(n int) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.used+n > q.limit {
		return fmt.Errorf("allocator quota exceeded: %d + %d > %d", q.used, n, q.limit)
	}
	q.used += n
	return nil
}

func (q *Quota) Release(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.used -= n
	if q.used < 0 {
		q.used = 0
	}
}

// Used reports the currently reserved units.
func (q *Quota) Used() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.used
}
