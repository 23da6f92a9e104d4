package library

import (
	"sync/atomic"
)

// ChangeCounter is a process-wide monotonic counter of external library
// change notifications. The host's library-change callback bumps it exactly
// once per notification, and every album projector reads it to decide
// whether its cached listing is stale. Reads may observe a slightly old
// value; that only delays a refresh by one listing.
//
// The counter starts at zero and is never reset.
type ChangeCounter struct {
	n int64
}

// Bump records one external change notification.
func (c *ChangeCounter) Bump() {
	atomic.AddInt64(&c.n, 1)
}

// Value returns the current count.
func (c *ChangeCounter) Value() int64 {
	return atomic.LoadInt64(&c.n)
}
