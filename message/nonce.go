package message

import (
	"sync/atomic"
	"time"
)

// NonceSource hands out strictly increasing nonces derived from wall-clock
// nanoseconds. Concurrent callers never receive the same value, even when
// the clock does not advance between calls.
type NonceSource struct {
	last atomic.Uint64
	now  func() time.Time
}

func NewNonceSource() *NonceSource {
	return &NonceSource{now: time.Now}
}

// NewNonceSourceWithClock is NewNonceSource with an injected clock.
func NewNonceSourceWithClock(now func() time.Time) *NonceSource {
	return &NonceSource{now: now}
}

// Next returns a nonce greater than every nonce previously returned.
func (n *NonceSource) Next() uint64 {
	for {
		prev := n.last.Load()
		next := uint64(n.now().UnixNano())
		if next <= prev {
			next = prev + 1
		}
		if n.last.CompareAndSwap(prev, next) {
			return next
		}
	}
}
