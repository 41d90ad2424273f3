package kernel

import "sync/atomic"

// Waker marks one scheduler slot as eligible to run again.
//
// It is safe to call Wake from interrupt handlers and from other tasks.
// A Waker is a plain value: copying it is cloning it, and discarding it has
// no effect. The zero Waker is inert.
type Waker struct {
	ready *atomic.Bool
}

func newWaker(ready *atomic.Bool) Waker {
	return Waker{ready: ready}
}

// Wake sets the bound slot's ready flag.
func (w Waker) Wake() {
	if w.ready == nil {
		return
	}
	w.ready.Store(true)
}

// Clone returns a Waker bound to the same slot.
func (w Waker) Clone() Waker { return w }

// Valid reports whether w is bound to a slot.
func (w Waker) Valid() bool { return w.ready != nil }
