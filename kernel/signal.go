package kernel

// Signal is a single-waiter event flag for tasks that wake each other.
//
// Raise may be called from any context. At most one Wait future may be
// registered at a time; a second concurrent waiter is a programming error.
type Signal struct {
	raised bool
	waiter Waker
}

// Raise sets the flag and wakes the registered waiter, if any.
func (s *Signal) Raise() {
	state := DisableInterrupts()
	s.raised = true
	w := s.waiter
	s.waiter = Waker{}
	w.Wake()
	RestoreInterrupts(state)
}

// Wait returns a future that completes once the signal is raised.
// Completing consumes the raise.
func (s *Signal) Wait() SignalWait {
	return SignalWait{sig: s}
}

// SignalWait is the future returned by Signal.Wait.
type SignalWait struct {
	sig *Signal
	w   Waker
}

func (sw *SignalWait) Poll(w Waker) Poll {
	s := sw.sig
	state := DisableInterrupts()
	if s.raised {
		s.raised = false
		if s.waiter.Valid() && s.waiter == sw.w {
			s.waiter = Waker{}
		}
		sw.w = Waker{}
		RestoreInterrupts(state)
		return Ready
	}
	if s.waiter.Valid() && s.waiter != sw.w {
		RestoreInterrupts(state)
		panic("kernel: signal already has a waiter")
	}
	s.waiter = w
	sw.w = w
	RestoreInterrupts(state)
	return Pending
}

// Drop releases the waiter registration if this future still owns it.
func (sw *SignalWait) Drop() {
	if sw.sig == nil || !sw.w.Valid() {
		return
	}
	state := DisableInterrupts()
	if sw.sig.waiter == sw.w {
		sw.sig.waiter = Waker{}
	}
	RestoreInterrupts(state)
	sw.w = Waker{}
}
