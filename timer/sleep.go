package timer

import "rover/kernel"

// Delay is a duration measured in ticks of one domain.
type Delay struct {
	tick  Tick
	count uint32
}

// NewDelay returns a delay of count ticks on tick's domain.
func NewDelay(tick Tick, count uint32) Delay {
	return Delay{tick: tick, count: count}
}

func (d Delay) Ticks() uint32 { return d.count }

// Sleeper is the future returned by Sleep.
//
// Only one Sleeper per tick domain may be registered at a time. A Sleeper
// must be dropped (or complete) before the next one is polled.
type Sleeper struct {
	delay   Delay
	start   uint32
	started bool
	done    bool
	token   uint32
}

// Sleep returns a future that completes once d has elapsed, counted from
// its first poll.
func Sleep(d Delay) Sleeper {
	return Sleeper{delay: d}
}

func (s *Sleeper) Poll(w kernel.Waker) kernel.Poll {
	if s.done {
		return kernel.Ready
	}
	src := s.delay.tick.src
	if src == nil {
		panic("timer: sleep on a tick that was never rigged")
	}

	state := kernel.DisableInterrupts()
	if !s.started {
		if src.owner != 0 {
			kernel.RestoreInterrupts(state)
			panic("timer: another sleeper is already registered")
		}
		s.start = src.ticks
		s.token = src.register(w)
		s.started = true
		kernel.RestoreInterrupts(state)
		return kernel.Pending
	}

	if Elapsed(s.start, src.ticks) >= s.delay.count {
		src.release(s.token)
		s.token = 0
		s.done = true
		kernel.RestoreInterrupts(state)
		return kernel.Ready
	}

	// The interrupt consumes the registration when it wakes us; put it back.
	switch src.owner {
	case s.token:
		src.waker = w
	case 0:
		s.token = src.register(w)
	default:
		kernel.RestoreInterrupts(state)
		panic("timer: another sleeper is already registered")
	}
	kernel.RestoreInterrupts(state)
	return kernel.Pending
}

// Drop releases the registration if this sleeper still holds it.
func (s *Sleeper) Drop() {
	if s.token == 0 || s.delay.tick.src == nil {
		return
	}
	state := kernel.DisableInterrupts()
	s.delay.tick.src.release(s.token)
	kernel.RestoreInterrupts(state)
	s.token = 0
}
