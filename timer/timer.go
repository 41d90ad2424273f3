// Package timer turns a periodic compare-match interrupt into a wrapping tick
// counter and lets one task at a time sleep on it.
package timer

import (
	"fmt"
	"math"

	"rover/kernel"
)

// MaxGranularityUS is the longest supported tick period. Anything larger
// would not fit the compare range once scaled.
const MaxGranularityUS = math.MaxUint8 / 2

// Hardware is a timer able to raise a periodic compare-match interrupt.
type Hardware interface {
	// CountsPerMicrosecond is the timer's count rate after prescaling.
	CountsPerMicrosecond() uint32
	// CompareMax is the largest value the compare register holds.
	CompareMax() uint32
	// Start arms the timer to call isr every compare counts.
	Start(compare uint32, isr func())
}

// Source is the state shared between a tick interrupt and its sleepers.
// Every field is only touched with interrupts masked.
type Source struct {
	ticks uint32

	waker kernel.Waker
	owner uint32
	next  uint32
}

// Tick identifies a rigged tick domain. Delays built from a Tick can only
// sleep on that domain.
type Tick struct {
	src *Source
}

// Rig starts hw firing every granularityUS microseconds and returns the
// tick domain. It panics on a granularity that cannot be represented.
func Rig(hw Hardware, granularityUS uint8) Tick {
	if granularityUS == 0 {
		panic("timer: zero tick granularity")
	}
	if granularityUS > MaxGranularityUS {
		panic(fmt.Sprintf("timer: granularity %dus exceeds %dus", granularityUS, MaxGranularityUS))
	}
	compare := uint32(granularityUS) * hw.CountsPerMicrosecond()
	if compare == 0 || compare > hw.CompareMax() {
		panic(fmt.Sprintf("timer: compare value %d outside timer range %d", compare, hw.CompareMax()))
	}

	src := &Source{}
	hw.Start(compare, src.Interrupt)
	return Tick{src: src}
}

// Interrupt advances the counter by one and wakes the registered sleeper.
// It is installed as the timer's interrupt handler by Rig.
func (s *Source) Interrupt() {
	state := kernel.DisableInterrupts()
	s.ticks++
	if s.owner != 0 {
		w := s.waker
		s.waker = kernel.Waker{}
		s.owner = 0
		w.Wake()
	}
	kernel.RestoreInterrupts(state)
}

// register must be called with interrupts masked and no registration live.
func (s *Source) register(w kernel.Waker) uint32 {
	s.next++
	if s.next == 0 {
		s.next = 1
	}
	s.owner = s.next
	s.waker = w
	return s.owner
}

// release must be called with interrupts masked.
func (s *Source) release(token uint32) {
	if token != 0 && s.owner == token {
		s.owner = 0
		s.waker = kernel.Waker{}
	}
}

// Now returns the current tick count.
func (t Tick) Now() uint32 {
	if t.src == nil {
		return 0
	}
	state := kernel.DisableInterrupts()
	n := t.src.ticks
	kernel.RestoreInterrupts(state)
	return n
}

// Valid reports whether t came from Rig.
func (t Tick) Valid() bool { return t.src != nil }

// Elapsed returns now-start in wrapping tick arithmetic.
func Elapsed(start, now uint32) uint32 {
	return now - start
}
