//go:build !tinygo

package kernel

import "sync"

// irqMask stands in for the interrupt mask on hosts with OS threads.
// Simulated interrupt handlers take it exactly like the scheduler does.
var irqMask sync.Mutex

// IRQState is the saved mask state returned by DisableInterrupts.
type IRQState struct{}

// DisableInterrupts enters a critical section.
//
// Critical sections do not nest on the host; callers must restore before
// entering another one.
func DisableInterrupts() IRQState {
	irqMask.Lock()
	return IRQState{}
}

// RestoreInterrupts leaves the critical section entered by DisableInterrupts.
func RestoreInterrupts(IRQState) {
	irqMask.Unlock()
}
