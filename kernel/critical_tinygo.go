//go:build tinygo

package kernel

import "runtime/interrupt"

// IRQState is the saved mask state returned by DisableInterrupts.
type IRQState = interrupt.State

// DisableInterrupts masks interrupts and returns the previous mask state.
func DisableInterrupts() IRQState {
	return interrupt.Disable()
}

// RestoreInterrupts restores the mask state saved by DisableInterrupts.
func RestoreInterrupts(state IRQState) {
	interrupt.Restore(state)
}
