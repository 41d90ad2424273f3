package kernel

import "sync/atomic"

// PanicInfo contains details about a task that panicked while being polled.
type PanicInfo struct {
	TaskID TaskID
	Task   string
	Value  any
	Stack  []byte
}

var (
	panicActive atomic.Bool

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler is invoked at most once (on the first panic). It must not panic.
// On firmware it is expected not to return.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	if !panicActive.CompareAndSwap(false, true) {
		return
	}
	info.Stack = captureStack()
	if v := panicHandler.Load(); v != nil {
		if fn, ok := v.(func(PanicInfo)); ok && fn != nil {
			fn(info)
		}
	}
}
