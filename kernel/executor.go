package kernel

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
)

// MaxTasks is the capacity of the task arena.
const MaxTasks = 8

// TaskID is the index of a slot in the task arena.
type TaskID uint8

var (
	// ErrSpaceExhausted is returned by Submit when every slot is occupied.
	ErrSpaceExhausted = errors.New("kernel: task arena exhausted")
	// ErrInvalidTask is returned by Submit for a task without a future.
	ErrInvalidTask = errors.New("kernel: task has no future")
)

// Indicator is a binary output raised while a task is being polled.
type Indicator interface {
	High()
	Low()
}

type slot struct {
	task  Task
	ready atomic.Bool
}

// Executor is a fixed-capacity cooperative scheduler.
//
// Slots below the watermark have been initialized at least once; only those
// are scanned or reused. A slot that is ready but empty was vacated and is
// ignored until a new task lands in it.
type Executor struct {
	busy Indicator
	idle func()

	slots [MaxTasks]slot
	limit int
}

// New creates an executor with an empty arena. busy may be nil.
func New(busy Indicator) *Executor {
	return &Executor{busy: busy, idle: runtime.Gosched}
}

// SetIdle replaces the hook run when a scan finds nothing ready.
func (e *Executor) SetIdle(fn func()) {
	if fn == nil {
		fn = func() {}
	}
	e.idle = fn
}

// Submit installs t in the first free slot and marks it ready.
func (e *Executor) Submit(t Task) error {
	_, err := e.Spawn(t)
	return err
}

// Spawn is Submit that also reports the slot the task landed in.
func (e *Executor) Spawn(t Task) (TaskID, error) {
	if !t.present() {
		return 0, ErrInvalidTask
	}
	for i := 0; i < e.limit; i++ {
		s := &e.slots[i]
		if s.task.present() {
			continue
		}
		s.task = t
		s.ready.Store(true)
		return TaskID(i), nil
	}
	if e.limit < MaxTasks {
		id := e.limit
		s := &e.slots[id]
		s.task = t
		s.ready.Store(true)
		e.limit++
		return TaskID(id), nil
	}
	return 0, ErrSpaceExhausted
}

// Cancel removes the task in slot id without completing it.
func (e *Executor) Cancel(id TaskID) bool {
	if int(id) >= e.limit {
		return false
	}
	s := &e.slots[id]
	if !s.task.present() {
		return false
	}
	t := s.task
	s.task = Task{}
	Drop(t.fut)
	return true
}

// Len returns the number of occupied slots.
func (e *Executor) Len() int {
	n := 0
	for i := 0; i < e.limit; i++ {
		if e.slots[i].task.present() {
			n++
		}
	}
	return n
}

// Watermark returns how many slots have ever been initialized.
func (e *Executor) Watermark() int { return e.limit }

// Step polls at most one ready task and reports whether it did.
func (e *Executor) Step() bool {
	id, ok := e.next()
	if !ok {
		return false
	}
	e.poll(id)
	return true
}

// Run drives tasks forever.
func (e *Executor) Run() {
	for {
		if !e.Step() {
			e.idle()
		}
	}
}

// RunContext drives tasks until ctx is done.
func (e *Executor) RunContext(ctx context.Context) error {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		if !e.Step() {
			e.idle()
		}
	}
}

// next finds the lowest ready slot and clears its flag inside one critical
// section, so a wake landing between the load and the store is not lost.
func (e *Executor) next() (TaskID, bool) {
	state := DisableInterrupts()
	defer RestoreInterrupts(state)

	for i := 0; i < e.limit; i++ {
		s := &e.slots[i]
		if s.ready.Load() && s.task.present() {
			s.ready.Store(false)
			return TaskID(i), true
		}
	}
	return 0, false
}

func (e *Executor) poll(id TaskID) {
	s := &e.slots[id]
	if e.busy != nil {
		e.busy.High()
	}

	if e.resume(id, s) == Ready {
		t := s.task
		s.task = Task{}
		Drop(t.fut)
	}

	if e.busy != nil {
		e.busy.Low()
	}
}

func (e *Executor) resume(id TaskID, s *slot) Poll {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: id, Task: s.task.name, Value: r})
			panic(r)
		}
	}()
	return s.task.fut.Poll(newWaker(&s.ready))
}
