package kernel

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingPin struct {
	high  bool
	highs int
	lows  int
}

func (p *countingPin) High() { p.high = true; p.highs++ }
func (p *countingPin) Low()  { p.high = false; p.lows++ }

// pendingFuture records every poll and keeps the last waker it saw.
type pendingFuture struct {
	id    int
	log   *[]int
	polls int
	waker Waker
	done  bool
}

func (f *pendingFuture) Poll(w Waker) Poll {
	f.polls++
	f.waker = w
	if f.log != nil {
		*f.log = append(*f.log, f.id)
	}
	if f.done {
		return Ready
	}
	return Pending
}

type dropFuture struct {
	dropped int
}

func (f *dropFuture) Poll(Waker) Poll { return Pending }
func (f *dropFuture) Drop()           { f.dropped++ }

func drain(e *Executor) int {
	n := 0
	for e.Step() {
		n++
	}
	return n
}

func TestSubmitExhaustsCapacity(t *testing.T) {
	e := New(nil)
	futs := make([]*pendingFuture, MaxTasks)
	for i := range futs {
		futs[i] = &pendingFuture{id: i}
		if err := e.Submit(NewTask("t", futs[i])); err != nil {
			t.Fatalf("Submit(%d): %v", i, err)
		}
	}

	err := e.Submit(NewTask("extra", &pendingFuture{}))
	if !errors.Is(err, ErrSpaceExhausted) {
		t.Fatalf("Submit() err = %v, want ErrSpaceExhausted", err)
	}
	if got := e.Len(); got != MaxTasks {
		t.Fatalf("Len() = %d, want %d", got, MaxTasks)
	}

	if n := drain(e); n != MaxTasks {
		t.Fatalf("polled %d tasks, want %d", n, MaxTasks)
	}
	for i, f := range futs {
		if f.polls != 1 {
			t.Fatalf("task %d polled %d times, want 1", i, f.polls)
		}
	}
}

func TestSubmitRejectsEmptyTask(t *testing.T) {
	e := New(nil)
	if err := e.Submit(Task{}); !errors.Is(err, ErrInvalidTask) {
		t.Fatalf("Submit() err = %v, want ErrInvalidTask", err)
	}
	if e.Watermark() != 0 {
		t.Fatalf("Watermark() = %d, want 0", e.Watermark())
	}
}

func TestStepScansInAscendingOrder(t *testing.T) {
	e := New(nil)
	var log []int
	for i := 0; i < 3; i++ {
		if err := e.Submit(NewTask("t", &pendingFuture{id: i, log: &log})); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	drain(e)

	want := []int{0, 1, 2}
	if len(log) != len(want) {
		t.Fatalf("poll order = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("poll order = %v, want %v", log, want)
		}
	}
}

func TestCompletedTaskSlotIsReused(t *testing.T) {
	e := New(nil)
	first := &pendingFuture{done: true}
	id, err := e.Spawn(NewTask("once", first))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}

	if !e.Step() {
		t.Fatal("Step() = false, want true")
	}
	if e.Len() != 0 {
		t.Fatalf("Len() = %d after completion, want 0", e.Len())
	}
	if e.Step() {
		t.Fatal("Step() polled a cleared slot")
	}

	second := &pendingFuture{}
	id2, err := e.Spawn(NewTask("again", second))
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	if id2 != id {
		t.Fatalf("Spawn() slot = %d, want reused slot %d", id2, id)
	}
	if e.Watermark() != 1 {
		t.Fatalf("Watermark() = %d, want 1", e.Watermark())
	}
	if !e.Step() || second.polls != 1 {
		t.Fatalf("reused slot not polled: polls = %d", second.polls)
	}
	if first.polls != 1 {
		t.Fatalf("completed task polled %d times, want 1", first.polls)
	}
}

func TestWakeMakesSlotEligibleOnNextScan(t *testing.T) {
	e := New(nil)
	a := &pendingFuture{id: 0}
	b := &pendingFuture{id: 1}
	_ = e.Submit(NewTask("a", a))
	_ = e.Submit(NewTask("b", b))

	drain(e)
	if e.Step() {
		t.Fatal("Step() = true with no ready tasks")
	}

	b.waker.Wake()
	if !e.Step() {
		t.Fatal("Step() = false after Wake")
	}
	if b.polls != 2 || a.polls != 1 {
		t.Fatalf("polls a=%d b=%d, want a=1 b=2", a.polls, b.polls)
	}

	// Clones share the binding.
	a.waker.Clone().Wake()
	if !e.Step() || a.polls != 2 {
		t.Fatalf("clone wake did not reschedule: polls = %d", a.polls)
	}
}

func TestWakeWhilePollingReschedules(t *testing.T) {
	e := New(nil)
	polls := 0
	self := FutureFunc(func(w Waker) Poll {
		polls++
		if polls < 3 {
			w.Wake()
		}
		return Pending
	})
	_ = e.Submit(NewTask("self", self))

	if n := drain(e); n != 3 {
		t.Fatalf("polled %d times, want 3", n)
	}
}

func TestBusyIndicatorWrapsEachPoll(t *testing.T) {
	pin := &countingPin{}
	e := New(pin)
	seen := false
	_ = e.Submit(NewTask("probe", FutureFunc(func(Waker) Poll {
		seen = pin.high
		return Ready
	})))

	e.Step()
	if !seen {
		t.Fatal("busy indicator low during poll")
	}
	if pin.high || pin.highs != 1 || pin.lows != 1 {
		t.Fatalf("busy indicator highs=%d lows=%d high=%v", pin.highs, pin.lows, pin.high)
	}
}

func TestCancelDropsFuture(t *testing.T) {
	e := New(nil)
	f := &dropFuture{}
	id, _ := e.Spawn(NewTask("cancel", f))

	if !e.Cancel(id) {
		t.Fatal("Cancel() = false, want true")
	}
	if f.dropped != 1 {
		t.Fatalf("dropped = %d, want 1", f.dropped)
	}
	if e.Cancel(id) {
		t.Fatal("Cancel() of empty slot = true")
	}
	// The ready flag may still be set; an empty slot must not be polled.
	if e.Step() {
		t.Fatal("Step() polled a cancelled slot")
	}
}

func TestCompletionDropsFuture(t *testing.T) {
	e := New(nil)
	f := &readyDropFuture{}
	_ = e.Submit(NewTask("done", f))
	e.Step()
	if f.dropped != 1 {
		t.Fatalf("dropped = %d, want 1", f.dropped)
	}
}

type readyDropFuture struct{ dropped int }

func (f *readyDropFuture) Poll(Waker) Poll { return Ready }
func (f *readyDropFuture) Drop()           { f.dropped++ }

func TestRunContextStops(t *testing.T) {
	e := New(nil)
	e.SetIdle(func() { time.Sleep(time.Millisecond) })
	_ = e.Submit(NewTask("idle", &pendingFuture{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := e.RunContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RunContext() err = %v, want DeadlineExceeded", err)
	}
}

func TestPanickingTaskInvokesHandler(t *testing.T) {
	defer resetPanicState()

	var got PanicInfo
	calls := 0
	SetPanicHandler(func(info PanicInfo) {
		calls++
		got = info
	})

	e := New(nil)
	_ = e.Submit(NewTask("ok", &pendingFuture{}))
	_ = e.Submit(NewTask("boom", FutureFunc(func(Waker) Poll { panic("boom") })))

	e.Step()
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v, want boom", r)
			}
		}()
		e.Step()
	}()

	if calls != 1 {
		t.Fatalf("handler calls = %d, want 1", calls)
	}
	if got.TaskID != 1 || got.Task != "boom" || got.Value != "boom" {
		t.Fatalf("PanicInfo = %+v", got)
	}
	if len(got.Stack) == 0 {
		t.Fatal("expected stack")
	}
	if !InPanicMode() {
		t.Fatal("InPanicMode() = false")
	}
}

func resetPanicState() {
	panicActive.Store(false)
	SetPanicHandler(nil)
}
