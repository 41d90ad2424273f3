package timer

import (
	"math"
	"strings"
	"testing"

	"rover/kernel"
)

type fakeHardware struct {
	countsPerUS uint32
	compareMax  uint32

	compare uint32
	isr     func()
}

func newFakeHardware() *fakeHardware {
	return &fakeHardware{countsPerUS: 2, compareMax: math.MaxUint8}
}

func (h *fakeHardware) CountsPerMicrosecond() uint32 { return h.countsPerUS }
func (h *fakeHardware) CompareMax() uint32           { return h.compareMax }

func (h *fakeHardware) Start(compare uint32, isr func()) {
	h.compare = compare
	h.isr = isr
}

func (h *fakeHardware) fire(n int) {
	for i := 0; i < n; i++ {
		h.isr()
	}
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, substr) {
			t.Fatalf("panic = %v, want substring %q", r, substr)
		}
	}()
	fn()
}

func TestRigProgramsCompare(t *testing.T) {
	hw := newFakeHardware()
	tick := Rig(hw, 50)
	if !tick.Valid() {
		t.Fatal("Rig() returned invalid tick")
	}
	if hw.compare != 100 {
		t.Fatalf("compare = %d, want 100", hw.compare)
	}
	if hw.isr == nil {
		t.Fatal("interrupt handler not installed")
	}
}

func TestRigRejectsGranularity(t *testing.T) {
	expectPanic(t, "exceeds", func() { Rig(newFakeHardware(), MaxGranularityUS+1) })
	expectPanic(t, "zero", func() { Rig(newFakeHardware(), 0) })

	narrow := newFakeHardware()
	narrow.countsPerUS = 4
	expectPanic(t, "outside timer range", func() { Rig(narrow, 100) })

	// The limit itself is accepted.
	Rig(newFakeHardware(), MaxGranularityUS)
}

func TestInterruptAdvancesCounter(t *testing.T) {
	hw := newFakeHardware()
	tick := Rig(hw, 10)

	hw.fire(5)
	if got := tick.Now(); got != 5 {
		t.Fatalf("Now() = %d, want 5", got)
	}
}

func TestCounterWraps(t *testing.T) {
	hw := newFakeHardware()
	tick := Rig(hw, 10)
	tick.src.ticks = math.MaxUint32 - 1

	hw.fire(3)
	if got := tick.Now(); got != 1 {
		t.Fatalf("Now() = %d, want 1", got)
	}
}

func TestElapsedAcrossWrap(t *testing.T) {
	if got := Elapsed(math.MaxUint32-2, 4); got != 7 {
		t.Fatalf("Elapsed() = %d, want 7", got)
	}
	if got := Elapsed(10, 10); got != 0 {
		t.Fatalf("Elapsed() = %d, want 0", got)
	}
}

func TestInterruptWakesOnce(t *testing.T) {
	hw := newFakeHardware()
	tick := Rig(hw, 10)
	e := kernel.New(nil)

	polls := 0
	sleep := Sleep(NewDelay(tick, 100))
	_ = e.Submit(kernel.NewTask("sleep", kernel.FutureFunc(func(w kernel.Waker) kernel.Poll {
		polls++
		if polls == 1 {
			return sleep.Poll(w)
		}
		// Deliberately do not re-register.
		return kernel.Pending
	})))

	for e.Step() {
	}
	if polls != 1 {
		t.Fatalf("polls = %d, want 1", polls)
	}

	hw.fire(1)
	for e.Step() {
	}
	if polls != 2 {
		t.Fatalf("polls = %d after first interrupt, want 2", polls)
	}

	hw.fire(3)
	for e.Step() {
	}
	if polls != 2 {
		t.Fatalf("polls = %d, registration was not consumed", polls)
	}
	if tick.src.owner != 0 {
		t.Fatal("registration still live after wake")
	}
}
