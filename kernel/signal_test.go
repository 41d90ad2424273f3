package kernel

import "testing"

func TestSignalWakesWaiter(t *testing.T) {
	e := New(nil)
	var sig Signal
	wait := sig.Wait()
	done := false
	_ = e.Submit(NewTask("waiter", FutureFunc(func(w Waker) Poll {
		if wait.Poll(w) == Ready {
			done = true
			return Ready
		}
		return Pending
	})))

	drain(e)
	if done {
		t.Fatal("waiter completed before Raise")
	}

	sig.Raise()
	drain(e)
	if !done {
		t.Fatal("waiter did not complete after Raise")
	}
	if sig.raised {
		t.Fatal("raise was not consumed")
	}
}

func TestSignalRaiseBeforeWait(t *testing.T) {
	var sig Signal
	sig.Raise()
	wait := sig.Wait()
	if got := wait.Poll(Waker{}); got != Ready {
		t.Fatalf("Poll() = %s, want ready", got)
	}
}

func TestSignalSecondWaiterPanics(t *testing.T) {
	var sig Signal
	var a, b slot
	first := sig.Wait()
	second := sig.Wait()
	first.Poll(newWaker(&a.ready))

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for second waiter")
		}
	}()
	second.Poll(newWaker(&b.ready))
}

func TestSignalDropReleasesWaiter(t *testing.T) {
	var sig Signal
	var a, b slot
	first := sig.Wait()
	first.Poll(newWaker(&a.ready))
	first.Drop()

	second := sig.Wait()
	if got := second.Poll(newWaker(&b.ready)); got != Pending {
		t.Fatalf("Poll() = %s, want pending", got)
	}
	sig.Raise()
	if !b.ready.Load() {
		t.Fatal("second waiter not woken")
	}
	if a.ready.Load() {
		t.Fatal("dropped waiter woken")
	}
}

func TestZeroWakerIsInert(t *testing.T) {
	var w Waker
	if w.Valid() {
		t.Fatal("zero Waker is valid")
	}
	w.Wake()
	w.Clone().Wake()
}
