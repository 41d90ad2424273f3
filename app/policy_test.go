package app

import (
	"testing"

	"rover/hal"
)

func TestPolicyDecide(t *testing.T) {
	p := NewPolicy(DefaultConfig())

	tests := []struct {
		name string
		cm   hal.Centimeters
		err  error
		want Decision
	}{
		{name: "error halts", err: hal.ErrNoPulse, want: Decision{Motion: Halt}},
		{name: "overflow halts", err: hal.ErrDistanceOverflow, want: Decision{Motion: Halt}},
		{name: "touching", cm: 0, want: Decision{Motion: Reverse, Duty: 90}},
		{name: "just inside stop", cm: 9, want: Decision{Motion: Reverse, Duty: 90}},
		{name: "at stop", cm: 10, want: Decision{Motion: Forward, Duty: 50}},
		{name: "halfway", cm: 20, want: Decision{Motion: Forward, Duty: 125}},
		{name: "just inside slow", cm: 29, want: Decision{Motion: Forward, Duty: 192}},
		{name: "at slow", cm: 30, want: Decision{Motion: Forward, Duty: 200}},
		{name: "far", cm: 300, want: Decision{Motion: Forward, Duty: 200}},
	}
	for _, tt := range tests {
		if got := p.Decide(tt.cm, tt.err); got != tt.want {
			t.Errorf("%s: Decide(%d, %v) = %+v, want %+v", tt.name, tt.cm, tt.err, got, tt.want)
		}
	}
}

func TestPolicyLiftsStallingDuty(t *testing.T) {
	p := NewPolicy(DefaultConfig())
	p.ReverseDuty = 20
	if got := p.Decide(1, nil); got.Duty != p.MinDriveDuty {
		t.Fatalf("reverse duty = %d, want %d", got.Duty, p.MinDriveDuty)
	}

	p.ReverseDuty = 0
	if got := p.Decide(1, nil); got.Duty != 0 {
		t.Fatalf("zero reverse duty lifted to %d", got.Duty)
	}
}

type recordingWheels struct {
	calls []string
	duty  uint8
}

func (w *recordingWheels) Halt()              { w.calls = append(w.calls, "halt") }
func (w *recordingWheels) Forward()           { w.calls = append(w.calls, "forward") }
func (w *recordingWheels) Reverse()           { w.calls = append(w.calls, "reverse") }
func (w *recordingWheels) SetDuty(duty uint8) { w.duty = duty }

func TestDecisionApply(t *testing.T) {
	w := &recordingWheels{}
	Decision{Motion: Forward, Duty: 120}.Apply(w)
	if w.duty != 120 || w.calls[len(w.calls)-1] != "forward" {
		t.Fatalf("forward: calls=%v duty=%d", w.calls, w.duty)
	}

	Decision{Motion: Reverse, Duty: 90}.Apply(w)
	if w.duty != 90 || w.calls[len(w.calls)-1] != "reverse" {
		t.Fatalf("reverse: calls=%v duty=%d", w.calls, w.duty)
	}

	Decision{Motion: Halt, Duty: 90}.Apply(w)
	if w.duty != 0 || w.calls[len(w.calls)-1] != "halt" {
		t.Fatalf("halt: calls=%v duty=%d", w.calls, w.duty)
	}
}
