package app

import "rover/hal"

// Motion is the wheel direction.
type Motion uint8

const (
	Halt Motion = iota
	Forward
	Reverse
)

func (m Motion) String() string {
	switch m {
	case Halt:
		return "halt"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// Decision is what the wheels should do next.
type Decision struct {
	Motion Motion
	Duty   uint8
}

// Policy turns a distance sample into a throttle decision.
//
// Too close: back off. Closing in: slow down proportionally. Otherwise
// cruise. Any ranging error halts the vehicle.
type Policy struct {
	StopCM       hal.Centimeters
	SlowCM       hal.Centimeters
	CruiseDuty   uint8
	ReverseDuty  uint8
	MinDriveDuty uint8
}

func NewPolicy(cfg Config) Policy {
	return Policy{
		StopCM:       cfg.StopCM,
		SlowCM:       cfg.SlowCM,
		CruiseDuty:   cfg.CruiseDuty,
		ReverseDuty:  cfg.ReverseDuty,
		MinDriveDuty: cfg.MinDriveDuty,
	}
}

func (p Policy) Decide(cm hal.Centimeters, err error) Decision {
	switch {
	case err != nil:
		return Decision{Motion: Halt}
	case cm < p.StopCM:
		return Decision{Motion: Reverse, Duty: p.drivable(p.ReverseDuty)}
	case cm < p.SlowCM:
		return Decision{Motion: Forward, Duty: p.drivable(p.slowDuty(cm))}
	default:
		return Decision{Motion: Forward, Duty: p.drivable(p.CruiseDuty)}
	}
}

// slowDuty interpolates from MinDriveDuty at StopCM to CruiseDuty at SlowCM.
func (p Policy) slowDuty(cm hal.Centimeters) uint8 {
	if p.SlowCM <= p.StopCM || p.CruiseDuty <= p.MinDriveDuty {
		return p.CruiseDuty
	}
	span := uint32(p.SlowCM - p.StopCM)
	into := uint32(cm - p.StopCM)
	rng := uint32(p.CruiseDuty - p.MinDriveDuty)
	// into < span, so the result stays below CruiseDuty.
	return p.MinDriveDuty + uint8(rng*into/span)
}

// drivable lifts a non-zero duty to the stall threshold.
func (p Policy) drivable(duty uint8) uint8 {
	if duty != 0 && duty < p.MinDriveDuty {
		return p.MinDriveDuty
	}
	return duty
}

// Apply drives w according to d.
func (d Decision) Apply(w hal.Wheels) {
	switch d.Motion {
	case Forward:
		w.SetDuty(d.Duty)
		w.Forward()
	case Reverse:
		w.SetDuty(d.Duty)
		w.Reverse()
	default:
		w.Halt()
		w.SetDuty(0)
	}
}
