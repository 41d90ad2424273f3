package app

import "rover/hal"

const (
	// Distances are shown in ten 2cm buckets out to 20cm; further is "far".
	statusRangeCM  = 20
	statusBuckets  = 10
	statusDutyStep = 25
	bucketWidthCM  = statusRangeCM / statusBuckets

	maxErrorCount = 4
	errorDutyStep = 63
)

// Status tracks what the two indicator LEDs show: proximity on green,
// consecutive ranging errors on red.
type Status struct {
	bucket uint8
	errs   uint8
}

// Observe folds one sample in. An error keeps the last proximity bucket.
func (s *Status) Observe(cm hal.Centimeters, err error) {
	if err != nil {
		if s.errs < maxErrorCount {
			s.errs++
		}
		return
	}
	s.errs = 0
	if cm > statusRangeCM {
		cm = statusRangeCM
	}
	s.bucket = statusBuckets - uint8(cm/bucketWidthCM)
}

// GreenDuty is zero when nothing is within range.
func (s Status) GreenDuty() uint8 { return s.bucket * statusDutyStep }

// RedDuty is zero when the last sample succeeded.
func (s Status) RedDuty() uint8 { return s.errs * errorDutyStep }

// Show drives the indicators.
func (s Status) Show(green, red hal.Dimmer) {
	show(green, s.GreenDuty())
	show(red, s.RedDuty())
}

func show(d hal.Dimmer, duty uint8) {
	if d == nil {
		return
	}
	if duty == 0 {
		d.Disable()
		return
	}
	d.Enable()
	d.SetDuty(duty)
}
