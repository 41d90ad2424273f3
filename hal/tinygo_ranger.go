//go:build tinygo && rp2040

package hal

import (
	"machine"

	"tinygo.org/x/drivers/hcsr04"
)

type sonicRanger struct {
	dev hcsr04.Device
}

func newSonicRanger(trigger, echo machine.Pin) *sonicRanger {
	r := &sonicRanger{dev: hcsr04.New(trigger, echo)}
	r.dev.Configure()
	return r
}

// Range blocks for at most one echo timeout (~24ms).
func (r *sonicRanger) Range() (Centimeters, error) {
	return FromMillimeters(r.dev.ReadDistance())
}
