//go:build tinygo && rp2040

package hal

import "machine"

// PWM carrier for LEDs and the motor enable line.
const pwmCarrierHz = 20000

type pwmDevice interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

func pwmForPin(pin machine.Pin) pwmDevice {
	slice, err := machine.PWMPeripheral(pin)
	if err != nil {
		return nil
	}
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return nil
	}
}

// pwmOut drives one PWM channel with an 8-bit duty.
type pwmOut struct {
	pwm pwmDevice
	ch  uint8
	top uint32

	duty    uint8
	enabled bool
}

func newPWMOut(pin machine.Pin) *pwmOut {
	pwm := pwmForPin(pin)
	if pwm == nil {
		return nil
	}
	if err := pwm.Configure(machine.PWMConfig{Period: 1e9 / pwmCarrierHz}); err != nil {
		return nil
	}
	ch, err := pwm.Channel(pin)
	if err != nil {
		return nil
	}
	o := &pwmOut{pwm: pwm, ch: ch, top: pwm.Top()}
	o.pwm.Set(o.ch, 0)
	return o
}

func (o *pwmOut) apply() {
	if o == nil {
		return
	}
	if !o.enabled {
		o.pwm.Set(o.ch, 0)
		return
	}
	o.pwm.Set(o.ch, uint32(o.duty)*o.top/255)
}

func (o *pwmOut) Enable() {
	if o == nil {
		return
	}
	o.enabled = true
	o.apply()
}

func (o *pwmOut) Disable() {
	if o == nil {
		return
	}
	o.enabled = false
	o.apply()
}

func (o *pwmOut) SetDuty(duty uint8) {
	if o == nil {
		return
	}
	o.duty = duty
	o.apply()
}

// bridgeWheels is an L298N-style bridge: in1/in2 pick the direction, the
// enable line carries the speed.
type bridgeWheels struct {
	in1 machine.Pin
	in2 machine.Pin
	en  *pwmOut
}

func newBridgeWheels(in1, in2, en machine.Pin) *bridgeWheels {
	in1.Configure(machine.PinConfig{Mode: machine.PinOutput})
	in2.Configure(machine.PinConfig{Mode: machine.PinOutput})
	w := &bridgeWheels{in1: in1, in2: in2, en: newPWMOut(en)}
	w.en.Enable()
	w.Halt()
	return w
}

func (w *bridgeWheels) Halt() {
	w.in1.Low()
	w.in2.Low()
}

// Forward assumes in1 is wired to the motors' positive terminal.
func (w *bridgeWheels) Forward() {
	w.in1.High()
	w.in2.Low()
}

func (w *bridgeWheels) Reverse() {
	w.in1.Low()
	w.in2.High()
}

func (w *bridgeWheels) SetDuty(duty uint8) { w.en.SetDuty(duty) }
