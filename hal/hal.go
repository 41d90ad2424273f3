package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// Dimmer is a PWM-driven indicator LED.
type Dimmer interface {
	Enable()
	Disable()
	SetDuty(duty uint8)
}

// CompareTimer is a hardware timer with a periodic compare-match interrupt.
type CompareTimer interface {
	CountsPerMicrosecond() uint32
	CompareMax() uint32
	// Start calls isr from interrupt context every compare counts.
	Start(compare uint32, isr func())
}

// Centimeters is a measured distance.
type Centimeters uint16

// MaxRange is the furthest distance an HC-SR04 class sensor reports.
const MaxRange Centimeters = 400

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrNoPulse means the echo line never went high.
	ErrNoPulse = errors.New("ranger: no echo pulse")
	// ErrDistanceOverflow means the echo was held high past the sensor range.
	ErrDistanceOverflow = errors.New("ranger: distance overflow")
)

// Ranger takes one ultrasonic distance sample per call.
type Ranger interface {
	Range() (Centimeters, error)
}

// Wheels drives an H-bridge: direction via two inputs, speed via PWM enable.
type Wheels interface {
	Halt()
	Forward()
	Reverse()
	SetDuty(duty uint8)
}

// Watchdog resets the system unless it is fed within its timeout.
type Watchdog interface {
	Start(timeout time.Duration) error
	Feed()
}

// HAL provides the only contact point between the firmware and the vehicle.
type HAL interface {
	Logger() Logger
	// LED is reserved for the panic handler.
	LED() LED
	// Busy is raised while the scheduler polls a task.
	Busy() LED
	Green() Dimmer
	Red() Dimmer
	Timer() CompareTimer
	Ranger() Ranger
	Wheels() Wheels
	Watchdog() Watchdog
}
