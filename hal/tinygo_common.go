//go:build tinygo && rp2040

package hal

import (
	"machine"
	"time"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

type pinLED struct {
	pin machine.Pin
}

func newPinLED(pin machine.Pin) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Low()
	return &pinLED{pin: pin}
}

func (l *pinLED) High() { l.pin.High() }
func (l *pinLED) Low()  { l.pin.Low() }

type mcuWatchdog struct{}

func (mcuWatchdog) Start(timeout time.Duration) error {
	ms, err := WatchdogMillis(timeout)
	if err != nil {
		return err
	}
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: ms}); err != nil {
		return err
	}
	return machine.Watchdog.Start()
}

func (mcuWatchdog) Feed() { machine.Watchdog.Update() }
