//go:build tinygo && rp2040

package hal

import "machine"

// Pin map (Raspberry Pi Pico).
const (
	pinBusy      = machine.GP15
	pinGreen     = machine.GP16
	pinRed       = machine.GP17
	pinTrigger   = machine.GP2
	pinEcho      = machine.GP3
	pinWheelIn1  = machine.GP6
	pinWheelIn2  = machine.GP7
	pinWheelEn   = machine.GP8
	uartBaudRate = 115200
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	busy   *pinLED
	green  *pwmOut
	red    *pwmOut
	ranger *sonicRanger
	wheels *bridgeWheels
}

// New returns the Pico vehicle HAL.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: uartBaudRate,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	return &tinyGoHAL{
		logger: &uartLogger{uart: uart},
		led:    newPinLED(machine.LED),
		busy:   newPinLED(pinBusy),
		green:  newPWMOut(pinGreen),
		red:    newPWMOut(pinRed),
		ranger: newSonicRanger(pinTrigger, pinEcho),
		wheels: newBridgeWheels(pinWheelIn1, pinWheelIn2, pinWheelEn),
	}
}

func (h *tinyGoHAL) Logger() Logger      { return h.logger }
func (h *tinyGoHAL) LED() LED            { return h.led }
func (h *tinyGoHAL) Busy() LED           { return h.busy }
func (h *tinyGoHAL) Green() Dimmer       { return h.green }
func (h *tinyGoHAL) Red() Dimmer         { return h.red }
func (h *tinyGoHAL) Timer() CompareTimer { return &tickTimer }
func (h *tinyGoHAL) Ranger() Ranger      { return h.ranger }
func (h *tinyGoHAL) Wheels() Wheels      { return h.wheels }
func (h *tinyGoHAL) Watchdog() Watchdog  { return mcuWatchdog{} }
