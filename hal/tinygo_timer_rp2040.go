//go:build tinygo && rp2040

package hal

import (
	"device/rp"
	"math"
	"runtime/interrupt"
)

// The runtime keeps alarm 0 for its own sleeps; ticks use alarm 1.
const tickAlarm = 1

// alarmTimer drives the RP2040 1MHz system timer's alarm 1 as a periodic
// compare interrupt.
type alarmTimer struct {
	compare uint32
	next    uint32
	isr     func()
}

var tickTimer alarmTimer

func (t *alarmTimer) CountsPerMicrosecond() uint32 { return 1 }
func (t *alarmTimer) CompareMax() uint32           { return math.MaxUint32 }

func (t *alarmTimer) Start(compare uint32, isr func()) {
	t.compare = compare
	t.isr = isr

	intr := interrupt.New(rp.IRQ_TIMER_IRQ_1, handleTickAlarm)
	rp.TIMER.INTE.SetBits(1 << tickAlarm)
	t.next = rp.TIMER.TIMERAWL.Get() + compare
	rp.TIMER.ALARM1.Set(t.next)
	intr.Enable()
}

func handleTickAlarm(interrupt.Interrupt) {
	rp.TIMER.INTR.Set(1 << tickAlarm)
	tickTimer.next += tickTimer.compare
	rp.TIMER.ALARM1.Set(tickTimer.next)
	if tickTimer.isr != nil {
		tickTimer.isr()
	}
}
