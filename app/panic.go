package app

import (
	"fmt"
	"strings"
	"time"

	"rover/hal"
	"rover/kernel"
)

const blinkPeriod = 250 * time.Millisecond

func installPanicHandler(h hal.HAL, blink bool) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		if w := h.Wheels(); w != nil {
			w.Halt()
			w.SetDuty(0)
		}

		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("rover panic: task=%d (%s) panic=%v", info.TaskID, info.Task, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line == "" {
					continue
				}
				l.WriteLineString(line)
			}
		}

		if !blink {
			return
		}
		blinkForever(h.LED())
	})
}

// blinkForever never returns; the watchdog, no longer fed, resets the board.
func blinkForever(led hal.LED) {
	if led == nil {
		select {}
	}
	for {
		led.High()
		time.Sleep(blinkPeriod)
		led.Low()
		time.Sleep(blinkPeriod)
	}
}
