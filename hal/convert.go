package hal

import (
	"fmt"
	"time"

	"fortio.org/safecast"
)

// FromMillimeters converts a sensor echo distance. A non-positive reading
// means no echo came back.
func FromMillimeters(mm int32) (Centimeters, error) {
	if mm <= 0 {
		return 0, ErrNoPulse
	}
	cm, err := safecast.Conv[Centimeters](mm / 10)
	if err != nil || cm >= MaxRange {
		return 0, ErrDistanceOverflow
	}
	return cm, nil
}

// WatchdogMillis converts a watchdog timeout to the millisecond count the
// hardware takes.
func WatchdogMillis(timeout time.Duration) (uint32, error) {
	ms := timeout.Milliseconds()
	if ms <= 0 {
		return 0, fmt.Errorf("watchdog: invalid timeout %s", timeout)
	}
	v, err := safecast.Conv[uint32](ms)
	if err != nil {
		return 0, fmt.Errorf("watchdog: timeout %s: %w", timeout, err)
	}
	return v, nil
}
