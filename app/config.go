package app

import (
	"errors"
	"fmt"
	"time"

	"rover/hal"
	"rover/timer"
)

// ErrInvalidConfig wraps every Config.Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the firmware's tunable behaviour.
type Config struct {
	// GranularityUS is the tick period.
	GranularityUS uint8 `toml:"granularity_us"`
	// SampleTicks is the pause between two ranging samples.
	SampleTicks uint32 `toml:"sample_ticks"`

	StopCM hal.Centimeters `toml:"stop_cm"`
	SlowCM hal.Centimeters `toml:"slow_cm"`

	CruiseDuty  uint8 `toml:"cruise_duty"`
	ReverseDuty uint8 `toml:"reverse_duty"`
	// MinDriveDuty is the lowest duty that actually turns the motors.
	MinDriveDuty uint8 `toml:"min_drive_duty"`

	WatchdogMillis uint32 `toml:"watchdog_ms"`

	// LogSamples logs one line per sample.
	LogSamples bool `toml:"log_samples"`
	// BlinkOnPanic makes the panic handler blink the LED forever instead of
	// returning. Firmware wants this; the host simulator does not.
	BlinkOnPanic bool `toml:"blink_on_panic"`
}

// DefaultConfig samples every 60ms on a 100us tick.
func DefaultConfig() Config {
	return Config{
		GranularityUS:  100,
		SampleTicks:    600,
		StopCM:         10,
		SlowCM:         30,
		CruiseDuty:     200,
		ReverseDuty:    90,
		MinDriveDuty:   50,
		WatchdogMillis: 8000,
		LogSamples:     true,
		BlinkOnPanic:   true,
	}
}

func (c Config) WatchdogTimeout() time.Duration {
	return time.Duration(c.WatchdogMillis) * time.Millisecond
}

// Validate reports the first setting the firmware cannot run with.
func (c Config) Validate() error {
	switch {
	case c.GranularityUS == 0 || c.GranularityUS > timer.MaxGranularityUS:
		return fmt.Errorf("%w: granularity_us %d outside 1..%d", ErrInvalidConfig, c.GranularityUS, timer.MaxGranularityUS)
	case c.SampleTicks == 0:
		return fmt.Errorf("%w: sample_ticks must be positive", ErrInvalidConfig)
	case c.StopCM >= c.SlowCM:
		return fmt.Errorf("%w: stop_cm %d must be below slow_cm %d", ErrInvalidConfig, c.StopCM, c.SlowCM)
	case c.MinDriveDuty > c.CruiseDuty:
		return fmt.Errorf("%w: min_drive_duty %d above cruise_duty %d", ErrInvalidConfig, c.MinDriveDuty, c.CruiseDuty)
	case c.WatchdogMillis == 0:
		return fmt.Errorf("%w: watchdog_ms must be positive", ErrInvalidConfig)
	}
	sampleUS := uint64(c.SampleTicks) * uint64(c.GranularityUS)
	if sampleUS >= uint64(c.WatchdogMillis)*1000 {
		return fmt.Errorf("%w: sampling every %dus starves a %dms watchdog", ErrInvalidConfig, sampleUS, c.WatchdogMillis)
	}
	return nil
}
