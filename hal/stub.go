package hal

import (
	"math"
	"time"
)

// stubHAL is used on boards without a pin map. Outputs are ignored and
// every device that can fail reports ErrNotImplemented.
type stubHAL struct{}

func (stubHAL) Logger() Logger      { return stubLogger{} }
func (stubHAL) LED() LED            { return stubPin{} }
func (stubHAL) Busy() LED           { return stubPin{} }
func (stubHAL) Green() Dimmer       { return stubDimmer{} }
func (stubHAL) Red() Dimmer         { return stubDimmer{} }
func (stubHAL) Timer() CompareTimer { return stubTimer{} }
func (stubHAL) Ranger() Ranger      { return stubRanger{} }
func (stubHAL) Wheels() Wheels      { return stubWheels{} }
func (stubHAL) Watchdog() Watchdog  { return stubWatchdog{} }

type stubLogger struct{}

func (stubLogger) WriteLineString(string) {}
func (stubLogger) WriteLineBytes([]byte)  {}

type stubPin struct{}

func (stubPin) High() {}
func (stubPin) Low()  {}

type stubDimmer struct{}

func (stubDimmer) Enable()       {}
func (stubDimmer) Disable()      {}
func (stubDimmer) SetDuty(uint8) {}

type stubTimer struct{}

func (stubTimer) CountsPerMicrosecond() uint32 { return 1 }
func (stubTimer) CompareMax() uint32           { return math.MaxUint32 }
func (stubTimer) Start(uint32, func())         {}

type stubRanger struct{}

func (stubRanger) Range() (Centimeters, error) { return 0, ErrNotImplemented }

type stubWheels struct{}

func (stubWheels) Halt()         {}
func (stubWheels) Forward()      {}
func (stubWheels) Reverse()      {}
func (stubWheels) SetDuty(uint8) {}

type stubWatchdog struct{}

func (stubWatchdog) Start(time.Duration) error { return ErrNotImplemented }
func (stubWatchdog) Feed()                     {}
