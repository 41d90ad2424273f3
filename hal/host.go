//go:build !tinygo

package hal

import (
	"os"
	"sync"
	"time"

	"rover/internal/logx"
)

// SimConfig describes the simulated vehicle used on the host.
type SimConfig struct {
	// ObstacleCM is the starting distance to the obstacle ahead.
	ObstacleCM float64 `toml:"obstacle_cm"`
	// SpeedCMPerSec is the ground speed at full duty.
	SpeedCMPerSec float64 `toml:"speed_cm_per_sec"`
	// FailEvery makes every Nth ranging sample fail with ErrNoPulse (0 = never).
	FailEvery int `toml:"fail_every"`
}

// DefaultSimConfig returns a vehicle 60cm from a wall.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		ObstacleCM:    60,
		SpeedCMPerSec: 40,
	}
}

// Host is the simulated vehicle. Simulated time only advances through Step.
type Host struct {
	logger Logger
	led    *hostLED
	busy   *hostLED
	green  *hostDimmer
	red    *hostDimmer
	timer  *hostTimer
	world  *world
	wd     *hostWatchdog
	fb     *hostFramebuffer

	mu  sync.Mutex
	now time.Duration
}

// New returns a host HAL with the default simulated vehicle.
func New() HAL {
	return NewHost(DefaultSimConfig(), nil)
}

// NewHost returns a simulated vehicle. A nil logger logs to stdout.
func NewHost(cfg SimConfig, logger Logger) *Host {
	if logger == nil {
		zl, _ := logx.New(os.Stdout, "info")
		logger = logx.NewLines(zl)
	}
	h := &Host{
		logger: logger,
		led:    &hostLED{name: "led", logger: logger},
		busy:   &hostLED{name: "busy"},
		green:  &hostDimmer{},
		red:    &hostDimmer{},
		timer:  newHostTimer(),
		world:  newWorld(cfg),
		fb:     newHostFramebuffer(240, 160),
	}
	h.wd = &hostWatchdog{clock: h.elapsed, logger: logger}
	return h
}

func (h *Host) Logger() Logger         { return h.logger }
func (h *Host) LED() LED               { return h.led }
func (h *Host) Busy() LED              { return h.busy }
func (h *Host) Green() Dimmer          { return h.green }
func (h *Host) Red() Dimmer            { return h.red }
func (h *Host) Timer() CompareTimer    { return h.timer }
func (h *Host) Ranger() Ranger         { return h.world }
func (h *Host) Wheels() Wheels         { return h.world }
func (h *Host) Watchdog() Watchdog     { return h.wd }
func (h *Host) elapsed() time.Duration { h.mu.Lock(); defer h.mu.Unlock(); return h.now }

// Step advances simulated time by d: the vehicle moves, the tick interrupt
// fires for every period that elapsed, and the watchdog is checked.
func (h *Host) Step(d time.Duration) error {
	if d <= 0 {
		return nil
	}
	h.mu.Lock()
	h.now += d
	now := h.now
	h.mu.Unlock()

	h.world.advance(d)
	h.timer.advance(d)
	return h.wd.check(now)
}

// DimmerState is a snapshot of one indicator.
type DimmerState struct {
	Enabled bool
	Duty    uint8
}

// Snapshot is a consistent-enough view of the simulated vehicle.
type Snapshot struct {
	Elapsed    time.Duration
	Interrupts uint64
	DistanceCM float64
	Motion     string
	Duty       uint8
	Samples    uint64
	Busy       uint64
	LED        bool
	Green      DimmerState
	Red        DimmerState
	Feeds      uint64
}

func (h *Host) Snapshot() Snapshot {
	s := Snapshot{Elapsed: h.elapsed(), Interrupts: h.timer.fired()}
	s.DistanceCM, s.Motion, s.Duty, s.Samples = h.world.state()
	s.Busy = h.busy.rises()
	s.LED = h.led.level()
	s.Green = h.green.state()
	s.Red = h.red.state()
	s.Feeds = h.wd.feeds()
	return s
}

type hostLED struct {
	mu     sync.Mutex
	name   string
	on     bool
	rising uint64
	logger Logger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.on {
		l.rising++
	}
	l.on = true
	if l.logger != nil {
		l.logger.WriteLineString(l.name + ": HIGH")
	}
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	if l.logger != nil {
		l.logger.WriteLineString(l.name + ": LOW")
	}
}

func (l *hostLED) level() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.on
}

func (l *hostLED) rises() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rising
}

type hostDimmer struct {
	mu      sync.Mutex
	enabled bool
	duty    uint8
}

func (d *hostDimmer) Enable()  { d.mu.Lock(); d.enabled = true; d.mu.Unlock() }
func (d *hostDimmer) Disable() { d.mu.Lock(); d.enabled = false; d.mu.Unlock() }

func (d *hostDimmer) SetDuty(duty uint8) {
	d.mu.Lock()
	d.duty = duty
	d.mu.Unlock()
}

func (d *hostDimmer) state() DimmerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DimmerState{Enabled: d.enabled, Duty: d.duty}
}
