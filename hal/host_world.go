//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type motion uint8

const (
	motionHalt motion = iota
	motionForward
	motionReverse
)

func (m motion) String() string {
	switch m {
	case motionForward:
		return "forward"
	case motionReverse:
		return "reverse"
	default:
		return "halt"
	}
}

// world is the simulated vehicle facing one obstacle. It serves as both the
// ranger and the wheels.
type world struct {
	mu       sync.Mutex
	cfg      SimConfig
	distance float64
	motion   motion
	duty     uint8
	samples  uint64
}

func newWorld(cfg SimConfig) *world {
	return &world{cfg: cfg, distance: cfg.ObstacleCM}
}

func (w *world) Range() (Centimeters, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.samples++
	if w.cfg.FailEvery > 0 && w.samples%uint64(w.cfg.FailEvery) == 0 {
		return 0, ErrNoPulse
	}
	if w.distance >= float64(MaxRange) {
		return 0, ErrDistanceOverflow
	}
	return Centimeters(w.distance), nil
}

func (w *world) Halt()    { w.set(motionHalt) }
func (w *world) Forward() { w.set(motionForward) }
func (w *world) Reverse() { w.set(motionReverse) }

func (w *world) SetDuty(duty uint8) {
	w.mu.Lock()
	w.duty = duty
	w.mu.Unlock()
}

func (w *world) set(m motion) {
	w.mu.Lock()
	w.motion = m
	w.mu.Unlock()
}

func (w *world) advance(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	v := w.cfg.SpeedCMPerSec * float64(w.duty) / 255 * d.Seconds()
	switch w.motion {
	case motionForward:
		w.distance -= v
	case motionReverse:
		w.distance += v
	}
	if w.distance < 0 {
		w.distance = 0
	}
	if limit := 2 * float64(MaxRange); w.distance > limit {
		w.distance = limit
	}
}

func (w *world) state() (distance float64, m string, duty uint8, samples uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.distance, w.motion.String(), w.duty, w.samples
}
