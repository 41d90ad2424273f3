//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrWatchdogReset is returned by Host.Step once the watchdog starves.
var ErrWatchdogReset = errors.New("watchdog: reset")

type hostWatchdog struct {
	mu       sync.Mutex
	clock    func() time.Duration
	logger   Logger
	timeout  time.Duration
	started  bool
	lastFeed time.Duration
	count    uint64
}

func (w *hostWatchdog) Start(timeout time.Duration) error {
	if _, err := WatchdogMillis(timeout); err != nil {
		return err
	}
	now := w.clock()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeout = timeout
	w.started = true
	w.lastFeed = now
	return nil
}

func (w *hostWatchdog) Feed() {
	now := w.clock()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.lastFeed = now
	w.count++
}

func (w *hostWatchdog) check(now time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started || now-w.lastFeed <= w.timeout {
		return nil
	}
	if w.logger != nil {
		w.logger.WriteLineString(fmt.Sprintf("watchdog: starved for %s", now-w.lastFeed))
	}
	return ErrWatchdogReset
}

func (w *hostWatchdog) feeds() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
