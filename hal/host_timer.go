//go:build !tinygo

package hal

import (
	"math"
	"sync"
	"time"
)

// maxBurst bounds how many interrupts one Step may deliver; a stalled host
// drops ticks rather than replaying minutes of them.
const maxBurst = 1 << 16

// hostTimer models a 1MHz timer with a 16-bit compare register.
type hostTimer struct {
	mu     sync.Mutex
	period time.Duration
	isr    func()
	acc    time.Duration
	count  uint64
}

func newHostTimer() *hostTimer {
	return &hostTimer{}
}

func (t *hostTimer) CountsPerMicrosecond() uint32 { return 1 }
func (t *hostTimer) CompareMax() uint32           { return math.MaxUint16 }

func (t *hostTimer) Start(compare uint32, isr func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.period = time.Duration(compare) * time.Microsecond
	t.isr = isr
	t.acc = 0
}

func (t *hostTimer) advance(d time.Duration) {
	t.mu.Lock()
	if t.isr == nil || t.period <= 0 {
		t.mu.Unlock()
		return
	}
	t.acc += d
	n := int64(t.acc / t.period)
	t.acc %= t.period
	if n > maxBurst {
		n = maxBurst
	}
	isr := t.isr
	t.count += uint64(n)
	t.mu.Unlock()

	for i := int64(0); i < n; i++ {
		isr()
	}
}

func (t *hostTimer) fired() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
