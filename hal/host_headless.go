//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	// Hz is how often simulated hardware is stepped.
	Hz int
	// Frames stops the run after N steps (0 = run until ctx is done).
	Frames uint64
}

// RunHeadless runs firmware against h without opening a window. Simulated
// time follows the wall clock.
func RunHeadless(ctx context.Context, h *Host, firmware func(context.Context) error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	g, gctx := errgroup.WithContext(ctx)
	fwCtx, stopFirmware := context.WithCancel(gctx)
	defer stopFirmware()

	g.Go(func() error {
		err := firmware(fwCtx)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			// Stopped by the hardware side, which reports its own outcome.
			return nil
		}
		return err
	})

	g.Go(func() error {
		defer stopFirmware()
		t := time.NewTicker(d)
		defer t.Stop()

		last := time.Now()
		var frames uint64
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case now := <-t.C:
				if err := h.Step(now.Sub(last)); err != nil {
					return err
				}
				last = now
				frames++
				if cfg.Frames > 0 && frames >= cfg.Frames {
					return nil
				}
			}
		}
	})

	return g.Wait()
}
