package app

import (
	"context"
	"fmt"

	"rover/hal"
	"rover/kernel"
	"rover/timer"
)

// System is the assembled firmware: one executor running the control and
// status tasks on a rigged tick.
type System struct {
	h    hal.HAL
	cfg  Config
	exec *kernel.Executor
	tick timer.Tick

	last    Sample
	updated kernel.Signal
}

// New validates cfg, starts the watchdog and tick, and submits the tasks.
func New(h hal.HAL, cfg Config) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	installPanicHandler(h, cfg.BlinkOnPanic)

	s := &System{h: h, cfg: cfg}
	logf(h, "boot: halting wheels")
	h.Wheels().Halt()
	h.Wheels().SetDuty(0)

	logf(h, "boot: watchdog %s", cfg.WatchdogTimeout())
	if err := h.Watchdog().Start(cfg.WatchdogTimeout()); err != nil {
		return nil, fmt.Errorf("app: start watchdog: %w", err)
	}

	logf(h, "boot: tick %dus, sample every %d ticks", cfg.GranularityUS, cfg.SampleTicks)
	s.tick = timer.Rig(h.Timer(), cfg.GranularityUS)

	s.exec = kernel.New(h.Busy())
	tasks := []kernel.Task{
		kernel.NewTask("control", newControlLoop(s.tick, cfg, h, &s.last, &s.updated)),
		kernel.NewTask("status", newStatusLoop(h, cfg, &s.last, &s.updated)),
	}
	for _, t := range tasks {
		if err := s.exec.Submit(t); err != nil {
			return nil, fmt.Errorf("app: submit %s: %w", t.Name(), err)
		}
	}
	return s, nil
}

// Run drives the firmware forever.
func (s *System) Run() {
	s.exec.Run()
}

// RunContext drives the firmware until ctx is done. A task panic is
// returned as an error once the panic handler has run.
func (s *System) RunContext(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("app: halted: %v", r)
		}
	}()
	return s.exec.RunContext(ctx)
}

// SetIdle replaces what the scheduler does when no task is ready.
func (s *System) SetIdle(fn func()) { s.exec.SetIdle(fn) }

// Last returns the most recent sample.
func (s *System) Last() Sample { return s.last }

// Run is the firmware entry point: it never returns.
func Run(h hal.HAL) {
	s, err := New(h, DefaultConfig())
	if err != nil {
		logf(h, "boot: %v", err)
		panic(err)
	}
	s.Run()
}

func logf(h hal.HAL, format string, args ...any) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf(format, args...))
	}
}
