package app

import (
	"fmt"

	"rover/hal"
	"rover/kernel"
	"rover/timer"
)

// Sample is one pass of the control loop.
type Sample struct {
	Seq      uint32
	Tick     uint32
	Distance hal.Centimeters
	Err      error
	Decision Decision
}

func (s Sample) String() string {
	if s.Err != nil {
		return fmt.Sprintf("sample seq=%d tick=%d err=%q wheels=%s/%d", s.Seq, s.Tick, s.Err, s.Decision.Motion, s.Decision.Duty)
	}
	return fmt.Sprintf("sample seq=%d tick=%d cm=%d wheels=%s/%d", s.Seq, s.Tick, s.Distance, s.Decision.Motion, s.Decision.Duty)
}

// controlLoop sleeps, samples the ranger, drives the wheels and feeds the
// watchdog, forever. It is the only sleeper on the tick domain.
type controlLoop struct {
	tick   timer.Tick
	delay  timer.Delay
	sleep  timer.Sleeper
	ranger hal.Ranger
	wheels hal.Wheels
	wd     hal.Watchdog
	policy Policy

	last    *Sample
	updated *kernel.Signal
}

func newControlLoop(tick timer.Tick, cfg Config, h hal.HAL, last *Sample, updated *kernel.Signal) *controlLoop {
	delay := timer.NewDelay(tick, cfg.SampleTicks)
	return &controlLoop{
		tick:    tick,
		delay:   delay,
		sleep:   timer.Sleep(delay),
		ranger:  h.Ranger(),
		wheels:  h.Wheels(),
		wd:      h.Watchdog(),
		policy:  NewPolicy(cfg),
		last:    last,
		updated: updated,
	}
}

func (c *controlLoop) Poll(w kernel.Waker) kernel.Poll {
	for c.sleep.Poll(w) == kernel.Ready {
		c.sample()
		c.sleep = timer.Sleep(c.delay)
	}
	return kernel.Pending
}

func (c *controlLoop) Drop() {
	c.sleep.Drop()
	c.wheels.Halt()
}

func (c *controlLoop) sample() {
	cm, err := c.ranger.Range()
	d := c.policy.Decide(cm, err)
	d.Apply(c.wheels)
	c.wd.Feed()

	*c.last = Sample{
		Seq:      c.last.Seq + 1,
		Tick:     c.tick.Now(),
		Distance: cm,
		Err:      err,
		Decision: d,
	}
	c.updated.Raise()
}

// statusLoop mirrors every new sample onto the indicators and the log.
type statusLoop struct {
	wait   kernel.SignalWait
	sig    *kernel.Signal
	last   *Sample
	status Status
	green  hal.Dimmer
	red    hal.Dimmer
	logger hal.Logger
}

func newStatusLoop(h hal.HAL, cfg Config, last *Sample, updated *kernel.Signal) *statusLoop {
	s := &statusLoop{
		wait:  updated.Wait(),
		sig:   updated,
		last:  last,
		green: h.Green(),
		red:   h.Red(),
	}
	if cfg.LogSamples {
		s.logger = h.Logger()
	}
	return s
}

func (s *statusLoop) Poll(w kernel.Waker) kernel.Poll {
	for s.wait.Poll(w) == kernel.Ready {
		s.show()
		s.wait = s.sig.Wait()
	}
	return kernel.Pending
}

func (s *statusLoop) Drop() { s.wait.Drop() }

func (s *statusLoop) show() {
	smp := *s.last
	s.status.Observe(smp.Distance, smp.Err)
	s.status.Show(s.green, s.red)
	if s.logger != nil {
		s.logger.WriteLineString(smp.String())
	}
}
