package clock

import "time"

// Delay holds at most one pending run of a fixed action.
type Delay struct {
	sched   Scheduler
	fn      func()
	pending *delayToken
}

type delayToken struct {
	timer Timer
}

// NewDelay returns an idle Delay that runs fn when it fires.
func NewDelay(s Scheduler, fn func()) *Delay {
	return &Delay{sched: s, fn: fn}
}

// Schedule replaces any pending run with one after d.
func (d *Delay) Schedule(after time.Duration) {
	d.Cancel()
	tok := &delayToken{}
	d.pending = tok
	tok.timer = d.sched.AfterFunc(after, func() {
		// A posting scheduler may deliver a fire that was already queued
		// when the run was cancelled or replaced.
		if d.pending != tok {
			return
		}
		d.pending = nil
		d.fn()
	})
}

// Cancel drops the pending run, if any.
func (d *Delay) Cancel() {
	if d.pending == nil {
		return
	}
	if d.pending.timer != nil {
		d.pending.timer.Stop()
	}
	d.pending = nil
}

// Pending reports whether a run is scheduled.
func (d *Delay) Pending() bool { return d.pending != nil }
