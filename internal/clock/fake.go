package clock

import "time"

// Fake is a manually advanced Scheduler. Callbacks only run inside Advance
// or AdvanceTo, in deadline order, on the caller's goroutine.
type Fake struct {
	now    time.Duration
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	f    *Fake
	at   time.Duration
	seq  int
	fn   func()
	done bool
}

// NewFake returns a fake clock at time zero.
func NewFake() *Fake { return &Fake{} }

// Now returns the elapsed fake time.
func (f *Fake) Now() time.Duration { return f.now }

// AfterFunc implements Scheduler. Negative delays are treated as zero.
func (f *Fake) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	f.seq++
	t := &fakeTimer{f: f, at: f.now + d, seq: f.seq, fn: fn}
	f.timers = append(f.timers, t)
	return t
}

// Stop implements Timer.
func (t *fakeTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.f.remove(t)
	return true
}

func (f *Fake) remove(t *fakeTimer) {
	for i, other := range f.timers {
		if other == t {
			f.timers = append(f.timers[:i], f.timers[i+1:]...)
			return
		}
	}
}

// Pending returns the number of timers that have not fired or been stopped.
func (f *Fake) Pending() int { return len(f.timers) }

// Advance moves the clock forward by d, running every timer that falls due.
// Timers scheduled by callbacks run too if their deadline is within range.
func (f *Fake) Advance(d time.Duration) {
	f.AdvanceTo(f.now + d)
}

// AdvanceTo moves the clock to t. Moving backwards is ignored.
func (f *Fake) AdvanceTo(t time.Duration) {
	if t < f.now {
		return
	}
	for {
		next := f.next(t)
		if next == nil {
			break
		}
		f.now = next.at
		next.done = true
		f.remove(next)
		next.fn()
	}
	f.now = t
}

func (f *Fake) next(limit time.Duration) *fakeTimer {
	var best *fakeTimer
	for _, t := range f.timers {
		if t.at > limit {
			continue
		}
		if best == nil || t.at < best.at || (t.at == best.at && t.seq < best.seq) {
			best = t
		}
	}
	return best
}
