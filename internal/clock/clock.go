// Package clock provides the deferred-callback capability used by the paint
// view: a real scheduler that hands fired callbacks back to the host's event
// loop, a deterministic fake for tests and replays, and a single-shot
// cancelable delay built on either.
package clock

import (
	"sync"
	"time"
)

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn after d. Implementations must run fn on the same logical
// thread that delivers input events.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Posting is a Scheduler backed by time.AfterFunc. Fired callbacks are not
// run directly; they are handed to post, which must queue them onto the
// host event loop.
type Posting struct {
	post func(fn func())
}

// NewPosting returns a scheduler that forwards fired callbacks to post.
func NewPosting(post func(fn func())) *Posting {
	return &Posting{post: post}
}

// AfterFunc implements Scheduler.
func (p *Posting) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { p.post(fn) })
}

// Queue collects callbacks posted from timer goroutines until the owning
// loop drains them. It suits hosts that poll once per frame.
type Queue struct {
	mu  sync.Mutex
	fns []func()
}

// Post appends fn. It is safe to call from any goroutine.
func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()
}

// Drain runs every queued callback in order on the calling goroutine and
// returns how many ran.
func (q *Queue) Drain() int {
	q.mu.Lock()
	fns := q.fns
	q.fns = nil
	q.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return len(fns)
}
