// Package rate measures touch input throughput over fixed one second
// windows.
package rate

import (
	"time"

	"github.com/example/touchpaint/internal/clock"
)

// Interval is the length of one reporting window.
const Interval = time.Second

// Granularity selects what one recorded batch contributes to the count.
type Granularity int

const (
	// CountBatches counts one per delivered move batch.
	CountBatches Granularity = iota
	// CountSamples counts every sample in a batch, historical ones included.
	CountSamples
)

// String returns the flag spelling of g.
func (g Granularity) String() string {
	if g == CountSamples {
		return "samples"
	}
	return "batches"
}

// ParseGranularity accepts "batches" or "samples".
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "batches", "batch", "":
		return CountBatches, true
	case "samples", "sample":
		return CountSamples, true
	}
	return CountBatches, false
}

// Sampler counts recorded batches and reports the count once per Interval
// while enabled.
type Sampler struct {
	enabled bool
	count   int
	gran    Granularity
	cycle   *clock.Delay
	report  func(int)
}

// New returns a disabled sampler that calls report at the end of every
// window.
func New(s clock.Scheduler, g Granularity, report func(int)) *Sampler {
	r := &Sampler{gran: g, report: report}
	r.cycle = clock.NewDelay(s, r.fire)
	return r
}

// Enable turns measurement on or off. Turning it off drops the pending
// report.
func (r *Sampler) Enable(on bool) {
	r.enabled = on
	if !on {
		r.Stop()
	}
}

// Enabled reports whether measurement is on.
func (r *Sampler) Enabled() bool { return r.enabled }

// Granularity returns the counting mode.
func (r *Sampler) Granularity() Granularity { return r.gran }

// Kick starts a fresh window.
func (r *Sampler) Kick() {
	r.count = 0
	if r.enabled {
		r.cycle.Schedule(Interval)
	}
}

// Stop drops the pending report without emitting it.
func (r *Sampler) Stop() {
	r.cycle.Cancel()
}

// Record counts one batch carrying samples samples.
func (r *Sampler) Record(samples int) {
	if !r.enabled {
		return
	}
	if r.gran == CountSamples {
		r.count += samples
		return
	}
	r.count++
}

// Count returns the value accumulated in the current window.
func (r *Sampler) Count() int { return r.count }

func (r *Sampler) fire() {
	if r.report != nil {
		r.report(r.count)
	}
	r.Kick()
}
