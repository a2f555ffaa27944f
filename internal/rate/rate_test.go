package rate

import (
	"testing"
	"time"

	"github.com/example/touchpaint/internal/clock"
)

func TestReportsBatchCount(t *testing.T) {
	f := clock.NewFake()
	var reports []int
	s := New(f, CountBatches, func(n int) { reports = append(reports, n) })
	s.Enable(true)
	s.Kick()
	for i := 0; i < 42; i++ {
		s.Record(3)
	}
	f.Advance(Interval)
	if len(reports) != 1 || reports[0] != 42 {
		t.Fatalf("reports = %v, want [42]", reports)
	}
	f.Advance(Interval)
	if len(reports) != 2 || reports[1] != 0 {
		t.Fatalf("rescheduled window reported %v", reports)
	}
}

func TestDisableSuppressesReport(t *testing.T) {
	f := clock.NewFake()
	var reports []int
	s := New(f, CountBatches, func(n int) { reports = append(reports, n) })
	s.Enable(true)
	s.Kick()
	for i := 0; i < 42; i++ {
		s.Record(1)
	}
	f.Advance(500 * time.Millisecond)
	s.Enable(false)
	f.Advance(2 * Interval)
	if len(reports) != 0 {
		t.Fatalf("disabled sampler reported %v", reports)
	}
	s.Record(1)
	if s.Count() != 42 {
		t.Fatalf("disabled sampler counted, count = %d", s.Count())
	}
}

func TestKickWhileDisabledDoesNotSchedule(t *testing.T) {
	f := clock.NewFake()
	s := New(f, CountBatches, func(int) { t.Fatalf("unexpected report") })
	s.Kick()
	if f.Pending() != 0 {
		t.Fatalf("pending timers = %d", f.Pending())
	}
}

func TestStopDropsWindow(t *testing.T) {
	f := clock.NewFake()
	called := false
	s := New(f, CountBatches, func(int) { called = true })
	s.Enable(true)
	s.Kick()
	s.Record(1)
	s.Stop()
	f.Advance(Interval)
	if called {
		t.Fatalf("stopped sampler reported")
	}
}

func TestCountSamples(t *testing.T) {
	f := clock.NewFake()
	got := -1
	s := New(f, CountSamples, func(n int) { got = n })
	s.Enable(true)
	s.Kick()
	s.Record(4)
	s.Record(1)
	f.Advance(Interval)
	if got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in   string
		want Granularity
		ok   bool
	}{
		{"batches", CountBatches, true},
		{"samples", CountSamples, true},
		{"", CountBatches, true},
		{"frames", CountBatches, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			g, ok := ParseGranularity(tt.in)
			if g != tt.want || ok != tt.ok {
				t.Fatalf("ParseGranularity(%q) = %v, %v", tt.in, g, ok)
			}
		})
	}
}
