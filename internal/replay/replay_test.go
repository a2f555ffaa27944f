package replay

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/slots"
)

func mustParse(t *testing.T, src string) Script {
	t.Helper()
	s, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return s
}

func TestParseOps(t *testing.T) {
	s := mustParse(t, `
# setup
0 resize 100 80
0 mode follow   # trailing comment
0 brush physical
0 brush-px 3
0 clear 2s
0 rate on
10 down 1
20 move 1 5.5 6
30 batch 0:1,2;3,4 1:9,9
40 up 1
50 cancel
60 wait
`)
	if len(s) != 12 {
		t.Fatalf("got %d ops, want 12", len(s))
	}
	if s[0].Kind != KindResize || s[0].W != 100 || s[0].H != 80 || s[0].Line != 3 {
		t.Errorf("resize = %+v", s[0])
	}
	if s[1].Mode != paintview.ModeFollow {
		t.Errorf("mode = %v", s[1].Mode)
	}
	if s[2].Brush != paintview.PhysicalPixel || s[3].Brush != 3 {
		t.Errorf("brushes = %v, %v", s[2].Brush, s[3].Brush)
	}
	if s[4].Clear != 2000 || !s[5].On {
		t.Errorf("clear/rate = %v, %v", s[4].Clear, s[5].On)
	}
	if s[7].Point != (slots.Point{X: 5.5, Y: 6}) || s[7].At != 20*time.Millisecond {
		t.Errorf("move = %+v", s[7])
	}
	b := s[8].Batch
	if len(b) != 2 || len(b[0].History) != 1 || b[0].Current != (slots.Point{X: 3, Y: 4}) || b[1].Slot != 1 {
		t.Errorf("batch = %+v", b)
	}
	if s.End() != 60*time.Millisecond {
		t.Errorf("End = %v", s.End())
	}
}

func TestParseErrorsCarryLine(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"unknown op", "0 resize 10 10\n5 jump\n", 2},
		{"bad timestamp", "x down 0\n", 1},
		{"missing args", "\n\n0 move 1 2\n", 3},
		{"bad batch", "0 batch 1:2\n", 1},
		{"bad rate", "0 rate maybe\n", 1},
		{"bad mode", "0 mode scribble\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("err = %v, want ParseError", err)
			}
			if pe.Line != tt.line {
				t.Fatalf("line = %d, want %d", pe.Line, tt.line)
			}
		})
	}
}

func TestParseRejectsBackwardsTime(t *testing.T) {
	_, err := Parse(strings.NewReader("10 down 0\n5 up 0\n"))
	if !errors.Is(err, ErrTimeWentBackwards) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunPaintsStroke(t *testing.T) {
	s := mustParse(t, `
0 clear never
0 brush 6
0 down 0
0 move 0 10 50
16 move 0 90 50
32 up 0
`)
	res, err := Run(s, Options{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}
	white := color.RGBA{255, 255, 255, 255}
	if got := res.Frame.RGBAAt(50, 50); got != white {
		t.Fatalf("midpoint = %v, want %v", got, white)
	}
	if got := res.Frame.RGBAAt(50, 10); got == white {
		t.Fatal("pixel off the stroke was painted")
	}
	if res.Contacts != 0 || res.Redraws == 0 {
		t.Fatalf("contacts=%d redraws=%d", res.Contacts, res.Redraws)
	}
}

func TestRunDelayedClear(t *testing.T) {
	s := mustParse(t, `
0 resize 40 40
0 clear 500
0 down 0
0 move 0 10 10
10 move 0 30 30
20 up 0
`)
	res, err := Run(s, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.ClearSoon {
		t.Fatal("clear should still be pending at end of script")
	}
	res, err = Run(s, Options{Tail: 500 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if res.ClearSoon {
		t.Fatal("clear still pending after tail")
	}
	if got := res.Frame.RGBAAt(20, 20); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("canvas not cleared: %v", got)
	}
}

func TestRunRateReports(t *testing.T) {
	var b strings.Builder
	b.WriteString("0 resize 50 50\n0 rate on\n0 down 0\n")
	// 60 batches inside the first second, two samples each.
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "%d batch 0:1,1;2,2\n", i*1000/60)
	}
	b.WriteString("1500 up 0\n")
	s := mustParse(t, b.String())

	tests := []struct {
		name     string
		counting rate.Granularity
		want     int
	}{
		{"batches", rate.CountBatches, 60},
		{"samples", rate.CountSamples, 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []Report
			res, err := Run(s, Options{Counting: tt.counting, Tail: 5 * time.Second, OnReport: func(r Report) { seen = append(seen, r) }})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Reports) != 1 {
				t.Fatalf("reports = %+v, want exactly one", res.Reports)
			}
			if r := res.Reports[0]; r.Hz != tt.want || r.At != time.Second {
				t.Fatalf("report = %+v, want %d Hz at 1s", r, tt.want)
			}
			if len(seen) != 1 {
				t.Fatalf("OnReport saw %d reports", len(seen))
			}
		})
	}
}

func TestRunInvalidResize(t *testing.T) {
	s := mustParse(t, "0 resize 0 10\n")
	_, err := Run(s, Options{})
	if !errors.Is(err, paintview.ErrInvalidSize) {
		t.Fatalf("err = %v, want ErrInvalidSize", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("err %q lacks line", err)
	}
}
