package session

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/render"
)

type harness struct {
	s       *Session
	fake    *clock.Fake
	now     time.Time
	redraws int
	quits   int
	copied  []image.Image
	copyErr error
}

func newHarness(t *testing.T, prefs config.Paint) *harness {
	t.Helper()
	h := &harness{fake: clock.NewFake(), now: time.Unix(1000, 0)}
	h.s = New(h.fake, prefs,
		WithRedraw(func() { h.redraws++ }),
		WithQuit(func() { h.quits++ }),
		WithClock(func() time.Time { return h.now.Add(h.fake.Now()) }),
		WithClipboard(func(img image.Image) error {
			h.copied = append(h.copied, img)
			return h.copyErr
		}),
	)
	h.s.Resize(64, 48, 0)
	return h
}

func TestNewAppliesPrefs(t *testing.T) {
	for _, g := range []rate.Granularity{rate.CountBatches, rate.CountSamples} {
		t.Run(g.String(), func(t *testing.T) {
			prefs := config.New().Paint
			prefs.Mode = paintview.ModeFollow
			prefs.BrushDp = 15
			prefs.ClearDelay = 1000
			prefs.MeasureRate = true
			prefs.Counting = g
			h := newHarness(t, prefs)
			if got := h.s.View().RateGranularity(); got != g {
				t.Fatalf("view granularity = %v, want %v", got, g)
			}
			if got := h.s.Prefs(); got != prefs {
				t.Fatalf("Prefs = %+v, want %+v", got, prefs)
			}
		})
	}
}

func TestModeKeys(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	tests := []struct {
		r    rune
		want paintview.Mode
	}{
		{'f', paintview.ModeFill},
		{'O', paintview.ModeFollow},
		{'b', paintview.ModeBlank},
		{'p', paintview.ModePaint},
	}
	for _, tt := range tests {
		if !h.s.HandleRune(tt.r) {
			t.Fatalf("%q not handled", tt.r)
		}
		if got := h.s.View().Mode(); got != tt.want {
			t.Fatalf("after %q mode = %v, want %v", tt.r, got, tt.want)
		}
	}
	if msg, ok := h.s.Toast(); !ok || msg != "mode: paint" {
		t.Fatalf("toast = %q, %v", msg, ok)
	}
}

func TestBrushKeys(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	tests := []struct {
		r    rune
		want float32
	}{
		{'1', 1},
		{'4', 5},
		{'8', 150},
		{'x', paintview.PhysicalPixel},
	}
	for _, tt := range tests {
		h.s.HandleRune(tt.r)
		if got := h.s.View().BrushSizeDp(); got != tt.want {
			t.Errorf("after %q brush = %v, want %v", tt.r, got, tt.want)
		}
	}
	if h.s.HandleRune('9') {
		t.Error("9 should be unbound")
	}
}

func TestCycleClearDelay(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	var seen []paintview.ClearPolicy
	for range paintview.ClearPresets {
		h.s.HandleRune('d')
		seen = append(seen, h.s.View().ClearPolicy())
	}
	// Starting from next-stroke, one full lap ends back on it.
	if seen[len(seen)-1] != paintview.ClearOnNextStroke || seen[0] != paintview.ClearPresets[0] {
		t.Fatalf("cycle = %v", seen)
	}
}

func TestRateToastAndExpiry(t *testing.T) {
	prefs := config.New().Paint
	prefs.MeasureRate = true
	h := newHarness(t, prefs)
	v := h.s.View()
	v.OnContactBegin(0)
	for i := 0; i < 30; i++ {
		v.OnContactMove(0, float32(i), 10)
	}
	before := h.redraws
	h.fake.Advance(time.Second)
	msg, ok := h.s.Toast()
	if !ok || msg != "Touch event rate: 30 Hz" {
		t.Fatalf("toast = %q, %v", msg, ok)
	}
	if h.redraws == before {
		t.Fatal("rate toast did not request a redraw")
	}
	v.OnContactEnd(0)
	before = h.redraws
	h.fake.Advance(2 * time.Second)
	if _, ok := h.s.Toast(); ok {
		t.Fatal("toast still visible after expiry")
	}
	if h.redraws == before {
		t.Fatal("no redraw scheduled to hide the toast")
	}
}

func TestRateToggleKey(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	h.s.HandleRune('r')
	if !h.s.View().RateMeasurementEnabled() {
		t.Fatal("r did not enable measurement")
	}
	h.s.HandleRune('r')
	if h.s.View().RateMeasurementEnabled() {
		t.Fatal("r did not disable measurement")
	}
}

func TestCopy(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	h.s.HandleKey(KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	if len(h.copied) != 1 {
		t.Fatalf("copied %d images", len(h.copied))
	}
	if b := h.copied[0].Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("snapshot bounds = %v", b)
	}
	h.copyErr = errors.New("no display")
	h.s.HandleRune('c')
	if msg, _ := h.s.Toast(); msg != "copy failed" {
		t.Fatalf("toast = %q", msg)
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	h.s.HandleRune('q')
	h.s.HandleKey(KeyShortcut{Rune: -1, Code: key.CodeEscape})
	if h.quits != 2 {
		t.Fatalf("quits = %d, want 2", h.quits)
	}
}

func TestComposeDrawsToast(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	h.s.Resize(400, 300, 0)
	dst := image.NewRGBA(image.Rect(0, 0, 400, 300))
	h.s.Compose(dst)
	r := render.ToastRect(dst.Bounds(), "hello")
	pt := r.Min.Add(image.Pt(4, 4))
	plain := dst.RGBAAt(pt.X, pt.Y)
	h.s.ShowToast("hello")
	h.s.Compose(dst)
	if dst.RGBAAt(pt.X, pt.Y) == plain {
		t.Fatal("toast did not change the frame")
	}
}

func TestHelpListsActions(t *testing.T) {
	h := newHarness(t, config.New().Paint)
	help := h.s.Help()
	for _, want := range []string{"switch to fill mode", "Ctrl+c", "Esc", "150 dp brush"} {
		if !strings.Contains(help, want) {
			t.Errorf("help missing %q:\n%s", want, help)
		}
	}
}
