// Package paintview is the multi-touch paint state machine. It turns contact
// begin, move and end events into strokes on an off-screen surface, flat
// fills or follow markers depending on the active mode, and runs the
// delayed canvas clear and touch rate sampling.
//
// A View is not safe for concurrent use. Hosts deliver input, timer
// callbacks and redraws from one event loop.
package paintview

import (
	"fmt"
	"log"
	"time"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/slots"
	"github.com/example/touchpaint/internal/surface"
)

const (
	// MaxFingers is the number of contacts tracked at once.
	MaxFingers = slots.MaxFingers
	// PhysicalPixel is reported by BrushSizeDp for the unscaled 1px brush.
	PhysicalPixel float32 = -1
	// DefaultBrushDp is the initial stroke width.
	DefaultBrushDp float32 = 2
	// FollowBoxDp is the edge length of a follow marker.
	FollowBoxDp = 48
	// BaselineDensity is the pixels per dp of a 160 dpi screen.
	BaselineDensity = 1.0

	fillClearDelay = 250 * time.Millisecond
)

// BrushPresets are the widths offered by the host menus, in dp.
var BrushPresets = []float32{PhysicalPixel, 1, 2, 3, 5, 10, 15, 50, 150}

// ErrInvalidSize is returned by OnSurfaceResized for non-positive sizes.
var ErrInvalidSize = surface.ErrInvalidSize

// View is the paint core.
type View struct {
	mode     Mode
	policy   ClearPolicy
	density  float64
	brushDp  float32
	brushPx  float64
	physical bool
	palette  Palette

	tracker  *slots.Tracker
	surf     *surface.Surface
	fillDown bool

	clearDelay *clock.Delay
	sampler    *rate.Sampler

	invalidateFn func()
	rateFn       func(int)
	gran         rate.Granularity
	sched        clock.Scheduler
}

// Option configures a View.
type Option func(*View)

// WithScheduler sets the timer facility. The default is a fake clock that
// never advances, so hosts that want delayed clears or rate reports must
// supply one.
func WithScheduler(s clock.Scheduler) Option { return func(v *View) { v.sched = s } }

// WithInvalidate registers the redraw request callback.
func WithInvalidate(fn func()) Option { return func(v *View) { v.invalidateFn = fn } }

// WithRateListener registers the receiver of touch rate reports.
func WithRateListener(fn func(hz int)) Option { return func(v *View) { v.rateFn = fn } }

// WithRateGranularity selects per-batch or per-sample rate counting.
func WithRateGranularity(g rate.Granularity) Option { return func(v *View) { v.gran = g } }

// WithDensity sets the device pixels per dp.
func WithDensity(d float64) Option { return func(v *View) { v.density = d } }

// WithPalette overrides the default colours.
func WithPalette(p Palette) Option { return func(v *View) { v.palette = p } }

// WithMode sets the initial mode.
func WithMode(m Mode) Option { return func(v *View) { v.mode = m } }

// WithClearPolicy sets the initial clear policy.
func WithClearPolicy(p ClearPolicy) Option { return func(v *View) { v.policy = normalizePolicy(p) } }

// New returns a View with no surface. Nothing is drawn until the first
// OnSurfaceResized.
func New(opts ...Option) *View {
	v := &View{
		mode:    ModePaint,
		policy:  ClearOnNextStroke,
		density: BaselineDensity,
		palette: DefaultPalette(),
	}
	for _, o := range opts {
		o(v)
	}
	if v.sched == nil {
		v.sched = clock.NewFake()
	}
	if v.density <= 0 {
		v.density = BaselineDensity
	}
	v.tracker = slots.New(slots.Hooks{
		FirstDown: v.firstDown,
		Moved:     v.moved,
		LastUp:    v.lastUp,
	})
	v.clearDelay = clock.NewDelay(v.sched, func() {
		v.clearCanvas()
		v.invalidate()
	})
	v.sampler = rate.New(v.sched, v.gran, func(n int) {
		if v.rateFn != nil {
			v.rateFn(n)
		}
	})
	v.SetBrushSize(DefaultBrushDp)
	return v
}

func (v *View) invalidate() {
	if v.invalidateFn != nil {
		v.invalidateFn()
	}
}

// SetMode switches mode, dropping any pending clear and all drawn content.
func (v *View) SetMode(m Mode) {
	v.mode = m
	v.clearDelay.Cancel()
	v.clearCanvas()
	v.invalidate()
}

// Mode returns the active mode.
func (v *View) Mode() Mode { return v.mode }

// SetBrushSize sets the stroke width in dp, converted with the current
// density. Widths that are not positive, other than PhysicalPixel, are
// ignored.
func (v *View) SetBrushSize(dp float32) {
	if dp == PhysicalPixel {
		v.SetBrushSizePixels(1)
		return
	}
	if !(dp > 0) {
		return
	}
	v.brushDp = dp
	v.physical = false
	v.brushPx = v.dpToPx(float64(dp))
}

// SetBrushSizePixels sets the stroke width in device pixels, ignoring
// density. A width of 1 is the physical pixel brush. Widths that are not
// positive are ignored.
func (v *View) SetBrushSizePixels(px float32) {
	if !(px > 0) {
		return
	}
	v.physical = px == 1
	v.brushPx = float64(px)
	v.brushDp = float32(float64(px) / v.density)
}

// BrushSizeDp returns the stroke width in dp, or PhysicalPixel.
func (v *View) BrushSizeDp() float32 {
	if v.physical {
		return PhysicalPixel
	}
	return v.brushDp
}

// BrushSizePx returns the stroke width in device pixels.
func (v *View) BrushSizePx() float64 { return v.brushPx }

// SetDensity changes the pixels per dp. A dp brush is re-derived so the
// physical stroke width tracks the new density.
func (v *View) SetDensity(d float64) {
	if d <= 0 {
		return
	}
	v.density = d
	if !v.physical {
		v.brushPx = v.dpToPx(float64(v.brushDp))
	}
}

// Density returns the pixels per dp.
func (v *View) Density() float64 { return v.density }

func (v *View) dpToPx(dp float64) float64 { return dp * v.density }

// DensityFromPixelsPerPt converts a typographic pixels per point ratio, as
// reported by desktop and mobile windowing systems, to pixels per dp.
func DensityFromPixelsPerPt(ppp float32) float64 {
	if ppp <= 0 {
		return BaselineDensity
	}
	return float64(ppp) * 72 / 160
}

func normalizePolicy(p ClearPolicy) ClearPolicy {
	if p < ClearNever {
		log.Printf("clear delay %d out of range, using never", int(p))
		return ClearNever
	}
	return p
}

// SetClearPolicy sets when paint strokes are wiped.
func (v *View) SetClearPolicy(p ClearPolicy) { v.policy = normalizePolicy(p) }

// ClearPolicy returns the current clear policy.
func (v *View) ClearPolicy() ClearPolicy { return v.policy }

// SetRateMeasurementEnabled toggles touch rate sampling.
func (v *View) SetRateMeasurementEnabled(on bool) { v.sampler.Enable(on) }

// RateMeasurementEnabled reports whether touch rate sampling is on.
func (v *View) RateMeasurementEnabled() bool { return v.sampler.Enabled() }

// RateGranularity returns how touch rate samples are counted.
func (v *View) RateGranularity() rate.Granularity { return v.sampler.Granularity() }

// SetPalette changes the colours. The canvas is cleared so strokes in the
// old background do not linger.
func (v *View) SetPalette(p Palette) {
	v.palette = p
	if v.surf != nil {
		v.surf.SetBackground(p.Background)
	}
	v.clearCanvas()
	v.invalidate()
}

// Palette returns the current colours.
func (v *View) Palette() Palette { return v.palette }

// ActiveContacts returns how many contacts are down.
func (v *View) ActiveContacts() int { return v.tracker.Active() }

// Surface returns the paint surface, or nil before the first resize.
func (v *View) Surface() *surface.Surface { return v.surf }

// ClearPending reports whether a delayed clear is scheduled.
func (v *View) ClearPending() bool { return v.clearDelay.Pending() }

// OnSurfaceResized rebuilds the paint surface at the new size. Non-positive
// sizes are rejected and the current surface is kept.
func (v *View) OnSurfaceResized(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", w, h, ErrInvalidSize)
	}
	v.clearDelay.Cancel()
	if v.surf == nil {
		s, err := surface.New(w, h, v.palette.Background)
		if err != nil {
			return fmt.Errorf("create surface: %w", err)
		}
		v.surf = s
	} else if err := v.surf.Resize(w, h); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	v.clearCanvas()
	v.invalidate()
	return nil
}

func (v *View) clearCanvas() {
	v.fillDown = false
	if v.surf != nil {
		v.surf.Clear()
	}
	v.tracker.ResetPoints()
}
