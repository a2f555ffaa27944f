// Package session holds the controls every interactive host shares: it
// builds the paint view from saved preferences and maps key presses to the
// options menu actions, rate toasts, notifications and clipboard copies.
package session

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/example/touchpaint/internal/clipboard"
	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/render"
	"github.com/example/touchpaint/internal/theme"
)

// Session wraps a View with host controls. Like the View it is confined to
// the host's event loop.
type Session struct {
	view     *paintview.View
	sched    clock.Scheduler
	theme    *theme.Theme
	notifier *notify.Notifier
	toast    render.Toast

	now     func() time.Time
	redraw  func()
	quit    func()
	copyImg func(image.Image) error

	actions []action
	keys    map[KeyShortcut]int
}

// Option configures a Session.
type Option func(*Session)

// WithTheme sets the colours.
func WithTheme(t *theme.Theme) Option { return func(s *Session) { s.theme = t } }

// WithNotifier sends rate and copy notifications through n.
func WithNotifier(n *notify.Notifier) Option { return func(s *Session) { s.notifier = n } }

// WithRedraw registers the host's redraw request.
func WithRedraw(fn func()) Option { return func(s *Session) { s.redraw = fn } }

// WithQuit registers what the quit action does.
func WithQuit(fn func()) Option { return func(s *Session) { s.quit = fn } }

// WithClock overrides the wall clock used for toast expiry.
func WithClock(fn func() time.Time) Option { return func(s *Session) { s.now = fn } }

// WithClipboard overrides the clipboard writer.
func WithClipboard(fn func(image.Image) error) Option { return func(s *Session) { s.copyImg = fn } }

// New builds a Session and its View. sched must deliver callbacks on the
// host's event loop.
func New(sched clock.Scheduler, prefs config.Paint, opts ...Option) *Session {
	s := &Session{
		sched:   sched,
		theme:   theme.Default(),
		now:     time.Now,
		copyImg: clipboard.WriteImage,
	}
	for _, o := range opts {
		o(s)
	}
	s.view = paintview.New(
		paintview.WithScheduler(sched),
		paintview.WithInvalidate(s.requestRedraw),
		paintview.WithRateListener(s.rateReported),
		paintview.WithRateGranularity(prefs.Counting),
		paintview.WithPalette(s.theme.Palette()),
		paintview.WithMode(prefs.Mode),
		paintview.WithClearPolicy(prefs.ClearDelay),
	)
	s.view.SetBrushSize(prefs.BrushDp)
	s.view.SetRateMeasurementEnabled(prefs.MeasureRate)
	s.registerActions()
	return s
}

// View returns the paint core.
func (s *Session) View() *paintview.View { return s.view }

// Prefs returns the current settings in their persisted form.
func (s *Session) Prefs() config.Paint {
	return config.Paint{
		Mode:        s.view.Mode(),
		BrushDp:     s.view.BrushSizeDp(),
		ClearDelay:  s.view.ClearPolicy(),
		MeasureRate: s.view.RateMeasurementEnabled(),
		Counting:    s.view.RateGranularity(),
	}
}

func (s *Session) requestRedraw() {
	if s.redraw != nil {
		s.redraw()
	}
}

// Resize forwards a surface size change. ppp is the host's pixels per
// typographic point, or zero when unknown.
func (s *Session) Resize(w, h int, ppp float32) {
	if ppp > 0 {
		s.view.SetDensity(paintview.DensityFromPixelsPerPt(ppp))
	}
	if err := s.view.OnSurfaceResized(w, h); err != nil {
		log.Printf("resize: %v", err)
	}
}

// Compose paints the current frame and any toast into dst.
func (s *Session) Compose(dst *image.RGBA) {
	render.Draw(dst, s.view.Frame())
	s.toast.Draw(dst, s.now(), s.theme.ToastColors())
}

// ShowToast displays msg and schedules the redraw that hides it. A new
// toast replaces the current one.
func (s *Session) ShowToast(msg string) {
	s.toast.Show(msg, s.now())
	s.sched.AfterFunc(render.ToastDuration, s.requestRedraw)
	s.requestRedraw()
}

// Toast returns the visible toast text, if any.
func (s *Session) Toast() (string, bool) { return s.toast.Active(s.now()) }

func (s *Session) rateReported(hz int) {
	s.ShowToast(notify.RateMessage(hz))
	if s.notifier.Enabled(notify.EventRate) {
		go s.notifier.Rate(hz)
	}
}

// Copy places a snapshot of the current frame on the clipboard.
func (s *Session) Copy() {
	surf := s.view.Surface()
	if surf == nil {
		return
	}
	w, h := surf.Size()
	snap := image.NewRGBA(image.Rect(0, 0, w, h))
	render.Draw(snap, s.view.Frame())
	if err := s.copyImg(snap); err != nil {
		log.Printf("copy: %v", err)
		s.ShowToast("copy failed")
		return
	}
	s.ShowToast("canvas copied to clipboard")
	if s.notifier.Enabled(notify.EventCopy) {
		go s.notifier.Copy("canvas", snap)
	}
}

// SetTheme swaps the colours and clears the canvas.
func (s *Session) SetTheme(t *theme.Theme) {
	s.theme = t
	s.view.SetPalette(t.Palette())
}

func brushLabel(dp float32) string {
	if dp == paintview.PhysicalPixel {
		return "brush: physical pixel"
	}
	return fmt.Sprintf("brush: %s dp", paintview.FormatBrushSize(dp))
}
