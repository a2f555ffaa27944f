// Package appstate runs the paint view in a desktop window using shiny.
// The left mouse button stands in for a single finger and the keyboard
// replaces the options menu.
package appstate

import (
	"image"
	"log"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/session"
	"github.com/example/touchpaint/internal/theme"
)

const (
	defaultWidth  = 1024
	defaultHeight = 768
)

// AppState holds application configuration for the UI.
type AppState struct {
	Title  string
	Width  int
	Height int
	Prefs  config.Paint
	Theme  *theme.Theme

	notifier *notify.Notifier
	onClose  func(config.Paint)
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithSize sets the initial window size in pixels.
func WithSize(w, h int) Option {
	return func(a *AppState) {
		a.Width = w
		a.Height = h
	}
}

// WithPrefs sets the initial paint settings.
func WithPrefs(p config.Paint) Option { return func(a *AppState) { a.Prefs = p } }

// WithTheme sets the colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier routes rate and copy notifications through n.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOnClose registers a callback invoked with the final settings when the
// window closes.
func WithOnClose(fn func(config.Paint)) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:  "TouchPaint",
		Width:  defaultWidth,
		Height: defaultHeight,
		Prefs:  config.New().Paint,
		Theme:  theme.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// timerEvent carries a fired timer callback onto the window's event queue.
type timerEvent struct {
	fn func()
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the window until it is closed or the quit action fires.
func (a *AppState) Main(s screen.Screen) {
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.Width, Height: a.Height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	var (
		redrawQueued bool
		quit         bool
		buf          screen.Buffer
		winSize      image.Point
		ptr          mouseInput
	)
	defer func() {
		if buf != nil {
			buf.Release()
		}
	}()

	sched := clock.NewPosting(func(fn func()) { w.Send(timerEvent{fn: fn}) })
	sess := session.New(sched, a.Prefs,
		session.WithTheme(a.Theme),
		session.WithNotifier(a.notifier),
		session.WithQuit(func() { quit = true }),
		session.WithRedraw(func() {
			if redrawQueued {
				return
			}
			redrawQueued = true
			w.Send(paint.Event{})
		}),
	)
	if a.onClose != nil {
		defer func() { a.onClose(sess.Prefs()) }()
	}
	view := sess.View()

	for !quit {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
				ptr.reset()
				view.OnAllContactsCanceled()
			}

		case timerEvent:
			e.fn()

		case size.Event:
			winSize = e.Size()
			if buf != nil {
				buf.Release()
				buf = nil
			}
			sess.Resize(e.WidthPx, e.HeightPx, float32(e.PixelsPerPt))

		case paint.Event:
			redrawQueued = false
			if winSize.X <= 0 || winSize.Y <= 0 {
				continue
			}
			if buf == nil {
				if buf, err = s.NewBuffer(winSize); err != nil {
					log.Printf("new buffer: %v", err)
					buf = nil
					continue
				}
			}
			sess.Compose(buf.RGBA())
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()

		case mouse.Event:
			ptr.handle(view, e)

		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			sess.HandleKey(session.KeyShortcut{Rune: e.Rune, Code: e.Code, Modifiers: e.Modifiers})

		case error:
			log.Print(e)
		}
	}
}
