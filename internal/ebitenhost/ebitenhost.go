// Package ebitenhost runs the paint view on ebiten, which delivers real
// multi-touch input on touch screens and mobile targets and falls back to
// the mouse on desktops.
package ebitenhost

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/mobile/event/key"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/session"
	"github.com/example/touchpaint/internal/theme"
)

// Options configures the window.
type Options struct {
	Title         string
	Width, Height int
	Prefs         config.Paint
	Theme         *theme.Theme
	Notifier      *notify.Notifier
	// OnClose receives the final settings.
	OnClose func(config.Paint)
}

// Run opens the window and blocks until it closes.
func Run(opts Options) error {
	g := newGame(opts)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	err := ebiten.RunGame(g)
	if opts.OnClose != nil {
		opts.OnClose(g.sess.Prefs())
	}
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	sess  *session.Session
	queue clock.Queue
	touch touchInput

	touchIDs []ebiten.TouchID
	present  []contact
	chars    []rune

	size     image.Point // physical pixels, from Layout
	applied  image.Point
	scale    float64
	focused  bool
	dirty    bool
	quit     bool
	frame    *image.RGBA
	frameImg *ebiten.Image
}

func newGame(opts Options) *game {
	g := &game{focused: true, dirty: true, scale: 1}
	if opts.Theme == nil {
		opts.Theme = theme.Default()
	}
	g.sess = session.New(clock.NewPosting(g.queue.Post), opts.Prefs,
		session.WithTheme(opts.Theme),
		session.WithNotifier(opts.Notifier),
		session.WithRedraw(func() { g.dirty = true }),
		session.WithQuit(func() { g.quit = true }),
	)
	return g
}

func (g *game) Update() error {
	g.queue.Drain()

	if g.size != g.applied && g.size.X > 0 && g.size.Y > 0 {
		g.applied = g.size
		g.touch.cancel(g.sess.View())
		g.sess.Resize(g.size.X, g.size.Y, float32(g.scale*160/72))
	}

	if focused := ebiten.IsFocused(); focused != g.focused {
		g.focused = focused
		if !focused {
			g.touch.cancel(g.sess.View())
		}
	}

	g.touch.update(g.sess.View(), g.sampleContacts())

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	g.chars = ebiten.AppendInputChars(g.chars[:0])
	if !ctrl {
		for _, r := range g.chars {
			g.sess.HandleRune(r)
		}
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.sess.HandleKey(session.KeyShortcut{Rune: 'c', Modifiers: key.ModControl})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.sess.HandleKey(session.KeyShortcut{Code: key.CodeEscape})
	}

	if g.quit {
		return ebiten.Termination
	}
	return nil
}

// sampleContacts returns every touch, or the left mouse button when no
// finger is down. Positions are already in Layout's physical pixels.
func (g *game) sampleContacts() []contact {
	g.present = g.present[:0]
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		x, y := ebiten.TouchPosition(id)
		g.present = append(g.present, contact{ID: int64(id), X: float32(x), Y: float32(y)})
	}
	if len(g.present) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.present = append(g.present, contact{ID: mouseID, X: float32(x), Y: float32(y)})
	}
	return g.present
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.applied.X <= 0 || g.applied.Y <= 0 {
		return
	}
	if g.frame == nil || g.frame.Bounds().Size() != g.applied {
		g.frame = image.NewRGBA(image.Rectangle{Max: g.applied})
		if g.frameImg != nil {
			g.frameImg.Deallocate()
		}
		g.frameImg = ebiten.NewImage(g.applied.X, g.applied.Y)
		g.dirty = true
	}
	_, toast := g.sess.Toast()
	if g.dirty || toast {
		g.dirty = false
		g.sess.Compose(g.frame)
		g.frameImg.WritePixels(g.frame.Pix)
	}
	screen.DrawImage(g.frameImg, nil)
}

// Layout renders at the device's physical resolution so one brush pixel is
// one screen pixel.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale <= 0 {
		g.scale = 1
	}
	g.size = image.Pt(int(float64(outsideWidth)*g.scale), int(float64(outsideHeight)*g.scale))
	return g.size.X, g.size.Y
}
