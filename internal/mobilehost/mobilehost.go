//go:build android || ios

package mobilehost

import (
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/geom"
	"golang.org/x/mobile/gl"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/session"
	"github.com/example/touchpaint/internal/theme"
)

type timerEvent struct {
	fn func()
}

// Main runs the app. It never returns on mobile platforms.
func Main(prefs config.Paint, th *theme.Theme, n *notify.Notifier) {
	if th == nil {
		th = theme.Default()
	}
	app.Main(func(a app.App) {
		var (
			glctx        gl.Context
			images       *glutil.Images
			img          *glutil.Image
			sz           size.Event
			in           touchInput
			redrawQueued bool
		)
		sess := session.New(clock.NewPosting(func(fn func()) { a.Send(timerEvent{fn: fn}) }), prefs,
			session.WithTheme(th),
			session.WithNotifier(n),
			session.WithRedraw(func() {
				if !redrawQueued {
					redrawQueued = true
					a.Send(paint.Event{})
				}
			}),
		)
		view := sess.View()

		release := func() {
			if img != nil {
				img.Release()
				img = nil
			}
		}

		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					ctx, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					glctx = ctx
					images = glutil.NewImages(glctx)
					a.Send(paint.Event{})
				case lifecycle.CrossOff:
					in.cancel(view)
					release()
					if images != nil {
						images.Release()
						images = nil
					}
					glctx = nil
				}
				if e.To == lifecycle.StageDead {
					return
				}

			case timerEvent:
				e.fn()

			case size.Event:
				sz = e
				release()
				sess.Resize(e.WidthPx, e.HeightPx, float32(e.PixelsPerPt))

			case touch.Event:
				in.handle(view, e)

			case paint.Event:
				redrawQueued = false
				if glctx == nil || sz.WidthPx <= 0 || sz.HeightPx <= 0 {
					continue
				}
				if img == nil {
					img = images.NewImage(sz.WidthPx, sz.HeightPx)
				}
				sess.Compose(img.RGBA)
				img.Upload()
				img.Draw(sz, geom.Point{}, geom.Point{X: sz.WidthPt}, geom.Point{Y: sz.HeightPt}, img.RGBA.Bounds())
				a.Publish()
			}
		}
	})
}
