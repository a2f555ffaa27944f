package replay

import (
	"fmt"
	"image"
	"time"

	"github.com/example/touchpaint/internal/clock"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/render"
)

// Report is one touch rate report, stamped with fake time.
type Report struct {
	At time.Duration
	Hz int
}

// Options configures a Run.
type Options struct {
	// Width and Height size the surface before the first op. Zero leaves
	// sizing to a resize op in the script.
	Width, Height int
	Density       float64
	Palette       *paintview.Palette
	Counting      rate.Granularity
	// Tail advances the clock past the last op so trailing timers fire.
	Tail time.Duration
	// OnReport, when set, sees every report as it happens.
	OnReport func(Report)
}

// Result is what a replay produced.
type Result struct {
	Reports   []Report
	Frame     *image.RGBA
	Redraws   int
	End       time.Duration
	Mode      paintview.Mode
	ClearSoon bool
	Contacts  int
}

// Run replays s against a fresh View and renders its final frame.
func Run(s Script, opts Options) (*Result, error) {
	fake := clock.NewFake()
	res := &Result{}
	viewOpts := []paintview.Option{
		paintview.WithScheduler(fake),
		paintview.WithInvalidate(func() { res.Redraws++ }),
		paintview.WithRateGranularity(opts.Counting),
		paintview.WithRateListener(func(hz int) {
			r := Report{At: fake.Now(), Hz: hz}
			res.Reports = append(res.Reports, r)
			if opts.OnReport != nil {
				opts.OnReport(r)
			}
		}),
	}
	if opts.Density > 0 {
		viewOpts = append(viewOpts, paintview.WithDensity(opts.Density))
	}
	if opts.Palette != nil {
		viewOpts = append(viewOpts, paintview.WithPalette(*opts.Palette))
	}
	v := paintview.New(viewOpts...)
	if opts.Width > 0 || opts.Height > 0 {
		if err := v.OnSurfaceResized(opts.Width, opts.Height); err != nil {
			return nil, err
		}
	}

	for _, op := range s {
		fake.AdvanceTo(op.At)
		if err := apply(v, op); err != nil {
			return nil, fmt.Errorf("line %d: %w", op.Line, err)
		}
	}
	res.End = s.End() + opts.Tail
	fake.AdvanceTo(res.End)

	res.Mode = v.Mode()
	res.ClearSoon = v.ClearPending()
	res.Contacts = v.ActiveContacts()
	if surf := v.Surface(); surf != nil {
		w, h := surf.Size()
		res.Frame = image.NewRGBA(image.Rect(0, 0, w, h))
		render.Draw(res.Frame, v.Frame())
	}
	return res, nil
}

func apply(v *paintview.View, op Op) error {
	switch op.Kind {
	case KindResize:
		return v.OnSurfaceResized(op.W, op.H)
	case KindMode:
		v.SetMode(op.Mode)
	case KindBrush:
		v.SetBrushSize(op.Brush)
	case KindBrushPx:
		v.SetBrushSizePixels(op.Brush)
	case KindClear:
		v.SetClearPolicy(op.Clear)
	case KindRate:
		v.SetRateMeasurementEnabled(op.On)
	case KindDown:
		v.OnContactBegin(op.Slot)
	case KindMove:
		v.OnContactMove(op.Slot, op.Point.X, op.Point.Y)
	case KindBatch:
		v.OnMoveBatch(op.Batch)
	case KindUp:
		v.OnContactEnd(op.Slot)
	case KindCancel:
		v.OnAllContactsCanceled()
	case KindWait:
	default:
		return fmt.Errorf("unknown op %q", op.Kind)
	}
	return nil
}
