// Package ratechart plots touch rate reports as a PNG line chart.
package ratechart

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/touchpaint/internal/replay"
)

// ErrNoReports is returned when there is nothing to plot.
var ErrNoReports = errors.New("no rate reports to chart")

var font = func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("chart font: %v", err)
	}
	return f
}()

// Options sizes and styles the chart.
type Options struct {
	Width, Height int
	Light         bool
	// Span is the x axis length. It defaults to just past the last report.
	Span time.Duration
}

// Render writes a PNG chart of reports to w, rate in Hz against seconds.
func Render(w io.Writer, reports []replay.Report, opts Options) error {
	if len(reports) == 0 {
		return ErrNoReports
	}
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 400
	}
	p := message.NewPrinter(language.AmericanEnglish)

	xv := make([]float64, len(reports))
	yv := make([]float64, len(reports))
	maxHz := 0.0
	for i, r := range reports {
		xv[i] = r.At.Seconds()
		yv[i] = float64(r.Hz)
		maxHz = math.Max(maxHz, yv[i])
	}
	span := opts.Span.Seconds()
	if last := xv[len(xv)-1] + 1; span < last {
		span = last
	}

	style := chart.Style{
		StrokeWidth: 2.5,
		DotWidth:    3,
		StrokeColor: drawing.Color{R: 65, G: 65, B: 156, A: 192},
		DotColor:    drawing.Color{R: 17, G: 100, B: 138, A: 255},
	}
	fc := drawing.ColorWhite
	bg := drawing.ColorBlack
	if opts.Light {
		fc, bg = drawing.ColorBlack, drawing.ColorWhite
	}

	graph := chart.Chart{
		XAxis: chart.XAxis{
			Name:  "Time (s)",
			Style: chart.Style{FontColor: fc},
			Range: &chart.ContinuousRange{Min: 0, Max: span},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok {
					return ""
				}
				return p.Sprintf("%.1f", f)
			},
		},
		YAxis: chart.YAxis{
			Name:  "Hz",
			Style: chart.Style{FontColor: fc},
			Range: &chart.ContinuousRange{Min: 0, Max: math.Ceil(maxHz*1.1) + 1},
			ValueFormatter: func(v interface{}) string {
				f, ok := v.(float64)
				if !ok || math.Round(f)-f != 0 {
					return ""
				}
				return p.Sprintf("%d", int(math.Round(f)))
			},
		},
		Background: chart.Style{
			FillColor: bg,
			Padding: chart.Box{
				Top:    10,
				Bottom: 10,
				Left:   10,
				Right:  10,
			},
		},
		Canvas: chart.Style{FillColor: bg},
		Height: opts.Height,
		Width:  opts.Width,
		Font:   font,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "touch rate",
				Style:   style,
				XValues: xv,
				YValues: yv,
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
