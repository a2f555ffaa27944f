package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/example/touchpaint/internal/clipboard"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/ratechart"
	"github.com/example/touchpaint/internal/replay"
)

// copyImageFn is swapped out in tests.
var copyImageFn = clipboard.WriteImage

type replayCmd struct {
	*root
	fs          *flag.FlagSet
	script      string
	output      string
	rateLog     bool
	rateChart   string
	toClipboard bool
	width       int
	height      int
	density     float64
	tail        time.Duration
	counting    rate.Granularity
	stdout      io.Writer
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	cmd := &replayCmd{root: r.subcommand("replay"), fs: fs, stdout: os.Stdout}
	var counting string
	fs.StringVar(&cmd.script, "script", "", "touch script to replay, - for stdin")
	fs.StringVar(&cmd.output, "output", "", "write the final frame as PNG")
	fs.BoolVar(&cmd.rateLog, "rate-log", false, "print every rate report")
	fs.StringVar(&cmd.rateChart, "rate-chart", "", "write a PNG chart of the rate reports")
	fs.BoolVar(&cmd.toClipboard, "to-clipboard", false, "copy the final frame to the clipboard")
	fs.IntVar(&cmd.width, "width", 0, "surface width before the first op (0 waits for a resize op)")
	fs.IntVar(&cmd.height, "height", 0, "surface height before the first op")
	fs.Float64Var(&cmd.density, "density", 1, "pixels per dp")
	fs.DurationVar(&cmd.tail, "tail", 0, "keep the clock running this long after the last op")
	fs.StringVar(&counting, "counting", "batches", "rate counting: batches or samples")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || cmd.script == "" {
		return nil, &UsageError{of: cmd}
	}
	g, ok := rate.ParseGranularity(counting)
	if !ok {
		return nil, fmt.Errorf("unknown rate counting %q", counting)
	}
	cmd.counting = g
	if (cmd.width > 0) != (cmd.height > 0) {
		return nil, errors.New("-width and -height must be given together")
	}
	if cmd.density <= 0 {
		return nil, fmt.Errorf("density %v must be positive", cmd.density)
	}
	return cmd, nil
}

func (c *replayCmd) Run() error {
	script, err := c.load()
	if err != nil {
		return err
	}
	opts := replay.Options{
		Width:    c.width,
		Height:   c.height,
		Density:  c.density,
		Counting: c.counting,
		Tail:     c.tail,
	}
	if c.activeTheme != nil {
		p := c.activeTheme.Palette()
		opts.Palette = &p
	}
	if c.rateLog {
		opts.OnReport = func(r replay.Report) {
			fmt.Fprintf(c.stdout, "%8.3fs %s\n", r.At.Seconds(), notify.RateMessage(r.Hz))
		}
	}
	res, err := replay.Run(script, opts)
	if err != nil {
		return fmt.Errorf("replay %s: %w", c.script, err)
	}
	fmt.Fprintf(c.stdout, "replayed %d ops to %.3fs: mode %s, %d redraws, %d rate reports, %d contacts down\n",
		len(script), res.End.Seconds(), res.Mode, res.Redraws, len(res.Reports), res.Contacts)

	if c.output != "" {
		if err := writeFrame(c.output, res); err != nil {
			return err
		}
		c.notifySave(c.output)
	}
	if c.rateChart != "" {
		if err := c.writeChart(res); err != nil {
			return err
		}
		c.notifySave(c.rateChart)
	}
	if c.toClipboard {
		if res.Frame == nil {
			return errors.New("nothing to copy: the script never sized the surface")
		}
		if err := copyImageFn(res.Frame); err != nil {
			return fmt.Errorf("failed to copy frame to clipboard: %w", err)
		}
		c.notifyCopy("replay frame", res.Frame)
	}
	return nil
}

func (c *replayCmd) load() (replay.Script, error) {
	var r io.Reader = os.Stdin
	if c.script != "-" {
		f, err := os.Open(c.script)
		if err != nil {
			return nil, fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}
	s, err := replay.Parse(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.script, err)
	}
	return s, nil
}

func writeFrame(path string, res *replay.Result) error {
	if res.Frame == nil {
		return errors.New("no frame to write: the script never sized the surface")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := png.Encode(f, res.Frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return f.Close()
}

func (c *replayCmd) writeChart(res *replay.Result) error {
	f, err := os.Create(c.rateChart)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	opts := ratechart.Options{Span: res.End}
	if c.activeTheme != nil {
		opts.Light = isLight(c.activeTheme.Palette())
	}
	if err := ratechart.Render(f, res.Reports, opts); err != nil {
		f.Close()
		return fmt.Errorf("rate chart: %w", err)
	}
	return f.Close()
}

// isLight reports whether the palette paints dark on a light background.
func isLight(p paintview.Palette) bool {
	c := p.Background
	return int(c.R)*299+int(c.G)*587+int(c.B)*114 > 128*1000
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Template() string {
	return "replay.txt"
}
