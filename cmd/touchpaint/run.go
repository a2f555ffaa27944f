package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/example/touchpaint/internal/appstate"
	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/ebitenhost"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
)

const (
	driverShiny  = "shiny"
	driverEbiten = "ebiten"
)

type runCmd struct {
	*root
	fs       *flag.FlagSet
	driver   string
	width    int
	height   int
	debug    bool
	remember bool
	prefs    config.Paint

	// launch starts the chosen host; replaced in tests.
	launch func(*runCmd) error
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	cmd := &runCmd{root: r.subcommand("run"), fs: fs, launch: launchHost}
	defaults := config.New().Paint
	if r.config != nil {
		defaults = r.config.Paint
	}

	var mode, brush, clearDelay, counting string
	fs.StringVar(&cmd.driver, "driver", driverShiny, "window driver: shiny (mouse) or ebiten (multi-touch)")
	fs.StringVar(&mode, "mode", defaults.Mode.String(), "paint, fill, follow or blank")
	fs.StringVar(&brush, "brush", paintview.FormatBrushSize(defaults.BrushDp), "brush width in dp, or physical for one device pixel")
	fs.StringVar(&clearDelay, "clear-delay", defaults.ClearDelay.String(), "ms after the last finger lifts before clearing, never, or next-stroke")
	fs.BoolVar(&cmd.prefs.MeasureRate, "measure-rate", defaults.MeasureRate, "toast the touch event rate every second")
	fs.StringVar(&counting, "counting", defaults.Counting.String(), "rate counting: batches or samples")
	fs.IntVar(&cmd.width, "width", 1024, "initial window width")
	fs.IntVar(&cmd.height, "height", 768, "initial window height")
	fs.BoolVar(&cmd.debug, "debug", false, "log rasteriser diagnostics")
	fs.BoolVar(&cmd.remember, "remember", false, "save the final paint settings to the config file on exit")
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}

	switch cmd.driver {
	case driverShiny, driverEbiten:
	default:
		return nil, fmt.Errorf("unknown driver %q: want %s or %s", cmd.driver, driverShiny, driverEbiten)
	}
	var err error
	if cmd.prefs.Mode, err = paintview.ParseMode(mode); err != nil {
		return nil, err
	}
	if cmd.prefs.BrushDp, err = paintview.ParseBrushSize(brush); err != nil {
		return nil, err
	}
	if cmd.prefs.ClearDelay, err = paintview.ParseClearPolicy(clearDelay); err != nil {
		return nil, err
	}
	g, ok := rate.ParseGranularity(counting)
	if !ok {
		return nil, fmt.Errorf("unknown rate counting %q", counting)
	}
	cmd.prefs.Counting = g
	if cmd.width <= 0 || cmd.height <= 0 {
		return nil, fmt.Errorf("window size %dx%d must be positive", cmd.width, cmd.height)
	}
	return cmd, nil
}

func (c *runCmd) Run() error {
	if c.debug {
		gg.SetLogger(slog.Default())
	}
	return c.launch(c)
}

func (c *runCmd) title() string {
	return windowTitle(titleOptions{Mode: c.prefs.Mode.String(), Driver: c.driver})
}

// onClose persists the final settings when -remember was given.
func (c *runCmd) onClose(p config.Paint) {
	if !c.remember || c.config == nil {
		return
	}
	c.config.Paint = p
	path := config.NewLoader(version, configPathOverride).GetConfigPath()
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			log.Printf("remember settings: %v", err)
			return
		}
	}
	if err := saveConfig(path, c.config); err != nil {
		log.Printf("remember settings: %v", err)
		return
	}
	log.Printf("settings saved to %s", path)
}

func launchHost(c *runCmd) error {
	switch c.driver {
	case driverEbiten:
		err := ebitenhost.Run(ebitenhost.Options{
			Title:    c.title(),
			Width:    c.width,
			Height:   c.height,
			Prefs:    c.prefs,
			Theme:    c.activeTheme,
			Notifier: c.notifier,
			OnClose:  c.onClose,
		})
		if err != nil {
			return fmt.Errorf("ebiten: %w", err)
		}
		return nil
	default:
		appstate.New(
			appstate.WithTitle(c.title()),
			appstate.WithSize(c.width, c.height),
			appstate.WithPrefs(c.prefs),
			appstate.WithTheme(c.activeTheme),
			appstate.WithNotifier(c.notifier),
			appstate.WithOnClose(c.onClose),
		).Run()
		return nil
	}
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *runCmd) Template() string {
	return "run.txt"
}
