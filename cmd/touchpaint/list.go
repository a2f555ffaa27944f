package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/theme"
)

var modeHelp = map[paintview.Mode]string{
	paintview.ModePaint:  "draw strokes under every finger",
	paintview.ModeFill:   "flash the screen while any finger is down",
	paintview.ModeFollow: "draw a square under every finger",
	paintview.ModeBlank:  "draw nothing, for measuring the rate alone",
}

type modesCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func parseModesCmd(args []string, r *root) (*modesCmd, error) {
	fs := flag.NewFlagSet("modes", flag.ExitOnError)
	cmd := &modesCmd{root: r.subcommand("modes"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *modesCmd) Run() error {
	current := paintview.ModePaint
	if c.config != nil {
		current = c.config.Paint.Mode
	}
	fmt.Fprintln(c.stdout, "available modes (* marks the configured mode):")
	for _, m := range paintview.Modes() {
		fmt.Fprintf(c.stdout, "%s %-7s %s\n", marker(m == current), m, modeHelp[m])
	}
	return nil
}

func (c *modesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *modesCmd) Template() string {
	return "modes.txt"
}

type brushesCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func parseBrushesCmd(args []string, r *root) (*brushesCmd, error) {
	fs := flag.NewFlagSet("brushes", flag.ExitOnError)
	cmd := &brushesCmd{root: r.subcommand("brushes"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *brushesCmd) Run() error {
	current := paintview.DefaultBrushDp
	if c.config != nil {
		current = c.config.Paint.BrushDp
	}
	fmt.Fprintln(c.stdout, "available brush sizes (* marks the configured size):")
	for _, dp := range paintview.BrushPresets {
		label := paintview.FormatBrushSize(dp) + "dp"
		if dp == paintview.PhysicalPixel {
			label = "1 physical px"
		}
		fmt.Fprintf(c.stdout, "%s %s\n", marker(dp == current), label)
	}
	fmt.Fprintln(c.stdout, "clear delays:")
	for _, p := range paintview.ClearPresets {
		on := c.config != nil && c.config.Paint.ClearDelay == p
		fmt.Fprintf(c.stdout, "%s %s\n", marker(on), p)
	}
	return nil
}

func (c *brushesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *brushesCmd) Template() string {
	return "brushes.txt"
}

type themesCmd struct {
	*root
	fs     *flag.FlagSet
	stdout io.Writer
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r.subcommand("themes"), fs: fs, stdout: os.Stdout}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *themesCmd) Run() error {
	active := ""
	if c.activeTheme != nil {
		active = c.activeTheme.Name
	}
	fmt.Fprintln(c.stdout, "available themes (* marks the active theme):")
	for _, name := range theme.Names() {
		fmt.Fprintf(c.stdout, "%s %s\n", marker(strings.EqualFold(name, active)), name)
	}
	if c.config == nil {
		return nil
	}
	custom := make([]string, 0, len(c.config.Themes))
	for name := range c.config.Themes {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	for _, name := range custom {
		fmt.Fprintf(c.stdout, "%s %s (config)\n", marker(strings.EqualFold(name, active)), name)
	}
	return nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *themesCmd) Template() string {
	return "themes.txt"
}

func marker(on bool) string {
	if on {
		return "*"
	}
	return " "
}
