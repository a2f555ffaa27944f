package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/theme"
)

// Paint holds the persisted paint view preferences.
type Paint struct {
	Mode        paintview.Mode
	BrushDp     float32 // paintview.PhysicalPixel for the one pixel brush
	ClearDelay  paintview.ClearPolicy
	MeasureRate bool
	Counting    rate.Granularity
}

// Notify holds notification settings.
type Notify struct {
	Rate bool
	Copy bool
	Save bool
}

// Config holds the application configuration.
type Config struct {
	Theme  string
	Paint  Paint
	Notify Notify
	Themes map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Paint: Paint{
			Mode:       paintview.ModePaint,
			BrushDp:    paintview.DefaultBrushDp,
			ClearDelay: paintview.ClearOnNextStroke,
			Counting:   rate.CountBatches,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	sb.WriteString("\n")

	sb.WriteString("[paint]\n")
	fmt.Fprintf(&sb, "mode = %s\n", c.Paint.Mode)
	fmt.Fprintf(&sb, "brush = %s\n", paintview.FormatBrushSize(c.Paint.BrushDp))
	fmt.Fprintf(&sb, "clear_delay = %s\n", c.Paint.ClearDelay)
	fmt.Fprintf(&sb, "measure_rate = %v\n", c.Paint.MeasureRate)
	fmt.Fprintf(&sb, "rate_counting = %s\n", c.Paint.Counting)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "rate = %v\n", c.Notify.Rate)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Key, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
