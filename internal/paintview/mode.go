package paintview

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mode selects what contacts do to the canvas.
type Mode int

const (
	// ModePaint draws strokes into the accumulation surface.
	ModePaint Mode = iota
	// ModeFill floods the screen while any finger is down.
	ModeFill
	// ModeFollow draws a box under every tracked finger.
	ModeFollow
	// ModeBlank repaints the background continuously.
	ModeBlank
)

var modeNames = []string{"paint", "fill", "follow", "blank"}

// Modes returns every mode in menu order.
func Modes() []Mode { return []Mode{ModePaint, ModeFill, ModeFollow, ModeBlank} }

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts a mode name or its index.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if s == name {
			return Mode(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(modeNames) {
		return Mode(n), nil
	}
	return ModePaint, fmt.Errorf("unknown mode %q", s)
}

// ClearPolicy decides when paint strokes are wiped, in milliseconds.
type ClearPolicy int

const (
	// ClearNever keeps strokes until the mode changes or the window resizes.
	ClearNever ClearPolicy = -1
	// ClearOnNextStroke wipes the canvas when a new stroke begins.
	ClearOnNextStroke ClearPolicy = 0
)

// ClearPresets are the delays offered by the host menus.
var ClearPresets = []ClearPolicy{100, 250, 500, 1000, 2000, 5000, ClearNever, ClearOnNextStroke}

// Delay returns the wait after the last finger lifts. It is only meaningful
// for positive policies.
func (p ClearPolicy) Delay() time.Duration {
	return time.Duration(p) * time.Millisecond
}

func (p ClearPolicy) String() string {
	switch {
	case p == ClearOnNextStroke:
		return "next-stroke"
	case p < 0:
		return "never"
	}
	return fmt.Sprintf("%dms", int(p))
}

// ParseClearPolicy accepts "never", "next-stroke", a millisecond count, or a
// Go duration such as "2s".
func ParseClearPolicy(s string) (ClearPolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "never":
		return ClearNever, nil
	case "next", "next-stroke", "next_stroke":
		return ClearOnNextStroke, nil
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(s, "ms")); err == nil {
		if n < int(ClearNever) {
			return ClearNever, fmt.Errorf("clear delay %d out of range", n)
		}
		return ClearPolicy(n), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return ClearNever, fmt.Errorf("invalid clear delay %q", s)
	}
	if d < 0 {
		return ClearNever, fmt.Errorf("clear delay %q out of range", s)
	}
	return ClearPolicy(d / time.Millisecond), nil
}

// ParseBrushSize accepts a positive dp width or "physical" for the one
// device pixel brush.
func ParseBrushSize(s string) (float32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "physical", "px", "-1":
		return PhysicalPixel, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "dp"), 32)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid brush size %q", s)
	}
	return float32(f), nil
}

// FormatBrushSize is the inverse of ParseBrushSize.
func FormatBrushSize(dp float32) string {
	if dp == PhysicalPixel {
		return "physical"
	}
	return strconv.FormatFloat(float64(dp), 'g', -1, 32)
}
