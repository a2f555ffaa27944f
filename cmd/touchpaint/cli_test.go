package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/paintview"
	"github.com/example/touchpaint/internal/rate"
	"github.com/example/touchpaint/internal/theme"
)

func testRoot() *root {
	return &root{program: "touchpaint", config: config.New(), activeTheme: theme.Default()}
}

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "touches.txt")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const strokeScript = `
0 resize 64 32
0 rate on
100 down 0
100 move 0 10 10
`

func rateScript() string {
	var b strings.Builder
	b.WriteString(strokeScript)
	for i := 1; i <= 10; i++ {
		fmt.Fprintf(&b, "%d move 0 %d 10\n", 100+i*100, 10+i*4)
	}
	b.WriteString("1200 up 0\n")
	return b.String()
}

func TestParseRunCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
		check   func(t *testing.T, c *runCmd)
	}{
		{name: "defaults from config", check: func(t *testing.T, c *runCmd) {
			want := config.New().Paint
			if c.prefs != want {
				t.Fatalf("prefs = %+v, want %+v", c.prefs, want)
			}
			if c.driver != driverShiny {
				t.Fatalf("driver = %q", c.driver)
			}
		}},
		{name: "all flags", args: []string{"-driver", "ebiten", "-mode", "follow", "-brush", "physical", "-clear-delay", "500", "-measure-rate", "-counting", "samples"}, check: func(t *testing.T, c *runCmd) {
			want := config.Paint{
				Mode:        paintview.ModeFollow,
				BrushDp:     paintview.PhysicalPixel,
				ClearDelay:  500,
				MeasureRate: true,
				Counting:    rate.CountSamples,
			}
			if c.prefs != want {
				t.Fatalf("prefs = %+v, want %+v", c.prefs, want)
			}
		}},
		{name: "bad driver", args: []string{"-driver", "sdl"}, wantErr: "unknown driver"},
		{name: "bad mode", args: []string{"-mode", "sketch"}, wantErr: "unknown mode"},
		{name: "bad brush", args: []string{"-brush", "0"}, wantErr: "invalid brush size"},
		{name: "bad clear delay", args: []string{"-clear-delay", "soon"}, wantErr: "invalid clear delay"},
		{name: "bad size", args: []string{"-width", "0"}, wantErr: "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := parseRunCmd(tt.args, testRoot())
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseRunCmd: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestRunLaunchesHost(t *testing.T) {
	c, err := parseRunCmd([]string{"-mode", "fill"}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	var got *runCmd
	c.launch = func(c *runCmd) error { got = c; return nil }
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if got == nil || got.prefs.Mode != paintview.ModeFill {
		t.Fatalf("launch not called with fill prefs: %+v", got)
	}
	if title := got.title(); !strings.HasPrefix(title, "TouchPaint - fill - shiny") {
		t.Fatalf("title = %q", title)
	}
}

func TestRunRememberSavesConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.rc")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	orig := configPathOverride
	configPathOverride = path
	t.Cleanup(func() { configPathOverride = orig })

	c, err := parseRunCmd([]string{"-remember"}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	final := c.prefs
	final.Mode = paintview.ModeBlank
	final.BrushDp = 15
	c.onClose(final)

	cfg, err := config.NewLoader("", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paint.Mode != paintview.ModeBlank || cfg.Paint.BrushDp != 15 {
		t.Fatalf("saved paint = %+v", cfg.Paint)
	}
}

func TestReplayWritesFrameAndChart(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	chart := filepath.Join(dir, "rate.png")
	script := writeScript(t, rateScript())

	c, err := parseReplayCmd([]string{"-script", script, "-output", out, "-rate-chart", chart, "-rate-log"}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	var stdout bytes.Buffer
	c.stdout = &stdout
	if err := c.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(stdout.String(), "Touch event rate: 10 Hz") {
		t.Fatalf("rate log missing:\n%s", stdout.String())
	}
	if !strings.Contains(stdout.String(), "1 rate reports") {
		t.Fatalf("summary missing:\n%s", stdout.String())
	}

	frame := decodePNG(t, out)
	if frame.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Fatalf("frame bounds = %v", frame.Bounds())
	}
	bg := frame.At(1, 1)
	if frame.At(30, 10) == bg {
		t.Fatal("stroke not painted")
	}
	decodePNG(t, chart)
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		args    []string
		wantErr string
	}{
		{name: "parse error names line", script: "0 resize 10 10\n5 wiggle\n", wantErr: "line 2"},
		{name: "invalid resize", script: "0 resize 0 10\n", wantErr: "invalid"},
		{name: "output without surface", script: "0 rate on\n", args: []string{"-output", "x.png"}, wantErr: "never sized"},
		{name: "chart without reports", script: strokeScript, args: []string{"-rate-chart", "c.png"}, wantErr: "no rate reports"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"-script", writeScript(t, tt.script)}
			for _, a := range tt.args {
				if strings.HasSuffix(a, ".png") {
					a = filepath.Join(t.TempDir(), a)
				}
				args = append(args, a)
			}
			c, err := parseReplayCmd(args, testRoot())
			if err != nil {
				t.Fatal(err)
			}
			c.stdout = &bytes.Buffer{}
			err = c.Run()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestReplayClipboardError(t *testing.T) {
	original := copyImageFn
	sentinel := errors.New("no display")
	var copied image.Image
	copyImageFn = func(img image.Image) error { copied = img; return sentinel }
	t.Cleanup(func() { copyImageFn = original })

	c, err := parseReplayCmd([]string{"-script", writeScript(t, strokeScript), "-to-clipboard"}, testRoot())
	if err != nil {
		t.Fatal(err)
	}
	c.stdout = &bytes.Buffer{}
	err = c.Run()
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if want := "failed to copy frame to clipboard"; !strings.Contains(err.Error(), want) {
		t.Fatalf("expected error to contain %q, got %v", want, err)
	}
	if copied == nil {
		t.Fatal("frame not handed to the clipboard")
	}
}

func TestParseReplayRequiresScript(t *testing.T) {
	_, err := parseReplayCmd(nil, testRoot())
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
	if help := uerr.Error(); !strings.Contains(help, "Usage: touchpaint replay -script file") {
		t.Fatalf("help = %q", help)
	}
}

func TestParseReplaySizePair(t *testing.T) {
	_, err := parseReplayCmd([]string{"-script", "x", "-width", "10"}, testRoot())
	if err == nil || !strings.Contains(err.Error(), "together") {
		t.Fatalf("err = %v", err)
	}
}

func TestListCommands(t *testing.T) {
	r := testRoot()
	r.config.Paint.Mode = paintview.ModeFollow

	modes, err := parseModesCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	modes.stdout = &buf
	if err := modes.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "* follow") || !strings.Contains(buf.String(), "  paint") {
		t.Fatalf("modes output:\n%s", buf.String())
	}

	brushes, err := parseBrushesCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	brushes.stdout = &buf
	if err := brushes.Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"* 2dp", "  1 physical px", "* next-stroke", "  never"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("brushes output missing %q:\n%s", want, buf.String())
		}
	}

	themes, err := parseThemesCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	themes.stdout = &buf
	if err := themes.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "* default") || !strings.Contains(buf.String(), "hotdog") {
		t.Fatalf("themes output:\n%s", buf.String())
	}
}

func TestConfigPrintAndSave(t *testing.T) {
	r := testRoot()
	r.config.Paint.BrushDp = 5
	path := filepath.Join(t.TempDir(), "nested", "config.rc")

	c, err := parseConfigCmd([]string{"-output", path, "save"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err := config.NewLoader("", path).Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paint.BrushDp != 5 {
		t.Fatalf("saved brush = %v", cfg.Paint.BrushDp)
	}

	c, err = parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	c.stdout = &buf
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != r.config.String() {
		t.Fatalf("print = %q", buf.String())
	}

	c, err = parseConfigCmd([]string{"load"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Run(); err == nil || !strings.Contains(err.Error(), "unknown config command") {
		t.Fatalf("err = %v", err)
	}
}

func TestRootUsage(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	r := newRoot()
	err := r.Run(nil)
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err = %v, want UsageError", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: touchpaint", "replay", "-notify-rate"} {
		if !strings.Contains(help, want) {
			t.Fatalf("help missing %q:\n%s", want, help)
		}
	}
}

func TestResolveThemePrecedence(t *testing.T) {
	t.Setenv("TOUCHPAINT_THEME", "light")
	r := testRoot()
	r.config.Theme = "hotdog"
	if got := r.resolveTheme(); got.Name != "light" {
		t.Fatalf("env theme = %q, want light", got.Name)
	}
	r.themeName = "high_contrast"
	if got := r.resolveTheme(); got.Name != "high_contrast" {
		t.Fatalf("flag theme = %q, want high_contrast", got.Name)
	}
}

func TestVersionString(t *testing.T) {
	origCommit, origDate := commit, date
	t.Cleanup(func() { commit, date = origCommit, origDate })
	commit, date = "abc123", ""
	if got := versionString("touchpaint"); got != "touchpaint version dev, commit abc123" {
		t.Fatalf("versionString = %q", got)
	}
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
