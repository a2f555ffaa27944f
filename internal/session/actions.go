package session

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/mobile/event/key"

	"github.com/example/touchpaint/internal/paintview"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

type action struct {
	name string
	help string
	keys []KeyShortcut
	fn   func()
}

func (s *Session) register(name, help string, keys KeyboardShortcuts, fn func()) {
	idx := len(s.actions)
	a := action{name: name, help: help, fn: fn}
	if keys != nil {
		a.keys = keys.KeyboardShortcuts()
		for _, sc := range a.keys {
			s.keys[sc] = idx
		}
	}
	s.actions = append(s.actions, a)
}

func (s *Session) registerActions() {
	s.keys = map[KeyShortcut]int{}

	modeKeys := map[paintview.Mode]rune{
		paintview.ModePaint:  'p',
		paintview.ModeFill:   'f',
		paintview.ModeFollow: 'o',
		paintview.ModeBlank:  'b',
	}
	for _, m := range paintview.Modes() {
		m := m
		s.register("mode-"+m.String(), "switch to "+m.String()+" mode", shortcutList{{Rune: modeKeys[m]}}, func() {
			s.view.SetMode(m)
			s.ShowToast("mode: " + m.String())
		})
	}

	digit := '1'
	for _, dp := range paintview.BrushPresets {
		if dp == paintview.PhysicalPixel {
			continue
		}
		dp := dp
		s.register("brush-"+paintview.FormatBrushSize(dp), fmt.Sprintf("%s dp brush", paintview.FormatBrushSize(dp)), shortcutList{{Rune: digit}}, func() {
			s.view.SetBrushSize(dp)
			s.ShowToast(brushLabel(dp))
		})
		digit++
	}
	s.register("brush-physical", "one device pixel brush", shortcutList{{Rune: 'x'}}, func() {
		s.view.SetBrushSize(paintview.PhysicalPixel)
		s.ShowToast(brushLabel(paintview.PhysicalPixel))
	})

	s.register("clear-delay", "cycle the paint clear delay", shortcutList{{Rune: 'd'}}, s.CycleClearDelay)

	s.register("rate", "toggle touch rate measurement", shortcutList{{Rune: 'r'}}, func() {
		on := !s.view.RateMeasurementEnabled()
		s.view.SetRateMeasurementEnabled(on)
		if on {
			s.ShowToast("rate measurement on")
		} else {
			s.ShowToast("rate measurement off")
		}
	})

	s.register("copy", "copy the canvas to the clipboard", shortcutList{{Rune: 'c'}, {Rune: 'c', Modifiers: key.ModControl}}, s.Copy)

	s.register("help", "show shortcuts", shortcutList{{Rune: 'h'}, {Rune: '?'}}, func() {
		log.Print("shortcuts:\n" + s.Help())
		s.ShowToast("shortcuts printed to log")
	})

	s.register("quit", "quit", shortcutList{{Rune: 'q'}, {Code: key.CodeEscape}}, func() {
		if s.quit != nil {
			s.quit()
		}
	})
}

// CycleClearDelay advances the clear policy to the next preset.
func (s *Session) CycleClearDelay() {
	cur := s.view.ClearPolicy()
	next := paintview.ClearPresets[0]
	for i, p := range paintview.ClearPresets {
		if p == cur {
			next = paintview.ClearPresets[(i+1)%len(paintview.ClearPresets)]
			break
		}
	}
	s.view.SetClearPolicy(next)
	s.ShowToast("clear: " + next.String())
}

// HandleKey runs the action bound to sc. Letters match regardless of case
// and shift state.
func (s *Session) HandleKey(sc KeyShortcut) bool {
	if sc.Rune >= 'A' && sc.Rune <= 'Z' {
		sc.Rune += 'a' - 'A'
	}
	sc.Modifiers &^= key.ModShift
	if sc.Rune > 0 {
		sc.Code = 0
	} else {
		sc.Rune = 0
	}
	idx, ok := s.keys[sc]
	if !ok {
		return false
	}
	s.actions[idx].fn()
	return true
}

// HandleRune is HandleKey for a bare character.
func (s *Session) HandleRune(r rune) bool { return s.HandleKey(KeyShortcut{Rune: r}) }

// Help lists the shortcuts, one action per line.
func (s *Session) Help() string {
	var sb strings.Builder
	for _, a := range s.actions {
		var keys []string
		for _, k := range a.keys {
			keys = append(keys, shortcutLabel(k))
		}
		fmt.Fprintf(&sb, "%-12s %s\n", strings.Join(keys, ","), a.help)
	}
	return sb.String()
}

func shortcutLabel(k KeyShortcut) string {
	var label string
	switch {
	case k.Rune > 0:
		label = string(k.Rune)
	case k.Code == key.CodeEscape:
		label = "Esc"
	default:
		label = fmt.Sprintf("code%d", k.Code)
	}
	if k.Modifiers&key.ModControl != 0 {
		label = "Ctrl+" + label
	}
	return label
}
