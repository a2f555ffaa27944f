// Package notify sends desktop notifications for touch rate reports,
// clipboard copies and saved replay output.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/example/touchpaint/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventRate fires for every touch rate report.
	EventRate Event = "rate"
	// EventCopy fires when the canvas is copied to the clipboard.
	EventCopy Event = "copy"
	// EventSave fires when a replay frame or chart is written to disk.
	EventSave Event = "save"
)

// RateTemplate is the default rate message; %s is the localized rate.
const RateTemplate = "Touch event rate: %s Hz"

// rateTag makes each rate notification replace the previous one.
const rateTag = "touchpaint-rate"

// envKeys maps events to the variables that override their templates.
var envKeys = map[Event]string{
	EventRate: "TOUCHPAINT_NOTIFY_RATE_TEXT",
	EventCopy: "TOUCHPAINT_NOTIFY_COPY_TEXT",
	EventSave: "TOUCHPAINT_NOTIFY_SAVE_TEXT",
}

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title  string
	Events map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Events: map[Event]EventPreference{
			EventRate: {Template: RateTemplate},
			EventCopy: {Template: "Copied %s to clipboard"},
			EventSave: {Template: "Saved %s"},
		},
	}
}

// LoadPreferences applies TOUCHPAINT_NOTIFY_* overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("TOUCHPAINT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range envKeys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Events[event] = EventPreference{Template: v}
		}
	}
	return prefs
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatRate renders hz with digit grouping.
func FormatRate(hz int) string {
	return printer.Sprintf("%d", hz)
}

// RateMessage is the text shown for a rate report.
func RateMessage(hz int) string {
	return fmt.Sprintf(RateTemplate, FormatRate(hz))
}

// Notifier sends OS-level notifications for the events switched on with
// Enable. A nil Notifier sends nothing.
type Notifier struct {
	title     string
	templates map[Event]string
	enabled   map[Event]bool
	send      func(title, body string, opts platform.Options) error
}

// New creates a Notifier with every event off.
func New(prefs Preferences) *Notifier {
	n := &Notifier{
		title:     prefs.Title,
		templates: make(map[Event]string, len(prefs.Events)),
		enabled:   make(map[Event]bool),
		send:      platform.Notify,
	}
	for event, p := range prefs.Events {
		n.templates[event] = strings.TrimSpace(p.Template)
	}
	return n
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event notifications are on.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Rate reports hz. Each rate notification replaces the last so a burst of
// reports does not pile up.
func (n *Notifier) Rate(hz int) {
	n.dispatch(EventRate, FormatRate(hz), platform.Options{Tag: rateTag})
}

// Copy reports a clipboard copy, using img as the notification icon.
func (n *Notifier) Copy(detail string, img image.Image) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "canvas"
	}
	var opts platform.Options
	if img != nil {
		path, cleanup, err := writePreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCopy, detail, opts)
}

// Save reports a file written to disk. PNG files double as the icon.
func (n *Notifier) Save(path string) {
	if !n.Enabled(EventSave) {
		return
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	var opts platform.Options
	if strings.EqualFold(filepath.Ext(path), ".png") {
		opts.IconPath = path
	}
	n.dispatch(EventSave, path, opts)
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.Enabled(event) {
		return
	}
	tmpl := n.templates[event]
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := n.send(n.title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// writePreview saves img to a temp PNG for use as a notification icon.
func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "touchpaint-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	err = png.Encode(f, img)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", nil, err
	}
	return path, func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}, nil
}
