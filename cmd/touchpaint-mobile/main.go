// Command touchpaint-mobile is the gomobile entry point:
//
//	gomobile build -target=android ./cmd/touchpaint-mobile
package main

import (
	"log"

	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/mobilehost"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/theme"
)

func main() {
	cfg, err := config.NewLoader("", "").Load()
	if err != nil {
		log.Printf("config: %v", err)
		cfg = config.New()
	}
	th := theme.Default()
	if name := cfg.Theme; name != "" {
		if t, err := theme.NewLoader().Load(name); err == nil {
			th = t
		} else {
			log.Printf("theme %q: %v", name, err)
		}
	}
	mobilehost.Main(cfg.Paint, th, notify.New(notify.DefaultPreferences()))
}
