//go:build !android && !ios

package mobilehost

import (
	"log"

	"github.com/example/touchpaint/internal/config"
	"github.com/example/touchpaint/internal/notify"
	"github.com/example/touchpaint/internal/theme"
)

// Main exits: the gomobile app only runs on Android and iOS. Desktop
// builds use the shiny or ebiten hosts.
func Main(config.Paint, *theme.Theme, *notify.Notifier) {
	log.Fatal("mobilehost: build with gomobile for android or ios")
}
