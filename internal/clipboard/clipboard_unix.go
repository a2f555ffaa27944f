//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	startOnce sync.Once
	startErr  error
)

func start() error {
	startOnce.Do(func() {
		if !displayAvailable() {
			startErr = ErrNoDisplay
			return
		}
		startErr = clipboard.Init()
	})
	return startErr
}

func publish(s snapshot) error {
	if err := start(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtImage, s.png)
	return nil
}
