//go:build linux

package platform

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

var (
	replaceMu  sync.Mutex
	replaceIDs = map[string]uint32{}
)

// Notify sends a desktop notification using the Freedesktop.org notification spec.
func Notify(title, body string, opts Options) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	replaceMu.Lock()
	defer replaceMu.Unlock()
	var replaces uint32
	if opts.Tag != "" {
		replaces = replaceIDs[opts.Tag]
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		AppName, replaces, opts.IconPath, title, body, []string{}, map[string]dbus.Variant{}, int32(5000))
	if call.Err != nil {
		return call.Err
	}
	var id uint32
	if err := call.Store(&id); err == nil && opts.Tag != "" {
		replaceIDs[opts.Tag] = id
	}
	return nil
}
