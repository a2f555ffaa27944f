//go:build !linux && !darwin && !windows

package platform

// Notify drops the notification; this platform has no supported notifier.
func Notify(string, string, Options) error { return nil }
