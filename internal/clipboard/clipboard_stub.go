//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

var errUnsupported = errors.New("clipboard images are not supported on this platform")

func publish(snapshot) error { return errUnsupported }
