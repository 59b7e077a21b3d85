// Package process force-terminates browser process trees that did not exit
// after a graceful close.
package process

import "errors"

// ErrInvalidPID is returned for pid <= 0, which would target the caller's
// own process group.
var ErrInvalidPID = errors.New("invalid pid")
