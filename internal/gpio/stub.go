//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// RealLine is not available on non-Linux platforms.
type RealLine struct{}

// Open returns an error on non-Linux platforms.
func Open(chipPath string, offset int) (*RealLine, error) {
	return nil, &ActuatorError{Kind: ChipUnavailable, Chip: chipPath, Offset: offset, Err: errUnsupported}
}

// Set is not implemented on non-Linux platforms.
func (r *RealLine) Set(active bool) error {
	return errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (r *RealLine) Close() error {
	return nil
}
