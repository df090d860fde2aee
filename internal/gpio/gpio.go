// Package gpio provides the fan output line with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

import (
	"errors"
	"fmt"
	"io"
)

// DefaultChip is the first GPIO controller on a Raspberry Pi.
const DefaultChip = "/dev/gpiochip0"

// Consumer is the label the kernel shows as owner of a requested line.
const Consumer = "fan-control"

// Line drives a single digital output.
type Line interface {
	// Set drives the line high (active) or low. Repeating the current
	// level is a no-op and never an error.
	Set(active bool) error

	// Close releases the line. It does not change the output level.
	Close() error
}

// ErrClosed is wrapped by errors from a line that has been released.
var ErrClosed = errors.New("gpio: line closed")

// ErrorKind classifies an ActuatorError.
type ErrorKind int

const (
	ChipUnavailable ErrorKind = iota + 1
	LineUnavailable
	LineBusy
	WriteFailed
)

func (k ErrorKind) String() string {
	switch k {
	case ChipUnavailable:
		return "chip unavailable"
	case LineUnavailable:
		return "line unavailable"
	case LineBusy:
		return "line busy"
	case WriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// ActuatorError reports a failure to claim or drive the line.
type ActuatorError struct {
	Kind   ErrorKind
	Chip   string
	Offset int
	Err    error
}

func (e *ActuatorError) Error() string {
	return fmt.Sprintf("gpio %s line %d: %s: %v", e.Chip, e.Offset, e.Kind, e.Err)
}

func (e *ActuatorError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an ActuatorError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *ActuatorError
	return errors.As(err, &ae) && ae.Kind == kind
}

func level(active bool) int {
	if active {
		return 1
	}
	return 0
}

// closeStep names one resource released by a line's Close.
type closeStep struct {
	what string
	c    io.Closer
}

// closeAll closes every step, in order, and joins the failures.
func closeAll(steps ...closeStep) error {
	var errs []error
	for _, s := range steps {
		if err := s.c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", s.what, err))
		}
	}
	return errors.Join(errs...)
}
