//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

// RealLine drives an output line through the Linux GPIO character device.
type RealLine struct {
	chipPath string
	offset   int
	chip     *gpiocdev.Chip
	line     *gpiocdev.Line
	value    int
}

// Open requests exclusive ownership of offset on chipPath as an output,
// initialised low.
func Open(chipPath string, offset int) (*RealLine, error) {
	chip, err := gpiocdev.NewChip(chipPath)
	if err != nil {
		return nil, &ActuatorError{Kind: ChipUnavailable, Chip: chipPath, Offset: offset, Err: err}
	}

	if offset < 0 || offset >= chip.Lines() {
		n := chip.Lines()
		chip.Close()
		return nil, &ActuatorError{
			Kind:   LineUnavailable,
			Chip:   chipPath,
			Offset: offset,
			Err:    fmt.Errorf("chip has %d lines", n),
		}
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer(Consumer))
	if err != nil {
		chip.Close()
		kind := LineUnavailable
		if errors.Is(err, unix.EBUSY) {
			kind = LineBusy
		}
		return nil, &ActuatorError{Kind: kind, Chip: chipPath, Offset: offset, Err: err}
	}

	return &RealLine{
		chipPath: chipPath,
		offset:   offset,
		chip:     chip,
		line:     line,
	}, nil
}

// Set drives the line. The last written level is cached so a repeated
// value does not reach the hardware.
func (r *RealLine) Set(active bool) error {
	if r.line == nil {
		return &ActuatorError{Kind: WriteFailed, Chip: r.chipPath, Offset: r.offset, Err: ErrClosed}
	}

	v := level(active)
	if v == r.value {
		return nil
	}
	if err := r.line.SetValue(v); err != nil {
		return &ActuatorError{Kind: WriteFailed, Chip: r.chipPath, Offset: r.offset, Err: err}
	}
	r.value = v
	return nil
}

// Close releases the line and the chip. Calling Close again is a no-op.
func (r *RealLine) Close() error {
	var steps []closeStep
	if r.line != nil {
		steps = append(steps, closeStep{what: fmt.Sprintf("line %d", r.offset), c: r.line})
		r.line = nil
	}
	if r.chip != nil {
		steps = append(steps, closeStep{what: "chip", c: r.chip})
		r.chip = nil
	}
	return closeAll(steps...)
}
