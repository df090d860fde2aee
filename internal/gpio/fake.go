package gpio

// FakeLine is a test double that records output levels.
type FakeLine struct {
	// Active is the current logical level.
	Active bool

	// Writes contains every level passed to Set, including repeats.
	Writes []bool

	// Transitions counts level changes actually applied.
	Transitions int

	// Closed tracks if Close was called
	Closed bool

	// CloseCalls counts Close invocations.
	CloseCalls int

	// SetError, if set, will be returned by Set()
	SetError error

	// CloseError, if set, will be returned by Close()
	CloseError error
}

// NewFakeLine creates a FakeLine initialised low, like a freshly requested line.
func NewFakeLine() *FakeLine {
	return &FakeLine{}
}

// Set records the level. Repeated levels are recorded but not counted as transitions.
func (f *FakeLine) Set(active bool) error {
	f.Writes = append(f.Writes, active)
	if f.SetError != nil {
		return f.SetError
	}
	if f.Closed {
		return &ActuatorError{Kind: WriteFailed, Chip: "fake", Err: ErrClosed}
	}
	if active != f.Active {
		f.Active = active
		f.Transitions++
	}
	return nil
}

// Close marks the line as released.
func (f *FakeLine) Close() error {
	f.CloseCalls++
	f.Closed = true
	return f.CloseError
}
