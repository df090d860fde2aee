package thermal

import "errors"

// FakeSource is a test double that returns scripted samples.
type FakeSource struct {
	// Samples contains scripted milli-degree values.
	// Each call to Sample() consumes the next value.
	Samples []int

	// index tracks current position in Samples
	index int

	// Calls counts Sample invocations, including failed ones.
	Calls int

	// SampleError, if set, will be returned by Sample()
	SampleError error

	// FailAt, if > 0, makes the FailAt-th call (1-based) return FailError.
	FailAt    int
	FailError error

	// OnSample, if set, runs after each call with the 1-based call number.
	OnSample func(call int)
}

// NewFakeSource creates a FakeSource with the given samples.
func NewFakeSource(samples ...int) *FakeSource {
	return &FakeSource{Samples: samples}
}

// Sample returns the next scripted value.
// If samples are exhausted, returns the last value repeatedly.
func (f *FakeSource) Sample() (int, error) {
	f.Calls++
	if f.OnSample != nil {
		defer f.OnSample(f.Calls)
	}

	if f.SampleError != nil {
		return 0, f.SampleError
	}
	if f.FailAt > 0 && f.Calls == f.FailAt {
		return 0, f.FailError
	}

	if len(f.Samples) == 0 {
		return 0, errors.New("no samples configured")
	}

	v := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return v, nil
}
