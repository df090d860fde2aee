package mqtt

import (
	"github.com/sweeney/fan-control/internal/logic"
)

// FakePublisher keeps every message in memory instead of sending it.
type FakePublisher struct {
	Events         []logic.Event // fan transitions, in publish order
	Payloads       [][]byte      // encoded fan payloads
	SystemEvents   []SystemEvent // lifecycle messages
	SystemPayloads [][]byte      // encoded lifecycle payloads

	// Errors returned instead of recording.
	PublishError       error
	PublishSystemError error

	Closed    bool
	Connected bool // reported by IsConnected
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

func (f *FakePublisher) Publish(event logic.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)
	return nil
}

func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)
	return nil
}

func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// FanState is the state a subscriber of Topic would hold after the
// published transitions: OFF until the first one.
func (f *FakePublisher) FanState() logic.State {
	if len(f.Events) == 0 {
		return logic.StateOff
	}
	return f.Events[len(f.Events)-1].State
}

// Temps returns the sample carried by each published transition.
func (f *FakePublisher) Temps() []int {
	temps := make([]int, len(f.Events))
	for i, e := range f.Events {
		temps[i] = e.TempMilliC
	}
	return temps
}
