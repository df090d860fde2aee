// Package logic contains pure business logic for fan state decisions.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package logic

import "time"

// State represents the logical state of the fan.
type State string

const (
	StateOn  State = "ON"
	StateOff State = "OFF"
)

// Active reports whether the output line should be driven high for s.
func (s State) Active() bool {
	return s == StateOn
}

// Thresholds holds the switch points in milli-degrees Celsius.
// A valid pair has On strictly above Off; the gap between them is the dead band.
type Thresholds struct {
	On  int
	Off int
}

// Valid reports whether t has On > Off.
func (t Thresholds) Valid() bool {
	return t.On > t.Off
}

// EventType represents a state transition event.
type EventType string

const (
	EventFanOn  EventType = "FAN_ON"
	EventFanOff EventType = "FAN_OFF"
)

// Event represents a fan transition to be published.
type Event struct {
	Timestamp  time.Time
	Type       EventType
	State      State // state after the transition
	TempMilliC int   // sample that caused the transition
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	On  int
	Off int
}

// Add counts e.
func (c *EventCounts) Add(e Event) {
	switch e.Type {
	case EventFanOn:
		c.On++
	case EventFanOff:
		c.Off++
	}
}

// Celsius converts milli-degrees to degrees for display.
func Celsius(milli int) float64 {
	return float64(milli) / 1000.0
}
