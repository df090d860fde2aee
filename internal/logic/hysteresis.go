package logic

import "time"

// Step returns the fan state that follows current for a temperature sample.
//
// A running fan stops once temp falls to t.Off or below; a stopped fan starts
// once temp reaches t.On or above. Samples inside the dead band keep the
// current state. Any State other than StateOn is treated as StateOff, which
// is also the level the output line starts at.
func Step(current State, temp int, t Thresholds) State {
	if current == StateOn {
		if temp <= t.Off {
			return StateOff
		}
		return StateOn
	}
	if temp >= t.On {
		return StateOn
	}
	return StateOff
}

// NewEvent builds the event for a transition into to.
func NewEvent(to State, temp int, now time.Time) Event {
	typ := EventFanOff
	if to == StateOn {
		typ = EventFanOn
	}
	return Event{
		Timestamp:  now,
		Type:       typ,
		State:      to,
		TempMilliC: temp,
	}
}
