// Package control runs the sense/decide/act loop that drives the fan.
package control

import (
	"fmt"
	"time"

	"github.com/sweeney/fan-control/internal/gpio"
	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/thermal"
	"github.com/sweeney/fan-control/internal/ui"
)

// Observer receives loop progress. It is called from the loop goroutine
// and must not block for long.
type Observer interface {
	// Sampled is called once per tick after any transition was applied.
	Sampled(temp int, fan logic.State, at time.Time)

	// Transitioned is called after the line was switched.
	Transitioned(ev logic.Event)
}

type nopObserver struct{}

func (nopObserver) Sampled(int, logic.State, time.Time) {}
func (nopObserver) Transitioned(logic.Event)            {}

// Loop owns the output line for its lifetime. Run releases the line
// exactly once on every return path.
type Loop struct {
	source     thermal.Source
	line       gpio.Line
	thresholds logic.Thresholds
	stop       *Stopper
	observer   Observer
	now        func() time.Time
}

// New creates a Loop. A nil observer discards progress.
func New(source thermal.Source, line gpio.Line, thresholds logic.Thresholds, stop *Stopper, observer Observer) *Loop {
	if observer == nil {
		observer = nopObserver{}
	}
	return &Loop{
		source:     source,
		line:       line,
		thresholds: thresholds,
		stop:       stop,
		observer:   observer,
		now:        time.Now,
	}
}

// Run samples immediately, then once per value received on tick, until a
// shutdown request is observed or a fatal error occurs.
//
// On shutdown the line is driven inactive and released, and Run returns nil.
// A fan that was running is reported to the observer as a FAN_OFF transition.
// On a sensor or line error the line is released at its current level and
// the error is returned. A closed tick channel is treated as a shutdown
// request.
func (l *Loop) Run(tick <-chan time.Time) error {
	state := logic.StateOff
	var temp int

	for {
		if l.stop.Requested() {
			return l.shutdown(state, temp)
		}

		var err error
		temp, err = l.source.Sample()
		if err != nil {
			return l.abort(fmt.Errorf("read temperature: %w", err))
		}

		next := logic.Step(state, temp, l.thresholds)
		if next != state {
			if err := l.line.Set(next.Active()); err != nil {
				return l.abort(fmt.Errorf("switch fan %s: %w", next, err))
			}
			state = next
			l.observer.Transitioned(logic.NewEvent(state, temp, l.now()))
		}

		ui.Debug("Temp: %.1f°C | Fan: %s", logic.Celsius(temp), state)
		l.observer.Sampled(temp, state, l.now())

		if _, ok := <-tick; !ok {
			l.stop.Request("tick source closed")
		}
	}
}

// shutdown switches the fan off and releases the line. temp is the last
// sample, carried on the FAN_OFF event.
func (l *Loop) shutdown(state logic.State, temp int) error {
	setErr := l.line.Set(false)
	closeErr := l.line.Close()
	if setErr != nil {
		return fmt.Errorf("switch fan off on shutdown: %w", setErr)
	}
	if state == logic.StateOn {
		l.observer.Transitioned(logic.NewEvent(logic.StateOff, temp, l.now()))
	}
	if closeErr != nil {
		return fmt.Errorf("release fan line: %w", closeErr)
	}
	return nil
}

// abort releases the line without changing its level. A running fan keeps
// running.
func (l *Loop) abort(cause error) error {
	if err := l.line.Close(); err != nil {
		ui.Warning("release fan line: %v", err)
	}
	return cause
}
