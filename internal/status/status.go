// Package status provides a thread-safe status tracker for the fan-control daemon.
// It is read by the HTTP handlers and the metrics collector.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/fan-control/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	Chip          string
	Offset        int
	OnTempMilliC  int
	OffTempMilliC int
	IntervalMs    int64
	SensorPath    string
	Broker        string
	HTTPAddr      string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type and safe to use after the lock is released.
type Snapshot struct {
	Fan           logic.State
	TempMilliC    int
	HasSample     bool
	LastSample    time.Time
	LastChange    time.Time
	Counts        logic.EventCounts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
// The fan is reported OFF until the first update.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			Fan:       logic.StateOff,
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update records the latest sample and fan state.
// Called from the control loop on every tick.
func (t *Tracker) Update(temp int, fan logic.State, at time.Time) {
	t.mu.Lock()
	t.snap.TempMilliC = temp
	t.snap.HasSample = true
	t.snap.LastSample = at
	t.snap.Fan = fan
	t.mu.Unlock()
}

// Record counts a transition event.
func (t *Tracker) Record(ev logic.Event) {
	t.mu.Lock()
	t.snap.Counts.Add(ev)
	t.snap.Fan = ev.State
	t.snap.LastChange = ev.Timestamp
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
