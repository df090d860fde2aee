package control

import (
	"time"

	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/mqtt"
	"github.com/sweeney/fan-control/internal/status"
	"github.com/sweeney/fan-control/internal/ui"
)

// Reporter is the Observer used by the daemon. It feeds the status tracker
// and publishes transitions and lifecycle events. Publish failures are
// logged and never reach the loop.
type Reporter struct {
	Tracker   *status.Tracker
	Publisher mqtt.Publisher
}

func (r *Reporter) Sampled(temp int, fan logic.State, at time.Time) {
	r.Tracker.Update(temp, fan, at)
}

func (r *Reporter) Transitioned(ev logic.Event) {
	ui.Info("Fan %s at %.1f°C", ev.State, logic.Celsius(ev.TempMilliC))
	r.Tracker.Record(ev)
	if err := r.Publisher.Publish(ev); err != nil {
		ui.Warning("mqtt: publish %s: %v", ev.Type, err)
	}
}

// Lifecycle publishes a retained STARTUP, SHUTDOWN or FAULT message carrying
// the current status snapshot.
func (r *Reporter) Lifecycle(event, reason string) {
	if c, ok := r.Publisher.(mqtt.ConnectionStatus); ok {
		r.Tracker.SetMQTTConnected(c.IsConnected())
	}
	snap := r.Tracker.Snapshot()
	err := r.Publisher.PublishSystem(mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      event,
		Reason:     reason,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	})
	if err != nil {
		ui.Warning("mqtt: publish %s event: %v", event, err)
		return
	}
	ui.Debug("published %s event", event)
}
