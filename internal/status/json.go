package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/fan-control/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Fan           string     `json:"fan"`
	TempC         *float64   `json:"temp_c"`
	LastChange    string     `json:"last_change,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	FanOn  int `json:"fan_on"`
	FanOff int `json:"fan_off"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	Chip       string  `json:"chip"`
	Offset     int     `json:"offset"`
	OnTempC    float64 `json:"on_temp_c"`
	OffTempC   float64 `json:"off_temp_c"`
	IntervalMs int64   `json:"interval_ms"`
	Sensor     string  `json:"sensor"`
	Broker     string  `json:"broker,omitempty"`
	HTTPAddr   string  `json:"http_addr,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	fan := string(snap.Fan)
	if fan == "" {
		fan = "UNKNOWN"
	}

	inner := StatusInner{
		Fan:           fan,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			FanOn:  snap.Counts.On,
			FanOff: snap.Counts.Off,
		},
		Config: ConfigJSON{
			Chip:       snap.Config.Chip,
			Offset:     snap.Config.Offset,
			OnTempC:    logic.Celsius(snap.Config.OnTempMilliC),
			OffTempC:   logic.Celsius(snap.Config.OffTempMilliC),
			IntervalMs: snap.Config.IntervalMs,
			Sensor:     snap.Config.SensorPath,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}
	if snap.HasSample {
		c := logic.Celsius(snap.TempMilliC)
		inner.TempC = &c
	}
	if !snap.LastChange.IsZero() {
		inner.LastChange = snap.LastChange.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
