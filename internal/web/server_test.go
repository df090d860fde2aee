package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/metrics"
	"github.com/sweeney/fan-control/internal/status"
)

func newTestServer(t *testing.T) (*httptest.Server, *status.Tracker) {
	t.Helper()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := status.Config{
		Chip:          "/dev/gpiochip0",
		Offset:        17,
		OnTempMilliC:  60000,
		OffTempMilliC: 45000,
		IntervalMs:    2000,
		SensorPath:    "/sys/class/thermal/thermal_zone0/temp",
		Broker:        "tcp://192.168.1.200:1883",
		HTTPAddr:      ":8080",
	}
	tr := status.NewTracker(start, cfg)
	srv := New(":0", tr, metrics.NewRegistry(tr))
	ts := httptest.NewServer(srv.httpServer.Handler)
	t.Cleanup(ts.Close)
	return ts, tr
}

func getJSON(t *testing.T, url string) status.StatusJSON {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}
	return sj
}

func TestJSONEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	now := time.Date(2026, 1, 1, 0, 5, 0, 0, time.UTC)
	tr.Update(61000, logic.StateOn, now)
	tr.Record(logic.NewEvent(logic.StateOn, 61000, now))
	tr.SetMQTTConnected(true)

	resp, err := http.Get(ts.URL + "/index.json")
	if err != nil {
		t.Fatalf("GET /index.json: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var sj status.StatusJSON
	if err := json.NewDecoder(resp.Body).Decode(&sj); err != nil {
		t.Fatalf("decode JSON: %v", err)
	}

	if sj.Status.Fan != "ON" {
		t.Errorf("Fan: got %q, want ON", sj.Status.Fan)
	}
	if sj.Status.TempC == nil || *sj.Status.TempC != 61 {
		t.Errorf("TempC: got %v, want 61", sj.Status.TempC)
	}
	if sj.Status.LastChange != "2026-01-01T00:05:00Z" {
		t.Errorf("LastChange: got %q", sj.Status.LastChange)
	}
	if !sj.Status.MQTT.Connected {
		t.Error("expected MQTT.Connected=true")
	}
	if sj.Status.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("MQTT.Broker: got %q, want tcp://192.168.1.200:1883", sj.Status.MQTT.Broker)
	}
	if sj.Status.Counts.FanOn != 1 || sj.Status.Counts.FanOff != 0 {
		t.Errorf("Counts: got %+v, want {FanOn:1 FanOff:0}", sj.Status.Counts)
	}
	if sj.Status.Config.Offset != 17 {
		t.Errorf("Config.Offset: got %d, want 17", sj.Status.Config.Offset)
	}
	if sj.Status.Config.OnTempC != 60 || sj.Status.Config.OffTempC != 45 {
		t.Errorf("Config thresholds: got %v/%v, want 60/45", sj.Status.Config.OnTempC, sj.Status.Config.OffTempC)
	}
	if sj.Status.Config.IntervalMs != 2000 {
		t.Errorf("Config.IntervalMs: got %d, want 2000", sj.Status.Config.IntervalMs)
	}
}

func TestJSONBeforeFirstSample(t *testing.T) {
	ts, _ := newTestServer(t)

	sj := getJSON(t, ts.URL+"/index.json")

	if sj.Status.Fan != "OFF" {
		t.Errorf("Fan before first sample: got %q, want OFF", sj.Status.Fan)
	}
	if sj.Status.TempC != nil {
		t.Errorf("TempC before first sample: got %v, want null", *sj.Status.TempC)
	}
	if sj.Status.LastChange != "" {
		t.Errorf("LastChange before any transition: got %q", sj.Status.LastChange)
	}
}

func TestHTMLEndpointRoot(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(52300, logic.StateOff, time.Now())

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"Fan Control", "52.3°C", "60.0°C", "45.0°C", "/dev/gpiochip0 #17"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestHTMLEndpointIndexHTML(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/index.html")
	if err != nil {
		t.Fatalf("GET /index.html: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "no sample") {
		t.Error("expected placeholder for missing sample")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts, tr := newTestServer(t)
	tr.Update(61000, logic.StateOn, time.Now())
	tr.Record(logic.NewEvent(logic.StateOn, 61000, time.Now()))

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		"fan_control_fan_on 1",
		"fan_control_temperature_celsius 61",
		`fan_control_transitions_total{direction="on"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestNotFoundForUnknownPath(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nonexistent")
	if err != nil {
		t.Fatalf("GET /nonexistent: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}

func TestStateChangesReflectedInResponse(t *testing.T) {
	ts, tr := newTestServer(t)

	sj1 := getJSON(t, ts.URL+"/index.json")
	if sj1.Status.Fan != "OFF" {
		t.Errorf("expected Fan=OFF initially, got %q", sj1.Status.Fan)
	}

	now := time.Now()
	tr.Update(62000, logic.StateOn, now)
	tr.Record(logic.NewEvent(logic.StateOn, 62000, now))
	tr.Update(44000, logic.StateOff, now)
	tr.Record(logic.NewEvent(logic.StateOff, 44000, now))
	tr.SetMQTTConnected(true)

	sj2 := getJSON(t, ts.URL+"/index.json")
	if sj2.Status.Fan != "OFF" {
		t.Errorf("Fan: got %q, want OFF", sj2.Status.Fan)
	}
	if sj2.Status.Counts.FanOn != 1 || sj2.Status.Counts.FanOff != 1 {
		t.Errorf("Counts: got %+v", sj2.Status.Counts)
	}
	if !sj2.Status.MQTT.Connected {
		t.Error("expected MQTT connected after update")
	}
}

func TestServerAddr(t *testing.T) {
	tr := status.NewTracker(time.Now(), status.Config{})
	srv := New("127.0.0.1:9100", tr, metrics.NewRegistry(tr))
	if srv.Addr() != "127.0.0.1:9100" {
		t.Errorf("Addr: got %q", srv.Addr())
	}
}
