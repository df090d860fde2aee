// Package metrics exposes daemon state as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/status"
)

const namespace = "fan_control"

// Collector reads a status.Tracker snapshot on every scrape.
type Collector struct {
	tracker     *status.Tracker
	temperature *prometheus.Desc
	fanOn       *prometheus.Desc
	transitions *prometheus.Desc
	uptime      *prometheus.Desc
}

// NewCollector creates a Collector backed by tracker.
func NewCollector(tracker *status.Tracker) *Collector {
	return &Collector{
		tracker: tracker,
		temperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "temperature_celsius"),
			"Last temperature sample in degrees Celsius",
			nil, nil,
		),
		fanOn: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "fan_on"),
			"1 if the fan line is driven active, 0 otherwise",
			nil, nil,
		),
		transitions: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "transitions_total"),
			"Number of fan transitions since startup",
			[]string{"direction"}, nil,
		),
		uptime: prometheus.NewDesc(prometheus.BuildFQName(namespace, "", "uptime_seconds"),
			"Seconds since the daemon started",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.temperature
	ch <- c.fanOn
	ch <- c.transitions
	ch <- c.uptime
}

// Collect emits the temperature gauge only once a sample has been taken.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	snap := c.tracker.Snapshot()

	if snap.HasSample {
		ch <- prometheus.MustNewConstMetric(c.temperature, prometheus.GaugeValue, logic.Celsius(snap.TempMilliC))
	}

	fan := 0.0
	if snap.Fan.Active() {
		fan = 1
	}
	ch <- prometheus.MustNewConstMetric(c.fanOn, prometheus.GaugeValue, fan)
	ch <- prometheus.MustNewConstMetric(c.transitions, prometheus.CounterValue, float64(snap.Counts.On), "on")
	ch <- prometheus.MustNewConstMetric(c.transitions, prometheus.CounterValue, float64(snap.Counts.Off), "off")
	ch <- prometheus.MustNewConstMetric(c.uptime, prometheus.GaugeValue, snap.Uptime().Seconds())
}

// NewRegistry returns a registry holding only a Collector for tracker.
func NewRegistry(tracker *status.Tracker) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(tracker))
	return reg
}
