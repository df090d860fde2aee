package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"celsius": func(milli int) string {
		return fmt.Sprintf("%.1f°C", logic.Celsius(milli))
	},
	"rfc3339": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return t.UTC().Format(time.RFC3339)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="refresh" content="10">
<title>Fan Control</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Fan Control</h1>

<h2>State</h2>
<table>
<tr><th>Fan</th><td id="fan-state" class="{{if .Fan.Active}}on{{else}}off{{end}}">{{.Fan}}</td></tr>
<tr><th>Temperature</th><td id="temp">{{if .HasSample}}{{celsius .TempMilliC}}{{else}}no sample{{end}}</td></tr>
<tr><th>Last sample</th><td>{{rfc3339 .LastSample}}</td></tr>
<tr><th>Last change</th><td>{{rfc3339 .LastChange}}</td></tr>
</table>

<h2>Thresholds</h2>
<table>
<tr><th>On at</th><td>{{celsius .Config.OnTempMilliC}}</td></tr>
<tr><th>Off at</th><td>{{celsius .Config.OffTempMilliC}}</td></tr>
</table>

<h2>Event Counts</h2>
<table>
<tr><th>FAN ON</th><td>{{.Counts.On}}</td></tr>
<tr><th>FAN OFF</th><td>{{.Counts.Off}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
{{if .Config.Broker}}<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>{{else}}<tr><th>MQTT</th><td>disabled</td></tr>{{end}}
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Line</th><td>{{.Config.Chip}} #{{.Config.Offset}}</td></tr>
<tr><th>Sensor</th><td>{{.Config.SensorPath}}</td></tr>
<tr><th>Interval</th><td>{{.Config.IntervalMs}}ms</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> | <a href="/metrics">metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
