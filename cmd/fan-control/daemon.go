package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	oklogrun "github.com/oklog/run"

	"github.com/sweeney/fan-control/internal/config"
	"github.com/sweeney/fan-control/internal/control"
	"github.com/sweeney/fan-control/internal/gpio"
	"github.com/sweeney/fan-control/internal/logic"
	"github.com/sweeney/fan-control/internal/metrics"
	"github.com/sweeney/fan-control/internal/mqtt"
	"github.com/sweeney/fan-control/internal/status"
	"github.com/sweeney/fan-control/internal/thermal"
	"github.com/sweeney/fan-control/internal/ui"
	"github.com/sweeney/fan-control/internal/web"
)

const shutdownTimeout = 5 * time.Second

func run(cfg config.Config) error {
	tracker := status.NewTracker(time.Now(), statusConfig(cfg))
	publisher := newPublisher(cfg.Broker, tracker)
	defer publisher.Close()

	reporter := &control.Reporter{Tracker: tracker, Publisher: publisher}

	ui.Info("started: chip=%s offset=%d on=%.1f°C off=%.1f°C interval=%v sensor=%s",
		cfg.Chip, cfg.Offset, logic.Celsius(cfg.Thresholds.On), logic.Celsius(cfg.Thresholds.Off), cfg.Interval, cfg.SensorPath)

	line, err := gpio.Open(cfg.Chip, cfg.Offset)
	if err != nil {
		err = fmt.Errorf("open fan line: %w", err)
		reporter.Lifecycle(mqtt.EventFault, err.Error())
		return err
	}

	reporter.Lifecycle(mqtt.EventStartup, "")

	stop := &control.Stopper{}
	loop := control.New(thermal.NewFileSource(cfg.SensorPath), line, cfg.Thresholds, stop, reporter)

	var g oklogrun.Group
	{
		// === control loop
		ticker := time.NewTicker(cfg.Interval)
		g.Add(func() error {
			defer ticker.Stop()
			return loop.Run(ticker.C)
		}, func(error) {
			stop.Request("interrupted")
		})
	}
	if cfg.HTTPAddr != "" {
		// === status server
		srv := web.New(cfg.HTTPAddr, tracker, metrics.NewRegistry(tracker))
		done := make(chan struct{})
		g.Add(func() error {
			ui.Info("http status server listening on %s", srv.Addr())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Warning("http status server: %v", err)
			}
			<-done
			return nil
		}, func(error) {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				ui.Warning("stop http status server: %v", err)
			}
			close(done)
		})
	}
	{
		// === signals
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		done := make(chan struct{})
		g.Add(func() error {
			for {
				select {
				case s := <-sig:
					name := signalName(s)
					ui.Info("received %s, shutting down", name)
					stop.Request(name)
				case <-done:
					return nil
				}
			}
		}, func(error) {
			signal.Stop(sig)
			close(done)
		})
	}

	// The loop actor is the only one that returns on its own, so its
	// result is the group's result.
	loopErr := g.Run()
	if loopErr != nil {
		reporter.Lifecycle(mqtt.EventFault, loopErr.Error())
		return loopErr
	}
	reporter.Lifecycle(mqtt.EventShutdown, stop.Reason())
	ui.Info("fan off, line released")
	return nil
}

// newPublisher returns a no-op publisher when broker is empty or the client
// cannot be created. MQTT is never fatal.
func newPublisher(broker string, tracker *status.Tracker) mqtt.Publisher {
	if broker == "" {
		return mqtt.NopPublisher{}
	}
	p, err := mqtt.NewRealPublisher(broker, tracker.SetMQTTConnected)
	if err != nil {
		ui.Warning("mqtt disabled: %v", err)
		return mqtt.NopPublisher{}
	}
	return p
}

func statusConfig(cfg config.Config) status.Config {
	return status.Config{
		Chip:          cfg.Chip,
		Offset:        cfg.Offset,
		OnTempMilliC:  cfg.Thresholds.On,
		OffTempMilliC: cfg.Thresholds.Off,
		IntervalMs:    cfg.Interval.Milliseconds(),
		SensorPath:    cfg.SensorPath,
		Broker:        cfg.Broker,
		HTTPAddr:      cfg.HTTPAddr,
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
