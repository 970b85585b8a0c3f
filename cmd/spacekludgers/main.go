// Command spacekludgers is the flight binary: a fixed-duration acquisition
// loop that photographs the ground track and logs the sensor suite for 178
// minutes. All configuration is compiled in; there are no flags, environment
// variables, or network interfaces.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/core"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/camera"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/csvlog"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/logging"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/observability"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/sensehat"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/timectrl"
)

// Orbital elements of the platform, fixed at startup and never reloaded.
var tle = model.TLESet{
	Name:  "ISS (ZARYA)",
	Line1: "1 25544U 98067A   20041.35648148  .00000452  00000-0  16324-4 0  9997",
	Line2: "2 25544  51.6446 260.9599 0004888 249.2039  92.3149 15.49151626212198",
}

func main() {
	cfg := core.DefaultConfig(runDir())

	// Output files, camera, and sensor suite are one-time preconditions:
	// failing to acquire any of them ends the process before the loop starts.
	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fatal("open mission log: %v", err)
	}
	defer logFile.Close()
	log := logging.NewMission("spacekludgers", io.MultiWriter(logFile, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing writes spans to a run-dir file; it is best-effort and never
	// blocks the mission.
	tracingCfg := observability.TracingConfig{ServiceName: "spacekludgers"}
	traceFile, err := os.Create(cfg.TracePath())
	if err != nil {
		log.Warn(ctx, "trace file unavailable, tracing disabled", logging.String("error", err.Error()))
	} else {
		defer traceFile.Close()
		tracingCfg.Enabled = true
		tracingCfg.Writer = traceFile
	}
	shutdownTracing, err := observability.InitTracing(ctx, tracingCfg, log)
	if err != nil {
		log.Warn(ctx, "tracing init failed", logging.String("error", err.Error()))
	} else {
		defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)
	}

	metrics, err := observability.NewMissionCollector(nil)
	if err != nil {
		log.Warn(ctx, "metrics init failed", logging.String("error", err.Error()))
	}

	csvWriter, err := csvlog.Create(cfg.CSVPath(), model.CSVHeader())
	if err != nil {
		fatal("create telemetry csv: %v", err)
	}

	cam, err := camera.NewStill(camera.StillConfig{
		Width:   cfg.CameraWidth,
		Height:  cfg.CameraHeight,
		Quality: cfg.JPEGQuality,
	})
	if err != nil {
		fatal("acquire camera: %v", err)
	}

	// The simulated suite stands in for the flight sensor driver, which is
	// an external collaborator behind the sensehat.Device interface.
	hat := sensehat.NewSim(42)

	loop := core.NewLoop(cfg, core.Deps{
		Position: core.NewPositionModel(tle),
		Camera:   cam,
		Sampler:  core.NewSampler(hat, log, metrics),
		CSV:      csvWriter,
		Log:      log,
		Metrics:  metrics,
		Clock:    timectrl.SystemClock{},
	})

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fatal("acquisition loop: %v", err)
	}
}

// runDir mirrors the original deployment convention: all artifacts live next
// to the executable.
func runDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "spacekludgers: "+format+"\n", args...)
	os.Exit(1)
}
