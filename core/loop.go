package core

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/camera"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/csvlog"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/logging"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/observability"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/timectrl"
)

// Step identifies which part of an iteration failed.
type Step string

const (
	StepPropagate Step = "propagate"
	StepClassify  Step = "classify"
	StepCapture   Step = "capture"
	StepRecord    Step = "record"
)

// StepError carries the failing step's kind alongside the cause, so the
// loop driver can log and count failures without string matching.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string { return fmt.Sprintf("%s: %v", e.Step, e.Err) }
func (e *StepError) Unwrap() error { return e.Err }

// State is the loop's lifecycle state.
type State int

const (
	Running State = iota
	Terminated
)

// Deps are the collaborators the loop drives. They are owned exclusively by
// the loop for the duration of the run; there is no shared mutable state
// outside this struct.
type Deps struct {
	Position *PositionModel
	Camera   camera.Camera
	Sampler  *Sampler
	CSV      *csvlog.Writer
	Log      logging.Logger
	Metrics  *observability.MissionCollector
	Clock    timectrl.Clock
}

// Loop is the acquisition driver: one linear iteration per photo, a
// wall-clock exit condition, and no termination on per-iteration faults.
type Loop struct {
	cfg    Config
	deps   Deps
	tracer trace.Tracer

	photoNum int
	state    State
}

// NewLoop constructs the loop. Log and Clock default to a noop logger and
// the system clock when unset.
func NewLoop(cfg Config, deps Deps) *Loop {
	if deps.Log == nil {
		deps.Log = logging.Noop()
	}
	if deps.Clock == nil {
		deps.Clock = timectrl.SystemClock{}
	}
	return &Loop{
		cfg:    cfg,
		deps:   deps,
		tracer: otel.Tracer("spacekludgers/acquisition"),
	}
}

// PhotoNum returns the next photo sequence number.
func (l *Loop) PhotoNum() int { return l.photoNum }

// State returns the loop's lifecycle state.
func (l *Loop) State() State { return l.state }

// Run executes iterations until the wall clock reaches start + RunDuration,
// or the context is cancelled. Individual iteration failures are logged and
// absorbed; they never end the run.
func (l *Loop) Run(ctx context.Context) error {
	start := l.deps.Clock.Now()
	deadline := start.Add(l.cfg.RunDuration)

	l.deps.Log.Info(ctx, "starting acquisition job",
		logging.String("start", start.Format(time.RFC3339)),
		logging.String("deadline", deadline.Format(time.RFC3339)),
	)

	for {
		now := l.deps.Clock.Now()
		if !now.Before(deadline) {
			break
		}
		if ctx.Err() != nil {
			l.deps.Log.Warn(ctx, "acquisition interrupted", logging.String("reason", ctx.Err().Error()))
			l.state = Terminated
			return ctx.Err()
		}

		delay, err := l.iterate(ctx, now)
		if err != nil {
			step := Step("unknown")
			if se, ok := err.(*StepError); ok {
				step = se.Step
			}
			l.deps.Log.Error(ctx, "iteration failed",
				logging.String("step", string(step)),
				logging.String("error", err.Error()),
				logging.Int("photo_num", l.photoNum),
			)
			if l.deps.Metrics != nil {
				l.deps.Metrics.IterationFailures.WithLabelValues(string(step)).Inc()
			}
			l.deps.Clock.Sleep(l.cfg.FailureBackoff)
		} else {
			l.deps.Clock.Sleep(delay)
		}

		// The next photo gets a fresh name even when this iteration failed.
		l.photoNum++
	}

	l.state = Terminated
	l.deps.Log.Info(ctx, "completed acquisition job",
		logging.String("end", l.deps.Clock.Now().Format(time.RFC3339)),
		logging.Int("iterations", l.photoNum),
	)
	return nil
}

// iterate performs one acquisition pass and returns the cadence delay to
// sleep before the next one. A capture failure does not short-circuit the
// telemetry row; the row is written first and the capture error reported
// after, so the driver still applies the failure backoff.
func (l *Loop) iterate(ctx context.Context, now time.Time) (time.Duration, error) {
	ctx, span := l.tracer.Start(ctx, "acquisition.iteration",
		trace.WithAttributes(attribute.Int("photo_num", l.photoNum)),
	)
	defer span.End()

	sp, err := l.deps.Position.SubPoint(now)
	if err != nil {
		return 0, &StepError{Step: StepPropagate, Err: err}
	}
	l.deps.Log.Info(ctx, "sub-point computed",
		logging.Float("longitude", sp.LonDeg),
		logging.Float("latitude", sp.LatDeg),
	)

	day := SunAboveHorizon(sp.LatDeg, sp.LonDeg, now.UTC())
	l.deps.Log.Info(ctx, "day/night classified", logging.Bool("day", day))
	if l.deps.Metrics != nil {
		l.deps.Metrics.SetDaylight(day)
	}
	span.SetAttributes(
		attribute.Bool("day", day),
		attribute.Float64("latitude", sp.LatDeg),
		attribute.Float64("longitude", sp.LonDeg),
	)

	// GPS EXIF metadata. A tagging failure is logged and skipped; the
	// photo is still worth capturing without it.
	if tags, err := GPSTagsFromSubPoint(sp); err != nil {
		l.deps.Log.Error(ctx, "gps exif tagging failed", logging.String("error", err.Error()))
	} else {
		for name, value := range tags.Map() {
			l.deps.Camera.SetTag(name, value)
		}
	}

	photoPath := l.cfg.PhotoPath(l.photoNum)
	l.deps.Log.Info(ctx, "capturing photo",
		logging.Int("photo_num", l.photoNum),
		logging.String("file", photoPath),
	)
	var captureErr error
	if err := l.deps.Camera.Capture(ctx, photoPath); err != nil {
		captureErr = &StepError{Step: StepCapture, Err: err}
	} else {
		if l.deps.Metrics != nil {
			l.deps.Metrics.PhotosCaptured.Inc()
		}
		l.deps.Log.Info(ctx, "captured photo", logging.String("file", photoPath))
	}

	// The telemetry row is written even when the capture failed: the CSV
	// column count and row cadence are independent of photo success.
	rec := l.deps.Sampler.Sample(ctx, now, day, sp, l.photoNum)
	if err := l.deps.CSV.Append(rec.CSVRow()); err != nil {
		return 0, &StepError{Step: StepRecord, Err: err}
	}
	if l.deps.Metrics != nil {
		l.deps.Metrics.TelemetryRows.Inc()
	}

	delay := CadenceDelay(day)
	if l.deps.Metrics != nil {
		l.deps.Metrics.CadenceSeconds.Set(delay.Seconds())
	}
	if captureErr != nil {
		return 0, captureErr
	}

	l.deps.Log.Info(ctx, "delay until next photo", logging.Float("seconds", delay.Seconds()))
	return delay, nil
}
