package core

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/csvlog"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/sensehat"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/timectrl"
)

// scriptedCamera records captures and fails the call numbers listed in
// failOn.
type scriptedCamera struct {
	mu       sync.Mutex
	tags     map[string]string
	captures []string
	failOn   map[int]bool
}

func newScriptedCamera(failOn ...int) *scriptedCamera {
	fails := make(map[int]bool, len(failOn))
	for _, n := range failOn {
		fails[n] = true
	}
	return &scriptedCamera{tags: map[string]string{}, failOn: fails}
}

func (c *scriptedCamera) SetTag(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[name] = value
}

func (c *scriptedCamera) Capture(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.captures)
	c.captures = append(c.captures, path)
	if c.failOn[n] {
		return errors.New("camera busy")
	}
	return nil
}

func newTestLoop(t *testing.T, cfg Config, cam *scriptedCamera, clock timectrl.Clock) (*Loop, *csvlog.Writer) {
	t.Helper()
	w, err := csvlog.Create(cfg.CSVPath(), model.CSVHeader())
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	loop := NewLoop(cfg, Deps{
		Position: NewPositionModel(issTLE),
		Camera:   cam,
		Sampler:  NewSampler(sensehat.NewSim(1), nil, nil),
		CSV:      w,
		Clock:    clock,
	})
	return loop, w
}

func readCSVRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	return rows
}

func TestLoop_RunUntilDeadline(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.RunDuration = time.Minute
	clock := timectrl.NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	cam := newScriptedCamera()
	loop, _ := newTestLoop(t, cfg, cam, clock)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loop.State() != Terminated {
		t.Errorf("state = %v, want Terminated", loop.State())
	}

	iterations := loop.PhotoNum()
	if iterations < 3 {
		t.Fatalf("only %d iterations in a 60s window", iterations)
	}
	if got := len(cam.captures); got != iterations {
		t.Errorf("captures = %d, want %d", got, iterations)
	}

	// Each delay matches one of the two cadence values.
	for i, d := range clock.Slept() {
		if d != DayCadence && d != NightCadence {
			t.Errorf("sleep %d = %v, want %v or %v", i, d, DayCadence, NightCadence)
		}
	}

	// One telemetry row per iteration, photo numbers dense from zero.
	rows := readCSVRows(t, cfg.CSVPath())
	if len(rows) != iterations+1 {
		t.Fatalf("csv rows = %d, want %d", len(rows), iterations+1)
	}
	for i, row := range rows[1:] {
		if len(row) != model.ColumnCount {
			t.Errorf("row %d arity = %d, want %d", i, len(row), model.ColumnCount)
		}
		if num, err := strconv.Atoi(row[4]); err != nil || num != i {
			t.Errorf("row %d photo number = %q, want %d", i, row[4], i)
		}
	}
}

func TestLoop_CaptureFailureDoesNotSkipTelemetry(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.RunDuration = 30 * time.Second
	clock := timectrl.NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	cam := newScriptedCamera(0)
	loop, _ := newTestLoop(t, cfg, cam, clock)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The failed iteration still produced its row, kept its photo number,
	// and was followed by the failure backoff instead of the cadence delay.
	rows := readCSVRows(t, cfg.CSVPath())
	if len(rows) != loop.PhotoNum()+1 {
		t.Fatalf("csv rows = %d, want %d", len(rows), loop.PhotoNum()+1)
	}
	slept := clock.Slept()
	if len(slept) == 0 || slept[0] != cfg.FailureBackoff {
		t.Errorf("first sleep = %v, want backoff %v", slept, cfg.FailureBackoff)
	}
	if num, err := strconv.Atoi(rows[2][4]); err != nil || num != 1 {
		t.Errorf("photo number after failure = %q, want 1", rows[2][4])
	}
}

func TestLoop_GPSTagsReachCamera(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.RunDuration = 10 * time.Second
	clock := timectrl.NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	cam := newScriptedCamera()
	loop, _ := newTestLoop(t, cfg, cam, clock)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, tag := range []string{
		"GPS.GPSLatitudeRef", "GPS.GPSLatitude",
		"GPS.GPSLongitudeRef", "GPS.GPSLongitude",
	} {
		if _, ok := cam.tags[tag]; !ok {
			t.Errorf("camera missing EXIF tag %s", tag)
		}
	}
}

func TestLoop_CancelledContextStopsRun(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	clock := timectrl.NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	loop, _ := newTestLoop(t, cfg, newScriptedCamera(), clock)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run = %v, want context.Canceled", err)
	}
	if loop.State() != Terminated {
		t.Errorf("state = %v, want Terminated", loop.State())
	}
	if loop.PhotoNum() != 0 {
		t.Errorf("iterations = %d, want 0", loop.PhotoNum())
	}
}

func TestLoop_ZeroDurationRunsNoIterations(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.RunDuration = 0
	clock := timectrl.NewManualClock(time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC))
	cam := newScriptedCamera()
	loop, _ := newTestLoop(t, cfg, cam, clock)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if loop.PhotoNum() != 0 || len(cam.captures) != 0 {
		t.Errorf("expected no iterations, got %d photos", len(cam.captures))
	}
}
