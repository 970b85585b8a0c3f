// Package camera abstracts the still camera. The flight implementation
// shells out to the Raspberry Pi capture tool; the simulated implementation
// encodes a synthetic JPEG so the acquisition loop can run anywhere.
package camera

import (
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Camera takes one still per call. EXIF tags set before a capture are
// embedded into the next photo.
type Camera interface {
	// SetTag stages an EXIF tag (e.g. "GPS.GPSLatitude") for the next capture.
	SetTag(name, value string)
	// Capture writes a JPEG to path.
	Capture(ctx context.Context, path string) error
}

// StillConfig configures the Pi capture tool invocation.
type StillConfig struct {
	Binary  string // capture binary; discovered when empty
	Width   int
	Height  int
	Quality int // JPEG quality; 100 disables lossy compression
	Timeout time.Duration
}

// captureBinaries are probed in order when no binary is configured. Legacy
// Pi OS ships raspistill; Bullseye and later ship libcamera-still.
var captureBinaries = []string{"raspistill", "libcamera-still"}

// Still drives the Raspberry Pi camera via its capture tool, passing EXIF
// tags with -x the way picamera's exif_tags dict does.
type Still struct {
	cfg StillConfig

	mu   sync.Mutex
	tags map[string]string
}

// NewStill verifies the capture tool is available and returns the camera.
// A missing tool is a startup failure, not a per-iteration one.
func NewStill(cfg StillConfig) (*Still, error) {
	if cfg.Binary != "" {
		if _, err := exec.LookPath(cfg.Binary); err != nil {
			return nil, fmt.Errorf("camera binary %q not found: %w", cfg.Binary, err)
		}
	} else {
		for _, candidate := range captureBinaries {
			if _, err := exec.LookPath(candidate); err == nil {
				cfg.Binary = candidate
				break
			}
		}
		if cfg.Binary == "" {
			return nil, fmt.Errorf("no capture tool found (tried %v)", captureBinaries)
		}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Still{cfg: cfg, tags: make(map[string]string)}, nil
}

// SetTag stages an EXIF tag for subsequent captures.
func (s *Still) SetTag(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[name] = value
}

// Capture invokes the capture tool once, blocking until the photo is
// written or the timeout expires.
func (s *Still) Capture(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	args := s.buildArgs(path)
	cmd := exec.CommandContext(ctx, s.cfg.Binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (output: %s)", s.cfg.Binary, err, out)
	}
	return nil
}

func (s *Still) buildArgs(path string) []string {
	args := []string{
		"-o", path,
		"-q", strconv.Itoa(s.cfg.Quality),
		"-w", strconv.Itoa(s.cfg.Width),
		"-h", strconv.Itoa(s.cfg.Height),
		"-n", // no preview
		"-t", "1000",
	}

	s.mu.Lock()
	names := make([]string, 0, len(s.tags))
	for name := range s.tags {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "-x", name+"="+s.tags[name])
	}
	s.mu.Unlock()

	return args
}
