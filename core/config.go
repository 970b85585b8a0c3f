package core

import (
	"fmt"
	"path/filepath"
	"time"
)

// Config holds the compiled-in mission constants. The flight binary has no
// runtime configurability; everything here is fixed at build time.
type Config struct {
	// Dir is the run directory holding the CSV log, mission log, and photos.
	Dir string

	// RunDuration is the acquisition window: 178 minutes, a deliberate
	// 2-minute safety buffer below the 180-minute hard limit.
	RunDuration time.Duration

	// FailureBackoff is how long the loop waits after a failed iteration
	// before trying again.
	FailureBackoff time.Duration

	CameraWidth  int
	CameraHeight int
	JPEGQuality  int

	CSVFileName   string
	LogFileName   string
	TraceFileName string
}

// DefaultConfig returns the mission constants rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		RunDuration:    178 * time.Minute,
		FailureBackoff: 5 * time.Second,
		CameraWidth:    2592,
		CameraHeight:   1944,
		JPEGQuality:    100,
		CSVFileName:    "spacekludgers.csv",
		LogFileName:    "spacekludgers.log",
		TraceFileName:  "spacekludgers-trace.json",
	}
}

// CSVPath returns the telemetry log path.
func (c Config) CSVPath() string { return filepath.Join(c.Dir, c.CSVFileName) }

// LogPath returns the mission log path.
func (c Config) LogPath() string { return filepath.Join(c.Dir, c.LogFileName) }

// TracePath returns the span log path.
func (c Config) TracePath() string { return filepath.Join(c.Dir, c.TraceFileName) }

// PhotoPath returns the photo path for a sequence number, zero-padded to
// three digits. Numbers are not reset across runs sharing a directory, so a
// collision overwrites.
func (c Config) PhotoPath(seq int) string {
	return filepath.Join(c.Dir, fmt.Sprintf("image_%03d.jpg", seq))
}
