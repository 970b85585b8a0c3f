package camera

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"sync"
)

// Sim is a camera stand-in for ground runs and tests. Captures encode a
// small synthetic gradient frame; staged EXIF tags are retained for
// inspection rather than embedded.
type Sim struct {
	Width   int
	Height  int
	Quality int

	mu       sync.Mutex
	tags     map[string]string
	captures int
}

// NewSim returns a simulated camera producing frames of the given size.
func NewSim(width, height, quality int) *Sim {
	return &Sim{Width: width, Height: height, Quality: quality, tags: make(map[string]string)}
}

// SetTag stages an EXIF tag. Implements Camera.
func (s *Sim) SetTag(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[name] = value
}

// Capture encodes a synthetic JPEG frame to path. Implements Camera.
func (s *Sim) Capture(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.captures++
	n := s.captures
	s.mu.Unlock()

	// Tiny frame: the content only needs to be a valid JPEG.
	const size = 32
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / size),
				G: uint8(y * 255 / size),
				B: uint8(n),
				A: 255,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create photo %s: %w", path, err)
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: s.Quality}); err != nil {
		f.Close()
		return fmt.Errorf("encode photo: %w", err)
	}
	return f.Close()
}

// Tags returns a copy of the staged EXIF tags.
func (s *Sim) Tags() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.tags))
	for k, v := range s.tags {
		out[k] = v
	}
	return out
}

// Captures returns how many photos have been taken.
func (s *Sim) Captures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.captures
}
