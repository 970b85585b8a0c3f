// Package sensehat defines the environmental/inertial sensor suite the
// acquisition loop samples. The hardware driver itself is an external
// collaborator; this package exposes the read surface the loop needs plus a
// simulated device for ground runs and tests.
package sensehat

import (
	"math/rand"
	"sync"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// Device is the sensor suite read surface. Each method reads one grouped
// output; any of them may fail on hardware faults.
type Device interface {
	Temperature() (float64, error)
	Humidity() (float64, error)
	Pressure() (float64, error)
	OrientationRadians() (model.Orientation, error)
	OrientationDegrees() (model.Orientation, error)
	Orientation() (model.Orientation, error)
	CompassRaw() (model.Axes, error)
	Gyroscope() (model.Orientation, error)
	GyroscopeRaw() (model.Axes, error)
	Accelerometer() (model.Orientation, error)
	AccelerometerRaw() (model.Axes, error)
}

// Sim is a deterministic simulated sensor suite. Readings wander inside
// plausible cabin ranges for an orbiting platform: mid-twenties board
// temperature, ~45% humidity, ~1013 mbar cabin pressure, and near-zero
// accelerations in microgravity.
type Sim struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSim constructs a simulated device with a fixed seed so runs are
// reproducible.
func NewSim(seed int64) *Sim {
	return &Sim{r: rand.New(rand.NewSource(seed))}
}

func (s *Sim) jitter(base, spread float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return base + (s.r.Float64()*2-1)*spread
}

func (s *Sim) Temperature() (float64, error) { return s.jitter(27.5, 2.5), nil }
func (s *Sim) Humidity() (float64, error)    { return s.jitter(45, 5), nil }
func (s *Sim) Pressure() (float64, error)    { return s.jitter(1013, 3), nil }

func (s *Sim) orientation(scale float64) model.Orientation {
	return model.Orientation{
		Roll:  s.jitter(0.5, 0.5) * scale,
		Pitch: s.jitter(0.5, 0.5) * scale,
		Yaw:   s.jitter(0.5, 0.5) * scale,
	}
}

func (s *Sim) OrientationRadians() (model.Orientation, error) {
	return s.orientation(6.28), nil
}

func (s *Sim) OrientationDegrees() (model.Orientation, error) {
	return s.orientation(360), nil
}

func (s *Sim) Orientation() (model.Orientation, error) {
	return s.orientation(360), nil
}

func (s *Sim) CompassRaw() (model.Axes, error) {
	return model.Axes{
		X: s.jitter(0, 40),
		Y: s.jitter(0, 40),
		Z: s.jitter(0, 40),
	}, nil
}

func (s *Sim) Gyroscope() (model.Orientation, error) {
	return s.orientation(360), nil
}

func (s *Sim) GyroscopeRaw() (model.Axes, error) {
	return model.Axes{
		X: s.jitter(0, 0.05),
		Y: s.jitter(0, 0.05),
		Z: s.jitter(0, 0.05),
	}, nil
}

func (s *Sim) Accelerometer() (model.Orientation, error) {
	return s.orientation(360), nil
}

func (s *Sim) AccelerometerRaw() (model.Axes, error) {
	return model.Axes{
		X: s.jitter(0, 0.01),
		Y: s.jitter(0, 0.01),
		Z: s.jitter(0, 0.01),
	}, nil
}
