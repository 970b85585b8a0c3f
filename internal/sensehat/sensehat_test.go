package sensehat

import (
	"math"
	"testing"
)

func TestSim_ReadingsInPlausibleRanges(t *testing.T) {
	s := NewSim(42)
	for i := 0; i < 100; i++ {
		temp, err := s.Temperature()
		if err != nil {
			t.Fatalf("Temperature: %v", err)
		}
		if temp < 25 || temp > 30 {
			t.Errorf("temperature %v out of [25, 30]", temp)
		}

		hum, err := s.Humidity()
		if err != nil {
			t.Fatalf("Humidity: %v", err)
		}
		if hum < 40 || hum > 50 {
			t.Errorf("humidity %v out of [40, 50]", hum)
		}

		press, err := s.Pressure()
		if err != nil {
			t.Fatalf("Pressure: %v", err)
		}
		if press < 1010 || press > 1016 {
			t.Errorf("pressure %v out of [1010, 1016]", press)
		}

		accel, err := s.AccelerometerRaw()
		if err != nil {
			t.Fatalf("AccelerometerRaw: %v", err)
		}
		if math.Abs(accel.X) > 0.01 || math.Abs(accel.Y) > 0.01 || math.Abs(accel.Z) > 0.01 {
			t.Errorf("raw acceleration %+v too large for microgravity", accel)
		}
	}
}

func TestSim_DeterministicForSeed(t *testing.T) {
	a, b := NewSim(7), NewSim(7)
	for i := 0; i < 10; i++ {
		ta, _ := a.Temperature()
		tb, _ := b.Temperature()
		if ta != tb {
			t.Fatalf("reading %d diverged: %v vs %v", i, ta, tb)
		}
	}
}

// Compile-time check that the simulator satisfies the device surface.
var _ Device = (*Sim)(nil)
