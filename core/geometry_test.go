package core

import (
	"math"
	"testing"
)

func TestGeodeticToECEF(t *testing.T) {
	// Equator on the prime meridian sits on the X axis at one Earth radius.
	p := geodeticToECEF(0, 0, 0)
	if math.Abs(p.X-wgs84AKm) > 1e-6 || math.Abs(p.Y) > 1e-6 || math.Abs(p.Z) > 1e-6 {
		t.Errorf("equator point = %+v, want (%v, 0, 0)", p, wgs84AKm)
	}

	// The pole's Z is the polar radius, shorter than the equatorial one.
	pole := geodeticToECEF(90, 0, 0)
	if pole.Z >= wgs84AKm || pole.Z < 6356 {
		t.Errorf("polar Z = %v, want polar radius ~6356.75", pole.Z)
	}

	// Altitude adds along the local vertical.
	high := geodeticToECEF(0, 0, 400)
	if math.Abs(high.X-(wgs84AKm+400)) > 1e-6 {
		t.Errorf("equator at 400 km = %v, want %v", high.X, wgs84AKm+400)
	}
}

func TestElevationDegrees(t *testing.T) {
	observer := geodeticToECEF(0, 0, 0)

	// Directly overhead.
	overhead := Vec3{X: observer.X * 2, Y: 0, Z: 0}
	if got := ElevationDegrees(observer, overhead); math.Abs(got-90) > 1e-9 {
		t.Errorf("overhead elevation = %v, want 90", got)
	}

	// Directly below.
	below := Vec3{X: 0, Y: 0, Z: 0}
	if got := ElevationDegrees(observer, below); math.Abs(got+90) > 1e-9 {
		t.Errorf("nadir elevation = %v, want -90", got)
	}

	// A distant target along the observer's horizon plane.
	horizon := Vec3{X: observer.X, Y: 1e6, Z: 0}
	if got := ElevationDegrees(observer, horizon); math.Abs(got) > 0.01 {
		t.Errorf("horizon elevation = %v, want ~0", got)
	}
}
