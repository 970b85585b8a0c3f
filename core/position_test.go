package core

import (
	"math"
	"testing"
	"time"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

var issTLE = model.TLESet{
	Name:  "ISS (ZARYA)",
	Line1: "1 25544U 98067A   20041.35648148  .00000452  00000-0  16324-4 0  9997",
	Line2: "2 25544  51.6446 260.9599 0004888 249.2039  92.3149 15.49151626212198",
}

func TestPositionModel_SubPoint(t *testing.T) {
	pm := NewPositionModel(issTLE)
	at := time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC)

	sp, err := pm.SubPoint(at)
	if err != nil {
		t.Fatalf("SubPoint: %v", err)
	}
	if math.Abs(sp.LatDeg) > 51.7 {
		t.Errorf("latitude %v exceeds the orbit's inclination", sp.LatDeg)
	}
	if sp.LonDeg < -180 || sp.LonDeg > 180 {
		t.Errorf("longitude %v out of [-180, 180]", sp.LonDeg)
	}
	if sp.AltKm < 300 || sp.AltKm > 500 {
		t.Errorf("altitude %v km implausible for a station orbit", sp.AltKm)
	}
}

func TestPositionModel_SubPointMovesOverTime(t *testing.T) {
	pm := NewPositionModel(issTLE)
	t0 := time.Date(2020, 2, 10, 12, 0, 0, 0, time.UTC)

	a, err := pm.SubPoint(t0)
	if err != nil {
		t.Fatalf("SubPoint(t0): %v", err)
	}
	b, err := pm.SubPoint(t0.Add(10 * time.Minute))
	if err != nil {
		t.Fatalf("SubPoint(t0+10m): %v", err)
	}
	if a.LatDeg == b.LatDeg && a.LonDeg == b.LonDeg {
		t.Errorf("sub-point did not move over 10 minutes: %+v", a)
	}
}

func TestPositionModel_Name(t *testing.T) {
	if got := NewPositionModel(issTLE).Name(); got != "ISS (ZARYA)" {
		t.Errorf("Name() = %q", got)
	}
}
