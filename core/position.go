package core

import (
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// PositionModel propagates a fixed two-line element set with SGP4 and
// reports the spacecraft's geodetic sub-point for a query instant.
type PositionModel struct {
	name string
	sat  satellite.Satellite
}

// NewPositionModel constructs a position model from a TLE set. The elements
// are parsed once at startup and reused for every query.
func NewPositionModel(set model.TLESet) *PositionModel {
	sat := satellite.TLEToSat(set.Line1, set.Line2, satellite.GravityWGS72)
	return &PositionModel{name: set.Name, sat: sat}
}

// Name returns the tracked object's name from the element set.
func (m *PositionModel) Name() string { return m.name }

// SubPoint propagates the orbit to t and returns the sub-satellite point.
// SGP4 signals decay or divergence through non-finite output, which is
// surfaced as an error so the caller can treat it as an iteration failure.
func (m *PositionModel) SubPoint(t time.Time) (model.SubPoint, error) {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	posECI, _ := satellite.Propagate(m.sat, year, int(month), day, hour, min, sec)
	if !isFinite(posECI.X) || !isFinite(posECI.Y) || !isFinite(posECI.Z) {
		return model.SubPoint{}, fmt.Errorf("sgp4 propagation of %q failed at %s", m.name, t.Format(time.RFC3339))
	}

	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)
	altKm, _, llRad := satellite.ECIToLLA(posECI, gmst)
	ll := satellite.LatLongDeg(llRad)

	return model.SubPoint{
		LatDeg: ll.Latitude,
		LonDeg: ll.Longitude,
		AltKm:  altKm,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
