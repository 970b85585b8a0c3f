package model

// TLESet is a NORAD two-line element set plus the object's name, fixed at
// startup and never reloaded during a run.
type TLESet struct {
	Name  string
	Line1 string
	Line2 string
}

// SubPoint is the geodetic point directly beneath the spacecraft at an
// instant. Latitude and longitude are in degrees, altitude in kilometres.
type SubPoint struct {
	LatDeg float64
	LonDeg float64
	AltKm  float64
}
