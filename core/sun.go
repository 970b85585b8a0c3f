package core

import (
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
)

const (
	// astronomicalUnitKm is the mean Earth-Sun distance.
	astronomicalUnitKm = 149597870.7

	// riseSetHorizonDeg is the horizon depression used by the mission design
	// for an idealised sea-level observer with refraction disabled
	// (pressure 0). It shifts rise/set times only; day/night classification
	// compares the geometric altitude against 0.
	riseSetHorizonDeg = -0.34

	j2000JD = 2451545.0
)

// SunAboveHorizon reports whether the Sun is above the geometric horizon for
// an observer at the given geodetic point at instant t. The test is strict:
// an apparent altitude of exactly 0° classifies as night.
func SunAboveHorizon(latDeg, lonDeg float64, t time.Time) bool {
	return SolarAltitudeDegrees(latDeg, lonDeg, t) > 0
}

// SolarAltitudeDegrees returns the Sun's altitude above the horizon, in
// degrees, for an idealised observer at (lat, lon) on the WGS-84 ellipsoid.
// Refraction is not applied.
func SolarAltitudeDegrees(latDeg, lonDeg float64, t time.Time) float64 {
	t = t.UTC()
	year, month, day := t.Date()
	hour, min, sec := t.Clock()
	jd := satellite.JDay(year, int(month), day, hour, min, sec)

	sunECI := sunVectorECI(jd)
	gmst := satellite.ThetaG_JD(jd)
	sunECEF := satellite.ECIToECEF(sunECI, gmst)

	observer := geodeticToECEF(latDeg, lonDeg, 0)
	return ElevationDegrees(observer, Vec3{X: sunECEF.X, Y: sunECEF.Y, Z: sunECEF.Z})
}

// sunVectorECI returns the Sun's position in the ECI frame (kilometres) at
// the given Julian date, using the low-precision series of the Astronomical
// Almanac: mean anomaly and mean longitude, equation of center, apparent
// ecliptic longitude with the 1934.136°/cy nutation node, and the mean
// obliquity. Accurate to well under 0.01°, far inside the classifier's
// tolerance.
func sunVectorECI(jd float64) satellite.Vector3 {
	// Julian centuries from J2000.0.
	tc := (jd - j2000JD) / 36525.0

	meanAnomaly := radians(modDeg(357.52911 + 35999.05029*tc - 0.0001537*tc*tc))
	meanLongitude := modDeg(280.46646 + 36000.76983*tc + 0.0003032*tc*tc)
	eccentricity := 0.016708634 - (0.000042037+0.0000001267*tc)*tc

	center := (1.914602-(0.004817+0.000014*tc)*tc)*math.Sin(meanAnomaly) +
		(0.019993-0.000101*tc)*math.Sin(2*meanAnomaly) +
		0.000289*math.Sin(3*meanAnomaly)

	trueLongitude := meanLongitude + center
	trueAnomaly := meanAnomaly + radians(center)

	// Distance in AU.
	r := 1.000001018 * (1 - eccentricity*eccentricity) / (1 + eccentricity*math.Cos(trueAnomaly))

	// Apparent longitude corrected for nutation and aberration.
	omega := radians(modDeg(125.04 - 1934.136*tc))
	lambda := radians(modDeg(trueLongitude - 0.00569 - 0.00478*math.Sin(omega)))

	// Mean obliquity of the ecliptic, with the nutation correction matching
	// the apparent longitude above.
	eps := radians(23.439291 - 0.0130042*tc + 0.00256*math.Cos(omega))

	rKm := r * astronomicalUnitKm
	return satellite.Vector3{
		X: rKm * math.Cos(lambda),
		Y: rKm * math.Sin(lambda) * math.Cos(eps),
		Z: rKm * math.Sin(lambda) * math.Sin(eps),
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// modDeg normalises an angle in degrees to [0, 360).
func modDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
