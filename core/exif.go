package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// GPSTags holds the four GPS EXIF values embedded into each photo, in the
// tag syntax shared by picamera and raspistill (degrees and minutes as n/1
// rationals, seconds as n/10 to keep one decimal digit).
type GPSTags struct {
	LatitudeRef  string // "N" or "S"
	Latitude     string // e.g. "23/1,26/1,140/10"
	LongitudeRef string // "E" or "W"
	Longitude    string
}

// Map returns the tags keyed by camera EXIF tag name.
func (t GPSTags) Map() map[string]string {
	return map[string]string{
		"GPS.GPSLatitudeRef":  t.LatitudeRef,
		"GPS.GPSLatitude":     t.Latitude,
		"GPS.GPSLongitudeRef": t.LongitudeRef,
		"GPS.GPSLongitude":    t.Longitude,
	}
}

// GPSTagsFromSubPoint derives GPS EXIF tags from the current sub-point.
// Each coordinate is rendered as a colon-delimited DMS string, parsed back
// into components, and formatted as EXIF rationals; the hemisphere reference
// comes from the sign of the decimal value.
func GPSTagsFromSubPoint(p model.SubPoint) (GPSTags, error) {
	latRef := "N"
	if p.LatDeg < 0 {
		latRef = "S"
	}
	lat, err := exifAngle(p.LatDeg)
	if err != nil {
		return GPSTags{}, fmt.Errorf("latitude %v: %w", p.LatDeg, err)
	}

	lonRef := "E"
	if p.LonDeg < 0 {
		lonRef = "W"
	}
	lon, err := exifAngle(p.LonDeg)
	if err != nil {
		return GPSTags{}, fmt.Errorf("longitude %v: %w", p.LonDeg, err)
	}

	return GPSTags{
		LatitudeRef:  latRef,
		Latitude:     lat,
		LongitudeRef: lonRef,
		Longitude:    lon,
	}, nil
}

// exifAngle renders a decimal angle through its DMS string form into the
// EXIF rational triple "d/1,m/1,s10/10".
func exifAngle(deg float64) (string, error) {
	d, m, s, err := ParseDMS(FormatDMS(deg))
	if err != nil {
		return "", err
	}
	d = math.Abs(d)
	return fmt.Sprintf("%d/1,%d/1,%d/10", int(d), int(m), int(math.Round(s*10))), nil
}

// FormatDMS renders decimal degrees as a colon-delimited
// degrees:minutes:seconds string with one decimal digit of arc-second
// precision, e.g. -23.43722 -> "-23:26:14.0". The sign is carried on the
// degrees component only.
func FormatDMS(deg float64) string {
	sign := ""
	if deg < 0 {
		sign = "-"
	}
	// Work in tenths of arc-seconds so rounding carries cleanly through
	// the minute and degree boundaries.
	tenths := int64(math.Round(math.Abs(deg) * 36000))
	d := tenths / 36000
	rem := tenths % 36000
	m := rem / 600
	s := float64(rem%600) / 10.0
	return fmt.Sprintf("%s%d:%d:%.1f", sign, d, m, s)
}

// ParseDMS splits a colon-delimited DMS string into its three components.
func ParseDMS(v string) (d, m, s float64, err error) {
	parts := strings.Split(v, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("malformed DMS string %q", v)
	}
	vals := make([]float64, 3)
	for i, p := range parts {
		vals[i], err = strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("malformed DMS component %q: %w", p, err)
		}
	}
	return vals[0], vals[1], vals[2], nil
}
