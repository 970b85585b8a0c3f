package core

import "time"

// Capture cadence policy. The acquisition window totals 178 minutes, split
// roughly half day and half night. Measured photo sizes are ~3077 KB in
// daylight and ~1000 KB at night; one photo every 7 s by day (~771 photos)
// and every 20 s by night (~270 photos) keeps the total volume near 2.6 GB,
// under the 3 GB storage budget with margin for the CSV and log files.
// This is a fixed policy table, not a computed function.
const (
	DayCadence   = 7 * time.Second
	NightCadence = 20 * time.Second
)

// CadenceDelay returns the delay before the next capture for the given
// day/night state.
func CadenceDelay(day bool) time.Duration {
	if day {
		return DayCadence
	}
	return NightCadence
}
