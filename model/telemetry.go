package model

import (
	"strconv"
	"time"
)

// Orientation is a roll/pitch/yaw triple. Units depend on the source group
// (radians, degrees, or the IMU's fused degree estimate).
type Orientation struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

// Axes is a raw x/y/z sensor reading (magnetometer µT, gyroscope rad/s,
// accelerometer g).
type Axes struct {
	X float64
	Y float64
	Z float64
}

// Environment groups the environmental readings of the sensor suite.
type Environment struct {
	TemperatureC float64
	HumidityPct  float64
	PressureMbar float64
}

// TelemetryRecord is one acquisition sample: the five leading context fields
// followed by nine sensor groups (27 scalars). When the sensor suite fails,
// the leading fields stay intact and every sensor group is zero.
type TelemetryRecord struct {
	Timestamp time.Time
	Day       bool
	Longitude float64
	Latitude  float64
	PhotoNum  int

	Env              Environment
	OrientationRad   Orientation
	OrientationDeg   Orientation
	OrientationFused Orientation
	CompassRaw       Axes
	Gyro             Orientation
	GyroRaw          Axes
	Accel            Orientation
	AccelRaw         Axes
}

// TimestampLayout is the wall-clock format used in the CSV's first column.
const TimestampLayout = "2006-01-02 15:04:05.000000"

// csvColumns is the canonical column list, in the fixed order every row must
// follow. It is the single source of truth for the CSV schema.
var csvColumns = []string{
	"Date/time",
	"Day or Night",
	"Longitude",
	"Latitude",
	"Photo Number",
	"Temperature",
	"Humidity",
	"Pressure",
	"Orientation Rad Roll",
	"Orientation Rad Pitch",
	"Orientation Rad Yaw",
	"Orientation Degrees Roll",
	"Orientation Degrees Pitch",
	"Orientation Degrees Yaw",
	"Orientation Roll",
	"Orientation Pitch",
	"Orientation Yaw",
	"Compass Raw X",
	"Compass Raw Y",
	"Compass Raw Z",
	"Gyro Only Roll",
	"Gyro Only Pitch",
	"Gyro Only Yaw",
	"Gyro Raw X",
	"Gyro Raw Y",
	"Gyro Raw Z",
	"Acceleration Only Roll",
	"Acceleration Only Pitch",
	"Acceleration Only Yaw",
	"Acceleration Raw X",
	"Acceleration Raw Y",
	"Acceleration Raw Z",
}

// ColumnCount is the fixed CSV arity (5 context fields + 27 sensor scalars).
const ColumnCount = 32

// CSVHeader returns a copy of the canonical header row.
func CSVHeader() []string {
	header := make([]string, len(csvColumns))
	copy(header, csvColumns)
	return header
}

// CSVRow flattens the record into the canonical column order. The result
// always has exactly ColumnCount fields.
func (r TelemetryRecord) CSVRow() []string {
	row := make([]string, 0, ColumnCount)
	row = append(row,
		r.Timestamp.Format(TimestampLayout),
		strconv.FormatBool(r.Day),
		formatFloat(r.Longitude),
		formatFloat(r.Latitude),
		strconv.Itoa(r.PhotoNum),
	)
	for _, v := range r.sensorValues() {
		row = append(row, formatFloat(v))
	}
	return row
}

// sensorValues returns the 27 sensor scalars in canonical order.
func (r TelemetryRecord) sensorValues() []float64 {
	return []float64{
		r.Env.TemperatureC, r.Env.HumidityPct, r.Env.PressureMbar,
		r.OrientationRad.Roll, r.OrientationRad.Pitch, r.OrientationRad.Yaw,
		r.OrientationDeg.Roll, r.OrientationDeg.Pitch, r.OrientationDeg.Yaw,
		r.OrientationFused.Roll, r.OrientationFused.Pitch, r.OrientationFused.Yaw,
		r.CompassRaw.X, r.CompassRaw.Y, r.CompassRaw.Z,
		r.Gyro.Roll, r.Gyro.Pitch, r.Gyro.Yaw,
		r.GyroRaw.X, r.GyroRaw.Y, r.GyroRaw.Z,
		r.Accel.Roll, r.Accel.Pitch, r.Accel.Yaw,
		r.AccelRaw.X, r.AccelRaw.Y, r.AccelRaw.Z,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
