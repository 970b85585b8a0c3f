// Package analysis implements the post-flight ground tooling: importing a
// run's telemetry CSV, storing it in SQLite, computing summary statistics,
// and exporting an XLSX report.
package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// RunData is a parsed telemetry CSV: the header row plus every well-formed
// data record.
type RunData struct {
	Header  []string
	Records []model.TelemetryRecord
	Skipped int // malformed data rows dropped during import
}

// ParseRunCSV parses a spacekludgers telemetry CSV. The header must carry
// the expected leading columns; malformed data rows are skipped rather than
// failing the import, since a run that lost power mid-row is still worth
// analysing.
func ParseRunCSV(r io.Reader) (*RunData, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // arity is checked per row below

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read telemetry csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("telemetry csv is empty")
	}

	header := rows[0]
	if !isTelemetryHeader(header) {
		return nil, fmt.Errorf("first row is not a telemetry header: %v", header)
	}

	data := &RunData{Header: header}
	for _, row := range rows[1:] {
		rec, err := recordFromRow(row)
		if err != nil {
			data.Skipped++
			continue
		}
		data.Records = append(data.Records, rec)
	}
	if len(data.Records) == 0 {
		return nil, fmt.Errorf("no valid telemetry records found")
	}
	return data, nil
}

// isTelemetryHeader checks the leading columns that every run CSV carries.
func isTelemetryHeader(row []string) bool {
	if len(row) != model.ColumnCount {
		return false
	}
	expected := []string{"Date/time", "Day or Night", "Longitude", "Latitude", "Photo Number"}
	for i, want := range expected {
		if !strings.EqualFold(strings.TrimSpace(row[i]), want) {
			return false
		}
	}
	return true
}

func recordFromRow(row []string) (model.TelemetryRecord, error) {
	var rec model.TelemetryRecord
	if len(row) != model.ColumnCount {
		return rec, fmt.Errorf("row has %d fields, want %d", len(row), model.ColumnCount)
	}

	ts, err := time.Parse(model.TimestampLayout, row[0])
	if err != nil {
		return rec, fmt.Errorf("timestamp %q: %w", row[0], err)
	}
	day, err := strconv.ParseBool(strings.ToLower(row[1]))
	if err != nil {
		return rec, fmt.Errorf("day flag %q: %w", row[1], err)
	}
	photoNum, err := strconv.Atoi(row[4])
	if err != nil {
		return rec, fmt.Errorf("photo number %q: %w", row[4], err)
	}

	vals := make([]float64, 0, model.ColumnCount-3)
	for _, idx := range []int{2, 3} {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return rec, fmt.Errorf("column %d %q: %w", idx, row[idx], err)
		}
		vals = append(vals, v)
	}
	sensors := make([]float64, 0, 27)
	for idx := 5; idx < model.ColumnCount; idx++ {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return rec, fmt.Errorf("column %d %q: %w", idx, row[idx], err)
		}
		sensors = append(sensors, v)
	}

	rec = model.TelemetryRecord{
		Timestamp: ts,
		Day:       day,
		Longitude: vals[0],
		Latitude:  vals[1],
		PhotoNum:  photoNum,

		Env:              model.Environment{TemperatureC: sensors[0], HumidityPct: sensors[1], PressureMbar: sensors[2]},
		OrientationRad:   model.Orientation{Roll: sensors[3], Pitch: sensors[4], Yaw: sensors[5]},
		OrientationDeg:   model.Orientation{Roll: sensors[6], Pitch: sensors[7], Yaw: sensors[8]},
		OrientationFused: model.Orientation{Roll: sensors[9], Pitch: sensors[10], Yaw: sensors[11]},
		CompassRaw:       model.Axes{X: sensors[12], Y: sensors[13], Z: sensors[14]},
		Gyro:             model.Orientation{Roll: sensors[15], Pitch: sensors[16], Yaw: sensors[17]},
		GyroRaw:          model.Axes{X: sensors[18], Y: sensors[19], Z: sensors[20]},
		Accel:            model.Orientation{Roll: sensors[21], Pitch: sensors[22], Yaw: sensors[23]},
		AccelRaw:         model.Axes{X: sensors[24], Y: sensors[25], Z: sensors[26]},
	}
	return rec, nil
}
