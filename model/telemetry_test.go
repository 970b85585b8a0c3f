package model

import (
	"strconv"
	"testing"
	"time"
)

func TestCSVHeader(t *testing.T) {
	header := CSVHeader()
	if len(header) != ColumnCount {
		t.Fatalf("header has %d columns, want %d", len(header), ColumnCount)
	}
	if header[0] != "Date/time" || header[4] != "Photo Number" {
		t.Errorf("unexpected leading columns: %v", header[:5])
	}

	// CSVHeader must hand out a copy, not the canonical slice.
	header[0] = "mutated"
	if got := CSVHeader()[0]; got != "Date/time" {
		t.Errorf("canonical header mutated: %q", got)
	}
}

func TestTelemetryRecord_CSVRow(t *testing.T) {
	rec := TelemetryRecord{
		Timestamp: time.Date(2020, 2, 10, 14, 30, 15, 123456000, time.UTC),
		Day:       true,
		Longitude: -58.2,
		Latitude:  12.75,
		PhotoNum:  42,
		Env:       Environment{TemperatureC: 27.5, HumidityPct: 44.2, PressureMbar: 1013.25},
		AccelRaw:  Axes{X: 0.001, Y: -0.002, Z: 0.0005},
	}

	row := rec.CSVRow()
	if len(row) != ColumnCount {
		t.Fatalf("row has %d fields, want %d", len(row), ColumnCount)
	}
	if row[0] != "2020-02-10 14:30:15.123456" {
		t.Errorf("timestamp = %q", row[0])
	}
	if row[1] != "true" {
		t.Errorf("day flag = %q", row[1])
	}
	if row[4] != "42" {
		t.Errorf("photo number = %q", row[4])
	}
	if row[5] != "27.5" {
		t.Errorf("temperature = %q", row[5])
	}

	// The zero record still fills every numeric column with a parseable value.
	zero := (TelemetryRecord{Timestamp: rec.Timestamp}).CSVRow()
	for i := 2; i < ColumnCount; i++ {
		if i == 4 {
			continue // photo number, checked above
		}
		if _, err := strconv.ParseFloat(zero[i], 64); err != nil {
			t.Errorf("zero column %d = %q not numeric", i, zero[i])
		}
	}
}
