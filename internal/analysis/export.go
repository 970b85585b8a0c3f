package analysis

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// ExportXLSX writes the run report: a Summary sheet with day/night counts and
// per-quantity statistics, and a Telemetry sheet with every record in CSV
// column order.
func ExportXLSX(path string, data *RunData, stats map[string]*QuantityStatistics) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, data, stats); err != nil {
		return err
	}
	if err := writeTelemetrySheet(f, data); err != nil {
		return err
	}
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, data *RunData, stats map[string]*QuantityStatistics) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	day, night := 0, 0
	for _, rec := range data.Records {
		if rec.Day {
			day++
		} else {
			night++
		}
	}

	rows := [][]interface{}{
		{"Run Summary"},
		{},
		{"Records", len(data.Records)},
		{"Skipped rows", data.Skipped},
		{"Day records", day},
		{"Night records", night},
		{},
		{"Bucket", "Quantity", "Count", "Mean", "StdDev", "Min", "Max", "Range", "Median"},
	}
	for _, bucket := range []string{"day", "night"} {
		qs, ok := stats[bucket]
		if !ok {
			continue
		}
		for _, q := range []struct {
			name string
			s    *DataStatistics
		}{
			{"Temperature", qs.Temperature},
			{"Humidity", qs.Humidity},
			{"Pressure", qs.Pressure},
		} {
			if q.s == nil {
				continue
			}
			rows = append(rows, []interface{}{
				bucket, q.name, q.s.Count, q.s.Mean, q.s.StdDev, q.s.Min, q.s.Max, q.s.Range, q.s.Median,
			})
		}
	}

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("summary cell (%d,%d): %w", c+1, r+1, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("set summary cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeTelemetrySheet(f *excelize.File, data *RunData) error {
	const sheet = "Telemetry"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	for c, name := range model.CSVHeader() {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return fmt.Errorf("telemetry header cell %d: %w", c+1, err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("set telemetry header %s: %w", cell, err)
		}
	}
	for r, rec := range data.Records {
		for c, val := range rec.CSVRow() {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("telemetry cell (%d,%d): %w", c+1, r+2, err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("set telemetry cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
