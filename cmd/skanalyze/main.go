// Command skanalyze is the ground-side companion to the flight binary: it
// imports a run's telemetry CSV, optionally loads it into a SQLite database
// for ad-hoc querying, and writes an XLSX report with per-quantity day/night
// statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/analysis"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/logging"
)

func main() {
	var (
		csvPath  = flag.String("csv", "", "telemetry CSV produced by the flight binary (required)")
		dbPath   = flag.String("db", "", "SQLite database to load the run into (optional)")
		xlsxPath = flag.String("xlsx", "run-report.xlsx", "XLSX report to write")
	)
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "skanalyze: -csv is required")
		flag.Usage()
		os.Exit(2)
	}

	log := logging.New(logging.Config{Level: "info"})
	ctx := context.Background()

	if err := run(ctx, log, *csvPath, *dbPath, *xlsxPath); err != nil {
		log.Error(ctx, "analysis failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, log logging.Logger, csvPath, dbPath, xlsxPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open telemetry csv: %w", err)
	}
	defer f.Close()

	data, err := analysis.ParseRunCSV(f)
	if err != nil {
		return err
	}
	log.Info(ctx, "telemetry imported",
		logging.Int("records", len(data.Records)),
		logging.Int("skipped", data.Skipped),
	)

	if dbPath != "" {
		store, err := analysis.OpenStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.InsertRecords(ctx, data.Records); err != nil {
			return err
		}
		day, night, err := store.CountByDay(ctx)
		if err != nil {
			return err
		}
		log.Info(ctx, "run stored",
			logging.String("db", dbPath),
			logging.Int("day", day),
			logging.Int("night", night),
		)
	}

	stats := analysis.CalculateRunStatistics(data.Records)
	if err := analysis.ExportXLSX(xlsxPath, data, stats); err != nil {
		return err
	}
	log.Info(ctx, "report written", logging.String("xlsx", xlsxPath))
	return nil
}
