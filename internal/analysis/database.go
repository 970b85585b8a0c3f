package analysis

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

const telemetrySchema = `
CREATE TABLE IF NOT EXISTS telemetry (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	day INTEGER NOT NULL,
	longitude REAL NOT NULL,
	latitude REAL NOT NULL,
	photo_num INTEGER NOT NULL,
	temperature REAL NOT NULL,
	humidity REAL NOT NULL,
	pressure REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_telemetry_day ON telemetry(day);
`

// Store persists imported telemetry in SQLite for ad-hoc querying after the
// flight.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if necessary) the analysis database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open analysis database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping analysis database: %w", err)
	}
	if _, err := db.Exec(telemetrySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create telemetry schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// InsertRecords stores the run's records in one transaction.
func (s *Store) InsertRecords(ctx context.Context, records []model.TelemetryRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert transaction: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO telemetry (ts, day, longitude, latitude, photo_num, temperature, humidity, pressure)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		day := 0
		if rec.Day {
			day = 1
		}
		if _, err := stmt.ExecContext(ctx,
			rec.Timestamp.Format(model.TimestampLayout),
			day,
			rec.Longitude,
			rec.Latitude,
			rec.PhotoNum,
			rec.Env.TemperatureC,
			rec.Env.HumidityPct,
			rec.Env.PressureMbar,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record %d: %w", rec.PhotoNum, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit inserts: %w", err)
	}
	return nil
}

// CountByDay returns how many stored records were classified day vs night.
func (s *Store) CountByDay(ctx context.Context) (day, night int, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT day, COUNT(*) FROM telemetry GROUP BY day`)
	if err != nil {
		return 0, 0, fmt.Errorf("count by day: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var flag, count int
		if err := rows.Scan(&flag, &count); err != nil {
			return 0, 0, fmt.Errorf("scan day count: %w", err)
		}
		if flag == 1 {
			day = count
		} else {
			night = count
		}
	}
	return day, night, rows.Err()
}
