package core

import (
	"context"
	"time"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/logging"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/observability"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/internal/sensehat"
	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// Sampler reads the sensor suite and produces fixed-shape telemetry records.
// Sample never fails: a fault anywhere in the suite yields a record with the
// five leading fields intact and every sensor scalar zero, so the CSV schema
// holds regardless of hardware state.
type Sampler struct {
	dev     sensehat.Device
	log     logging.Logger
	metrics *observability.MissionCollector
}

// NewSampler constructs a sampler over the given device. metrics may be nil.
func NewSampler(dev sensehat.Device, log logging.Logger, metrics *observability.MissionCollector) *Sampler {
	if log == nil {
		log = logging.Noop()
	}
	return &Sampler{dev: dev, log: log, metrics: metrics}
}

// Sample reads all nine sensor groups in their fixed order and flattens them
// into one telemetry record alongside the acquisition context.
func (s *Sampler) Sample(ctx context.Context, now time.Time, day bool, sp model.SubPoint, photoNum int) model.TelemetryRecord {
	rec := model.TelemetryRecord{
		Timestamp: now,
		Day:       day,
		Longitude: sp.LonDeg,
		Latitude:  sp.LatDeg,
		PhotoNum:  photoNum,
	}

	if err := s.readInto(&rec); err != nil {
		// Zero-filled fallback: the groups already read are discarded so a
		// partial suite failure cannot produce a half-real record.
		s.log.Error(ctx, "sensor suite read failed, zero-filling record",
			logging.String("error", err.Error()),
			logging.Int("photo_num", photoNum),
		)
		if s.metrics != nil {
			s.metrics.SensorFallbacks.Inc()
		}
		return model.TelemetryRecord{
			Timestamp: rec.Timestamp,
			Day:       rec.Day,
			Longitude: rec.Longitude,
			Latitude:  rec.Latitude,
			PhotoNum:  rec.PhotoNum,
		}
	}
	return rec
}

// readInto performs the grouped reads in the canonical order, stopping at
// the first failure.
func (s *Sampler) readInto(rec *model.TelemetryRecord) error {
	var err error
	if rec.Env.TemperatureC, err = s.dev.Temperature(); err != nil {
		return err
	}
	if rec.Env.HumidityPct, err = s.dev.Humidity(); err != nil {
		return err
	}
	if rec.Env.PressureMbar, err = s.dev.Pressure(); err != nil {
		return err
	}
	if rec.OrientationRad, err = s.dev.OrientationRadians(); err != nil {
		return err
	}
	if rec.OrientationDeg, err = s.dev.OrientationDegrees(); err != nil {
		return err
	}
	if rec.OrientationFused, err = s.dev.Orientation(); err != nil {
		return err
	}
	if rec.CompassRaw, err = s.dev.CompassRaw(); err != nil {
		return err
	}
	if rec.Gyro, err = s.dev.Gyroscope(); err != nil {
		return err
	}
	if rec.GyroRaw, err = s.dev.GyroscopeRaw(); err != nil {
		return err
	}
	if rec.Accel, err = s.dev.Accelerometer(); err != nil {
		return err
	}
	if rec.AccelRaw, err = s.dev.AccelerometerRaw(); err != nil {
		return err
	}
	return nil
}
