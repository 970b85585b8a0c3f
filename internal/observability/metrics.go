package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MissionCollector bundles Prometheus metrics for the acquisition loop.
// There is no metrics listener on the flight binary; the collector exists so
// the loop's behaviour is observable in-process and assertable in tests.
type MissionCollector struct {
	PhotosCaptured    prometheus.Counter
	TelemetryRows     prometheus.Counter
	SensorFallbacks   prometheus.Counter
	IterationFailures *prometheus.CounterVec

	Daylight       prometheus.Gauge
	CadenceSeconds prometheus.Gauge
}

// NewMissionCollector registers the mission metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewMissionCollector(reg prometheus.Registerer) (*MissionCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	photos, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acquisition_photos_captured_total",
		Help: "Photos successfully written to disk.",
	}), "acquisition_photos_captured_total")
	if err != nil {
		return nil, err
	}
	rows, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acquisition_telemetry_rows_total",
		Help: "Telemetry rows appended to the CSV log.",
	}), "acquisition_telemetry_rows_total")
	if err != nil {
		return nil, err
	}
	fallbacks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "acquisition_sensor_fallbacks_total",
		Help: "Telemetry samples that fell back to a zero-filled record.",
	}), "acquisition_sensor_fallbacks_total")
	if err != nil {
		return nil, err
	}

	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "acquisition_iteration_failures_total",
		Help: "Iteration step failures, labeled by step kind.",
	}, []string{"step"})
	failures, err = registerCounterVec(reg, failures, "acquisition_iteration_failures_total")
	if err != nil {
		return nil, err
	}

	daylight, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "acquisition_daylight",
		Help: "1 when the current sub-point is in daylight, 0 otherwise.",
	}), "acquisition_daylight")
	if err != nil {
		return nil, err
	}
	cadence, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "acquisition_cadence_seconds",
		Help: "Delay before the next capture, as selected by the cadence policy.",
	}), "acquisition_cadence_seconds")
	if err != nil {
		return nil, err
	}

	return &MissionCollector{
		PhotosCaptured:    photos,
		TelemetryRows:     rows,
		SensorFallbacks:   fallbacks,
		IterationFailures: failures,
		Daylight:          daylight,
		CadenceSeconds:    cadence,
	}, nil
}

// SetDaylight records the classifier's result for the current iteration.
func (c *MissionCollector) SetDaylight(day bool) {
	if c == nil || c.Daylight == nil {
		return
	}
	if day {
		c.Daylight.Set(1)
	} else {
		c.Daylight.Set(0)
	}
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
