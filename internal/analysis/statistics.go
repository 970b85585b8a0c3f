package analysis

import (
	"math"
	"sort"

	"github.com/NefeliZ/Mission-Space-Lab-Space-Kludgers/model"
)

// DataStatistics represents statistical measures for a data series.
type DataStatistics struct {
	Count    int
	Mean     float64
	Variance float64
	StdDev   float64
	Min      float64
	Max      float64
	Range    float64
	Median   float64
}

// QuantityStatistics groups the environmental series of one day/night bucket.
type QuantityStatistics struct {
	Temperature *DataStatistics
	Humidity    *DataStatistics
	Pressure    *DataStatistics
}

// CalculateRunStatistics splits the run's records by the day flag and
// computes statistics for each environmental quantity. Keys are "day" and
// "night"; a bucket with no records is absent from the map.
func CalculateRunStatistics(records []model.TelemetryRecord) map[string]*QuantityStatistics {
	buckets := map[string][]model.TelemetryRecord{}
	for _, rec := range records {
		key := "night"
		if rec.Day {
			key = "day"
		}
		buckets[key] = append(buckets[key], rec)
	}

	result := make(map[string]*QuantityStatistics, len(buckets))
	for key, recs := range buckets {
		temps := make([]float64, 0, len(recs))
		hums := make([]float64, 0, len(recs))
		pressures := make([]float64, 0, len(recs))
		for _, rec := range recs {
			temps = append(temps, rec.Env.TemperatureC)
			hums = append(hums, rec.Env.HumidityPct)
			pressures = append(pressures, rec.Env.PressureMbar)
		}
		result[key] = &QuantityStatistics{
			Temperature: calculateDataStatistics(temps),
			Humidity:    calculateDataStatistics(hums),
			Pressure:    calculateDataStatistics(pressures),
		}
	}
	return result
}

// calculateDataStatistics computes the summary measures for one series.
// Returns nil for an empty series.
func calculateDataStatistics(data []float64) *DataStatistics {
	if len(data) == 0 {
		return nil
	}

	stats := &DataStatistics{
		Count: len(data),
		Min:   data[0],
		Max:   data[0],
	}

	var sum float64
	for _, v := range data {
		sum += v
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
	}
	stats.Mean = sum / float64(len(data))
	stats.Range = stats.Max - stats.Min

	var sqDiff float64
	for _, v := range data {
		d := v - stats.Mean
		sqDiff += d * d
	}
	stats.Variance = sqDiff / float64(len(data))
	stats.StdDev = math.Sqrt(stats.Variance)

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}

	return stats
}
