package render

import "github.com/couchcryptid/climate-atlas/internal/domain"

// Range is a min/max value domain for color normalization.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RangeFor reduces a city collection to the min/max of a metric, skipping
// records where the metric is absent. When no record yields a value the
// reducer falls back to {0, 1}: the downstream color computation must never
// divide by zero, and with every accessor result absent the bubbles all
// render the no-data color anyway, so the fallback domain is never visible.
func RangeFor(cities []domain.CityRecord, metric domain.Metric) Range {
	found := false
	r := Range{}
	for i := range cities {
		v := metric.Value(&cities[i])
		if v == nil {
			continue
		}
		if !found {
			r.Min, r.Max = *v, *v
			found = true
			continue
		}
		if *v < r.Min {
			r.Min = *v
		}
		if *v > r.Max {
			r.Max = *v
		}
	}
	if !found {
		return Range{Min: 0, Max: 1}
	}
	return r
}
