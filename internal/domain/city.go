package domain

import (
	"fmt"
	"math"
)

// RiskTier is the categorical climate-risk bucket for a city.
type RiskTier string

const (
	TierUnknown  RiskTier = ""
	TierLow      RiskTier = "Low Risk"
	TierModerate RiskTier = "Moderate Risk"
	TierHigh     RiskTier = "High Risk"
	TierCritical RiskTier = "Critical"
)

// CityRecord is one city from the city collection file. Identity fields are
// always present; every other numeric field is independently nullable.
type CityRecord struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`

	// Cost-of-living indices (Numbeo-style, NYC = 100).
	CostIndex       *float64 `json:"cost_index"`
	RentIndex       *float64 `json:"rent_index"`
	GroceriesIndex  *float64 `json:"groceries_index"`
	RestaurantIndex *float64 `json:"restaurant_index"`

	// Climate projections, 1991-2020 baseline vs 2050 scenario.
	TempBaseline     *float64 `json:"temp_baseline"`
	TempFuture       *float64 `json:"temp_future"`
	TempChange       *float64 `json:"temp_change"`
	PrecipBaseline   *float64 `json:"precip_baseline"`
	PrecipFuture     *float64 `json:"precip_future"`
	PrecipChangePct  *float64 `json:"precip_change_pct"`
	HeatDaysBaseline *float64 `json:"heat_days_baseline"`
	HeatDaysFuture   *float64 `json:"heat_days_future"`
	HeatDaysChange   *float64 `json:"heat_days_change"`

	// Resilience assessment.
	ResilienceScore *float64 `json:"resilience_score"` // 0-100
	RiskTier        RiskTier `json:"risk_tier"`
}

// Validate checks the required identity fields.
func (c *CityRecord) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("city record missing name")
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("city %q has out-of-range coordinates (%g, %g)", c.Name, c.Lat, c.Lon)
	}
	return nil
}

// Tier returns the record's risk tier, deriving it from the resilience score
// when the payload omitted it.
func (c *CityRecord) Tier() RiskTier {
	if c.RiskTier != TierUnknown {
		return c.RiskTier
	}
	return DeriveRiskTier(c.ResilienceScore)
}

// DeriveRiskTier buckets a 0-100 resilience score into the closed tier set.
// A nil score yields TierUnknown.
func DeriveRiskTier(score *float64) RiskTier {
	if score == nil {
		return TierUnknown
	}
	switch {
	case *score >= 75:
		return TierLow
	case *score >= 50:
		return TierModerate
	case *score >= 25:
		return TierHigh
	default:
		return TierCritical
	}
}

// Metric identifies the city-level numeric field driving bubble color.
type Metric string

const (
	MetricCostIndex    Metric = "cost_index"
	MetricResilience   Metric = "resilience"
	MetricTempChange   Metric = "temp_change"
	MetricPrecipChange Metric = "precip_change"
	MetricHeatDays     Metric = "heat_days"
)

// Metrics lists the supported bubble metrics.
var Metrics = []Metric{
	MetricCostIndex, MetricResilience, MetricTempChange, MetricPrecipChange, MetricHeatDays,
}

// ParseMetric validates a bubble metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCostIndex, MetricResilience, MetricTempChange, MetricPrecipChange, MetricHeatDays:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q", s)
	}
}

// Inverted reports whether higher values of the metric are good. The shared
// goodness gradient runs green (good) to red (bad) over [0,1]; inverted
// metrics reflect the ratio so their maximum lands on green.
func (m Metric) Inverted() bool {
	return m == MetricResilience
}

// Value extracts the metric's value from a record, or nil when absent.
// Precipitation change uses the magnitude of the signed percentage: change in
// either direction drives color, the sign is shown only in text.
func (m Metric) Value(c *CityRecord) *float64 {
	switch m {
	case MetricCostIndex:
		return c.CostIndex
	case MetricResilience:
		return c.ResilienceScore
	case MetricTempChange:
		return c.TempChange
	case MetricPrecipChange:
		if c.PrecipChangePct == nil {
			return nil
		}
		v := math.Abs(*c.PrecipChangePct)
		return &v
	case MetricHeatDays:
		return c.HeatDaysChange
	default:
		return nil
	}
}
