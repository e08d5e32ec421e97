package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func TestDeriveRiskTier(t *testing.T) {
	tests := []struct {
		name     string
		score    *float64
		expected RiskTier
	}{
		{"nil score", nil, TierUnknown},
		{"high score", f(82), TierLow},
		{"low boundary", f(75), TierLow},
		{"moderate", f(60), TierModerate},
		{"moderate boundary", f(50), TierModerate},
		{"high risk", f(30), TierHigh},
		{"critical", f(10), TierCritical},
		{"zero", f(0), TierCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveRiskTier(tt.score))
		})
	}
}

func TestCityRecord_Tier(t *testing.T) {
	t.Run("payload tier wins", func(t *testing.T) {
		c := CityRecord{RiskTier: TierCritical, ResilienceScore: f(90)}
		assert.Equal(t, TierCritical, c.Tier())
	})

	t.Run("derived when absent", func(t *testing.T) {
		c := CityRecord{ResilienceScore: f(90)}
		assert.Equal(t, TierLow, c.Tier())
	})

	t.Run("unknown without score", func(t *testing.T) {
		c := CityRecord{}
		assert.Equal(t, TierUnknown, c.Tier())
	})
}

func TestMetric_Value(t *testing.T) {
	c := CityRecord{
		CostIndex:       f(71.5),
		ResilienceScore: f(64),
		TempChange:      f(2.3),
		PrecipChangePct: f(-12.5),
		HeatDaysChange:  f(18),
	}

	t.Run("plain accessors", func(t *testing.T) {
		assert.Equal(t, 71.5, *MetricCostIndex.Value(&c))
		assert.Equal(t, 64.0, *MetricResilience.Value(&c))
		assert.Equal(t, 2.3, *MetricTempChange.Value(&c))
		assert.Equal(t, 18.0, *MetricHeatDays.Value(&c))
	})

	t.Run("precip change uses magnitude", func(t *testing.T) {
		v := MetricPrecipChange.Value(&c)
		require.NotNil(t, v)
		assert.Equal(t, 12.5, *v)
	})

	t.Run("absent fields stay nil", func(t *testing.T) {
		empty := CityRecord{}
		for _, m := range Metrics {
			assert.Nil(t, m.Value(&empty), "metric %s", m)
		}
	})
}

func TestMetric_Inverted(t *testing.T) {
	assert.True(t, MetricResilience.Inverted())
	assert.False(t, MetricCostIndex.Inverted())
	assert.False(t, MetricTempChange.Inverted())
	assert.False(t, MetricPrecipChange.Inverted())
	assert.False(t, MetricHeatDays.Inverted())
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("precip_change")
	require.NoError(t, err)
	assert.Equal(t, MetricPrecipChange, m)

	_, err = ParseMetric("wind")
	require.Error(t, err)
}

func TestCityRecord_Validate(t *testing.T) {
	valid := CityRecord{Name: "Porto", Country: "Portugal", Lat: 41.15, Lon: -8.61}
	require.NoError(t, valid.Validate())

	missing := CityRecord{Country: "Portugal"}
	require.Error(t, missing.Validate())

	badCoords := CityRecord{Name: "Nowhere", Lat: 99, Lon: 0}
	require.Error(t, badCoords.Validate())
}
