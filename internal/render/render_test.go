package render

import (
	"testing"

	"github.com/couchcryptid/climate-atlas/internal/colorscale"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *domain.GridDataset {
	return &domain.GridDataset{
		Month: domain.MonthJul,
		Lats:  []float64{50, 51},
		Lons:  []float64{10, 11},
		Temperature: [][]*float64{
			{f(5), nil},
			{f(10), f(15)},
		},
		Precipitation: [][]*float64{
			{f(40), f(60)},
			{nil, f(80)},
		},
		Sunshine: [][]*float64{
			{f(120), nil},
			{f(200), f(250)},
		},
	}
}

func TestCellsFor(t *testing.T) {
	cells, err := CellsFor(testDataset(), domain.VariableTemperature)
	require.NoError(t, err)
	require.Len(t, cells, 3)

	for _, c := range cells {
		assert.Equal(t, colorscale.AlphaFill, c.Color.A, "area fills use the translucent alpha")
		assert.Len(t, c.Polygon, 4)
	}

	// Absence is per variable: precipitation misses a different cell.
	precip, err := CellsFor(testDataset(), domain.VariablePrecipitation)
	require.NoError(t, err)
	require.Len(t, precip, 3)
	assert.Equal(t, 0, precip[0].Row)
	assert.Equal(t, 1, precip[1].Col)
}

func TestCellsFor_ColorsSaturate(t *testing.T) {
	ds := testDataset()
	ds.Temperature[0][0] = f(-100) // far below the fixed domain

	cells, err := CellsFor(ds, domain.VariableTemperature)
	require.NoError(t, err)

	cold := colorscale.ColorFor(colorscale.Temperature, -15, -15, 35).WithAlpha(colorscale.AlphaFill)
	assert.Equal(t, cold, cells[0].Color)
}

func TestCellsFor_UnknownVariable(t *testing.T) {
	_, err := CellsFor(testDataset(), domain.Variable("wind"))
	require.Error(t, err)
}

func TestBubblesFor(t *testing.T) {
	cities := []domain.CityRecord{
		{Name: "Oslo", Country: "Norway", Lat: 59.9, Lon: 10.7, ResilienceScore: f(80)},
		{Name: "Cairo", Country: "Egypt", Lat: 30.0, Lon: 31.2, ResilienceScore: f(20)},
		{Name: "Quito", Country: "Ecuador", Lat: -0.2, Lon: -78.5},
	}

	bubbles, r := BubblesFor(cities, domain.MetricResilience)
	require.Len(t, bubbles, 3)
	assert.Equal(t, Range{Min: 20, Max: 80}, r)

	// Resilience is inverted: the best score renders green, the worst red.
	green := colorscale.RGB{R: 26, G: 152, B: 80}.WithAlpha(colorscale.AlphaMarker)
	red := colorscale.RGB{R: 215, G: 48, B: 39}.WithAlpha(colorscale.AlphaMarker)
	assert.Equal(t, green, bubbles[0].Color)
	assert.Equal(t, red, bubbles[1].Color)

	// No score: neutral gray marker, nil value, unknown tier.
	gray := colorscale.NoData.WithAlpha(colorscale.AlphaMarker)
	assert.Equal(t, gray, bubbles[2].Color)
	assert.Nil(t, bubbles[2].Value)
	assert.Equal(t, domain.TierUnknown, bubbles[2].RiskTier)

	// Tiers ride along for the marker tooltip.
	assert.Equal(t, domain.TierLow, bubbles[0].RiskTier)
	assert.Equal(t, domain.TierCritical, bubbles[1].RiskTier)
}

func TestBubblesFor_AllMissingMetric(t *testing.T) {
	cities := []domain.CityRecord{{Name: "A"}, {Name: "B"}}

	bubbles, r := BubblesFor(cities, domain.MetricTempChange)

	assert.Equal(t, Range{Min: 0, Max: 1}, r, "documented fallback domain")
	gray := colorscale.NoData.WithAlpha(colorscale.AlphaMarker)
	for _, b := range bubbles {
		assert.Equal(t, gray, b.Color)
	}
}

func TestPointAt(t *testing.T) {
	ds := testDataset()

	d, err := PointAt(ds, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 50.0, d.Lat)
	assert.Equal(t, 11.0, d.Lon)
	assert.Nil(t, d.Temperature, "hover recovers per-variable absence")
	require.NotNil(t, d.Precipitation)
	assert.Equal(t, 60.0, *d.Precipitation)
	assert.Nil(t, d.Sunshine)

	_, err = PointAt(ds, 2, 0)
	require.Error(t, err)
	_, err = PointAt(ds, 0, -1)
	require.Error(t, err)
}

func TestVariableDomain(t *testing.T) {
	for _, v := range domain.Variables {
		dom := VariableDomain(v)
		assert.Less(t, dom.Min, dom.Max, "variable %s", v)
	}
}
