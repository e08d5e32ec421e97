// Package render joins datasets with color scales into the primitives a map
// client draws: colored grid cells for the heatmap and colored bubbles for
// the city markers.
package render

import (
	"fmt"

	"github.com/couchcryptid/climate-atlas/internal/colorscale"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/grid"
)

// Fixed color domains per grid variable. Values outside saturate to the
// endpoint colors rather than rescaling per month, so a given temperature
// renders the same color in January and July.
var variableDomains = map[domain.Variable]Range{
	domain.VariableTemperature:   {Min: -15, Max: 35},
	domain.VariablePrecipitation: {Min: 0, Max: 250},
	domain.VariableSunshine:      {Min: 0, Max: 350},
}

// VariableDomain returns the fixed color domain for a grid variable.
func VariableDomain(v domain.Variable) Range {
	return variableDomains[v]
}

func kindFor(v domain.Variable) colorscale.Kind {
	switch v {
	case domain.VariablePrecipitation:
		return colorscale.Precipitation
	case domain.VariableSunshine:
		return colorscale.Sunshine
	default:
		return colorscale.Temperature
	}
}

// ColoredCell is a grid cell plus its fill color.
type ColoredCell struct {
	grid.Cell
	Color colorscale.RGBA `json:"color"`
}

// CellsFor assembles and colors the heatmap cells for one variable of a
// month dataset. Missing cells are omitted; present cells get the variable's
// palette at fill opacity.
func CellsFor(ds *domain.GridDataset, v domain.Variable) ([]ColoredCell, error) {
	values := ds.Grid(v)
	if values == nil {
		return nil, fmt.Errorf("dataset %s has no grid for variable %q", ds.Month, v)
	}

	hw := grid.DefaultHalfWidth(ds.Lats, ds.Lons)
	cells, err := grid.BuildCells(ds.Lats, ds.Lons, values, hw)
	if err != nil {
		return nil, fmt.Errorf("build cells for %s/%s: %w", ds.Month, v, err)
	}

	dom := variableDomains[v]
	kind := kindFor(v)
	out := make([]ColoredCell, len(cells))
	for i, c := range cells {
		out[i] = ColoredCell{
			Cell:  c,
			Color: colorscale.ColorFor(kind, c.Value, dom.Min, dom.Max).WithAlpha(colorscale.AlphaFill),
		}
	}
	return out, nil
}

// Bubble is one city marker: identity, position, the metric value driving
// its color, and the color itself. Value is nil when the city lacks the
// metric; such bubbles carry the neutral no-data color.
type Bubble struct {
	Name     string          `json:"name"`
	Country  string          `json:"country"`
	Lat      float64         `json:"lat"`
	Lon      float64         `json:"lon"`
	Value    *float64        `json:"value"`
	RiskTier domain.RiskTier `json:"risk_tier,omitempty"`
	Color    colorscale.RGBA `json:"color"`
}

// BubblesFor colors every city by the selected metric, normalized over the
// collection's own value range. Returns the range alongside so clients can
// label the legend.
func BubblesFor(cities []domain.CityRecord, metric domain.Metric) ([]Bubble, Range) {
	r := RangeFor(cities, metric)
	invert := metric.Inverted()

	bubbles := make([]Bubble, len(cities))
	for i := range cities {
		c := &cities[i]
		v := metric.Value(c)
		bubbles[i] = Bubble{
			Name:     c.Name,
			Country:  c.Country,
			Lat:      c.Lat,
			Lon:      c.Lon,
			Value:    v,
			RiskTier: c.Tier(),
			Color:    colorscale.GoodnessFor(v, r.Min, r.Max, invert).WithAlpha(colorscale.AlphaMarker),
		}
	}
	return bubbles, r
}

// PointDetail carries every variable's value at one grid point, for the
// hover panel. Fields are nil where the variable has no data at the point.
type PointDetail struct {
	Lat           float64  `json:"lat"`
	Lon           float64  `json:"lon"`
	Row           int      `json:"row"`
	Col           int      `json:"col"`
	Temperature   *float64 `json:"temperature"`
	Precipitation *float64 `json:"precipitation"`
	Sunshine      *float64 `json:"sunshine"`
}

// PointAt looks up all three variables at (row, col). The hover indices come
// from a cell emitted by CellsFor, but out-of-range indices only produce an
// error, never a panic.
func PointAt(ds *domain.GridDataset, row, col int) (PointDetail, error) {
	if row < 0 || row >= len(ds.Lats) || col < 0 || col >= len(ds.Lons) {
		return PointDetail{}, fmt.Errorf("point (%d,%d) outside %dx%d grid", row, col, len(ds.Lats), len(ds.Lons))
	}
	return PointDetail{
		Lat:           ds.Lats[row],
		Lon:           ds.Lons[col],
		Row:           row,
		Col:           col,
		Temperature:   ds.At(domain.VariableTemperature, row, col),
		Precipitation: ds.At(domain.VariablePrecipitation, row, col),
		Sunshine:      ds.At(domain.VariableSunshine, row, col),
	}, nil
}
