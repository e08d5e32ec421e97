// Package grid assembles renderable cells from a gridded dataset. Each grid
// point with a present value becomes a small axis-aligned square; missing
// points are omitted entirely so no-data areas leave the basemap visible.
package grid

import (
	"fmt"
	"math"
)

// Vertex is a [lon, lat] polygon corner.
type Vertex [2]float64

// Cell is one renderable grid square. Row and Col index back into the source
// grids so a hover on the cell can recover every co-located variable value.
type Cell struct {
	Polygon []Vertex `json:"polygon"`
	Value   float64  `json:"value"`
	Row     int      `json:"row"`
	Col     int      `json:"col"`
}

// BuildCells emits one cell per present value in the grid. Each cell is a
// square of the given half-width centered on its (lat, lon) grid point.
// halfWidth must stay strictly below half the nominal grid spacing so that
// adjacent cells never touch; the gap keeps coastlines and borders readable
// between cells.
func BuildCells(lats, lons []float64, values [][]*float64, halfWidth float64) ([]Cell, error) {
	if len(values) != len(lats) {
		return nil, fmt.Errorf("value grid has %d rows, want %d", len(values), len(lats))
	}
	if max := NominalSpacing(lats, lons) / 2; halfWidth <= 0 || halfWidth >= max {
		return nil, fmt.Errorf("half-width %g outside (0, %g)", halfWidth, max)
	}

	var cells []Cell
	for row, lat := range lats {
		if len(values[row]) != len(lons) {
			return nil, fmt.Errorf("value grid row %d has %d cols, want %d", row, len(values[row]), len(lons))
		}
		for col, lon := range lons {
			v := values[row][col]
			if v == nil || math.IsNaN(*v) {
				continue
			}
			cells = append(cells, Cell{
				Polygon: square(lat, lon, halfWidth),
				Value:   *v,
				Row:     row,
				Col:     col,
			})
		}
	}
	return cells, nil
}

// square returns the four corners of an axis-aligned square, counterclockwise
// from the southwest corner.
func square(lat, lon, hw float64) []Vertex {
	return []Vertex{
		{lon - hw, lat - hw},
		{lon + hw, lat - hw},
		{lon + hw, lat + hw},
		{lon - hw, lat + hw},
	}
}

// NominalSpacing returns the smallest step along either axis. The default
// cell half-width derives from it.
func NominalSpacing(lats, lons []float64) float64 {
	spacing := math.Inf(1)
	for _, axis := range [][]float64{lats, lons} {
		for i := 1; i < len(axis); i++ {
			if d := math.Abs(axis[i] - axis[i-1]); d < spacing {
				spacing = d
			}
		}
	}
	return spacing
}

// DefaultHalfWidth is the standard cell half-width: 40% of the nominal
// spacing, leaving a visible gap between neighbors.
func DefaultHalfWidth(lats, lons []float64) float64 {
	return 0.4 * NominalSpacing(lats, lons)
}
