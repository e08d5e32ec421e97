package domain

import "fmt"

// Variable identifies one of the three gridded climate variables.
type Variable string

const (
	VariableTemperature   Variable = "temperature"
	VariablePrecipitation Variable = "precipitation"
	VariableSunshine      Variable = "sunshine"
)

// Variables lists the supported grid variables.
var Variables = []Variable{VariableTemperature, VariablePrecipitation, VariableSunshine}

// ParseVariable validates a variable name.
func ParseVariable(s string) (Variable, error) {
	switch Variable(s) {
	case VariableTemperature, VariablePrecipitation, VariableSunshine:
		return Variable(s), nil
	default:
		return "", fmt.Errorf("unknown variable %q", s)
	}
}

// GridDataset is one month of gridded climate normals. Cells are nil where
// no data exists (ocean); absence is checked per variable.
type GridDataset struct {
	Month         MonthKey     `json:"month"`
	Lats          []float64    `json:"lats"`
	Lons          []float64    `json:"lons"`
	Temperature   [][]*float64 `json:"temperature"`
	Precipitation [][]*float64 `json:"precipitation"`
	Sunshine      [][]*float64 `json:"sunshine"`
}

// Grid returns the 2D value grid for a variable.
func (d *GridDataset) Grid(v Variable) [][]*float64 {
	switch v {
	case VariableTemperature:
		return d.Temperature
	case VariablePrecipitation:
		return d.Precipitation
	case VariableSunshine:
		return d.Sunshine
	default:
		return nil
	}
}

// At returns the value for a variable at (row, col), or nil when the cell is
// missing or the indices are out of range.
func (d *GridDataset) At(v Variable, row, col int) *float64 {
	g := d.Grid(v)
	if row < 0 || row >= len(g) {
		return nil
	}
	if col < 0 || col >= len(g[row]) {
		return nil
	}
	return g[row][col]
}

// Validate checks axis monotonicity and that every variable grid matches the
// [len(lats)][len(lons)] shape.
func (d *GridDataset) Validate() error {
	if d.Month.Index() < 0 {
		return fmt.Errorf("invalid month key %q", d.Month)
	}
	if len(d.Lats) < 2 || len(d.Lons) < 2 {
		return fmt.Errorf("axes too short: %d lats, %d lons", len(d.Lats), len(d.Lons))
	}
	if err := checkMonotonic("lats", d.Lats); err != nil {
		return err
	}
	if err := checkMonotonic("lons", d.Lons); err != nil {
		return err
	}
	for _, v := range Variables {
		if err := checkShape(v, d.Grid(v), len(d.Lats), len(d.Lons)); err != nil {
			return err
		}
	}
	return nil
}

func checkMonotonic(name string, axis []float64) error {
	asc := axis[1] > axis[0]
	for i := 1; i < len(axis); i++ {
		if asc && axis[i] <= axis[i-1] || !asc && axis[i] >= axis[i-1] {
			return fmt.Errorf("%s axis not strictly monotonic at index %d", name, i)
		}
	}
	return nil
}

func checkShape(v Variable, grid [][]*float64, rows, cols int) error {
	if len(grid) != rows {
		return fmt.Errorf("%s grid has %d rows, want %d", v, len(grid), rows)
	}
	for i, row := range grid {
		if len(row) != cols {
			return fmt.Errorf("%s grid row %d has %d cols, want %d", v, i, len(row), cols)
		}
	}
	return nil
}
