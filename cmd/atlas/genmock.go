package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/climate-atlas/internal/domain"
)

// newGenmockCmd writes a full set of synthetic data fixtures: one gridded
// climate file per month plus a city collection. The output is deterministic
// so fixtures can be regenerated without churning diffs, and every file is
// validated with the same rules the client applies to real data.
func newGenmockCmd() *cobra.Command {
	var (
		outDir  string
		latMin  float64
		latMax  float64
		lonMin  float64
		lonMax  float64
		spacing float64
	)

	cmd := &cobra.Command{
		Use:   "genmock",
		Short: "Generate synthetic climate and city fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if spacing <= 0 || latMax <= latMin || lonMax <= lonMin {
				return fmt.Errorf("invalid grid extent")
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}

			lats := axis(latMin, latMax, spacing)
			lons := axis(lonMin, lonMax, spacing)

			for i, key := range domain.MonthKeys {
				ds := syntheticMonth(key, i, lats, lons)
				if err := ds.Validate(); err != nil {
					return fmt.Errorf("generated %s fixture is invalid: %w", key, err)
				}
				path := filepath.Join(outDir, fmt.Sprintf("climate_%s.json", key))
				if err := writeJSON(path, ds); err != nil {
					return err
				}
				fmt.Printf("wrote %s (%dx%d grid)\n", path, len(lats), len(lons))
			}

			citiesPath := filepath.Join(outDir, "cities.json")
			if err := writeJSON(citiesPath, syntheticCities()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", citiesPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "data/mock", "output directory")
	cmd.Flags().Float64Var(&latMin, "lat-min", 35, "southern grid edge")
	cmd.Flags().Float64Var(&latMax, "lat-max", 60, "northern grid edge")
	cmd.Flags().Float64Var(&lonMin, "lon-min", -10, "western grid edge")
	cmd.Flags().Float64Var(&lonMax, "lon-max", 25, "eastern grid edge")
	cmd.Flags().Float64Var(&spacing, "spacing", 1, "grid spacing in degrees")
	return cmd
}

func axis(min, max, step float64) []float64 {
	var out []float64
	for v := min; v <= max+1e-9; v += step {
		out = append(out, v)
	}
	return out
}

// syntheticMonth builds one gridded file with a seasonal cycle, a
// north-south temperature gradient, and deterministic null holes standing in
// for ocean cells.
func syntheticMonth(key domain.MonthKey, monthIdx int, lats, lons []float64) *domain.GridDataset {
	season := math.Sin((float64(monthIdx) - 3) / 12 * 2 * math.Pi)

	ds := &domain.GridDataset{
		Month:         key,
		Lats:          lats,
		Lons:          lons,
		Temperature:   make([][]*float64, len(lats)),
		Precipitation: make([][]*float64, len(lats)),
		Sunshine:      make([][]*float64, len(lats)),
	}

	for r := range lats {
		ds.Temperature[r] = make([]*float64, len(lons))
		ds.Precipitation[r] = make([]*float64, len(lons))
		ds.Sunshine[r] = make([]*float64, len(lons))

		for c := range lons {
			if oceanCell(r, c) {
				continue
			}
			temp := round1(25 - (lats[r]-35)*0.6 + season*10)
			precip := round1(60 + math.Mod(float64(r*13+c*7), 90) - season*20)
			sun := round1(180 + season*100 - (lats[r]-35)*2)

			ds.Temperature[r][c] = &temp
			ds.Precipitation[r][c] = &precip
			ds.Sunshine[r][c] = &sun
		}
	}
	return ds
}

// oceanCell carves deterministic holes so fixtures exercise the missing-data
// paths the way real coastline grids do.
func oceanCell(row, col int) bool {
	return (row*31+col*17)%9 == 0
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func syntheticCities() []domain.CityRecord {
	f := func(v float64) *float64 { return &v }
	return []domain.CityRecord{
		{
			Name: "Lisbon", Country: "Portugal", Lat: 38.72, Lon: -9.14,
			CostIndex: f(54.8), RentIndex: f(42.1), GroceriesIndex: f(46.5), RestaurantIndex: f(48.2),
			TempBaseline: f(17.4), TempFuture: f(19.1), TempChange: f(1.7),
			PrecipBaseline: f(725), PrecipFuture: f(640), PrecipChangePct: f(-11.7),
			HeatDaysBaseline: f(10), HeatDaysFuture: f(24), HeatDaysChange: f(14),
			ResilienceScore: f(58),
		},
		{
			Name: "Oslo", Country: "Norway", Lat: 59.91, Lon: 10.75,
			CostIndex: f(95.3), RentIndex: f(61.8), GroceriesIndex: f(92.4), RestaurantIndex: f(98.7),
			TempBaseline: f(6.3), TempFuture: f(8.2), TempChange: f(1.9),
			PrecipBaseline: f(763), PrecipFuture: f(810), PrecipChangePct: f(6.2),
			HeatDaysBaseline: f(0), HeatDaysFuture: f(2), HeatDaysChange: f(2),
			ResilienceScore: f(81),
		},
		{
			Name: "Athens", Country: "Greece", Lat: 37.98, Lon: 23.73,
			CostIndex: f(62.4), RentIndex: f(33.9),
			TempBaseline: f(18.8), TempFuture: f(21.2), TempChange: f(2.4),
			PrecipBaseline: f(398), PrecipFuture: f(330), PrecipChangePct: f(-17.1),
			HeatDaysBaseline: f(32), HeatDaysFuture: f(61), HeatDaysChange: f(29),
			ResilienceScore: f(22),
		},
		{
			// Sparse record: exercises the n/a display paths and tier fallback.
			Name: "Reykjavik", Country: "Iceland", Lat: 64.15, Lon: -21.94,
			TempBaseline: f(4.6), TempFuture: f(6.1), TempChange: f(1.5),
		},
	}
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
