package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/render"
)

var (
	errBadPoint    = errors.New("row and col query parameters are required integers")
	errBadCoords   = errors.New("lat and lon query parameters are required numbers")
	errCityUnknown = errors.New("unknown city")
	errNoCities    = errors.New("city collection not loaded")
)

// notAvailable is the placeholder shown wherever a nullable field is absent.
const notAvailable = "n/a"

type cellsResponse struct {
	Month    domain.MonthKey     `json:"month"`
	Variable domain.Variable     `json:"variable"`
	Domain   render.Range        `json:"domain"`
	Cells    []render.ColoredCell `json:"cells"`
}

type pointDisplay struct {
	Temperature   string `json:"temperature"`
	Precipitation string `json:"precipitation"`
	Sunshine      string `json:"sunshine"`
}

type pointResponse struct {
	Month domain.MonthKey `json:"month"`
	render.PointDetail
	Display pointDisplay `json:"display"`
}

type citiesResponse struct {
	Metric   domain.Metric   `json:"metric"`
	Inverted bool            `json:"inverted"`
	Range    render.Range    `json:"range"`
	Bubbles  []render.Bubble `json:"bubbles"`
}

// cityDetail is the detail-panel view of a city record: the raw record plus
// display strings with explicit placeholders for absent fields.
type cityDetail struct {
	domain.CityRecord
	Tier    domain.RiskTier   `json:"tier"`
	Display map[string]string `json:"display"`
}

func newCityDetail(c *domain.CityRecord) cityDetail {
	return cityDetail{
		CityRecord: *c,
		Tier:       c.Tier(),
		Display: map[string]string{
			"cost_index":       formatValue(c.CostIndex, ""),
			"rent_index":       formatValue(c.RentIndex, ""),
			"groceries_index":  formatValue(c.GroceriesIndex, ""),
			"restaurant_index": formatValue(c.RestaurantIndex, ""),
			"temp_change":      formatSigned(c.TempChange, " °C"),
			"precip_change":    formatSigned(c.PrecipChangePct, "%"),
			"heat_days_change": formatSigned(c.HeatDaysChange, " days"),
			"resilience_score": formatValue(c.ResilienceScore, "/100"),
			"risk_tier":        formatTier(c.Tier()),
		},
	}
}

type nearestResponse struct {
	City       cityDetail `json:"city"`
	DistanceKm float64    `json:"distance_km"`
}

// formatValue renders a nullable value with a unit suffix, or the
// not-available placeholder.
func formatValue(v *float64, suffix string) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.1f%s", *v, suffix)
}

// formatSigned is formatValue with an explicit plus sign for positive
// values; change metrics show their direction in text even where color uses
// only the magnitude.
func formatSigned(v *float64, suffix string) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%+.1f%s", *v, suffix)
}

func formatTier(t domain.RiskTier) string {
	if t == domain.TierUnknown {
		return notAvailable
	}
	return string(t)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
