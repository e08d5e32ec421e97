package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/umahmood/haversine"

	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
	"github.com/couchcryptid/climate-atlas/internal/render"
)

type handlersImpl struct {
	cache   *dataset.MonthCache
	cities  *dataset.CityStore
	metrics *observability.Metrics
	logger  *slog.Logger
}

// handleCells serves the colored heatmap cells for one month and variable.
// GET /api/months/{month}/cells?variable=temperature
func (h *handlersImpl) handleCells(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseMonthKey(mux.Vars(r)["month"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	variable := domain.VariableTemperature
	if v := r.URL.Query().Get("variable"); v != "" {
		if variable, err = domain.ParseVariable(v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	ds, err := h.cache.GetOrFetch(r.Context(), key)
	if err != nil {
		h.logger.Error("month dataset unavailable", "month", key, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	cells, err := render.CellsFor(ds, variable)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.metrics.CellsEmitted.Observe(float64(len(cells)))

	writeJSON(w, http.StatusOK, cellsResponse{
		Month:    key,
		Variable: variable,
		Domain:   render.VariableDomain(variable),
		Cells:    cells,
	})
}

// handlePoint serves all three variable values at one grid point, for the
// hover panel. GET /api/months/{month}/point?row=3&col=7
func (h *handlersImpl) handlePoint(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseMonthKey(mux.Vars(r)["month"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	if errRow != nil || errCol != nil {
		writeError(w, http.StatusBadRequest, errBadPoint)
		return
	}

	ds, err := h.cache.GetOrFetch(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	detail, err := render.PointAt(ds, row, col)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, pointResponse{
		Month:       key,
		PointDetail: detail,
		Display: pointDisplay{
			Temperature:   formatValue(detail.Temperature, " °C"),
			Precipitation: formatValue(detail.Precipitation, " mm"),
			Sunshine:      formatValue(detail.Sunshine, " h"),
		},
	})
}

// handleCities serves the colored city bubbles for one metric.
// GET /api/cities?metric=resilience
func (h *handlersImpl) handleCities(w http.ResponseWriter, r *http.Request) {
	metric := domain.MetricResilience
	if m := r.URL.Query().Get("metric"); m != "" {
		var err error
		if metric, err = domain.ParseMetric(m); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	bubbles, valueRange := render.BubblesFor(h.cities.Cities(), metric)
	writeJSON(w, http.StatusOK, citiesResponse{
		Metric:   metric,
		Inverted: metric.Inverted(),
		Range:    valueRange,
		Bubbles:  bubbles,
	})
}

// handleCityDetail serves the full record for the detail panel, with absent
// fields rendered as explicit placeholders rather than raw values.
// GET /api/cities/{name}
func (h *handlersImpl) handleCityDetail(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	city, ok := h.cities.ByName(name)
	if !ok {
		writeError(w, http.StatusNotFound, errCityUnknown)
		return
	}
	writeJSON(w, http.StatusOK, newCityDetail(city))
}

// handleNearestCity resolves a map click to the closest city.
// GET /api/cities/nearest?lat=41.2&lon=-8.6
func (h *handlersImpl) handleNearestCity(w http.ResponseWriter, r *http.Request) {
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat != nil || errLon != nil {
		writeError(w, http.StatusBadRequest, errBadCoords)
		return
	}

	cities := h.cities.Cities()
	if len(cities) == 0 {
		writeError(w, http.StatusServiceUnavailable, errNoCities)
		return
	}

	from := haversine.Coord{Lat: lat, Lon: lon}
	best := 0
	bestKm := -1.0
	for i := range cities {
		_, km := haversine.Distance(from, haversine.Coord{Lat: cities[i].Lat, Lon: cities[i].Lon})
		if bestKm < 0 || km < bestKm {
			best, bestKm = i, km
		}
	}

	writeJSON(w, http.StatusOK, nearestResponse{
		City:       newCityDetail(&cities[best]),
		DistanceKm: bestKm,
	})
}

func (h *handlersImpl) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *handlersImpl) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.cities.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
