package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// atlas service.
type Metrics struct {
	DatasetFetches *prometheus.CounterVec // labels: kind={month,cities}, outcome={success,error}
	FetchDuration  prometheus.Histogram
	CacheLookups   *prometheus.CounterVec // labels: result={hit,miss}
	CellsEmitted   prometheus.Histogram
	APIRequests    *prometheus.CounterVec // labels: route, status
	WSClients      prometheus.Gauge
	CitiesLoaded   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_atlas",
			Name:      "dataset_fetches_total",
			Help:      "Dataset fetches by kind and outcome.",
		}, []string{"kind", "outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_atlas",
			Name:      "dataset_fetch_duration_seconds",
			Help:      "Duration of dataset fetch-and-parse.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_atlas",
			Name:      "month_cache_lookups_total",
			Help:      "Month cache lookups by result.",
		}, []string{"result"}),
		CellsEmitted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_atlas",
			Name:      "cells_emitted",
			Help:      "Cells emitted per heatmap render.",
			Buckets:   []float64{100, 1000, 5000, 10000, 20000, 50000},
		}),
		APIRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_atlas",
			Name:      "api_requests_total",
			Help:      "API requests by route and status class.",
		}, []string{"route", "status"}),
		WSClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_atlas",
			Name:      "ws_clients",
			Help:      "Connected websocket clients.",
		}),
		CitiesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "climate_atlas",
			Name:      "cities_loaded",
			Help:      "City records held in memory.",
		}),
	}

	prometheus.MustRegister(
		m.DatasetFetches,
		m.FetchDuration,
		m.CacheLookups,
		m.CellsEmitted,
		m.APIRequests,
		m.WSClients,
		m.CitiesLoaded,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DatasetFetches: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_atlas", Name: "dataset_fetches_total"}, []string{"kind", "outcome"}),
		FetchDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_atlas", Name: "dataset_fetch_duration_seconds"}),
		CacheLookups:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_atlas", Name: "month_cache_lookups_total"}, []string{"result"}),
		CellsEmitted:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "climate_atlas", Name: "cells_emitted"}),
		APIRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "climate_atlas", Name: "api_requests_total"}, []string{"route", "status"}),
		WSClients:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_atlas", Name: "ws_clients"}),
		CitiesLoaded:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "climate_atlas", Name: "cities_loaded"}),
	}
}
