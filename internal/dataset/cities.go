package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
)

// CityFetcher retrieves the city collection.
type CityFetcher interface {
	FetchCities(ctx context.Context) ([]domain.CityRecord, error)
}

// CityStore holds the city collection, fetched once at startup and immutable
// thereafter. It doubles as the service readiness signal: the API is not
// ready until cities are loaded.
type CityStore struct {
	inner   CityFetcher
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu       sync.RWMutex
	cities   []domain.CityRecord
	loadedAt time.Time
}

// NewCityStore creates an empty store over a city fetcher.
func NewCityStore(inner CityFetcher, clock clockwork.Clock, metrics *observability.Metrics) *CityStore {
	return &CityStore{
		inner:   inner,
		clock:   clock,
		metrics: metrics,
	}
}

// Load fetches the city collection. Calling Load on an already-loaded store
// is a no-op; the collection is immutable for the session.
func (s *CityStore) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.cities != nil
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	cities, err := s.inner.FetchCities(ctx)
	if err != nil {
		s.metrics.DatasetFetches.WithLabelValues("cities", "error").Inc()
		return fmt.Errorf("load cities: %w", err)
	}
	s.metrics.DatasetFetches.WithLabelValues("cities", "success").Inc()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cities == nil {
		s.cities = cities
		s.loadedAt = s.clock.Now()
		s.metrics.CitiesLoaded.Set(float64(len(cities)))
	}
	return nil
}

// Cities returns the loaded collection. The returned slice must not be
// mutated.
func (s *CityStore) Cities() []domain.CityRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cities
}

// ByName looks a city up by exact name.
func (s *CityStore) ByName(name string) (*domain.CityRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.cities {
		if s.cities[i].Name == name {
			return &s.cities[i], true
		}
	}
	return nil, false
}

// CheckReadiness returns nil once the city collection has loaded, or an
// error describing why the service is not yet ready.
func (s *CityStore) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cities == nil {
		return errors.New("city collection has not loaded yet")
	}
	return nil
}
