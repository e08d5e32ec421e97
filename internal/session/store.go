package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/domain"
)

// Store owns one session's Selection and serializes updates to it. Month
// switches that miss the dataset cache run asynchronously: the store enters
// a loading state, rejects further month switches until the fetch settles,
// and applies the switch only on success. A failed fetch leaves the previous
// month displayed.
type Store struct {
	cache  *dataset.MonthCache
	logger *slog.Logger

	mu   sync.Mutex
	cur  Selection
	subs map[chan Selection]struct{}
}

// NewStore creates a session store starting from the default selection.
func NewStore(cache *dataset.MonthCache, logger *slog.Logger) *Store {
	return &Store{
		cache:  cache,
		logger: logger,
		cur:    DefaultSelection(),
		subs:   make(map[chan Selection]struct{}),
	}
}

// Selection returns the current state.
func (st *Store) Selection() Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.cur
}

// Subscribe registers a listener for state changes. The returned cancel
// function must be called when the listener goes away. Slow listeners drop
// intermediate states rather than blocking updates.
func (st *Store) Subscribe() (<-chan Selection, func()) {
	ch := make(chan Selection, 8)

	st.mu.Lock()
	st.subs[ch] = struct{}{}
	st.mu.Unlock()

	cancel := func() {
		st.mu.Lock()
		delete(st.subs, ch)
		st.mu.Unlock()
	}
	return ch, cancel
}

// Dispatch applies an action. Synchronous transitions (variable, metric,
// hover, selection, and month switches that hit the cache) settle before
// Dispatch returns; a cache-miss month switch returns immediately with the
// loading flag set and settles in the background.
func (st *Store) Dispatch(ctx context.Context, a Action) {
	if sm, ok := a.(SetMonth); ok {
		st.dispatchMonth(ctx, sm)
		return
	}

	st.mu.Lock()
	next := Apply(st.cur, a)
	changed := next != st.cur
	st.cur = next
	st.mu.Unlock()

	if changed {
		st.broadcast(next)
	}
}

func (st *Store) dispatchMonth(ctx context.Context, a SetMonth) {
	key, err := domain.MonthByIndex(a.Index)
	if err != nil {
		return
	}

	st.mu.Lock()
	if st.cur.Loading || a.Index == st.cur.MonthIndex {
		st.mu.Unlock()
		return
	}

	// Cache hit: the switch resolves synchronously with no loading flicker.
	if st.cache.Cached(key) {
		st.cur = Apply(st.cur, a)
		next := st.cur
		st.mu.Unlock()
		st.broadcast(next)
		return
	}

	st.cur.Loading = true
	loading := st.cur
	st.mu.Unlock()
	st.broadcast(loading)

	go func() {
		_, fetchErr := st.cache.GetOrFetch(ctx, key)

		st.mu.Lock()
		st.cur.Loading = false
		if fetchErr == nil {
			st.cur.MonthIndex = a.Index
		}
		next := st.cur
		st.mu.Unlock()

		if fetchErr != nil {
			// No retry; the previously loaded month stays on screen.
			st.logger.Warn("month switch failed, keeping previous month",
				"month", key, "error", fetchErr)
		}
		st.broadcast(next)
	}()
}

func (st *Store) broadcast(s Selection) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for ch := range st.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// Hovered pairs the hover reference with the data needed by detail panels.
// A cell hover resolves to the co-located values of all three variables.
func (st *Store) Hovered(ctx context.Context) (*HoverRef, *domain.GridDataset) {
	st.mu.Lock()
	ref := st.cur.Hovered
	key := st.cur.Month()
	st.mu.Unlock()

	if ref == nil || ref.Kind != HoverCell {
		return ref, nil
	}
	if !st.cache.Cached(key) {
		return ref, nil
	}
	ds, err := st.cache.GetOrFetch(ctx, key)
	if err != nil {
		return ref, nil
	}
	return ref, ds
}
