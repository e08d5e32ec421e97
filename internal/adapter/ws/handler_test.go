package ws_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/climate-atlas/internal/adapter/ws"
	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/domain"
	"github.com/couchcryptid/climate-atlas/internal/observability"
	"github.com/couchcryptid/climate-atlas/internal/render"
	"github.com/couchcryptid/climate-atlas/internal/session"
)

func f(v float64) *float64 { return &v }

type stubFetcher struct{}

func (stubFetcher) FetchMonth(_ context.Context, key domain.MonthKey) (*domain.GridDataset, error) {
	return &domain.GridDataset{
		Month:         key,
		Lats:          []float64{50, 51},
		Lons:          []float64{10, 11},
		Temperature:   [][]*float64{{f(1), f(2)}, {f(3), f(4)}},
		Precipitation: [][]*float64{{f(1), f(2)}, {f(3), f(4)}},
		Sunshine:      [][]*float64{{f(1), f(2)}, {f(3), f(4)}},
	}, nil
}

func dial(t *testing.T) *websocket.Conn {
	t.Helper()
	cache := dataset.NewMonthCache(stubFetcher{}, clockwork.NewRealClock(), observability.NewMetricsForTesting())
	handler := ws.NewHandler(cache, observability.NewMetricsForTesting(), slog.Default())

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) session.Selection {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var s session.Selection
	require.NoError(t, conn.ReadJSON(&s))
	return s
}

func TestHandler_InitialState(t *testing.T) {
	conn := dial(t)

	s := readState(t, conn)
	assert.Equal(t, 0, s.MonthIndex)
	assert.Equal(t, domain.VariableTemperature, s.Variable)
	assert.Equal(t, domain.MetricResilience, s.Metric)
	assert.False(t, s.Loading)
}

func TestHandler_DispatchesActions(t *testing.T) {
	conn := dial(t)
	readState(t, conn) // initial

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "set_variable", "variable": "precipitation",
	}))
	s := readState(t, conn)
	assert.Equal(t, domain.VariablePrecipitation, s.Variable)

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "select_city", "city": "Lisbon",
	}))
	s = readState(t, conn)
	assert.Equal(t, "Lisbon", s.Selected)
}

func TestHandler_MonthSwitchStreamsLoadingThenSettled(t *testing.T) {
	conn := dial(t)
	readState(t, conn) // initial

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "set_month", "month": 5,
	}))

	loading := readState(t, conn)
	assert.True(t, loading.Loading)
	assert.Equal(t, 0, loading.MonthIndex)

	settled := readState(t, conn)
	assert.False(t, settled.Loading)
	assert.Equal(t, 5, settled.MonthIndex)
}

// stateFrame mirrors the outbound frame shape for decoding in tests.
type stateFrame struct {
	session.Selection
	HoverDetail *render.PointDetail `json:"hover_detail"`
}

func readFrame(t *testing.T, conn *websocket.Conn) stateFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var fr stateFrame
	require.NoError(t, conn.ReadJSON(&fr))
	return fr
}

func TestHandler_CellHoverCarriesPointDetail(t *testing.T) {
	conn := dial(t)
	readState(t, conn) // initial

	// Hovering before any month is cached yields no detail.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "hover", "kind": "cell", "row": 0, "col": 0,
	}))
	fr := readFrame(t, conn)
	require.NotNil(t, fr.Hovered)
	assert.Nil(t, fr.HoverDetail)

	// Cache a month, then hover: the frame resolves all three variables.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "set_month", "month": 5,
	}))
	readFrame(t, conn) // loading
	readFrame(t, conn) // settled

	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "hover", "kind": "cell", "row": 1, "col": 0,
	}))
	fr = readFrame(t, conn)
	require.NotNil(t, fr.HoverDetail)
	assert.Equal(t, 51.0, fr.HoverDetail.Lat)
	assert.Equal(t, 10.0, fr.HoverDetail.Lon)
	require.NotNil(t, fr.HoverDetail.Temperature)
	assert.Equal(t, 3.0, *fr.HoverDetail.Temperature)

	// City hovers carry no grid detail.
	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "hover", "kind": "city", "city": "Oslo",
	}))
	fr = readFrame(t, conn)
	require.NotNil(t, fr.Hovered)
	assert.Nil(t, fr.HoverDetail)
}

func TestHandler_SkipsMalformedFrames(t *testing.T) {
	conn := dial(t)
	readState(t, conn) // initial

	// Neither frame kills the session; the next valid action still lands.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	require.NoError(t, conn.WriteJSON(map[string]any{"action": "teleport"}))
	require.NoError(t, conn.WriteJSON(map[string]any{
		"action": "set_metric", "metric": "cost_index",
	}))

	s := readState(t, conn)
	assert.Equal(t, domain.MetricCostIndex, s.Metric)
}
