// Package ws streams selection state over a websocket. Each connection owns
// an independent session store: the client sends action frames, the server
// pushes the resulting state after every change, including the async settle
// of a month switch.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/couchcryptid/climate-atlas/internal/dataset"
	"github.com/couchcryptid/climate-atlas/internal/observability"
	"github.com/couchcryptid/climate-atlas/internal/render"
	"github.com/couchcryptid/climate-atlas/internal/session"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 1024
)

// Handler upgrades requests on its route and runs one session per
// connection.
type Handler struct {
	cache   *dataset.MonthCache
	metrics *observability.Metrics
	logger  *slog.Logger

	upgrader websocket.Upgrader
}

// NewHandler creates the websocket handler. Origin checks are delegated to
// the CORS layer in front of the router.
func NewHandler(cache *dataset.MonthCache, metrics *observability.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	h.metrics.WSClients.Inc()
	defer h.metrics.WSClients.Dec()

	store := session.NewStore(h.cache, h.logger)
	states, cancel := store.Subscribe()
	defer cancel()

	quit := make(chan struct{})
	done := make(chan struct{})
	go h.writePump(conn, store, states, quit, done)

	h.readPump(r, conn, store)
	close(quit)
	conn.Close()
	<-done
}

// readPump decodes action frames and dispatches them until the connection
// drops. Malformed frames are logged and skipped rather than killing the
// session.
func (h *Handler) readPump(r *http.Request, conn *websocket.Conn, store *session.Store) {
	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Warn("dropping malformed frame", "error", err)
			continue
		}
		action, err := msg.toAction()
		if err != nil {
			h.logger.Warn("dropping invalid action", "error", err)
			continue
		}
		store.Dispatch(r.Context(), action)
	}
}

// writePump pushes the initial state, then every subsequent state change,
// interleaved with keepalive pings, until the reader signals quit.
func (h *Handler) writePump(conn *websocket.Conn, store *session.Store, states <-chan session.Selection, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := h.writeState(conn, store, store.Selection()); err != nil {
		return
	}
	for {
		select {
		case s := <-states:
			if err := h.writeState(conn, store, s); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-quit:
			return
		}
	}
}

// stateFrame is one outbound frame: the selection state plus, when a grid
// cell is hovered and its month is already cached, the co-located values of
// all three variables at that cell.
type stateFrame struct {
	session.Selection
	HoverDetail *render.PointDetail `json:"hover_detail,omitempty"`
}

func (h *Handler) writeState(conn *websocket.Conn, store *session.Store, s session.Selection) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
	return conn.WriteJSON(stateFrame{Selection: s, HoverDetail: h.hoverDetail(store)})
}

// hoverDetail resolves the hovered cell to its point detail. City hovers and
// cell hovers on a not-yet-cached month resolve to nothing; the frame then
// carries only the selection.
func (h *Handler) hoverDetail(store *session.Store) *render.PointDetail {
	ref, ds := store.Hovered(context.Background())
	if ref == nil || ds == nil {
		return nil
	}
	detail, err := render.PointAt(ds, ref.Row, ref.Col)
	if err != nil {
		return nil
	}
	return &detail
}
