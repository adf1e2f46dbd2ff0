package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"ratemynus-portal/internal/portal/config"
	"ratemynus-portal/internal/portal/typeahead"
	"ratemynus-portal/pkg/common"
	"ratemynus-portal/pkg/logger"
	"ratemynus-portal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// Client to server message types.
const (
	msgInput   = "input"
	msgKey     = "key"
	msgPointer = "pointer"
	msgSelect  = "select"
)

// Server to client message types.
const (
	msgState    = "state"
	msgNavigate = "navigate"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type clientMessage struct {
	Type   string `json:"type"`
	Value  string `json:"value,omitempty"`
	Key    string `json:"key,omitempty"`
	Inside bool   `json:"inside,omitempty"`
	Code   string `json:"code,omitempty"`
}

type serverMessage struct {
	Type  string           `json:"type"`
	State *typeahead.State `json:"state,omitempty"`
	Path  string           `json:"path,omitempty"`
}

// SearchHandler runs one typeahead controller per websocket connection.
type SearchHandler struct {
	searcher typeahead.Searcher
	cfg      config.Search
	clock    clockwork.Clock
	logger   *logger.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher typeahead.Searcher, cfg config.Search, logger *logger.Logger) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		logger:   logger,
	}
}

func (h *SearchHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/search", h.Serve)
}

// Serve upgrades the request and pumps client events into a controller until
// the connection closes. Only the controller loop writes to the socket.
func (h *SearchHandler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return fmt.Errorf("failed to upgrade WebSocket: %w", err)
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	sessionID := uuid.NewString()
	log := h.logger.With(logger.StringField("session_id", sessionID))
	metrics.SearchSessionsActive.Inc()
	defer metrics.SearchSessionsActive.Dec()
	log.DebugContext(ctx, "Search session opened")

	write := func(msg serverMessage) {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.DebugContext(ctx, "Failed to write search message", logger.ErrorField(err))
			cancel()
		}
	}

	ctrl := typeahead.NewController(h.searcher,
		typeahead.NavigatorFunc(func(code string) {
			write(serverMessage{Type: msgNavigate, Path: common.ModulePagePrefix + url.PathEscape(code)})
		}),
		typeahead.WithClock(h.clock),
		typeahead.WithDebounce(h.cfg.Debounce),
		typeahead.WithMinQueryLength(h.cfg.MinQueryLength),
		typeahead.WithLogger(log),
		typeahead.WithListener(func(s typeahead.State) {
			write(serverMessage{Type: msgState, State: &s})
		}),
	)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = ctrl.Run(ctx)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.DebugContext(ctx, "Search session read failed", logger.ErrorField(err))
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.WarnContext(ctx, "Ignoring malformed search message", logger.ErrorField(err))
			continue
		}
		if err := h.apply(ctx, log, ctrl, msg); err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, typeahead.ErrStopped) {
				log.WarnContext(ctx, "Search session stopped", logger.ErrorField(err))
			}
			break
		}
	}

	cancel()
	<-stopped
	log.DebugContext(ctx, "Search session closed")
	return nil
}

func (h *SearchHandler) apply(ctx context.Context, log *logger.Logger, ctrl *typeahead.Controller, msg clientMessage) error {
	switch msg.Type {
	case msgInput:
		return ctrl.Input(ctx, msg.Value)
	case msgKey:
		return ctrl.KeyDown(ctx, typeahead.Key(msg.Key))
	case msgPointer:
		return ctrl.PointerDown(ctx, msg.Inside)
	case msgSelect:
		return ctrl.Select(ctx, msg.Code)
	default:
		log.DebugContext(ctx, "Ignoring unknown search message", logger.StringField("type", msg.Type))
		return nil
	}
}
