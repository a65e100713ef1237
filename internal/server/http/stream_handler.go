package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/amatveev/feedhub/internal/auth"
	"github.com/amatveev/feedhub/internal/broadcast"
)

const heartbeatInterval = 10 * time.Second

// StreamHandler serves the change-event stream over SSE.
type StreamHandler struct {
	hub *broadcast.Hub
	log *zap.Logger
}

// NewStreamHandler constructs the handler.
func NewStreamHandler(hub *broadcast.Hub, log *zap.Logger) *StreamHandler {
	return &StreamHandler{hub: hub, log: log}
}

// Stream handles GET /feed/stream. Each connected client gets its own hub
// subscription; delivery starts at connect time, nothing is replayed, and a
// disconnect just drops the subscription.
func (h *StreamHandler) Stream(c echo.Context) error {
	res := auth.ResultFromCtx(c.Request().Context())
	if _, err := auth.RequireAuthenticated(res); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	flusher, ok := c.Response().Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming not supported")
	}

	subID, events := h.hub.Subscribe()
	defer h.hub.Unsubscribe(subID)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-heartbeat.C:
			if _, err := c.Response().Write([]byte(": heartbeat\n\n")); err != nil {
				return nil
			}
			flusher.Flush()

		case ev, open := <-events:
			if !open {
				// hub shut down
				return nil
			}
			data, err := json.Marshal(toEventPayload(ev))
			if err != nil {
				h.log.Error("event marshal failed", zap.Error(err))
				continue
			}
			if _, err := c.Response().Write(append(append([]byte("data: "), data...), '\n', '\n')); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}
