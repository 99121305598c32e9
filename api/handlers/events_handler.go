// api/handlers/events_handler.go
package handlers

import (
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/events"
	"github.com/versehub/versehub/internal/store"
)

// EventsHandler serves the SSE stream: one "connected" event up front,
// then broker notifications interleaved with heartbeats.
type EventsHandler struct {
	Broker    *events.Broker
	Creds     *store.CredentialStore
	Cfg       *config.Config
	Heartbeat time.Duration
}

func NewEventsHandler(broker *events.Broker, creds *store.CredentialStore, cfg *config.Config) *EventsHandler {
	return &EventsHandler{
		Broker:    broker,
		Creds:     creds,
		Cfg:       cfg,
		Heartbeat: 15 * time.Second,
	}
}

// Stream handles GET /events/stream. EventSource clients cannot set an
// Authorization header, so identity rides in an optional `token` query
// parameter; anonymous streams are allowed but an invalid token is not.
func (h *EventsHandler) Stream(c *gin.Context) {
	username := "anonymous"
	if token := c.Query("token"); token != "" {
		record, err := auth.ResolveTokenIdentity(token, h.Cfg.JWTSecret, h.Creds)
		if err != nil {
			// The error middleware turns this into the generic 401.
			_ = c.Error(err)
			return
		}
		username = record.Username
	}

	sub, cancel := h.Broker.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.SSEvent("connected", gin.H{"message": "Connected to event stream", "user": username})
	c.Writer.Flush()

	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-clientGone:
			return false
		case event, ok := <-sub:
			if !ok {
				return false
			}
			c.SSEvent(event.Type, event)
			return true
		case t := <-heartbeat.C:
			c.SSEvent("heartbeat", gin.H{"time": t.UTC().Format(time.RFC3339)})
			return true
		}
	})

	customLog.Debugf("Event stream closed for %s", username)
}
