// api/handlers/ws_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/versehub/versehub/config"
	"github.com/versehub/versehub/internal/auth"
	"github.com/versehub/versehub/internal/store"
	"github.com/versehub/versehub/internal/ws"
)

// WSHandler upgrades connections and runs the per-connection read loop.
// Echo frames go back to the sender; "broadcast" frames fan out to every
// connected client through the hub.
type WSHandler struct {
	Hub            *ws.Hub
	Creds          *store.CredentialStore
	Cfg            *config.Config
	originPatterns []string
}

func NewWSHandler(hub *ws.Hub, creds *store.CredentialStore, cfg *config.Config) *WSHandler {
	// The accept options want host patterns, not full origin URLs.
	patterns := make([]string, 0, len(cfg.CORSOrigins))
	for _, origin := range cfg.CORSOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}

	return &WSHandler{
		Hub:            hub,
		Creds:          creds,
		Cfg:            cfg,
		originPatterns: patterns,
	}
}

// Connect handles GET /ws/connect. Browsers cannot set an Authorization
// header on a WebSocket handshake, so identity rides in an optional
// `token` query parameter; an invalid token rejects the handshake rather
// than silently downgrading to anonymous.
func (h *WSHandler) Connect(c *gin.Context) {
	username := ""
	if token := c.Query("token"); token != "" {
		record, err := auth.ResolveTokenIdentity(token, h.Cfg.JWTSecret, h.Creds)
		if err != nil {
			// The error middleware turns this into the generic 401 before
			// any upgrade happens.
			_ = c.Error(err)
			return
		}
		username = record.Username
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		customLog.Warnf("WebSocket accept failed: %v", err)
		return
	}

	client := h.Hub.Register(conn, username)
	defer h.Hub.Unregister(conn)

	ctx := c.Request.Context()

	greeting := ws.Message{Type: "connected", Message: fmt.Sprintf("connections: %d", h.Hub.ConnectionCount())}
	if err := h.Hub.Send(ctx, conn, greeting); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "greeting failed")
		return
	}

	h.readLoop(ctx, conn, client)
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *ws.Client) {
	for {
		msgType, payload, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway && !errors.Is(err, context.Canceled) {
				customLog.Debugf("WebSocket read ended: %v", err)
			}
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			_ = h.Hub.Send(ctx, conn, ws.Message{Type: "error", Message: "frames must be JSON"})
			continue
		}

		from := client.Username
		if from == "" {
			from = "anonymous"
		}

		switch msg.Type {
		case "broadcast":
			h.Hub.Broadcast(ctx, ws.Message{Type: "broadcast", Message: msg.Message, From: from})
		default:
			// Anything else echoes back to the sender.
			if err := h.Hub.Send(ctx, conn, ws.Message{Type: "echo", Message: msg.Message, From: from}); err != nil {
				_ = conn.Close(websocket.StatusInternalError, "write failed")
				return
			}
		}
	}
}
