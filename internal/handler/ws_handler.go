package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	ws "github.com/quizlive/quizlive-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler upgrades connections into the broadcast hub.
type WSHandler struct {
	hub      *ws.Hub
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *ws.Hub, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:      hub,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// GET /ws?pin=12345&player_id=...&role=player|admin
// Upgrades to WebSocket and joins the session's audiences. The role tag is
// declared once at connect time; admin viewers pass role=admin and no
// player_id, players pass the id they received from the join endpoint.
func (h *WSHandler) Stream(c *gin.Context) {
	pin := c.Query("pin")
	if pin == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pin is required"})
		return
	}

	role := ws.RolePlayer
	if c.Query("role") == string(ws.RoleAdmin) {
		role = ws.RoleAdmin
	}
	playerID := c.Query("player_id")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.hub, conn, pin, playerID, role, h.log)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
