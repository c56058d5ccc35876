package ws

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"social/internal/config"
	"social/internal/core/auth"
	"social/internal/logger"

	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	auth     auth.Authenticator
	log      logger.Logger
}

func NewHandler(hub *Hub, cfg *config.Config, authenticator auth.Authenticator, log logger.Logger) *Handler {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || slices.Contains(cfg.AllowedOrigins, "*") {
				return true
			}

			allowed := slices.Contains(cfg.AllowedOrigins, origin)
			if !allowed {
				log.Warn("ws origin rejected", "origin", origin)
			}
			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		auth:     authenticator,
		log:      log,
	}
}

// Serve authenticates with the access token from the "token" query
// parameter, since browsers cannot set headers on websocket requests. A
// bearer Authorization header is accepted too.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if token == "" {
		h.log.Warn("ws unauthorized: no token")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.CurrentUserFromAccessToken(r.Context(), token)
	if err != nil {
		h.log.Warn("ws unauthorized", "error", err)
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log, strconv.FormatInt(user.ID, 10))

	select {
	case h.hub.register <- client:
	case <-h.hub.ctx.Done():
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.log.Info("ws client connected", "user_id", user.ID, "remote_addr", conn.RemoteAddr())
}
