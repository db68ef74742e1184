package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // clients connect from the mobile app webview
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub                *services.WSHub
	userService        *services.UserService
	partnershipService *services.PartnershipService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	userService *services.UserService,
	partnershipService *services.PartnershipService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                hub,
		userService:        userService,
		partnershipService: partnershipService,
	}
}

// HandleWebSocket handles GET /ws?token=. The connection carries
// server-pushed partner events; inbound frames are only read to detect
// the close.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "Token required", http.StatusUnauthorized)
		return
	}

	userID, err := h.userService.ValidateJWT(token)
	if err != nil {
		respondError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID)

	ctx := r.Context()
	partnerID, err := h.partnershipService.PartnerID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to resolve partner for status push")
		partnerID = 0
	}

	h.hub.NotifyPartnerStatus(partnerID, true)
	defer h.hub.NotifyPartnerStatus(partnerID, false)

	statusMsg := services.WSMessage{
		Type: services.WSPartnerStatus,
		Data: map[string]any{
			"partner_online": partnerID != 0 && h.hub.IsOnline(partnerID),
		},
	}
	if err := h.hub.SendToUser(userID, statusMsg); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to send initial status message")
	}

	log.Info().Int64("user_id", userID).Msg("WebSocket connection established")

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Int64("user_id", userID).Msg("WebSocket error")
			}
			break
		}
	}
}
