package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocket event types pushed to an online partner
const (
	WSPartnerStatus = "partner_status"
	WSPairRequested = "pair_requested"
	WSPairAccepted  = "pair_accepted"
	WSPairRejected  = "pair_rejected"
	WSGameAnswered  = "game_answered"
	WSMoodUpdated   = "mood_updated"
	WSMissYou       = "miss_you"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type        string      `json:"type"`
	InitiatorID int64       `json:"initiator_id,omitempty"`
	Online      *bool       `json:"online,omitempty"`
	Message     string      `json:"message,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

// WSHub manages one WebSocket connection per online user and pushes
// partner events to it
type WSHub struct {
	mu          sync.RWMutex
	connections map[int64]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[int64]*websocket.Conn),
	}
}

// Register registers a connection for a user, replacing any previous one
func (h *WSHub) Register(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[userID]; ok {
		existing.Close()
	}
	h.connections[userID] = conn

	log.Info().Int64("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a user's connection
func (h *WSHub) Unregister(userID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[userID]; ok {
		conn.Close()
		delete(h.connections, userID)
		log.Info().Int64("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a user has a live connection
func (h *WSHub) IsOnline(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[userID]
	return ok
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID int64, message WSMessage) error {
	h.mu.RLock()
	conn, ok := h.connections[userID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("user %d is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// NotifyPartner pushes an event to the partner when they are online.
// Best effort: a miss is silent, a write failure is logged.
func (h *WSHub) NotifyPartner(partnerID, initiatorID int64, msgType string, data interface{}) {
	if partnerID == 0 || !h.IsOnline(partnerID) {
		return
	}
	msg := WSMessage{
		Type:        msgType,
		InitiatorID: initiatorID,
		Data:        data,
	}
	if err := h.SendToUser(partnerID, msg); err != nil {
		log.Error().
			Err(err).
			Int64("partner_id", partnerID).
			Str("type", msgType).
			Msg("Failed to notify partner")
	}
}

// NotifyPartnerStatus tells the partner the user went online or offline
func (h *WSHub) NotifyPartnerStatus(partnerID int64, online bool) {
	if partnerID == 0 || !h.IsOnline(partnerID) {
		return
	}
	msg := WSMessage{
		Type:   WSPartnerStatus,
		Online: &online,
	}
	if err := h.SendToUser(partnerID, msg); err != nil {
		log.Error().
			Err(err).
			Int64("partner_id", partnerID).
			Msg("Failed to notify partner status")
	}
}
