package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// NotifyHandler handles push notification HTTP requests
type NotifyHandler struct {
	notifyService *services.NotifyService
}

// NewNotifyHandler creates a new notify handler
func NewNotifyHandler(notifyService *services.NotifyService) *NotifyHandler {
	return &NotifyHandler{notifyService: notifyService}
}

// SendRequest is the body for POST /notify/{type}
type SendRequest struct {
	Target string `json:"target"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// Send handles POST /notify/{type}. Target is either the literal
// "partner" or a username addressed together with a code.
func (h *NotifyHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	notifType := chi.URLParam(r, "type")

	var req SendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Target == "" {
		respondError(w, "Missing target", http.StatusBadRequest)
		return
	}

	var err error
	if req.Target == "partner" {
		err = h.notifyService.SendToPartner(ctx, userID, notifType, req.Title, req.Body)
	} else {
		err = h.notifyService.SendToPartnerByAddress(ctx, userID, req.Target, req.Code, notifType, req.Title, req.Body)
	}
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Str("type", notifType).Msg("Notification failed")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"message": "Notification sent"})
}
