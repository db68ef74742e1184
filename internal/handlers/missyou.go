package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// MissYouHandler handles miss-you HTTP requests
type MissYouHandler struct {
	missYouService *services.MissYouService
	notifyService  *services.NotifyService
	wsHub          *services.WSHub
}

// NewMissYouHandler creates a new miss-you handler
func NewMissYouHandler(
	missYouService *services.MissYouService,
	notifyService *services.NotifyService,
	wsHub *services.WSHub,
) *MissYouHandler {
	return &MissYouHandler{
		missYouService: missYouService,
		notifyService:  notifyService,
		wsHub:          wsHub,
	}
}

// Send handles POST /missyou
func (h *MissYouHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	total, partnerID, err := h.missYouService.Send(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to send miss-you")
		respondServiceError(w, err)
		return
	}

	h.wsHub.NotifyPartner(partnerID, userID, services.WSMissYou, map[string]any{"total": total})
	h.notifyService.SendAsync(userID, partnerID, "missyou", "Mi manchi", "Il tuo partner ti pensa")

	respondSuccess(w, map[string]any{"total": total})
}

// Total handles GET /missyou
func (h *MissYouHandler) Total(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	total, err := h.missYouService.Total(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get miss-you total")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"total": total})
}
