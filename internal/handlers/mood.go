package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// MoodHandler handles mood HTTP requests
type MoodHandler struct {
	moodService        *services.MoodService
	partnershipService *services.PartnershipService
	wsHub              *services.WSHub
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(
	moodService *services.MoodService,
	partnershipService *services.PartnershipService,
	wsHub *services.WSHub,
) *MoodHandler {
	return &MoodHandler{
		moodService:        moodService,
		partnershipService: partnershipService,
		wsHub:              wsHub,
	}
}

// SetMoodRequest is the body for POST /mood
type SetMoodRequest struct {
	Emoji string `json:"emoji"`
}

// Set handles POST /mood
func (h *MoodHandler) Set(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SetMoodRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.moodService.Set(ctx, userID, req.Emoji); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to set mood")
		respondServiceError(w, err)
		return
	}

	if partnerID, err := h.partnershipService.PartnerID(ctx, userID); err == nil {
		h.wsHub.NotifyPartner(partnerID, userID, services.WSMoodUpdated, map[string]any{
			"emoji": req.Emoji,
		})
	}

	respondSuccess(w, map[string]any{"emoji": req.Emoji})
}

// Get handles GET /mood?target=me|partner
func (h *MoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	emoji, err := h.moodService.Get(ctx, userID, r.URL.Query().Get("target"))
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get mood")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"emoji": emoji})
}

// RecentCouple handles GET /mood/recent
func (h *MoodHandler) RecentCouple(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	emojis, err := h.moodService.RecentCouple(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get recent moods")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"emojis": emojis})
}
