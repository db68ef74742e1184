package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// PartnershipHandler handles partnership HTTP requests
type PartnershipHandler struct {
	partnershipService *services.PartnershipService
	notifyService      *services.NotifyService
	wsHub              *services.WSHub
}

// NewPartnershipHandler creates a new partnership handler
func NewPartnershipHandler(
	partnershipService *services.PartnershipService,
	notifyService *services.NotifyService,
	wsHub *services.WSHub,
) *PartnershipHandler {
	return &PartnershipHandler{
		partnershipService: partnershipService,
		notifyService:      notifyService,
		wsHub:              wsHub,
	}
}

// SendRequestBody is the body for POST /partnerships/request
type SendRequestBody struct {
	PartnerUsername string `json:"partner_username"`
	PartnerCode     string `json:"partner_code"`
}

// SendRequest handles POST /partnerships/request
func (h *PartnershipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req SendRequestBody
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PartnerUsername == "" || req.PartnerCode == "" {
		respondError(w, "partner_username and partner_code are required", http.StatusBadRequest)
		return
	}

	targetID, err := h.partnershipService.SendRequest(ctx, userID, req.PartnerUsername, req.PartnerCode)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Str("partner_username", req.PartnerUsername).
			Msg("Failed to send partnership request")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("target_id", targetID).
		Msg("Partnership request sent")

	h.wsHub.NotifyPartner(targetID, userID, services.WSPairRequested, nil)
	h.notifyService.SendAsync(userID, targetID, "pair_request", "Nuova richiesta", "Qualcuno vuole connettersi con te")

	respondSuccess(w, map[string]any{"message": "Request sent"})
}

// ResolveRequestBody is the body for accept/reject endpoints
type ResolveRequestBody struct {
	RequesterID int64 `json:"requester_id"`
}

// Accept handles POST /partnerships/accept
func (h *PartnershipHandler) Accept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req ResolveRequestBody
	if err := decodeJSON(r, &req); err != nil || req.RequesterID == 0 {
		respondError(w, "requester_id is required", http.StatusBadRequest)
		return
	}

	if err := h.partnershipService.Accept(ctx, userID, req.RequesterID); err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("requester_id", req.RequesterID).
			Msg("Failed to accept partnership request")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("requester_id", req.RequesterID).
		Msg("Partnership accepted")

	h.wsHub.NotifyPartner(req.RequesterID, userID, services.WSPairAccepted, nil)
	h.notifyService.SendAsync(userID, req.RequesterID, "pair_accepted", "Richiesta accettata", "Ora siete connessi")

	respondSuccess(w, map[string]any{"message": "Partnership accepted"})
}

// Reject handles POST /partnerships/reject
func (h *PartnershipHandler) Reject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req ResolveRequestBody
	if err := decodeJSON(r, &req); err != nil || req.RequesterID == 0 {
		respondError(w, "requester_id is required", http.StatusBadRequest)
		return
	}

	if err := h.partnershipService.Reject(ctx, userID, req.RequesterID); err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("requester_id", req.RequesterID).
			Msg("Failed to reject partnership request")
		respondServiceError(w, err)
		return
	}

	h.wsHub.NotifyPartner(req.RequesterID, userID, services.WSPairRejected, nil)

	respondSuccess(w, map[string]any{"message": "Request rejected"})
}

// Get handles GET /partnerships
func (h *PartnershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	view, err := h.partnershipService.GetPartnership(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get partnership")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"partner": view.Partner,
		"pendingRequests": map[string]any{
			"received": view.PendingReceived,
			"sent":     view.PendingSent,
		},
	})
}

// Search handles GET /partnerships/search
func (h *PartnershipHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := r.URL.Query().Get("username")
	code := r.URL.Query().Get("code")

	users, err := h.partnershipService.SearchUsers(ctx, username, code)
	if err != nil {
		log.Error().Err(err).Msg("Failed to search users")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"users": users})
}
