package handlers

import (
	"net/http"
	"strconv"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// BucketHandler handles shared bucket list HTTP requests
type BucketHandler struct {
	bucketService *services.BucketService
}

// NewBucketHandler creates a new bucket handler
func NewBucketHandler(bucketService *services.BucketService) *BucketHandler {
	return &BucketHandler{bucketService: bucketService}
}

// List handles GET /bucket
func (h *BucketHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, err := h.bucketService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list bucket items")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"items": items})
}

// AddItemRequest is the body for POST /bucket
type AddItemRequest struct {
	Text string `json:"text"`
}

// Add handles POST /bucket
func (h *BucketHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.bucketService.Add(ctx, userID, req.Text)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to add bucket item")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"item": item})
}

// ToggleDone handles PATCH /bucket/{id}/toggle
func (h *BucketHandler) ToggleDone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.bucketService.ToggleDone(ctx, userID, itemID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("Failed to toggle bucket item")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// Delete handles DELETE /bucket/{id}
func (h *BucketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.bucketService.Delete(ctx, userID, itemID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("Failed to delete bucket item")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, nil)
}
