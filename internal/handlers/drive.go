package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// DriveHandler handles shared drive HTTP requests
type DriveHandler struct {
	driveService *services.DriveService
}

// NewDriveHandler creates a new drive handler
func NewDriveHandler(driveService *services.DriveService) *DriveHandler {
	return &DriveHandler{driveService: driveService}
}

// List handles GET /drive
func (h *DriveHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	items, err := h.driveService.List(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to list drive items")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"items": items})
}

// CreateItemRequest is the body for POST /drive
type CreateItemRequest struct {
	Type     string  `json:"type"`
	Content  *string `json:"content"`
	Metadata *string `json:"metadata,omitempty"`
}

// Create handles POST /drive
func (h *DriveHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.driveService.Create(ctx, userID, req.Type, req.Content, req.Metadata)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("type", req.Type).Msg("Failed to create drive item")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"success": true, "item": item})
}

// Get handles GET /drive/{id}
func (h *DriveHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	item, err := h.driveService.Get(ctx, userID, itemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"item": item})
}

// Delete handles DELETE /drive/{id}
func (h *DriveHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.driveService.Delete(ctx, userID, itemID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("Failed to delete drive item")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"message": "Item deleted"})
}

// Changes handles GET /drive/changes?since=RFC3339
func (h *DriveHandler) Changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	since := time.Unix(0, 0).UTC()
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, "Invalid since timestamp", http.StatusBadRequest)
			return
		}
		since = parsed
	}

	changes, lastSync, err := h.driveService.Changes(ctx, userID, since)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get drive changes")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"changes":  changes,
		"lastSync": lastSync.Format(time.RFC3339),
	})
}

// ReactionRequest is the body for POST /drive/{id}/reaction
type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

// AddReaction handles POST /drive/{id}/reaction
func (h *DriveHandler) AddReaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	var req ReactionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	counts, err := h.driveService.AddReaction(ctx, userID, itemID, req.Emoji)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("Failed to add reaction")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"counts": counts})
}

// Reactions handles GET /drive/{id}/reactions
func (h *DriveHandler) Reactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	reactions, err := h.driveService.Reactions(ctx, userID, itemID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"reactions": reactions})
}

// AddFavorite handles POST /drive/{id}/favorite
func (h *DriveHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.driveService.AddFavorite(ctx, userID, itemID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// RemoveFavorite handles DELETE /drive/{id}/favorite
func (h *DriveHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	itemID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	if err := h.driveService.RemoveFavorite(ctx, userID, itemID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, nil)
}

// UploadRequest is the body for POST /drive/upload
type UploadRequest struct {
	Type        string `json:"type"`
	ContentType string `json:"content_type"`
}

// Upload handles POST /drive/upload
func (h *DriveHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UploadRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ContentType == "" {
		req.ContentType = "application/octet-stream"
	}

	resp, err := h.driveService.PresignUpload(ctx, userID, req.Type, req.ContentType)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("type", req.Type).Msg("Failed to presign upload")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"upload_url": resp.UploadURL,
		"object_url": resp.ObjectURL,
		"expires_in": resp.ExpiresIn,
	})
}
