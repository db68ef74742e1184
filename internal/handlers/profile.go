package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// ProfileHandler handles user profile HTTP requests
type ProfileHandler struct {
	userService *services.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get profile")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"user": user})
}

// UpdateProfileRequest is the body for PUT /profile
type UpdateProfileRequest struct {
	Bio           *string `json:"bio,omitempty"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateProfile(ctx, userID, req.Bio, req.ProfilePicURL); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}

	user, err := h.userService.GetProfile(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"user": user})
}

// ChangePasswordRequest is the body for POST /profile/password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword handles POST /profile/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Password change failed")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"message": "Password updated"})
}
