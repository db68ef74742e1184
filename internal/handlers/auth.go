package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and token endpoints
type AuthHandler struct {
	userService *services.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// RegisterRequest is the body for POST /auth/register
type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       *string `json:"email,omitempty"`
	DeviceToken *string `json:"deviceToken,omitempty"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userService.Register(r.Context(), req.Username, req.Password, req.Email, req.DeviceToken)
	if err != nil {
		log.Error().Err(err).Str("username", req.Username).Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	respondSuccess(w, map[string]any{
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"code":     user.Code,
		},
	})
}

// LoginRequest is the body for POST /auth/login
type LoginRequest struct {
	UsernameWithCode string `json:"usernameWithCode"`
	Password         string `json:"password"`
	DeviceToken      string `json:"deviceToken"`
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, tokens, err := h.userService.Login(r.Context(), req.UsernameWithCode, req.Password, req.DeviceToken)
	if err != nil {
		log.Warn().Err(err).Str("login", req.UsernameWithCode).Msg("Login failed")
		respondServiceError(w, err)
		return
	}

	log.Info().Int64("user_id", user.ID).Msg("User logged in")
	respondSuccess(w, map[string]any{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user": map[string]any{
			"id":       user.ID,
			"username": user.Username,
			"code":     user.Code,
		},
	})
}

// RefreshRequest is the body for POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		respondError(w, "refreshToken is required", http.StatusBadRequest)
		return
	}

	tokens, err := h.userService.Refresh(req.RefreshToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// RecoverCodesRequest is the body for POST /auth/recover-codes
type RecoverCodesRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RecoverCodes handles POST /auth/recover-codes
func (h *AuthHandler) RecoverCodes(w http.ResponseWriter, r *http.Request) {
	var req RecoverCodesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	codes, err := h.userService.RecoverCodes(r.Context(), req.Username, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Code recovery failed")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"codes": codes})
}

// DeviceTokenRequest is the body for POST /auth/device-token
type DeviceTokenRequest struct {
	UsernameWithCode string `json:"usernameWithCode"`
	DeviceToken      string `json:"deviceToken"`
}

// UpdateDeviceToken handles POST /auth/device-token
func (h *AuthHandler) UpdateDeviceToken(w http.ResponseWriter, r *http.Request) {
	var req DeviceTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.userService.UpdateDeviceToken(r.Context(), req.UsernameWithCode, req.DeviceToken); err != nil {
		log.Error().Err(err).Str("login", req.UsernameWithCode).Msg("Failed to update device token")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, nil)
}
