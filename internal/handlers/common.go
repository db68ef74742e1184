package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Fezze07/JustUS/internal/services"
)

// respondJSON writes a JSON body with the given status
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondSuccess writes a {"success":true, …} envelope
func respondSuccess(w http.ResponseWriter, fields map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	respondJSON(w, http.StatusOK, body)
}

// respondError writes a {"success":false,"error":…} envelope
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, map[string]any{
		"success": false,
		"error":   message,
	})
}

// respondServiceError maps a service error to its HTTP status. Raw
// internal detail never reaches the client.
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Server error"
	}
	respondError(w, message, status)
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrLocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
