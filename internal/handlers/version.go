package handlers

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/rs/zerolog/log"
)

// VersionEntry is a single release in the distribution manifest
type VersionEntry struct {
	Version   string `json:"version"`
	ApkURL    string `json:"apk_url"`
	Changelog string `json:"changelog"`
}

// VersionHandler serves the latest app release for in-app updates
type VersionHandler struct {
	manifestPath string
}

// NewVersionHandler creates a version handler reading the given manifest file
func NewVersionHandler(manifestPath string) *VersionHandler {
	return &VersionHandler{manifestPath: manifestPath}
}

// Latest handles GET /app-version. The manifest is re-read on every
// request so releases can be published without a restart.
func (h *VersionHandler) Latest(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.manifestPath)
	if err != nil {
		log.Error().Err(err).Str("path", h.manifestPath).Msg("Failed to read version manifest")
		respondError(w, "Version information unavailable", http.StatusInternalServerError)
		return
	}

	var entries []VersionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Error().Err(err).Str("path", h.manifestPath).Msg("Invalid version manifest")
		respondError(w, "Version information unavailable", http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		respondError(w, "No releases published", http.StatusNotFound)
		return
	}

	latest := entries[len(entries)-1]
	respondSuccess(w, map[string]any{
		"version":   latest.Version,
		"apk_url":   latest.ApkURL,
		"changelog": latest.Changelog,
	})
}
