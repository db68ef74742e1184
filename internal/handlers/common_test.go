package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fezze07/JustUS/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{services.ErrBadRequest, http.StatusBadRequest},
		{services.ErrInvalidVote, http.StatusBadRequest},
		{services.ErrNoPartner, http.StatusBadRequest},
		{services.ErrInvalidCredentials, http.StatusUnauthorized},
		{services.ErrInvalidToken, http.StatusUnauthorized},
		{services.ErrNotParticipant, http.StatusForbidden},
		{services.ErrLocked, http.StatusForbidden},
		{services.ErrQuestionNotFound, http.StatusNotFound},
		{services.ErrPartnerNotFound, http.StatusNotFound},
		{services.ErrItemNotFound, http.StatusNotFound},
		{services.ErrAlreadyPaired, http.StatusConflict},
		{services.ErrRequestExists, http.StatusConflict},
		{errors.New("pgx: broken pipe"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFromError(tc.err), "error %v", tc.err)
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Server error", body["error"])
}

func TestRespondSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondSuccess(rec, map[string]any{"total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(3), body["total"])
}
