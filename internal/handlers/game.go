package handlers

import (
	"net/http"

	"github.com/Fezze07/JustUS/internal/middleware"
	"github.com/Fezze07/JustUS/internal/services"

	"github.com/rs/zerolog/log"
)

// GameHandler handles matching game HTTP requests
type GameHandler struct {
	gameService *services.GameService
	wsHub       *services.WSHub
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *services.GameService, wsHub *services.WSHub) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		wsHub:       wsHub,
	}
}

// CurrentQuestion handles GET /game/new
func (h *GameHandler) CurrentQuestion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	view, err := h.gameService.CurrentQuestion(ctx, userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to get current question")
		respondServiceError(w, err)
		return
	}

	fields := map[string]any{
		"id":       view.ID,
		"question": view.Question,
		"optionA":  view.OptionA,
		"optionB":  view.OptionB,
		"status":   view.Status,
	}
	if view.Message != "" {
		fields["message"] = view.Message
	}
	respondSuccess(w, fields)
}

// AnswerRequest is the body for POST /game/answer
type AnswerRequest struct {
	QuestionID int64  `json:"questionId"`
	VotedFor   string `json:"votedFor"`
}

// SubmitAnswer handles POST /game/answer
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req AnswerRequest
	if err := decodeJSON(r, &req); err != nil || req.QuestionID == 0 {
		respondError(w, "questionId and votedFor are required", http.StatusBadRequest)
		return
	}

	otherID, err := h.gameService.SubmitAnswer(ctx, userID, req.QuestionID, req.VotedFor)
	if err != nil {
		log.Error().
			Err(err).
			Int64("user_id", userID).
			Int64("question_id", req.QuestionID).
			Msg("Failed to submit answer")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Int64("user_id", userID).
		Int64("question_id", req.QuestionID).
		Msg("Answer submitted")

	h.wsHub.NotifyPartner(otherID, userID, services.WSGameAnswered, map[string]any{
		"question_id": req.QuestionID,
	})

	respondSuccess(w, nil)
}

// Stats handles GET /game/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gameService.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get game stats")
		respondServiceError(w, err)
		return
	}

	respondSuccess(w, map[string]any{"totalMatches": stats.TotalMatches})
}
