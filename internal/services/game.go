package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/rs/zerolog/log"
)

// Question states as observed by the caller, computed at read time from
// the answer rows
const (
	GameStatusNew     = "new"     // question just created by this call
	GameStatusPending = "pending" // open question, caller has not voted
	GameStatusWaiting = "waiting" // open question, caller voted, partner has not
)

const (
	// fallbackQuestion is served when the generation collaborator fails
	// or returns something unparsable
	fallbackQuestion = "Domanda non disponibile"
	waitingMessage   = "Aspetta che l'altro risponda"
)

// Game errors
var (
	ErrQuestionNotFound = fmt.Errorf("%w: question not found", ErrNotFound)
	ErrNotParticipant   = fmt.Errorf("%w: not a participant of this question", ErrForbidden)
	ErrInvalidVote      = fmt.Errorf("%w: votedFor must be A or B", ErrBadRequest)
)

// QuestionView is the current-question response for one caller.
//
// optionA is always the question creator's username and optionB the
// counterpart's, for both callers. This is NOT the same encoding as
// SubmitAnswer's A/B, which is relative to whoever is voting.
type QuestionView struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	OptionA  string `json:"optionA"`
	OptionB  string `json:"optionB"`
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
}

// StatsView is the global match statistics response
type StatsView struct {
	TotalMatches int64 `json:"totalMatches"`
}

// GameService runs the two-player matching game: one open question per
// pair, a vote from each side, a match when both votes resolve to the
// same user.
type GameService struct {
	gameRepo        repository.IGameRepository
	userRepo        repository.IUserRepository
	partnershipRepo repository.IPartnershipRepository
	generator       QuestionGenerator
}

// NewGameService creates a new game service
func NewGameService(
	gameRepo repository.IGameRepository,
	userRepo repository.IUserRepository,
	partnershipRepo repository.IPartnershipRepository,
	generator QuestionGenerator,
) *GameService {
	return &GameService{
		gameRepo:        gameRepo,
		userRepo:        userRepo,
		partnershipRepo: partnershipRepo,
		generator:       generator,
	}
}

// CurrentQuestion returns the pair's open question, generating a new one
// when none exists. Calling it twice without an intervening second
// answer returns the same question id.
func (s *GameService) CurrentQuestion(ctx context.Context, userID int64) (*QuestionView, error) {
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if partnerID == 0 {
		return nil, ErrNoPartner
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	partner, err := s.userRepo.GetByID(ctx, partnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, err
	}

	open, err := s.gameRepo.OpenQuestion(ctx, userID, partnerID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return s.openQuestionView(ctx, open, user, partner)
	}

	stem := questionStems[rand.Intn(len(questionStems))]
	text, err := s.generator.Generate(ctx, stem)
	if err != nil {
		// Generation is best effort: degrade to the placeholder
		// instead of failing the request.
		log.Warn().Err(err).Str("stem", stem).Msg("Question generation failed, using fallback")
		text = fallbackQuestion
	}

	question := &models.GameQuestion{
		UserID:    userID,
		PartnerID: partnerID,
		Text:      text,
	}
	inserted, err := s.gameRepo.CreateQuestionIfNoneOpen(ctx, question)
	if err != nil {
		return nil, err
	}
	if !inserted {
		// Lost the race: the partner created a question first. Serve
		// theirs instead of a duplicate.
		open, err = s.gameRepo.OpenQuestion(ctx, userID, partnerID)
		if err != nil {
			return nil, err
		}
		if open == nil {
			return nil, fmt.Errorf("open question vanished after insert conflict")
		}
		return s.openQuestionView(ctx, open, user, partner)
	}

	return &QuestionView{
		ID:       question.ID,
		Question: question.Text,
		OptionA:  user.Username,
		OptionB:  partner.Username,
		Status:   GameStatusNew,
	}, nil
}

// openQuestionView labels an existing open question for the caller.
// Labels are fixed to the creator's side so both callers see the same
// optionA/optionB.
func (s *GameService) openQuestionView(ctx context.Context, q *models.GameQuestion, user, partner *models.User) (*QuestionView, error) {
	answered, err := s.gameRepo.HasAnswer(ctx, q.ID, user.ID)
	if err != nil {
		return nil, err
	}

	optionA, optionB := user.Username, partner.Username
	if q.UserID != user.ID {
		optionA, optionB = partner.Username, user.Username
	}

	view := &QuestionView{
		ID:       q.ID,
		Question: q.Text,
		OptionA:  optionA,
		OptionB:  optionB,
		Status:   GameStatusPending,
	}
	if answered {
		view.Status = GameStatusWaiting
		view.Message = waitingMessage
	}
	return view, nil
}

// SubmitAnswer records a vote and returns the other participant's id so
// the caller can notify them. Here "A" always resolves to the voter's
// own id and "B" to the other participant's, regardless of who created
// the question. This is deliberately different from the optionA/optionB
// labels CurrentQuestion returns. A repeat vote overwrites the previous
// one.
func (s *GameService) SubmitAnswer(ctx context.Context, voterID, questionID int64, votedFor string) (int64, error) {
	if votedFor != "A" && votedFor != "B" {
		return 0, ErrInvalidVote
	}

	question, err := s.gameRepo.GetQuestion(ctx, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrQuestionNotFound
		}
		return 0, err
	}

	if voterID != question.UserID && voterID != question.PartnerID {
		return 0, ErrNotParticipant
	}

	otherID := question.UserID
	if voterID == question.UserID {
		otherID = question.PartnerID
	}

	selected := voterID
	if votedFor == "B" {
		selected = otherID
	}

	err = s.gameRepo.UpsertAnswer(ctx, &models.GameAnswer{
		GameID:         questionID,
		UserID:         voterID,
		PartnerID:      otherID,
		SelectedOption: selected,
	})
	if err != nil {
		return 0, err
	}
	return otherID, nil
}

// Stats returns the all-time number of matches across every pair
func (s *GameService) Stats(ctx context.Context) (*StatsView, error) {
	total, err := s.gameRepo.CountMatches(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsView{TotalMatches: total}, nil
}
