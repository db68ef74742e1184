package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gameUsers() *fakeUserRepo {
	return &fakeUserRepo{
		getByIDFn: func(_ context.Context, id int64) (*models.User, error) {
			switch id {
			case 1:
				return &models.User{ID: 1, Username: "marco"}, nil
			case 2:
				return &models.User{ID: 2, Username: "anna"}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
}

func pairedWith(partnerID int64) *fakePartnershipRepo {
	return &fakePartnershipRepo{
		partnerIDFn: func(_ context.Context, _ int64) (int64, error) {
			return partnerID, nil
		},
	}
}

func TestCurrentQuestionRequiresPartner(t *testing.T) {
	svc := NewGameService(&fakeGameRepo{}, gameUsers(), pairedWith(0), &fakeGenerator{})

	_, err := svc.CurrentQuestion(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoPartner)
}

func TestCurrentQuestionCreatesNew(t *testing.T) {
	gameRepo := &fakeGameRepo{
		createQuestionIfNoneOpenFn: func(_ context.Context, q *models.GameQuestion) (bool, error) {
			assert.Equal(t, int64(1), q.UserID)
			assert.Equal(t, int64(2), q.PartnerID)
			assert.NotEmpty(t, q.Text)
			q.ID = 10
			return true, nil
		},
	}
	generator := &fakeGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "Chi dei due cucina meglio?", nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), generator)

	view, err := svc.CurrentQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), view.ID)
	assert.Equal(t, "Chi dei due cucina meglio?", view.Question)
	assert.Equal(t, "marco", view.OptionA)
	assert.Equal(t, "anna", view.OptionB)
	assert.Equal(t, GameStatusNew, view.Status)
}

func TestCurrentQuestionFallsBackWhenGenerationFails(t *testing.T) {
	var createdText string
	gameRepo := &fakeGameRepo{
		createQuestionIfNoneOpenFn: func(_ context.Context, q *models.GameQuestion) (bool, error) {
			createdText = q.Text
			return true, nil
		},
	}
	generator := &fakeGenerator{
		generateFn: func(_ context.Context, _ string) (string, error) {
			return "", errors.New("model offline")
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), generator)

	view, err := svc.CurrentQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, fallbackQuestion, createdText)
	assert.Equal(t, fallbackQuestion, view.Question)
}

func TestCurrentQuestionReturnsOpenOne(t *testing.T) {
	open := &models.GameQuestion{ID: 7, UserID: 2, PartnerID: 1, Text: "Chi si addormenta prima?"}
	gameRepo := &fakeGameRepo{
		openQuestionFn: func(_ context.Context, _, _ int64) (*models.GameQuestion, error) {
			return open, nil
		},
		createQuestionIfNoneOpenFn: func(_ context.Context, _ *models.GameQuestion) (bool, error) {
			t.Fatal("must not create a question while one is open")
			return false, nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	view, err := svc.CurrentQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), view.ID)
	// The creator (anna, id 2) always labels optionA, for both callers.
	assert.Equal(t, "anna", view.OptionA)
	assert.Equal(t, "marco", view.OptionB)
	assert.Equal(t, GameStatusPending, view.Status)
	assert.Empty(t, view.Message)
}

func TestCurrentQuestionWaitingAfterOwnVote(t *testing.T) {
	open := &models.GameQuestion{ID: 7, UserID: 1, PartnerID: 2, Text: "Chi guida meglio?"}
	gameRepo := &fakeGameRepo{
		openQuestionFn: func(_ context.Context, _, _ int64) (*models.GameQuestion, error) {
			return open, nil
		},
		hasAnswerFn: func(_ context.Context, gameID, userID int64) (bool, error) {
			return gameID == 7 && userID == 1, nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	view, err := svc.CurrentQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, GameStatusWaiting, view.Status)
	assert.Equal(t, waitingMessage, view.Message)
}

func TestCurrentQuestionLosesCreationRace(t *testing.T) {
	// The insert finds a concurrent open question; the partner's question
	// must be served instead of a duplicate.
	partnersQuestion := &models.GameQuestion{ID: 9, UserID: 2, PartnerID: 1, Text: "Chi canta peggio?"}
	openCalls := 0
	gameRepo := &fakeGameRepo{
		openQuestionFn: func(_ context.Context, _, _ int64) (*models.GameQuestion, error) {
			openCalls++
			if openCalls == 1 {
				return nil, nil
			}
			return partnersQuestion, nil
		},
		createQuestionIfNoneOpenFn: func(_ context.Context, _ *models.GameQuestion) (bool, error) {
			return false, nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	view, err := svc.CurrentQuestion(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(9), view.ID)
	assert.Equal(t, "anna", view.OptionA)
	assert.Equal(t, 2, openCalls)
}

func TestSubmitAnswerResolvesVoterRelativeOptions(t *testing.T) {
	question := &models.GameQuestion{ID: 7, UserID: 1, PartnerID: 2}
	cases := []struct {
		name         string
		voterID      int64
		votedFor     string
		wantSelected int64
		wantOther    int64
	}{
		{"creator votes A for self", 1, "A", 1, 2},
		{"creator votes B for partner", 1, "B", 2, 2},
		{"counterpart votes A for self", 2, "A", 2, 1},
		{"counterpart votes B for partner", 2, "B", 1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stored *models.GameAnswer
			gameRepo := &fakeGameRepo{
				getQuestionFn: func(_ context.Context, _ int64) (*models.GameQuestion, error) {
					return question, nil
				},
				upsertAnswerFn: func(_ context.Context, a *models.GameAnswer) error {
					stored = a
					return nil
				},
			}
			svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

			otherID, err := svc.SubmitAnswer(context.Background(), tc.voterID, 7, tc.votedFor)
			require.NoError(t, err)
			assert.Equal(t, tc.wantOther, otherID)
			require.NotNil(t, stored)
			assert.Equal(t, tc.wantSelected, stored.SelectedOption)
			assert.Equal(t, tc.voterID, stored.UserID)
		})
	}
}

func TestBothVotingAIsNotAMatch(t *testing.T) {
	// "A" is relative to the voter, so two "A" votes select different
	// users and must not count as agreement.
	question := &models.GameQuestion{ID: 7, UserID: 1, PartnerID: 2}
	var answers []*models.GameAnswer
	gameRepo := &fakeGameRepo{
		getQuestionFn: func(_ context.Context, _ int64) (*models.GameQuestion, error) {
			return question, nil
		},
		upsertAnswerFn: func(_ context.Context, a *models.GameAnswer) error {
			answers = append(answers, a)
			return nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	_, err := svc.SubmitAnswer(context.Background(), 1, 7, "A")
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(context.Background(), 2, 7, "A")
	require.NoError(t, err)

	require.Len(t, answers, 2)
	assert.NotEqual(t, answers[0].SelectedOption, answers[1].SelectedOption)
}

func TestSubmitAnswerRejectsInvalidVote(t *testing.T) {
	svc := NewGameService(&fakeGameRepo{}, gameUsers(), pairedWith(2), &fakeGenerator{})

	_, err := svc.SubmitAnswer(context.Background(), 1, 7, "C")
	assert.ErrorIs(t, err, ErrInvalidVote)
}

func TestSubmitAnswerUnknownQuestion(t *testing.T) {
	gameRepo := &fakeGameRepo{
		getQuestionFn: func(_ context.Context, _ int64) (*models.GameQuestion, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	_, err := svc.SubmitAnswer(context.Background(), 1, 99, "A")
	assert.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestSubmitAnswerRejectsOutsider(t *testing.T) {
	gameRepo := &fakeGameRepo{
		getQuestionFn: func(_ context.Context, _ int64) (*models.GameQuestion, error) {
			return &models.GameQuestion{ID: 7, UserID: 1, PartnerID: 2}, nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	_, err := svc.SubmitAnswer(context.Background(), 3, 7, "A")
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestStats(t *testing.T) {
	gameRepo := &fakeGameRepo{
		countMatchesFn: func(_ context.Context) (int64, error) {
			return 42, nil
		},
	}
	svc := NewGameService(gameRepo, gameUsers(), pairedWith(2), &fakeGenerator{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.TotalMatches)
}
