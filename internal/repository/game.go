package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fezze07/JustUS/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameRepository handles database operations for the matching game
type GameRepository struct {
	db *pgxpool.Pool
}

// NewGameRepository creates a new game repository
func NewGameRepository(db *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: db}
}

// OpenQuestion returns the most recent question between the pair, in
// either creator/counterpart direction, that has fewer than two answers.
// Returns nil when the pair has no open question.
func (r *GameRepository) OpenQuestion(ctx context.Context, userID, partnerID int64) (*models.GameQuestion, error) {
	query := `
		SELECT q.id, q.user_id, q.partner_id, q.text, q.created_at
		FROM game_questions q
		WHERE ((q.user_id = $1 AND q.partner_id = $2) OR (q.user_id = $2 AND q.partner_id = $1))
		  AND (SELECT COUNT(*) FROM game_answers a WHERE a.game_id = q.id) < 2
		ORDER BY q.created_at DESC
		LIMIT 1
	`
	var q models.GameQuestion
	err := r.db.QueryRow(ctx, query, userID, partnerID).Scan(
		&q.ID, &q.UserID, &q.PartnerID, &q.Text, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open question: %w", err)
	}
	return &q, nil
}

// CreateQuestionIfNoneOpen inserts a question only while the pair has no
// open question, in a single conditional statement. Two concurrent
// callers cannot both insert; the loser gets false and should re-read
// the winner's question.
func (r *GameRepository) CreateQuestionIfNoneOpen(ctx context.Context, question *models.GameQuestion) (bool, error) {
	query := `
		INSERT INTO game_questions (user_id, partner_id, text)
		SELECT $1, $2, $3
		WHERE NOT EXISTS (
			SELECT 1 FROM game_questions q
			WHERE ((q.user_id = $1 AND q.partner_id = $2) OR (q.user_id = $2 AND q.partner_id = $1))
			  AND (SELECT COUNT(*) FROM game_answers a WHERE a.game_id = q.id) < 2
		)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, question.UserID, question.PartnerID, question.Text).
		Scan(&question.ID, &question.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create question: %w", err)
	}
	return true, nil
}

// GetQuestion retrieves a question by id
func (r *GameRepository) GetQuestion(ctx context.Context, id int64) (*models.GameQuestion, error) {
	query := `
		SELECT id, user_id, partner_id, text, created_at
		FROM game_questions
		WHERE id = $1
	`
	var q models.GameQuestion
	err := r.db.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.UserID, &q.PartnerID, &q.Text, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &q, nil
}

// HasAnswer checks whether a user has already voted on a question
func (r *GameRepository) HasAnswer(ctx context.Context, gameID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM game_answers WHERE game_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, gameID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check answer existence: %w", err)
	}
	return exists, nil
}

// UpsertAnswer inserts a vote, or overwrites the selected option when the
// same voter answers the same question again
func (r *GameRepository) UpsertAnswer(ctx context.Context, answer *models.GameAnswer) error {
	query := `
		INSERT INTO game_answers (game_id, user_id, partner_id, selected_option)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, user_id)
		DO UPDATE SET selected_option = EXCLUDED.selected_option
	`
	_, err := r.db.Exec(ctx, query,
		answer.GameID, answer.UserID, answer.PartnerID, answer.SelectedOption,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert answer: %w", err)
	}
	return nil
}

// CountMatches counts completed questions where both participants voted
// for the same resolved user id, across all pairs
func (r *GameRepository) CountMatches(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM (
			SELECT game_id
			FROM game_answers
			GROUP BY game_id
			HAVING COUNT(*) = 2 AND COUNT(DISTINCT selected_option) = 1
		) AS matched
	`
	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return total, nil
}
