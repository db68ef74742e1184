package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MoodRepository handles database operations for moods
type MoodRepository struct {
	db *pgxpool.Pool
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *pgxpool.Pool) *MoodRepository {
	return &MoodRepository{db: db}
}

// Insert records a new mood entry
func (r *MoodRepository) Insert(ctx context.Context, userID int64, emoji string) error {
	query := `INSERT INTO moods (user_id, emoji) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, userID, emoji); err != nil {
		return fmt.Errorf("failed to insert mood: %w", err)
	}
	return nil
}

// Latest returns the most recent emoji for a user, or nil when the user
// has never set a mood
func (r *MoodRepository) Latest(ctx context.Context, userID int64) (*string, error) {
	query := `SELECT emoji FROM moods WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	var emoji string
	err := r.db.QueryRow(ctx, query, userID).Scan(&emoji)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest mood: %w", err)
	}
	return &emoji, nil
}

// RecentForCouple returns the latest emojis across both sides of a pair
func (r *MoodRepository) RecentForCouple(ctx context.Context, userID, partnerID int64, limit int) ([]string, error) {
	query := `
		SELECT emoji FROM moods
		WHERE user_id IN ($1, $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, userID, partnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent moods: %w", err)
	}
	defer rows.Close()

	emojis := []string{}
	for rows.Next() {
		var emoji string
		if err := rows.Scan(&emoji); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		emojis = append(emojis, emoji)
	}
	return emojis, rows.Err()
}
