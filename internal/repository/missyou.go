package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MissYouRepository handles database operations for miss-you pings
type MissYouRepository struct {
	db *pgxpool.Pool
}

// NewMissYouRepository creates a new miss-you repository
func NewMissYouRepository(db *pgxpool.Pool) *MissYouRepository {
	return &MissYouRepository{db: db}
}

// Insert records one miss-you ping from sender to receiver
func (r *MissYouRepository) Insert(ctx context.Context, senderID, receiverID int64) error {
	query := `INSERT INTO missyou (sender_id, receiver_id) VALUES ($1, $2)`
	if _, err := r.db.Exec(ctx, query, senderID, receiverID); err != nil {
		return fmt.Errorf("failed to insert miss-you: %w", err)
	}
	return nil
}

// Count returns the total pings sent in the sender -> receiver direction
func (r *MissYouRepository) Count(ctx context.Context, senderID, receiverID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM missyou WHERE sender_id = $1 AND receiver_id = $2`
	var total int64
	if err := r.db.QueryRow(ctx, query, senderID, receiverID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count miss-you: %w", err)
	}
	return total, nil
}
