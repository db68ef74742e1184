package repository

import (
	"context"
	"fmt"

	"github.com/Fezze07/JustUS/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BucketRepository handles database operations for the shared bucket list
type BucketRepository struct {
	db *pgxpool.Pool
}

// NewBucketRepository creates a new bucket repository
func NewBucketRepository(db *pgxpool.Pool) *BucketRepository {
	return &BucketRepository{db: db}
}

// ListForUser lists bucket items visible to a user (either side of the pair)
func (r *BucketRepository) ListForUser(ctx context.Context, userID int64) ([]*models.BucketItem, error) {
	query := `
		SELECT id, user_id, partner_id, text, done, created_at
		FROM bucket_items
		WHERE user_id = $1 OR partner_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket items: %w", err)
	}
	defer rows.Close()

	items := []*models.BucketItem{}
	for rows.Next() {
		var item models.BucketItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PartnerID, &item.Text, &item.Done, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bucket item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Insert adds a bucket item and fills in the generated id
func (r *BucketRepository) Insert(ctx context.Context, item *models.BucketItem) error {
	query := `
		INSERT INTO bucket_items (user_id, partner_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, item.UserID, item.PartnerID, item.Text).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert bucket item: %w", err)
	}
	return nil
}

// ToggleDone flips the done flag on an item the user can see
func (r *BucketRepository) ToggleDone(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE bucket_items
		SET done = NOT done
		WHERE id = $1 AND (user_id = $2 OR partner_id = $2)
	`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to toggle bucket item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item the user can see
func (r *BucketRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `DELETE FROM bucket_items WHERE id = $1 AND (user_id = $2 OR partner_id = $2)`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bucket item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
