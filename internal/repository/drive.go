package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fezze07/JustUS/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DriveRepository handles database operations for the shared drive
type DriveRepository struct {
	db *pgxpool.Pool
}

// NewDriveRepository creates a new drive repository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{db: db}
}

// ListForUser lists drive items visible to a user, newest first, with the
// author's username and the caller's favorite flag
func (r *DriveRepository) ListForUser(ctx context.Context, userID int64) ([]*models.DriveItem, error) {
	query := `
		SELECT d.id, d.user_id, d.partner_id, d.type, d.content, d.metadata,
		       u.username, f.user_id IS NOT NULL, d.created_at, d.updated_at
		FROM drive_items d
		JOIN users u ON u.id = d.user_id
		LEFT JOIN favorites f ON f.drive_item_id = d.id AND f.user_id = $1
		WHERE (d.user_id = $1 OR d.partner_id = $1) AND d.content IS NOT NULL
		ORDER BY d.created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drive items: %w", err)
	}
	defer rows.Close()

	items := []*models.DriveItem{}
	for rows.Next() {
		var item models.DriveItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PartnerID, &item.Type, &item.Content,
			&item.Metadata, &item.AuthorName, &item.IsFavorite,
			&item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan drive item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// Insert adds a drive item and fills in the generated id and timestamps
func (r *DriveRepository) Insert(ctx context.Context, item *models.DriveItem) error {
	query := `
		INSERT INTO drive_items (user_id, partner_id, type, content, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		item.UserID, item.PartnerID, item.Type, item.Content, item.Metadata,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert drive item: %w", err)
	}
	return nil
}

// GetForUser retrieves one item the user can see
func (r *DriveRepository) GetForUser(ctx context.Context, id, userID int64) (*models.DriveItem, error) {
	query := `
		SELECT d.id, d.user_id, d.partner_id, d.type, d.content, d.metadata,
		       u.username, d.created_at, d.updated_at
		FROM drive_items d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1 AND (d.user_id = $2 OR d.partner_id = $2) AND d.content IS NOT NULL
	`
	var item models.DriveItem
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&item.ID, &item.UserID, &item.PartnerID, &item.Type, &item.Content,
		&item.Metadata, &item.AuthorName, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get drive item: %w", err)
	}
	return &item, nil
}

// Delete tombstones an item the user can see. The row is kept with a
// NULL content so the partner's next sync picks the deletion up.
func (r *DriveRepository) Delete(ctx context.Context, id, userID int64) error {
	query := `
		UPDATE drive_items
		SET content = NULL, updated_at = NOW()
		WHERE id = $1 AND (user_id = $2 OR partner_id = $2) AND content IS NOT NULL
	`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete drive item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ChangedSince lists items visible to the user modified after the given time
func (r *DriveRepository) ChangedSince(ctx context.Context, userID int64, since time.Time) ([]*models.DriveItem, error) {
	query := `
		SELECT d.id, d.user_id, d.partner_id, d.type, d.content, d.metadata,
		       u.username, d.created_at, d.updated_at
		FROM drive_items d
		JOIN users u ON u.id = d.user_id
		WHERE (d.user_id = $1 OR d.partner_id = $1) AND d.updated_at > $2
	`
	rows, err := r.db.Query(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list drive changes: %w", err)
	}
	defer rows.Close()

	items := []*models.DriveItem{}
	for rows.Next() {
		var item models.DriveItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.PartnerID, &item.Type, &item.Content,
			&item.Metadata, &item.AuthorName, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan drive item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// AddReaction records an emoji reaction on an item
func (r *DriveRepository) AddReaction(ctx context.Context, itemID, userID int64, emoji string) error {
	query := `INSERT INTO drive_item_reactions (item_id, user_id, emoji) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, itemID, userID, emoji); err != nil {
		return fmt.Errorf("failed to add reaction: %w", err)
	}
	return nil
}

// ReactionCounts aggregates reactions per emoji for one item
func (r *DriveRepository) ReactionCounts(ctx context.Context, itemID int64) ([]*models.ReactionCount, error) {
	query := `
		SELECT emoji, COUNT(*) AS total
		FROM drive_item_reactions
		WHERE item_id = $1
		GROUP BY emoji
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	defer rows.Close()

	counts := []*models.ReactionCount{}
	for rows.Next() {
		var c models.ReactionCount
		if err := rows.Scan(&c.Emoji, &c.Total); err != nil {
			return nil, fmt.Errorf("failed to scan reaction count: %w", err)
		}
		counts = append(counts, &c)
	}
	return counts, rows.Err()
}

// Reactions lists individual reactions on an item
func (r *DriveRepository) Reactions(ctx context.Context, itemID int64) ([]*models.Reaction, error) {
	query := `SELECT user_id, emoji FROM drive_item_reactions WHERE item_id = $1`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	defer rows.Close()

	reactions := []*models.Reaction{}
	for rows.Next() {
		var reaction models.Reaction
		if err := rows.Scan(&reaction.UserID, &reaction.Emoji); err != nil {
			return nil, fmt.Errorf("failed to scan reaction: %w", err)
		}
		reactions = append(reactions, &reaction)
	}
	return reactions, rows.Err()
}

// AddFavorite marks an item as the user's favorite; repeat calls are no-ops
func (r *DriveRepository) AddFavorite(ctx context.Context, userID, itemID int64) error {
	query := `
		INSERT INTO favorites (user_id, drive_item_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, drive_item_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// RemoveFavorite clears the user's favorite mark on an item
func (r *DriveRepository) RemoveFavorite(ctx context.Context, userID, itemID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND drive_item_id = $2`
	if _, err := r.db.Exec(ctx, query, userID, itemID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
