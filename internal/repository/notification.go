package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NotificationRepository records dispatched push notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Log records one dispatched notification
func (r *NotificationRepository) Log(ctx context.Context, senderID, receiverID int64, notifType string) error {
	query := `INSERT INTO notification_logs (sender_id, receiver_id, type) VALUES ($1, $2, $3)`
	if _, err := r.db.Exec(ctx, query, senderID, receiverID, notifType); err != nil {
		return fmt.Errorf("failed to log notification: %w", err)
	}
	return nil
}
