package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fezze07/JustUS/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PartnershipRepository handles database operations for partnerships
type PartnershipRepository struct {
	db *pgxpool.Pool
}

// NewPartnershipRepository creates a new partnership repository
func NewPartnershipRepository(db *pgxpool.Pool) *PartnershipRepository {
	return &PartnershipRepository{db: db}
}

// HasAccepted checks whether a user has an accepted partnership on either side
func (r *PartnershipRepository) HasAccepted(ctx context.Context, userID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM partnerships
			WHERE (user_id = $1 OR partner_id = $1) AND status = 'accepted'
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check accepted partnership: %w", err)
	}
	return exists, nil
}

// PendingExists checks for an unresolved request on the ordered pair
func (r *PartnershipRepository) PendingExists(ctx context.Context, requesterID, targetID int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM partnerships
			WHERE user_id = $1 AND partner_id = $2 AND status = 'pending'
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, requesterID, targetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}
	return exists, nil
}

// CreatePending inserts a pending edge from requester to target
func (r *PartnershipRepository) CreatePending(ctx context.Context, requesterID, targetID int64) error {
	query := `INSERT INTO partnerships (user_id, partner_id, status) VALUES ($1, $2, 'pending')`
	if _, err := r.db.Exec(ctx, query, requesterID, targetID); err != nil {
		return fmt.Errorf("failed to create partnership request: %w", err)
	}
	return nil
}

// GetPending retrieves the pending edge requester -> accepter
func (r *PartnershipRepository) GetPending(ctx context.Context, requesterID, accepterID int64) (*models.Partnership, error) {
	query := `
		SELECT id, user_id, partner_id, status, created_at
		FROM partnerships
		WHERE user_id = $1 AND partner_id = $2 AND status = 'pending'
	`
	var p models.Partnership
	err := r.db.QueryRow(ctx, query, requesterID, accepterID).Scan(
		&p.ID, &p.UserID, &p.PartnerID, &p.Status, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending request: %w", err)
	}
	return &p, nil
}

// AcceptPending flips the pending edge to accepted and claims one
// accepted_members slot per participant in the same transaction. The
// table's primary key rejects the claim when either user already sits
// on an accepted edge, in whichever column, so two racing accepts of
// edges sharing a user cannot both commit. Returns false when the edge
// is not pending or a membership slot is already taken.
func (r *PartnershipRepository) AcceptPending(ctx context.Context, requesterID, accepterID int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin accept transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var partnershipID int64
	err = tx.QueryRow(ctx, `
		UPDATE partnerships
		SET status = 'accepted'
		WHERE user_id = $1 AND partner_id = $2 AND status = 'pending'
		RETURNING id
	`, requesterID, accepterID).Scan(&partnershipID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to accept partnership request: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO accepted_members (user_id, partnership_id) VALUES ($1, $3), ($2, $3)
	`, requesterID, accepterID, partnershipID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("failed to record accepted membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit accept: %w", err)
	}
	return true, nil
}

// DeletePending removes the pending edge requester -> accepter
func (r *PartnershipRepository) DeletePending(ctx context.Context, requesterID, accepterID int64) error {
	query := `DELETE FROM partnerships WHERE user_id = $1 AND partner_id = $2 AND status = 'pending'`
	tag, err := r.db.Exec(ctx, query, requesterID, accepterID)
	if err != nil {
		return fmt.Errorf("failed to delete partnership request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AcceptedPartner returns the profile of the user's accepted partner, or
// nil when the user is unpaired
func (r *PartnershipRepository) AcceptedPartner(ctx context.Context, userID int64) (*models.PublicUser, error) {
	query := `
		SELECT u.id, u.username, u.code, u.bio, u.profile_pic_url
		FROM partnerships p
		JOIN users u ON u.id = CASE WHEN p.user_id = $1 THEN p.partner_id ELSE p.user_id END
		WHERE (p.user_id = $1 OR p.partner_id = $1) AND p.status = 'accepted'
		LIMIT 1
	`
	var partner models.PublicUser
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&partner.ID, &partner.Username, &partner.Code, &partner.Bio, &partner.ProfilePicURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get accepted partner: %w", err)
	}
	return &partner, nil
}

// PartnerID resolves the other side of the accepted edge touching userID.
// Returns 0 when the user has no partner; that is a normal state, not an
// error.
func (r *PartnershipRepository) PartnerID(ctx context.Context, userID int64) (int64, error) {
	query := `
		SELECT CASE WHEN user_id = $1 THEN partner_id ELSE user_id END
		FROM partnerships
		WHERE (user_id = $1 OR partner_id = $1) AND status = 'accepted'
		LIMIT 1
	`
	var partnerID int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&partnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve partner id: %w", err)
	}
	return partnerID, nil
}

// PendingReceived lists users who sent the given user a pending request
func (r *PartnershipRepository) PendingReceived(ctx context.Context, userID int64) ([]*models.PublicUser, error) {
	query := `
		SELECT u.id, u.username, u.code
		FROM partnerships p
		JOIN users u ON u.id = p.user_id
		WHERE p.partner_id = $1 AND p.status = 'pending'
	`
	return r.queryPublicUsers(ctx, query, userID)
}

// PendingSent lists users the given user has sent a pending request to
func (r *PartnershipRepository) PendingSent(ctx context.Context, userID int64) ([]*models.PublicUser, error) {
	query := `
		SELECT u.id, u.username, u.code
		FROM partnerships p
		JOIN users u ON u.id = p.partner_id
		WHERE p.user_id = $1 AND p.status = 'pending'
	`
	return r.queryPublicUsers(ctx, query, userID)
}

func (r *PartnershipRepository) queryPublicUsers(ctx context.Context, query string, args ...any) ([]*models.PublicUser, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	defer rows.Close()

	users := []*models.PublicUser{}
	for rows.Next() {
		var user models.PublicUser
		if err := rows.Scan(&user.ID, &user.Username, &user.Code); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
