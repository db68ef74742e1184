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

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated id
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, code, password_hash, email, device_token)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		user.Username, user.Code, user.PasswordHash, user.Email, user.DeviceToken,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, username, code, password_hash, email, device_token,
		       bio, profile_pic_url, failed_attempts, blocked_until, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByUsernameAndCode retrieves a user by the unique (username, code) pair
func (r *UserRepository) GetByUsernameAndCode(ctx context.Context, username, code string) (*models.User, error) {
	query := `
		SELECT id, username, code, password_hash, email, device_token,
		       bio, profile_pic_url, failed_attempts, blocked_until, created_at
		FROM users
		WHERE username = $1 AND code = $2
	`
	return r.scanUser(r.db.QueryRow(ctx, query, username, code))
}

// ListByUsername retrieves every account sharing a username
func (r *UserRepository) ListByUsername(ctx context.Context, username string) ([]*models.User, error) {
	query := `
		SELECT id, username, code, password_hash, email, device_token,
		       bio, profile_pic_url, failed_attempts, blocked_until, created_at
		FROM users
		WHERE username = $1
	`
	rows, err := r.db.Query(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by username: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Code, &user.PasswordHash, &user.Email,
			&user.DeviceToken, &user.Bio, &user.ProfilePicURL,
			&user.FailedAttempts, &user.BlockedUntil, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// UsernameCodeExists checks whether a (username, code) pair is taken
func (r *UserRepository) UsernameCodeExists(ctx context.Context, username, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 AND code = $2)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, username, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username/code existence: %w", err)
	}
	return exists, nil
}

// Search finds candidate partners by username fragment and/or code prefix
func (r *UserRepository) Search(ctx context.Context, usernameFragment, codePrefix string, limit int) ([]*models.PublicUser, error) {
	query := `SELECT id, username, code, profile_pic_url FROM users WHERE 1=1`
	args := []any{}
	if usernameFragment != "" {
		args = append(args, "%"+usernameFragment+"%")
		query += fmt.Sprintf(" AND username LIKE $%d", len(args))
	}
	if codePrefix != "" {
		args = append(args, codePrefix+"%")
		query += fmt.Sprintf(" AND code LIKE $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := []*models.PublicUser{}
	for rows.Next() {
		var user models.PublicUser
		if err := rows.Scan(&user.ID, &user.Username, &user.Code, &user.ProfilePicURL); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// UpdateDeviceToken updates the push token for a user
func (r *UserRepository) UpdateDeviceToken(ctx context.Context, userID int64, deviceToken *string) error {
	query := `UPDATE users SET device_token = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, deviceToken, userID); err != nil {
		return fmt.Errorf("failed to update device token: %w", err)
	}
	return nil
}

// SetLoginFailures records a failed login attempt count and optional block
func (r *UserRepository) SetLoginFailures(ctx context.Context, userID int64, attempts int, blockedUntil *time.Time) error {
	query := `UPDATE users SET failed_attempts = $1, blocked_until = $2 WHERE id = $3`
	if _, err := r.db.Exec(ctx, query, attempts, blockedUntil, userID); err != nil {
		return fmt.Errorf("failed to set login failures: %w", err)
	}
	return nil
}

// ResetLoginFailures clears the failure counter and block after a successful login
func (r *UserRepository) ResetLoginFailures(ctx context.Context, userID int64) error {
	query := `UPDATE users SET failed_attempts = 0, blocked_until = NULL WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to reset login failures: %w", err)
	}
	return nil
}

// UpdateProfile updates bio and profile picture URL
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, bio, profilePicURL *string) error {
	query := `
		UPDATE users
		SET bio = COALESCE($1, bio), profile_pic_url = COALESCE($2, profile_pic_url)
		WHERE id = $3
	`
	if _, err := r.db.Exec(ctx, query, bio, profilePicURL, userID); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1 WHERE id = $2`
	if _, err := r.db.Exec(ctx, query, passwordHash, userID); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Code, &user.PasswordHash, &user.Email,
		&user.DeviceToken, &user.Bio, &user.ProfilePicURL,
		&user.FailedAttempts, &user.BlockedUntil, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
