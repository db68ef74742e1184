package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Fezze07/JustUS/internal/config"
	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxCodeAttempts  = 10
	maxLoginFailures = 5
	lockDuration     = 30 * time.Minute
	bcryptCost       = 10

	// authDelay is the minimum time every credential-checking path
	// takes, so response timing does not leak which check failed
	authDelay = 600 * time.Millisecond
)

// Auth errors
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrBadLoginFormat     = fmt.Errorf("%w: expected username#code", ErrBadRequest)
	ErrInvalidToken       = fmt.Errorf("%w: invalid or expired token", ErrUnauthorized)
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrNotFound)
)

// UserService handles accounts: registration, login throttling, tokens,
// profile and device token updates
type UserService struct {
	userRepo repository.IUserRepository
	jwtCfg   config.JWTConfig

	// sleep is swapped out in tests
	sleep func(time.Duration)
	now   func() time.Time
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.IUserRepository, jwtCfg config.JWTConfig) *UserService {
	return &UserService{
		userRepo: userRepo,
		jwtCfg:   jwtCfg,
		sleep:    time.Sleep,
		now:      time.Now,
	}
}

// TokenPair is an access/refresh token pair
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Register creates an account. The 6-digit code is generated fresh until
// it is unique for the username, so several accounts can share a
// username and still be addressable.
func (s *UserService) Register(ctx context.Context, username, password string, email, deviceToken *string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrBadRequest)
	}

	code, err := s.generateUniqueCode(ctx, username)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Code:         code,
		PasswordHash: string(hash),
		Email:        email,
		DeviceToken:  deviceToken,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials for the account addressed as
// "username#code". Five consecutive failures lock the account for 30
// minutes. On success the failure counter resets, the device token is
// stored and a token pair is issued.
func (s *UserService) Login(ctx context.Context, usernameWithCode, password string, deviceToken string) (*models.User, *TokenPair, error) {
	defer s.sleep(authDelay)

	if usernameWithCode == "" || password == "" || deviceToken == "" {
		return nil, nil, fmt.Errorf("%w: missing credentials", ErrBadRequest)
	}
	username, code, ok := strings.Cut(usernameWithCode, "#")
	if !ok {
		return nil, nil, ErrBadLoginFormat
	}

	user, err := s.userRepo.GetByUsernameAndCode(ctx, username, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if s.isLocked(user) {
		return nil, nil, ErrLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.registerFailure(ctx, user); err != nil {
			return nil, nil, err
		}
		return nil, nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateDeviceToken(ctx, user.ID, &deviceToken); err != nil {
		return nil, nil, err
	}
	if err := s.userRepo.ResetLoginFailures(ctx, user.ID); err != nil {
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// RecoverCodes returns the codes of every account matching the username
// whose password verifies. Same throttling rules as Login, applied to
// each candidate account.
func (s *UserService) RecoverCodes(ctx context.Context, username, password string) ([]string, error) {
	defer s.sleep(authDelay)

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrBadRequest)
	}

	users, err := s.userRepo.ListByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrInvalidCredentials
	}

	for _, user := range users {
		if s.isLocked(user) {
			return nil, ErrLocked
		}
	}

	matched := false
	for _, user := range users {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil {
			matched = true
			break
		}
	}
	if !matched {
		for _, user := range users {
			if err := s.registerFailure(ctx, user); err != nil {
				return nil, err
			}
		}
		return nil, ErrInvalidCredentials
	}

	codes := make([]string, 0, len(users))
	for _, user := range users {
		if err := s.userRepo.ResetLoginFailures(ctx, user.ID); err != nil {
			return nil, err
		}
		codes = append(codes, user.Code)
	}
	return codes, nil
}

// Refresh verifies a refresh token and issues a fresh pair
func (s *UserService) Refresh(refreshToken string) (*TokenPair, error) {
	userID, err := s.ValidateJWT(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.issueTokens(userID)
}

// UpdateDeviceToken stores a new push token for the account addressed as
// "username#code". Unauthenticated by design: the app calls it when the
// push service rotates the token before the user logs in again.
func (s *UserService) UpdateDeviceToken(ctx context.Context, usernameWithCode, deviceToken string) error {
	if usernameWithCode == "" || deviceToken == "" {
		return fmt.Errorf("%w: missing data", ErrBadRequest)
	}
	username, code, ok := strings.Cut(usernameWithCode, "#")
	if !ok {
		return ErrBadLoginFormat
	}
	user, err := s.userRepo.GetByUsernameAndCode(ctx, username, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.UpdateDeviceToken(ctx, user.ID, &deviceToken)
}

// GetProfile returns the caller's own account
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile updates bio and/or profile picture URL
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, bio, profilePicURL *string) error {
	if bio == nil && profilePicURL == nil {
		return fmt.Errorf("%w: nothing to update", ErrBadRequest)
	}
	return s.userRepo.UpdateProfile(ctx, userID, bio, profilePicURL)
}

// ChangePassword verifies the old password and stores a new hash
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	defer s.sleep(authDelay)

	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: missing data", ErrBadRequest)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userRepo.UpdatePassword(ctx, userID, string(hash))
}

// ValidateJWT validates a token and returns the user id it carries
func (s *UserService) ValidateJWT(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtCfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int64(id), nil
}

func (s *UserService) issueTokens(userID int64) (*TokenPair, error) {
	access, err := s.signToken(userID, time.Duration(s.jwtCfg.AccessExpiresMin)*time.Minute)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(userID, time.Duration(s.jwtCfg.RefreshExpiresDay)*24*time.Hour)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *UserService) signToken(userID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": s.now().Add(ttl).Unix(),
		"iat": s.now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *UserService) isLocked(user *models.User) bool {
	return user.BlockedUntil != nil && user.BlockedUntil.After(s.now())
}

func (s *UserService) registerFailure(ctx context.Context, user *models.User) error {
	attempts := user.FailedAttempts + 1
	var blockedUntil *time.Time
	if attempts >= maxLoginFailures {
		until := s.now().Add(lockDuration)
		blockedUntil = &until
	}
	return s.userRepo.SetLoginFailures(ctx, user.ID, attempts, blockedUntil)
}

// generateUniqueCode draws random 6-digit codes until one is free for
// the username
func (s *UserService) generateUniqueCode(ctx context.Context, username string) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := generateCode()
		exists, err := s.userRepo.UsernameCodeExists(ctx, username, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxCodeAttempts)
}

func generateCode() string {
	n, _ := rand.Int(rand.Reader, big.NewInt(900000))
	return fmt.Sprintf("%06d", n.Int64()+100000)
}
