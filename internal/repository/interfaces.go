package repository

import (
	"context"
	"time"

	"github.com/Fezze07/JustUS/internal/models"
)

// IUserRepository handles database operations for users
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsernameAndCode(ctx context.Context, username, code string) (*models.User, error)
	ListByUsername(ctx context.Context, username string) ([]*models.User, error)
	UsernameCodeExists(ctx context.Context, username, code string) (bool, error)
	Search(ctx context.Context, usernameFragment, codePrefix string, limit int) ([]*models.PublicUser, error)
	UpdateDeviceToken(ctx context.Context, userID int64, deviceToken *string) error
	SetLoginFailures(ctx context.Context, userID int64, attempts int, blockedUntil *time.Time) error
	ResetLoginFailures(ctx context.Context, userID int64) error
	UpdateProfile(ctx context.Context, userID int64, bio, profilePicURL *string) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// IPartnershipRepository handles database operations for partnerships
type IPartnershipRepository interface {
	HasAccepted(ctx context.Context, userID int64) (bool, error)
	PendingExists(ctx context.Context, requesterID, targetID int64) (bool, error)
	CreatePending(ctx context.Context, requesterID, targetID int64) error
	GetPending(ctx context.Context, requesterID, accepterID int64) (*models.Partnership, error)
	AcceptPending(ctx context.Context, requesterID, accepterID int64) (bool, error)
	DeletePending(ctx context.Context, requesterID, accepterID int64) error
	AcceptedPartner(ctx context.Context, userID int64) (*models.PublicUser, error)
	PartnerID(ctx context.Context, userID int64) (int64, error)
	PendingReceived(ctx context.Context, userID int64) ([]*models.PublicUser, error)
	PendingSent(ctx context.Context, userID int64) ([]*models.PublicUser, error)
}

// IGameRepository handles database operations for the matching game
type IGameRepository interface {
	OpenQuestion(ctx context.Context, userID, partnerID int64) (*models.GameQuestion, error)
	CreateQuestionIfNoneOpen(ctx context.Context, question *models.GameQuestion) (bool, error)
	GetQuestion(ctx context.Context, id int64) (*models.GameQuestion, error)
	HasAnswer(ctx context.Context, gameID, userID int64) (bool, error)
	UpsertAnswer(ctx context.Context, answer *models.GameAnswer) error
	CountMatches(ctx context.Context) (int64, error)
}

// IMoodRepository handles database operations for moods
type IMoodRepository interface {
	Insert(ctx context.Context, userID int64, emoji string) error
	Latest(ctx context.Context, userID int64) (*string, error)
	RecentForCouple(ctx context.Context, userID, partnerID int64, limit int) ([]string, error)
}

// IBucketRepository handles database operations for the shared bucket list
type IBucketRepository interface {
	ListForUser(ctx context.Context, userID int64) ([]*models.BucketItem, error)
	Insert(ctx context.Context, item *models.BucketItem) error
	ToggleDone(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

// IMissYouRepository handles database operations for miss-you pings
type IMissYouRepository interface {
	Insert(ctx context.Context, senderID, receiverID int64) error
	Count(ctx context.Context, senderID, receiverID int64) (int64, error)
}

// IDriveRepository handles database operations for the shared drive
type IDriveRepository interface {
	ListForUser(ctx context.Context, userID int64) ([]*models.DriveItem, error)
	Insert(ctx context.Context, item *models.DriveItem) error
	GetForUser(ctx context.Context, id, userID int64) (*models.DriveItem, error)
	Delete(ctx context.Context, id, userID int64) error
	ChangedSince(ctx context.Context, userID int64, since time.Time) ([]*models.DriveItem, error)
	AddReaction(ctx context.Context, itemID, userID int64, emoji string) error
	ReactionCounts(ctx context.Context, itemID int64) ([]*models.ReactionCount, error)
	Reactions(ctx context.Context, itemID int64) ([]*models.Reaction, error)
	AddFavorite(ctx context.Context, userID, itemID int64) error
	RemoveFavorite(ctx context.Context, userID, itemID int64) error
}

// INotificationRepository records dispatched push notifications
type INotificationRepository interface {
	Log(ctx context.Context, senderID, receiverID int64, notifType string) error
}
