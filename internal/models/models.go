package models

import "time"

// Partnership status values
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// User represents a user account. (username, code) is unique; username
// alone is not.
type User struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	Code           string     `json:"code"`
	PasswordHash   string     `json:"-"`
	Email          *string    `json:"email,omitempty"`
	DeviceToken    *string    `json:"-"`
	Bio            *string    `json:"bio,omitempty"`
	ProfilePicURL  *string    `json:"profile_pic_url,omitempty"`
	FailedAttempts int        `json:"-"`
	BlockedUntil   *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
}

// PublicUser is the profile shape exposed to other users
type PublicUser struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Code          string  `json:"code"`
	Bio           *string `json:"bio,omitempty"`
	ProfilePicURL *string `json:"profile_pic_url,omitempty"`
}

// Partnership is a directed edge from the requesting user to the target.
// At most one accepted partnership may touch a user on either side.
type Partnership struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PartnerID int64     `json:"partner_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// GameQuestion is a single question generated for an ordered
// (creator, counterpart) pair
type GameQuestion struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PartnerID int64     `json:"partner_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// GameAnswer is one participant's vote on a question. SelectedOption is
// the resolved user id the vote points at, not the raw A/B letter.
// Unique per (game_id, user_id); a re-vote overwrites.
type GameAnswer struct {
	GameID         int64 `json:"game_id"`
	UserID         int64 `json:"user_id"`
	PartnerID      int64 `json:"partner_id"`
	SelectedOption int64 `json:"selected_option"`
}

// Mood is one mood entry; the latest row per user is the current mood
type Mood struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// BucketItem is a shared bucket list entry owned by a pair
type BucketItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PartnerID int64     `json:"partner_id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
}

// DriveItem is an entry in the pair's shared drive. Content is either
// inline text or the storage URL for media types.
type DriveItem struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PartnerID  *int64    `json:"partner_id,omitempty"`
	Type       string    `json:"type"`
	Content    *string   `json:"content,omitempty"`
	Metadata   *string   `json:"metadata,omitempty"`
	AuthorName string    `json:"author_name,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Reaction is an emoji reaction left on a drive item
type Reaction struct {
	ItemID int64  `json:"item_id,omitempty"`
	UserID int64  `json:"user_id"`
	Emoji  string `json:"emoji"`
}

// ReactionCount aggregates reactions per emoji for one drive item
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Total int64  `json:"total"`
}

// NotificationLog records a dispatched push notification
type NotificationLog struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}
