package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	appconfig "github.com/Fezze07/JustUS/internal/config"
	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 5 * time.Minute

// mediaTypes are the drive item types whose content lives in object storage
var mediaTypes = map[string]bool{
	"image": true,
	"video": true,
	"audio": true,
}

// DriveService handles the pair's shared drive: metadata rows, reactions,
// favorites and presigned media uploads
type DriveService struct {
	driveRepo       repository.IDriveRepository
	partnershipRepo repository.IPartnershipRepository
	s3Client        *s3.Client
	s3Bucket        string
	s3Region        string
}

// NewDriveService creates a new drive service
func NewDriveService(
	driveRepo repository.IDriveRepository,
	partnershipRepo repository.IPartnershipRepository,
	storage appconfig.StorageConfig,
) (*DriveService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(storage.Region),
	}
	if storage.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(storage.AccessKey, storage.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &DriveService{
		driveRepo:       driveRepo,
		partnershipRepo: partnershipRepo,
		s3Client:        s3Client,
		s3Bucket:        storage.Bucket,
		s3Region:        storage.Region,
	}, nil
}

// UploadResponse carries a presigned PUT URL for a media upload
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	ExpiresIn int    `json:"expires_in"`
}

// DriveChange is one entry of the incremental sync feed
type DriveChange struct {
	ID     int64             `json:"id"`
	Action string            `json:"action"`
	Item   *models.DriveItem `json:"item"`
}

// List returns every drive item visible to the caller
func (s *DriveService) List(ctx context.Context, userID int64) ([]*models.DriveItem, error) {
	return s.driveRepo.ListForUser(ctx, userID)
}

// Create adds a drive item shared with the caller's partner. The partner
// reference is optional so items created before pairing survive.
func (s *DriveService) Create(ctx context.Context, userID int64, itemType string, content, metadata *string) (*models.DriveItem, error) {
	if itemType == "" || content == nil || *content == "" {
		return nil, fmt.Errorf("%w: type and content are required", ErrBadRequest)
	}
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := &models.DriveItem{
		UserID:   userID,
		Type:     itemType,
		Content:  content,
		Metadata: metadata,
	}
	if partnerID != 0 {
		item.PartnerID = &partnerID
	}
	if err := s.driveRepo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one item the caller can see
func (s *DriveService) Get(ctx context.Context, userID, itemID int64) (*models.DriveItem, error) {
	item, err := s.driveRepo.GetForUser(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	return item, err
}

// Delete removes an item the caller can see. The row is tombstoned so
// the partner's next sync sees the deletion; the object in storage is
// left to a lifecycle rule.
func (s *DriveService) Delete(ctx context.Context, userID, itemID int64) error {
	err := s.driveRepo.Delete(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// Changes returns items modified after the given time as an incremental
// sync feed. Items whose content was cleared surface as deletions.
func (s *DriveService) Changes(ctx context.Context, userID int64, since time.Time) ([]*DriveChange, time.Time, error) {
	items, err := s.driveRepo.ChangedSince(ctx, userID, since)
	if err != nil {
		return nil, time.Time{}, err
	}

	changes := make([]*DriveChange, 0, len(items))
	for _, item := range items {
		if item.Content == nil {
			changes = append(changes, &DriveChange{ID: item.ID, Action: "delete"})
			continue
		}
		changes = append(changes, &DriveChange{ID: item.ID, Action: "update", Item: item})
	}
	return changes, time.Now().UTC(), nil
}

// AddReaction records an emoji reaction and returns the updated counts
func (s *DriveService) AddReaction(ctx context.Context, userID, itemID int64, emoji string) ([]*models.ReactionCount, error) {
	if emoji == "" {
		return nil, fmt.Errorf("%w: emoji is required", ErrBadRequest)
	}
	if _, err := s.Get(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.driveRepo.AddReaction(ctx, itemID, userID, emoji); err != nil {
		return nil, err
	}
	return s.driveRepo.ReactionCounts(ctx, itemID)
}

// Reactions lists the individual reactions on an item
func (s *DriveService) Reactions(ctx context.Context, userID, itemID int64) ([]*models.Reaction, error) {
	if _, err := s.Get(ctx, userID, itemID); err != nil {
		return nil, err
	}
	return s.driveRepo.Reactions(ctx, itemID)
}

// AddFavorite marks an item as the caller's favorite; idempotent
func (s *DriveService) AddFavorite(ctx context.Context, userID, itemID int64) error {
	if _, err := s.Get(ctx, userID, itemID); err != nil {
		return err
	}
	return s.driveRepo.AddFavorite(ctx, userID, itemID)
}

// RemoveFavorite clears the caller's favorite mark
func (s *DriveService) RemoveFavorite(ctx context.Context, userID, itemID int64) error {
	return s.driveRepo.RemoveFavorite(ctx, userID, itemID)
}

// PresignUpload issues a presigned PUT URL for a media file. Requires a
// partner: drive media always belongs to the pair.
func (s *DriveService) PresignUpload(ctx context.Context, userID int64, itemType, contentType string) (*UploadResponse, error) {
	if !mediaTypes[itemType] {
		return nil, fmt.Errorf("%w: type must be image, video or audio", ErrBadRequest)
	}
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if partnerID == 0 {
		return nil, ErrNoPartner
	}

	// Objects are keyed by the pair's smaller id so both sides share a prefix
	low, high := userID, partnerID
	if low > high {
		low, high = high, low
	}
	key := fmt.Sprintf("%d-%d/%s", low, high, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	objectURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.s3Bucket, s.s3Region, key)
	return &UploadResponse{
		UploadURL: request.URL,
		ObjectURL: objectURL,
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}
