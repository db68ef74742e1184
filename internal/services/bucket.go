package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"
)

// ErrItemNotFound is returned for bucket/drive items the caller cannot see
var ErrItemNotFound = fmt.Errorf("%w: item not found", ErrNotFound)

// BucketService handles the pair's shared bucket list
type BucketService struct {
	bucketRepo      repository.IBucketRepository
	partnershipRepo repository.IPartnershipRepository
}

// NewBucketService creates a new bucket service
func NewBucketService(bucketRepo repository.IBucketRepository, partnershipRepo repository.IPartnershipRepository) *BucketService {
	return &BucketService{
		bucketRepo:      bucketRepo,
		partnershipRepo: partnershipRepo,
	}
}

// List returns every item visible to the caller, newest first
func (s *BucketService) List(ctx context.Context, userID int64) ([]*models.BucketItem, error) {
	return s.bucketRepo.ListForUser(ctx, userID)
}

// Add creates an item shared with the caller's partner
func (s *BucketService) Add(ctx context.Context, userID int64, text string) (*models.BucketItem, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrBadRequest)
	}
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if partnerID == 0 {
		return nil, ErrNoPartner
	}

	item := &models.BucketItem{
		UserID:    userID,
		PartnerID: partnerID,
		Text:      text,
	}
	if err := s.bucketRepo.Insert(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleDone flips an item's done flag
func (s *BucketService) ToggleDone(ctx context.Context, userID, itemID int64) error {
	err := s.bucketRepo.ToggleDone(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// Delete removes an item
func (s *BucketService) Delete(ctx context.Context, userID, itemID int64) error {
	err := s.bucketRepo.Delete(ctx, itemID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}
