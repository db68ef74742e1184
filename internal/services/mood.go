package services

import (
	"context"
	"fmt"

	"github.com/Fezze07/JustUS/internal/repository"
)

const recentMoodLimit = 4

// MoodService handles mood sharing between the two partners
type MoodService struct {
	moodRepo        repository.IMoodRepository
	partnershipRepo repository.IPartnershipRepository
}

// NewMoodService creates a new mood service
func NewMoodService(moodRepo repository.IMoodRepository, partnershipRepo repository.IPartnershipRepository) *MoodService {
	return &MoodService{
		moodRepo:        moodRepo,
		partnershipRepo: partnershipRepo,
	}
}

// Set records the caller's current mood
func (s *MoodService) Set(ctx context.Context, userID int64, emoji string) error {
	if emoji == "" {
		return fmt.Errorf("%w: emoji is required", ErrBadRequest)
	}
	return s.moodRepo.Insert(ctx, userID, emoji)
}

// Get returns the latest mood of the caller, or of the partner when
// target is "partner". Nil when no mood was ever set.
func (s *MoodService) Get(ctx context.Context, userID int64, target string) (*string, error) {
	targetID := userID
	if target == "partner" {
		partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if partnerID == 0 {
			return nil, ErrNoPartner
		}
		targetID = partnerID
	}
	return s.moodRepo.Latest(ctx, targetID)
}

// RecentCouple returns the last few moods across both partners
func (s *MoodService) RecentCouple(ctx context.Context, userID int64) ([]string, error) {
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if partnerID == 0 {
		return nil, ErrNoPartner
	}
	return s.moodRepo.RecentForCouple(ctx, userID, partnerID, recentMoodLimit)
}
