package services

import (
	"context"

	"github.com/Fezze07/JustUS/internal/repository"
)

// MissYouService counts "miss you" pings between partners
type MissYouService struct {
	missYouRepo     repository.IMissYouRepository
	partnershipRepo repository.IPartnershipRepository
}

// NewMissYouService creates a new miss-you service
func NewMissYouService(missYouRepo repository.IMissYouRepository, partnershipRepo repository.IPartnershipRepository) *MissYouService {
	return &MissYouService{
		missYouRepo:     missYouRepo,
		partnershipRepo: partnershipRepo,
	}
}

// Send records one ping to the caller's partner and returns the new
// total plus the partner's id for notification dispatch
func (s *MissYouService) Send(ctx context.Context, userID int64) (int64, int64, error) {
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	if partnerID == 0 {
		return 0, 0, ErrNoPartner
	}

	if err := s.missYouRepo.Insert(ctx, userID, partnerID); err != nil {
		return 0, 0, err
	}
	total, err := s.missYouRepo.Count(ctx, userID, partnerID)
	if err != nil {
		return 0, 0, err
	}
	return total, partnerID, nil
}

// Total returns how many pings the caller has sent their partner
func (s *MissYouService) Total(ctx context.Context, userID int64) (int64, error) {
	partnerID, err := s.partnershipRepo.PartnerID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if partnerID == 0 {
		return 0, ErrNoPartner
	}
	return s.missYouRepo.Count(ctx, userID, partnerID)
}
