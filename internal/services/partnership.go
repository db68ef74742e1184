package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"
)

const searchLimit = 20

// Partnership errors
var (
	ErrNoPartner       = fmt.Errorf("%w: no partner connected", ErrBadRequest)
	ErrSelfRequest     = fmt.Errorf("%w: cannot send a request to yourself", ErrBadRequest)
	ErrPartnerNotFound = fmt.Errorf("%w: partner not found", ErrNotFound)
	ErrAlreadyPaired   = fmt.Errorf("%w: user already has a partner", ErrConflict)
	ErrRequestExists   = fmt.Errorf("%w: request already sent", ErrConflict)
	ErrRequestNotFound = fmt.Errorf("%w: request not found", ErrNotFound)
)

// PartnershipService maintains the pairing graph. Every other feature
// resolves "who is my partner" through it.
type PartnershipService struct {
	partnershipRepo repository.IPartnershipRepository
	userRepo        repository.IUserRepository
}

// NewPartnershipService creates a new partnership service
func NewPartnershipService(
	partnershipRepo repository.IPartnershipRepository,
	userRepo repository.IUserRepository,
) *PartnershipService {
	return &PartnershipService{
		partnershipRepo: partnershipRepo,
		userRepo:        userRepo,
	}
}

// PartnershipView is the full pairing state for one user
type PartnershipView struct {
	Partner         *models.PublicUser   `json:"partner"`
	PendingReceived []*models.PublicUser `json:"received"`
	PendingSent     []*models.PublicUser `json:"sent"`
}

// SendRequest creates a pending edge from the requester to the user
// resolved by (username, code). Returns the target's id so the caller
// can notify them.
func (s *PartnershipService) SendRequest(ctx context.Context, requesterID int64, targetUsername, targetCode string) (int64, error) {
	target, err := s.userRepo.GetByUsernameAndCode(ctx, targetUsername, targetCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrPartnerNotFound
		}
		return 0, err
	}

	if target.ID == requesterID {
		return 0, ErrSelfRequest
	}

	hasPartner, err := s.partnershipRepo.HasAccepted(ctx, requesterID)
	if err != nil {
		return 0, err
	}
	if hasPartner {
		return 0, ErrAlreadyPaired
	}

	pending, err := s.partnershipRepo.PendingExists(ctx, requesterID, target.ID)
	if err != nil {
		return 0, err
	}
	if pending {
		return 0, ErrRequestExists
	}

	if err := s.partnershipRepo.CreatePending(ctx, requesterID, target.ID); err != nil {
		return 0, err
	}
	return target.ID, nil
}

// Accept flips the pending edge requester -> accepter to accepted. The
// storage layer re-checks that neither side is already paired, so a
// concurrent second accept loses and surfaces as a conflict.
func (s *PartnershipService) Accept(ctx context.Context, accepterID, requesterID int64) error {
	if _, err := s.partnershipRepo.GetPending(ctx, requesterID, accepterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRequestNotFound
		}
		return err
	}

	accepted, err := s.partnershipRepo.AcceptPending(ctx, requesterID, accepterID)
	if err != nil {
		return err
	}
	if !accepted {
		return ErrAlreadyPaired
	}
	return nil
}

// Reject deletes the pending edge requester -> accepter
func (s *PartnershipService) Reject(ctx context.Context, accepterID, requesterID int64) error {
	err := s.partnershipRepo.DeletePending(ctx, requesterID, accepterID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// GetPartnership returns the accepted partner (nil when unpaired) plus
// pending requests in both directions
func (s *PartnershipService) GetPartnership(ctx context.Context, userID int64) (*PartnershipView, error) {
	partner, err := s.partnershipRepo.AcceptedPartner(ctx, userID)
	if err != nil {
		return nil, err
	}
	received, err := s.partnershipRepo.PendingReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	sent, err := s.partnershipRepo.PendingSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PartnershipView{
		Partner:         partner,
		PendingReceived: received,
		PendingSent:     sent,
	}, nil
}

// PartnerID resolves the other side of the accepted edge touching userID.
// Returns 0 when unpaired; callers must treat that as a normal state.
func (s *PartnershipService) PartnerID(ctx context.Context, userID int64) (int64, error) {
	return s.partnershipRepo.PartnerID(ctx, userID)
}

// SearchUsers finds candidate partners. Empty criteria yield an empty
// result, never the whole user table.
func (s *PartnershipService) SearchUsers(ctx context.Context, usernameFragment, codePrefix string) ([]*models.PublicUser, error) {
	if usernameFragment == "" && codePrefix == "" {
		return []*models.PublicUser{}, nil
	}
	return s.userRepo.Search(ctx, usernameFragment, codePrefix, searchLimit)
}
