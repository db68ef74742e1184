package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fezze07/JustUS/internal/config"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/sideshow/apns2"
	"github.com/sideshow/apns2/payload"
	"github.com/sideshow/apns2/token"
)

// ErrNoDeviceToken is returned when the receiver never registered a push token
var ErrNoDeviceToken = fmt.Errorf("%w: receiver has no device token", ErrNotFound)

// NotifyService dispatches push notifications to a partner's device.
// Dispatch is fire-and-forget: delivery failures are logged, recorded and
// never surfaced to the triggering request.
type NotifyService struct {
	client          *apns2.Client
	topic           string
	userRepo        repository.IUserRepository
	partnershipRepo repository.IPartnershipRepository
	notifRepo       repository.INotificationRepository
}

// NewNotifyService creates a notify service. With no key configured the
// service still records dispatches but skips the transport, so local
// setups work without APNs credentials.
func NewNotifyService(cfg config.APNsConfig, userRepo repository.IUserRepository, partnershipRepo repository.IPartnershipRepository, notifRepo repository.INotificationRepository) (*NotifyService, error) {
	s := &NotifyService{
		topic:           cfg.Topic,
		userRepo:        userRepo,
		partnershipRepo: partnershipRepo,
		notifRepo:       notifRepo,
	}
	if cfg.KeyPath == "" {
		log.Warn().Msg("APNs key not configured, push delivery disabled")
		return s, nil
	}

	authKey, err := token.AuthKeyFromFile(cfg.KeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load APNs auth key: %w", err)
	}
	client := apns2.NewTokenClient(&token.Token{
		AuthKey: authKey,
		KeyID:   cfg.KeyID,
		TeamID:  cfg.TeamID,
	})
	if cfg.Production {
		client = client.Production()
	} else {
		client = client.Development()
	}
	s.client = client
	return s, nil
}

// SendToUser pushes a notification to the receiver's device and records
// it. Fails only on validation (unknown receiver, no token); transport
// errors are swallowed after logging.
func (s *NotifyService) SendToUser(ctx context.Context, senderID, receiverID int64, notifType, title, body string) error {
	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if receiver.DeviceToken == nil || *receiver.DeviceToken == "" {
		return ErrNoDeviceToken
	}

	s.push(ctx, *receiver.DeviceToken, senderID, notifType, title, body)

	if err := s.notifRepo.Log(ctx, senderID, receiverID, notifType); err != nil {
		log.Error().Err(err).Int64("receiver_id", receiverID).Msg("Failed to log notification")
	}
	return nil
}

// SendToPartner resolves the sender's accepted partner and pushes to them
func (s *NotifyService) SendToPartner(ctx context.Context, senderID int64, notifType, title, body string) error {
	partnerID, err := s.partnershipRepo.PartnerID(ctx, senderID)
	if err != nil {
		return err
	}
	if partnerID == 0 {
		return ErrNoPartner
	}
	return s.SendToUser(ctx, senderID, partnerID, notifType, title, body)
}

// SendToPartnerByAddress resolves the receiver as "username + code" and
// pushes, per the partner-addressed notify endpoint
func (s *NotifyService) SendToPartnerByAddress(ctx context.Context, senderID int64, username, code, notifType, title, body string) error {
	receiver, err := s.userRepo.GetByUsernameAndCode(ctx, username, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.SendToUser(ctx, senderID, receiver.ID, notifType, title, body)
}

// SendAsync dispatches in the background; used by features where the
// push is a side effect of an already-answered request
func (s *NotifyService) SendAsync(senderID, receiverID int64, notifType, title, body string) {
	go func() {
		ctx := context.Background()
		if err := s.SendToUser(ctx, senderID, receiverID, notifType, title, body); err != nil {
			log.Warn().
				Err(err).
				Int64("receiver_id", receiverID).
				Str("type", notifType).
				Msg("Background push failed")
		}
	}()
}

func (s *NotifyService) push(ctx context.Context, deviceToken string, senderID int64, notifType, title, body string) {
	if s.client == nil {
		log.Debug().Str("type", notifType).Msg("Push skipped, APNs disabled")
		return
	}

	notification := &apns2.Notification{
		DeviceToken: deviceToken,
		Topic:       s.topic,
		Payload: payload.NewPayload().
			AlertTitle(title).
			AlertBody(body).
			Custom("type", notifType).
			Custom("sender_id", senderID),
	}

	res, err := s.client.PushWithContext(ctx, notification)
	if err != nil {
		log.Error().Err(err).Str("type", notifType).Msg("Push delivery failed")
		return
	}
	if !res.Sent() {
		log.Warn().
			Int("status", res.StatusCode).
			Str("reason", res.Reason).
			Str("type", notifType).
			Msg("Push rejected by APNs")
	}
}
