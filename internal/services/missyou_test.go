package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissYouSendCountsDirectionally(t *testing.T) {
	var insertedSender, insertedReceiver int64
	missYouRepo := &fakeMissYouRepo{
		insertFn: func(_ context.Context, senderID, receiverID int64) error {
			insertedSender, insertedReceiver = senderID, receiverID
			return nil
		},
		countFn: func(_ context.Context, senderID, receiverID int64) (int64, error) {
			assert.Equal(t, int64(1), senderID)
			assert.Equal(t, int64(2), receiverID)
			return 8, nil
		},
	}
	svc := NewMissYouService(missYouRepo, pairedWith(2))

	total, partnerID, err := svc.Send(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.Equal(t, int64(2), partnerID)
	assert.Equal(t, int64(1), insertedSender)
	assert.Equal(t, int64(2), insertedReceiver)
}

func TestMissYouSendRequiresPartner(t *testing.T) {
	svc := NewMissYouService(&fakeMissYouRepo{}, pairedWith(0))

	_, _, err := svc.Send(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoPartner)
}

func TestMissYouTotal(t *testing.T) {
	missYouRepo := &fakeMissYouRepo{
		countFn: func(_ context.Context, _, _ int64) (int64, error) {
			return 3, nil
		},
	}
	svc := NewMissYouService(missYouRepo, pairedWith(2))

	total, err := svc.Total(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
