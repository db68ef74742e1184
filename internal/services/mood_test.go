package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodSetRequiresEmoji(t *testing.T) {
	svc := NewMoodService(&fakeMoodRepo{}, &fakePartnershipRepo{})

	err := svc.Set(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestMoodGetOwn(t *testing.T) {
	emoji := "🥰"
	moodRepo := &fakeMoodRepo{
		latestFn: func(_ context.Context, userID int64) (*string, error) {
			assert.Equal(t, int64(1), userID)
			return &emoji, nil
		},
	}
	svc := NewMoodService(moodRepo, &fakePartnershipRepo{})

	got, err := svc.Get(context.Background(), 1, "me")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, emoji, *got)
}

func TestMoodGetPartnerResolvesOtherSide(t *testing.T) {
	emoji := "😴"
	moodRepo := &fakeMoodRepo{
		latestFn: func(_ context.Context, userID int64) (*string, error) {
			assert.Equal(t, int64(2), userID)
			return &emoji, nil
		},
	}
	svc := NewMoodService(moodRepo, pairedWith(2))

	got, err := svc.Get(context.Background(), 1, "partner")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestMoodGetPartnerUnpaired(t *testing.T) {
	svc := NewMoodService(&fakeMoodRepo{}, pairedWith(0))

	_, err := svc.Get(context.Background(), 1, "partner")
	assert.ErrorIs(t, err, ErrNoPartner)
}

func TestMoodGetNeverSet(t *testing.T) {
	svc := NewMoodService(&fakeMoodRepo{}, &fakePartnershipRepo{})

	got, err := svc.Get(context.Background(), 1, "me")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMoodRecentCoupleUsesLimit(t *testing.T) {
	moodRepo := &fakeMoodRepo{
		recentForCoupleFn: func(_ context.Context, userID, partnerID int64, limit int) ([]string, error) {
			assert.Equal(t, int64(1), userID)
			assert.Equal(t, int64(2), partnerID)
			assert.Equal(t, recentMoodLimit, limit)
			return []string{"🥰", "😴"}, nil
		},
	}
	svc := NewMoodService(moodRepo, pairedWith(2))

	moods, err := svc.RecentCouple(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, moods, 2)
}
