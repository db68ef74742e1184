package services

import (
	"context"
	"testing"
	"time"

	"github.com/Fezze07/JustUS/internal/models"
	"github.com/Fezze07/JustUS/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDriveService builds the service without an S3 client; tests
// that touch uploads are not run against it.
func newTestDriveService(driveRepo repository.IDriveRepository, partnershipRepo repository.IPartnershipRepository) *DriveService {
	return &DriveService{
		driveRepo:       driveRepo,
		partnershipRepo: partnershipRepo,
	}
}

func strPtr(s string) *string { return &s }

func TestDriveCreateAttachesPartner(t *testing.T) {
	var inserted *models.DriveItem
	driveRepo := &fakeDriveRepo{
		insertFn: func(_ context.Context, item *models.DriveItem) error {
			inserted = item
			item.ID = 4
			return nil
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(2))

	item, err := svc.Create(context.Background(), 1, "note", strPtr("ciao"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.ID)
	require.NotNil(t, inserted)
	require.NotNil(t, inserted.PartnerID)
	assert.Equal(t, int64(2), *inserted.PartnerID)
}

func TestDriveCreateWithoutPartnerStillWorks(t *testing.T) {
	var inserted *models.DriveItem
	driveRepo := &fakeDriveRepo{
		insertFn: func(_ context.Context, item *models.DriveItem) error {
			inserted = item
			return nil
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(0))

	_, err := svc.Create(context.Background(), 1, "note", strPtr("ciao"), nil)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Nil(t, inserted.PartnerID)
}

func TestDriveCreateRequiresContent(t *testing.T) {
	svc := newTestDriveService(&fakeDriveRepo{}, pairedWith(2))

	_, err := svc.Create(context.Background(), 1, "note", nil, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestDriveChangesMapsTombstonesToDeletes(t *testing.T) {
	driveRepo := &fakeDriveRepo{
		changedSinceFn: func(_ context.Context, _ int64, _ time.Time) ([]*models.DriveItem, error) {
			return []*models.DriveItem{
				{ID: 1, Content: strPtr("ciao")},
				{ID: 2, Content: nil},
			}, nil
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(2))

	changes, lastSync, err := svc.Changes(context.Background(), 1, time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "update", changes[0].Action)
	require.NotNil(t, changes[0].Item)
	assert.Equal(t, "delete", changes[1].Action)
	assert.Nil(t, changes[1].Item)
	assert.False(t, lastSync.IsZero())
}

func TestDriveAddReactionChecksAccess(t *testing.T) {
	driveRepo := &fakeDriveRepo{
		getForUserFn: func(_ context.Context, _, _ int64) (*models.DriveItem, error) {
			return nil, repository.ErrNotFound
		},
		addReactionFn: func(_ context.Context, _, _ int64, _ string) error {
			t.Fatal("reaction must not be stored on an invisible item")
			return nil
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(2))

	_, err := svc.AddReaction(context.Background(), 1, 9, "❤️")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDriveAddReactionReturnsCounts(t *testing.T) {
	driveRepo := &fakeDriveRepo{
		getForUserFn: func(_ context.Context, id, _ int64) (*models.DriveItem, error) {
			return &models.DriveItem{ID: id, Content: strPtr("ciao")}, nil
		},
		reactionCountsFn: func(_ context.Context, _ int64) ([]*models.ReactionCount, error) {
			return []*models.ReactionCount{{Emoji: "❤️", Total: 2}}, nil
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(2))

	counts, err := svc.AddReaction(context.Background(), 1, 9, "❤️")
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, int64(2), counts[0].Total)
}

func TestDriveDeleteUnknownItem(t *testing.T) {
	driveRepo := &fakeDriveRepo{
		deleteFn: func(_ context.Context, _, _ int64) error {
			return repository.ErrNotFound
		},
	}
	svc := newTestDriveService(driveRepo, pairedWith(2))

	err := svc.Delete(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrItemNotFound)
}
