package services

import (
	"context"
	"time"

	"github.com/Fezze07/JustUS/internal/models"
)

type fakeUserRepo struct {
	createFn               func(context.Context, *models.User) error
	getByIDFn              func(context.Context, int64) (*models.User, error)
	getByUsernameAndCodeFn func(context.Context, string, string) (*models.User, error)
	listByUsernameFn       func(context.Context, string) ([]*models.User, error)
	usernameCodeExistsFn   func(context.Context, string, string) (bool, error)
	searchFn               func(context.Context, string, string, int) ([]*models.PublicUser, error)
	updateDeviceTokenFn    func(context.Context, int64, *string) error
	setLoginFailuresFn     func(context.Context, int64, int, *time.Time) error
	resetLoginFailuresFn   func(context.Context, int64) error
	updateProfileFn        func(context.Context, int64, *string, *string) error
	updatePasswordFn       func(context.Context, int64, string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getByIDFn == nil {
		return nil, nil
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByUsernameAndCode(ctx context.Context, username, code string) (*models.User, error) {
	if f.getByUsernameAndCodeFn == nil {
		return nil, nil
	}
	return f.getByUsernameAndCodeFn(ctx, username, code)
}

func (f *fakeUserRepo) ListByUsername(ctx context.Context, username string) ([]*models.User, error) {
	if f.listByUsernameFn == nil {
		return nil, nil
	}
	return f.listByUsernameFn(ctx, username)
}

func (f *fakeUserRepo) UsernameCodeExists(ctx context.Context, username, code string) (bool, error) {
	if f.usernameCodeExistsFn == nil {
		return false, nil
	}
	return f.usernameCodeExistsFn(ctx, username, code)
}

func (f *fakeUserRepo) Search(ctx context.Context, usernameFragment, codePrefix string, limit int) ([]*models.PublicUser, error) {
	if f.searchFn == nil {
		return nil, nil
	}
	return f.searchFn(ctx, usernameFragment, codePrefix, limit)
}

func (f *fakeUserRepo) UpdateDeviceToken(ctx context.Context, userID int64, deviceToken *string) error {
	if f.updateDeviceTokenFn == nil {
		return nil
	}
	return f.updateDeviceTokenFn(ctx, userID, deviceToken)
}

func (f *fakeUserRepo) SetLoginFailures(ctx context.Context, userID int64, attempts int, blockedUntil *time.Time) error {
	if f.setLoginFailuresFn == nil {
		return nil
	}
	return f.setLoginFailuresFn(ctx, userID, attempts, blockedUntil)
}

func (f *fakeUserRepo) ResetLoginFailures(ctx context.Context, userID int64) error {
	if f.resetLoginFailuresFn == nil {
		return nil
	}
	return f.resetLoginFailuresFn(ctx, userID)
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, bio, profilePicURL *string) error {
	if f.updateProfileFn == nil {
		return nil
	}
	return f.updateProfileFn(ctx, userID, bio, profilePicURL)
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if f.updatePasswordFn == nil {
		return nil
	}
	return f.updatePasswordFn(ctx, userID, passwordHash)
}

type fakePartnershipRepo struct {
	hasAcceptedFn     func(context.Context, int64) (bool, error)
	pendingExistsFn   func(context.Context, int64, int64) (bool, error)
	createPendingFn   func(context.Context, int64, int64) error
	getPendingFn      func(context.Context, int64, int64) (*models.Partnership, error)
	acceptPendingFn   func(context.Context, int64, int64) (bool, error)
	deletePendingFn   func(context.Context, int64, int64) error
	acceptedPartnerFn func(context.Context, int64) (*models.PublicUser, error)
	partnerIDFn       func(context.Context, int64) (int64, error)
	pendingReceivedFn func(context.Context, int64) ([]*models.PublicUser, error)
	pendingSentFn     func(context.Context, int64) ([]*models.PublicUser, error)
}

func (f *fakePartnershipRepo) HasAccepted(ctx context.Context, userID int64) (bool, error) {
	if f.hasAcceptedFn == nil {
		return false, nil
	}
	return f.hasAcceptedFn(ctx, userID)
}

func (f *fakePartnershipRepo) PendingExists(ctx context.Context, requesterID, targetID int64) (bool, error) {
	if f.pendingExistsFn == nil {
		return false, nil
	}
	return f.pendingExistsFn(ctx, requesterID, targetID)
}

func (f *fakePartnershipRepo) CreatePending(ctx context.Context, requesterID, targetID int64) error {
	if f.createPendingFn == nil {
		return nil
	}
	return f.createPendingFn(ctx, requesterID, targetID)
}

func (f *fakePartnershipRepo) GetPending(ctx context.Context, requesterID, accepterID int64) (*models.Partnership, error) {
	if f.getPendingFn == nil {
		return nil, nil
	}
	return f.getPendingFn(ctx, requesterID, accepterID)
}

func (f *fakePartnershipRepo) AcceptPending(ctx context.Context, requesterID, accepterID int64) (bool, error) {
	if f.acceptPendingFn == nil {
		return true, nil
	}
	return f.acceptPendingFn(ctx, requesterID, accepterID)
}

func (f *fakePartnershipRepo) DeletePending(ctx context.Context, requesterID, accepterID int64) error {
	if f.deletePendingFn == nil {
		return nil
	}
	return f.deletePendingFn(ctx, requesterID, accepterID)
}

func (f *fakePartnershipRepo) AcceptedPartner(ctx context.Context, userID int64) (*models.PublicUser, error) {
	if f.acceptedPartnerFn == nil {
		return nil, nil
	}
	return f.acceptedPartnerFn(ctx, userID)
}

func (f *fakePartnershipRepo) PartnerID(ctx context.Context, userID int64) (int64, error) {
	if f.partnerIDFn == nil {
		return 0, nil
	}
	return f.partnerIDFn(ctx, userID)
}

func (f *fakePartnershipRepo) PendingReceived(ctx context.Context, userID int64) ([]*models.PublicUser, error) {
	if f.pendingReceivedFn == nil {
		return nil, nil
	}
	return f.pendingReceivedFn(ctx, userID)
}

func (f *fakePartnershipRepo) PendingSent(ctx context.Context, userID int64) ([]*models.PublicUser, error) {
	if f.pendingSentFn == nil {
		return nil, nil
	}
	return f.pendingSentFn(ctx, userID)
}

type fakeGameRepo struct {
	openQuestionFn             func(context.Context, int64, int64) (*models.GameQuestion, error)
	createQuestionIfNoneOpenFn func(context.Context, *models.GameQuestion) (bool, error)
	getQuestionFn              func(context.Context, int64) (*models.GameQuestion, error)
	hasAnswerFn                func(context.Context, int64, int64) (bool, error)
	upsertAnswerFn             func(context.Context, *models.GameAnswer) error
	countMatchesFn             func(context.Context) (int64, error)
}

func (f *fakeGameRepo) OpenQuestion(ctx context.Context, userID, partnerID int64) (*models.GameQuestion, error) {
	if f.openQuestionFn == nil {
		return nil, nil
	}
	return f.openQuestionFn(ctx, userID, partnerID)
}

func (f *fakeGameRepo) CreateQuestionIfNoneOpen(ctx context.Context, question *models.GameQuestion) (bool, error) {
	if f.createQuestionIfNoneOpenFn == nil {
		return true, nil
	}
	return f.createQuestionIfNoneOpenFn(ctx, question)
}

func (f *fakeGameRepo) GetQuestion(ctx context.Context, id int64) (*models.GameQuestion, error) {
	if f.getQuestionFn == nil {
		return nil, nil
	}
	return f.getQuestionFn(ctx, id)
}

func (f *fakeGameRepo) HasAnswer(ctx context.Context, gameID, userID int64) (bool, error) {
	if f.hasAnswerFn == nil {
		return false, nil
	}
	return f.hasAnswerFn(ctx, gameID, userID)
}

func (f *fakeGameRepo) UpsertAnswer(ctx context.Context, answer *models.GameAnswer) error {
	if f.upsertAnswerFn == nil {
		return nil
	}
	return f.upsertAnswerFn(ctx, answer)
}

func (f *fakeGameRepo) CountMatches(ctx context.Context) (int64, error) {
	if f.countMatchesFn == nil {
		return 0, nil
	}
	return f.countMatchesFn(ctx)
}

type fakeMoodRepo struct {
	insertFn          func(context.Context, int64, string) error
	latestFn          func(context.Context, int64) (*string, error)
	recentForCoupleFn func(context.Context, int64, int64, int) ([]string, error)
}

func (f *fakeMoodRepo) Insert(ctx context.Context, userID int64, emoji string) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, userID, emoji)
}

func (f *fakeMoodRepo) Latest(ctx context.Context, userID int64) (*string, error) {
	if f.latestFn == nil {
		return nil, nil
	}
	return f.latestFn(ctx, userID)
}

func (f *fakeMoodRepo) RecentForCouple(ctx context.Context, userID, partnerID int64, limit int) ([]string, error) {
	if f.recentForCoupleFn == nil {
		return nil, nil
	}
	return f.recentForCoupleFn(ctx, userID, partnerID, limit)
}

type fakeBucketRepo struct {
	listForUserFn func(context.Context, int64) ([]*models.BucketItem, error)
	insertFn      func(context.Context, *models.BucketItem) error
	toggleDoneFn  func(context.Context, int64, int64) error
	deleteFn      func(context.Context, int64, int64) error
}

func (f *fakeBucketRepo) ListForUser(ctx context.Context, userID int64) ([]*models.BucketItem, error) {
	if f.listForUserFn == nil {
		return nil, nil
	}
	return f.listForUserFn(ctx, userID)
}

func (f *fakeBucketRepo) Insert(ctx context.Context, item *models.BucketItem) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, item)
}

func (f *fakeBucketRepo) ToggleDone(ctx context.Context, id, userID int64) error {
	if f.toggleDoneFn == nil {
		return nil
	}
	return f.toggleDoneFn(ctx, id, userID)
}

func (f *fakeBucketRepo) Delete(ctx context.Context, id, userID int64) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, userID)
}

type fakeMissYouRepo struct {
	insertFn func(context.Context, int64, int64) error
	countFn  func(context.Context, int64, int64) (int64, error)
}

func (f *fakeMissYouRepo) Insert(ctx context.Context, senderID, receiverID int64) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, senderID, receiverID)
}

func (f *fakeMissYouRepo) Count(ctx context.Context, senderID, receiverID int64) (int64, error) {
	if f.countFn == nil {
		return 0, nil
	}
	return f.countFn(ctx, senderID, receiverID)
}

type fakeDriveRepo struct {
	listForUserFn    func(context.Context, int64) ([]*models.DriveItem, error)
	insertFn         func(context.Context, *models.DriveItem) error
	getForUserFn     func(context.Context, int64, int64) (*models.DriveItem, error)
	deleteFn         func(context.Context, int64, int64) error
	changedSinceFn   func(context.Context, int64, time.Time) ([]*models.DriveItem, error)
	addReactionFn    func(context.Context, int64, int64, string) error
	reactionCountsFn func(context.Context, int64) ([]*models.ReactionCount, error)
	reactionsFn      func(context.Context, int64) ([]*models.Reaction, error)
	addFavoriteFn    func(context.Context, int64, int64) error
	removeFavoriteFn func(context.Context, int64, int64) error
}

func (f *fakeDriveRepo) ListForUser(ctx context.Context, userID int64) ([]*models.DriveItem, error) {
	if f.listForUserFn == nil {
		return nil, nil
	}
	return f.listForUserFn(ctx, userID)
}

func (f *fakeDriveRepo) Insert(ctx context.Context, item *models.DriveItem) error {
	if f.insertFn == nil {
		return nil
	}
	return f.insertFn(ctx, item)
}

func (f *fakeDriveRepo) GetForUser(ctx context.Context, id, userID int64) (*models.DriveItem, error) {
	if f.getForUserFn == nil {
		return nil, nil
	}
	return f.getForUserFn(ctx, id, userID)
}

func (f *fakeDriveRepo) Delete(ctx context.Context, id, userID int64) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id, userID)
}

func (f *fakeDriveRepo) ChangedSince(ctx context.Context, userID int64, since time.Time) ([]*models.DriveItem, error) {
	if f.changedSinceFn == nil {
		return nil, nil
	}
	return f.changedSinceFn(ctx, userID, since)
}

func (f *fakeDriveRepo) AddReaction(ctx context.Context, itemID, userID int64, emoji string) error {
	if f.addReactionFn == nil {
		return nil
	}
	return f.addReactionFn(ctx, itemID, userID, emoji)
}

func (f *fakeDriveRepo) ReactionCounts(ctx context.Context, itemID int64) ([]*models.ReactionCount, error) {
	if f.reactionCountsFn == nil {
		return nil, nil
	}
	return f.reactionCountsFn(ctx, itemID)
}

func (f *fakeDriveRepo) Reactions(ctx context.Context, itemID int64) ([]*models.Reaction, error) {
	if f.reactionsFn == nil {
		return nil, nil
	}
	return f.reactionsFn(ctx, itemID)
}

func (f *fakeDriveRepo) AddFavorite(ctx context.Context, userID, itemID int64) error {
	if f.addFavoriteFn == nil {
		return nil
	}
	return f.addFavoriteFn(ctx, userID, itemID)
}

func (f *fakeDriveRepo) RemoveFavorite(ctx context.Context, userID, itemID int64) error {
	if f.removeFavoriteFn == nil {
		return nil
	}
	return f.removeFavoriteFn(ctx, userID, itemID)
}

type fakeGenerator struct {
	generateFn func(context.Context, string) (string, error)
}

func (f *fakeGenerator) Generate(ctx context.Context, stem string) (string, error) {
	if f.generateFn == nil {
		return stem, nil
	}
	return f.generateFn(ctx, stem)
}
