package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/mocks"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestCatalogService_GetService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceRepo := mocks.NewMockServiceRepository(ctrl)
	versionRepo := mocks.NewMockVersionRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	tx := service.TxManagerStub{}

	svc := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		tx,
		zap.NewNop(),
	)

	ctx := t.Context()
	owner := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}
	stranger := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}
	moderator := auth.Capability{UserID: uuid.New(), Role: models.RoleAdmin}
	serviceID := uuid.New()

	pending := &models.Service{ID: serviceID, OwnerID: owner.UserID, Status: models.StatusPending}

	t.Run("owner sees their pending service", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(pending, nil)

		result, err := svc.GetService(ctx, owner, serviceID)
		require.NoError(t, err)
		require.Equal(t, pending, result)
	})

	t.Run("moderator sees any status", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(pending, nil)

		_, err := svc.GetService(ctx, moderator, serviceID)
		require.NoError(t, err)
	})

	t.Run("pending service hidden from everyone else", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(pending, nil)

		_, err := svc.GetService(ctx, stranger, serviceID)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("live service is public", func(t *testing.T) {
		live := &models.Service{ID: serviceID, OwnerID: owner.UserID, Status: models.StatusLive}
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(live, nil)

		result, err := svc.GetService(ctx, stranger, serviceID)
		require.NoError(t, err)
		require.Equal(t, live, result)
	})
}

func TestCatalogService_AddReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceRepo := mocks.NewMockServiceRepository(ctrl)
	versionRepo := mocks.NewMockVersionRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	tx := service.TxManagerStub{}

	svc := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		tx,
		zap.NewNop(),
	)

	ctx := t.Context()
	reviewer := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}
	serviceID := uuid.New()

	t.Run("success", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(&models.Service{ID: serviceID, Status: models.StatusLive}, nil)
		reviewRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(nil)

		review, err := svc.AddReview(ctx, reviewer, serviceID, "solid docs", models.ReviewPositive)
		require.NoError(t, err)
		require.Equal(t, reviewer.UserID, review.ReviewerID)
		require.Equal(t, models.ReviewPositive, review.Type)
		require.False(t, review.Edited)
	})

	t.Run("service not live", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(&models.Service{ID: serviceID, Status: models.StatusPending}, nil)

		_, err := svc.AddReview(ctx, reviewer, serviceID, "solid docs", models.ReviewPositive)
		require.ErrorIs(t, err, service.ErrNotLive)
	})

	t.Run("second review from same user", func(t *testing.T) {
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(&models.Service{ID: serviceID, Status: models.StatusLive}, nil)
		reviewRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(repository.ErrDuplicate)

		_, err := svc.AddReview(ctx, reviewer, serviceID, "again", models.ReviewNegative)
		require.ErrorIs(t, err, service.ErrDuplicate)
	})
}

func TestCatalogService_EditReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceRepo := mocks.NewMockServiceRepository(ctrl)
	versionRepo := mocks.NewMockVersionRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	tx := service.TxManagerStub{}

	svc := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		tx,
		zap.NewNop(),
	)

	ctx := t.Context()
	author := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}
	rid := uuid.New()

	t.Run("author edits their review", func(t *testing.T) {
		stored := &models.Review{
			RID:        rid,
			ReviewerID: author.UserID,
			Comment:    "solid docs",
			Type:       models.ReviewPositive,
		}

		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(stored, nil)
		reviewRepo.EXPECT().
			UpdateComment(ctx, rid, "docs got worse", models.ReviewNegative).
			Return(nil)

		result, err := svc.EditReview(ctx, author, rid, "docs got worse", models.ReviewNegative)
		require.NoError(t, err)
		require.Equal(t, "docs got worse", result.Comment)
		require.Equal(t, models.ReviewNegative, result.Type)
		require.True(t, result.Edited)
	})

	t.Run("only the author may edit", func(t *testing.T) {
		stored := &models.Review{RID: rid, ReviewerID: uuid.New()}
		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(stored, nil)

		_, err := svc.EditReview(ctx, author, rid, "hijacked", models.ReviewNegative)
		require.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

func TestCatalogService_ReplyToReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceRepo := mocks.NewMockServiceRepository(ctrl)
	versionRepo := mocks.NewMockVersionRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	tx := service.TxManagerStub{}

	svc := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		tx,
		zap.NewNop(),
	)

	ctx := t.Context()
	owner := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}
	serviceID := uuid.New()
	rid := uuid.New()

	review := &models.Review{RID: rid, ServiceID: serviceID, ReviewerID: uuid.New()}
	ownedService := &models.Service{ID: serviceID, OwnerID: owner.UserID, Status: models.StatusLive}

	t.Run("owner replies once", func(t *testing.T) {
		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(review, nil)
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(ownedService, nil)
		reviewRepo.EXPECT().
			CreateReply(ctx, gomock.Any()).
			Return(nil)

		reply, err := svc.ReplyToReview(ctx, owner, rid, "thanks, fixed in v2")
		require.NoError(t, err)
		require.Equal(t, rid, reply.ReviewID)
		require.Equal(t, owner.UserID, reply.OwnerID)
	})

	t.Run("non-owner cannot reply", func(t *testing.T) {
		stranger := auth.Capability{UserID: uuid.New(), Role: models.RoleUser}

		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(review, nil)
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(ownedService, nil)

		_, err := svc.ReplyToReview(ctx, stranger, rid, "me too")
		require.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("reply slot already filled", func(t *testing.T) {
		answered := &models.Review{
			RID:        rid,
			ServiceID:  serviceID,
			ReviewerID: review.ReviewerID,
			Reply:      &models.Reply{ReviewID: rid, OwnerID: owner.UserID, CreatedAt: time.Now()},
		}

		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(answered, nil)
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(ownedService, nil)

		_, err := svc.ReplyToReview(ctx, owner, rid, "again")
		require.ErrorIs(t, err, service.ErrConflict)
	})

	t.Run("racing reply loses on the insert", func(t *testing.T) {
		reviewRepo.EXPECT().
			GetByID(ctx, rid).
			Return(review, nil)
		serviceRepo.EXPECT().
			GetByID(ctx, serviceID).
			Return(ownedService, nil)
		reviewRepo.EXPECT().
			CreateReply(ctx, gomock.Any()).
			Return(repository.ErrDuplicate)

		_, err := svc.ReplyToReview(ctx, owner, rid, "racing")
		require.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestCatalogService_VoteReview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	serviceRepo := mocks.NewMockServiceRepository(ctrl)
	versionRepo := mocks.NewMockVersionRepository(ctrl)
	reviewRepo := mocks.NewMockReviewRepository(ctrl)
	tx := service.TxManagerStub{}

	svc := service.NewCatalogService(
		serviceRepo,
		versionRepo,
		reviewRepo,
		tx,
		zap.NewNop(),
	)
	ctx := t.Context()
	rid := uuid.New()

	t.Run("upvote", func(t *testing.T) {
		reviewRepo.EXPECT().
			Vote(ctx, rid, true).
			Return(nil)

		require.NoError(t, svc.VoteReview(ctx, rid, true))
	})

	t.Run("unknown review", func(t *testing.T) {
		reviewRepo.EXPECT().
			Vote(ctx, rid, false).
			Return(repository.ErrNotFound)

		err := svc.VoteReview(ctx, rid, false)
		require.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("repo error", func(t *testing.T) {
		reviewRepo.EXPECT().
			Vote(ctx, rid, true).
			Return(errors.New("db error"))

		err := svc.VoteReview(ctx, rid, true)
		require.Error(t, err)
	})
}
