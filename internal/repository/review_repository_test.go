//go:build integration
// +build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository(t *testing.T) {
	ctx := t.Context()

	trManager := manager.Must(trmpgx.NewDefaultFactory(db))

	serviceRepo := repository.NewServiceRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)
	repo := repository.NewReviewRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)

	newService := func(ctx context.Context, t *testing.T) *models.Service {
		t.Helper()
		svc := &models.Service{
			ID:        uuid.New(),
			Name:      "Weather API",
			OwnerID:   uuid.New(),
			PayModel:  models.PayModelFree,
			Tags:      []string{"API"},
			Status:    models.StatusLive,
			CreatedAt: time.Now(),
		}
		require.NoError(t, serviceRepo.Create(ctx, svc))
		return svc
	}

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := newService(ctx, t)
		review := &models.Review{
			RID:        uuid.New(),
			ServiceID:  svc.ID,
			ReviewerID: uuid.New(),
			Comment:    "solid docs",
			Type:       models.ReviewPositive,
			CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
		}

		t.Run("Create", func(t *testing.T) {
			err := repo.Create(ctx, review)
			require.NoError(t, err)
		})

		t.Run("GetByID without reply", func(t *testing.T) {
			actual, err := repo.GetByID(ctx, review.RID)
			require.NoError(t, err)
			require.Equal(t, review.Comment, actual.Comment)
			require.Nil(t, actual.Reply)
		})

		t.Run("UpdateComment marks edited", func(t *testing.T) {
			err := repo.UpdateComment(ctx, review.RID, "docs got worse", models.ReviewNegative)
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, review.RID)
			require.NoError(t, err)
			require.Equal(t, "docs got worse", actual.Comment)
			require.Equal(t, models.ReviewNegative, actual.Type)
			require.True(t, actual.Edited)
		})

		t.Run("Vote bumps one counter", func(t *testing.T) {
			require.NoError(t, repo.Vote(ctx, review.RID, true))
			require.NoError(t, repo.Vote(ctx, review.RID, true))
			require.NoError(t, repo.Vote(ctx, review.RID, false))

			actual, err := repo.GetByID(ctx, review.RID)
			require.NoError(t, err)
			require.Equal(t, 2, actual.Upvotes)
			require.Equal(t, 1, actual.Downvotes)
		})

		t.Run("CreateReply fills the slot", func(t *testing.T) {
			reply := &models.Reply{
				ReviewID:  review.RID,
				OwnerID:   svc.OwnerID,
				Comment:   "thanks, fixed",
				CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
			}
			require.NoError(t, repo.CreateReply(ctx, reply))

			actual, err := repo.GetByID(ctx, review.RID)
			require.NoError(t, err)
			require.NotNil(t, actual.Reply)
			require.Equal(t, reply.Comment, actual.Reply.Comment)
			require.Equal(t, reply.OwnerID, actual.Reply.OwnerID)
		})

		t.Run("ListByService joins replies", func(t *testing.T) {
			second := &models.Review{
				RID:        uuid.New(),
				ServiceID:  svc.ID,
				ReviewerID: uuid.New(),
				Comment:    "flaky",
				Type:       models.ReviewNegative,
				CreatedAt:  review.CreatedAt.Add(time.Second),
			}
			require.NoError(t, repo.Create(ctx, second))

			reviews, err := repo.ListByService(ctx, svc.ID)
			require.NoError(t, err)
			require.Len(t, reviews, 2)
			require.Equal(t, review.RID, reviews[0].RID)
			require.NotNil(t, reviews[0].Reply)
			require.Nil(t, reviews[1].Reply)
		})

		return fmt.Errorf("error for rollback")
	})

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := newService(ctx, t)
		reviewer := uuid.New()

		t.Run("one review per reviewer per service", func(t *testing.T) {
			first := &models.Review{
				RID:        uuid.New(),
				ServiceID:  svc.ID,
				ReviewerID: reviewer,
				Type:       models.ReviewPositive,
				CreatedAt:  time.Now(),
			}
			require.NoError(t, repo.Create(ctx, first))

			dup := &models.Review{
				RID:        uuid.New(),
				ServiceID:  svc.ID,
				ReviewerID: reviewer,
				Type:       models.ReviewNegative,
				CreatedAt:  time.Now(),
			}
			err := repo.Create(ctx, dup)
			require.ErrorIs(t, err, repository.ErrDuplicate)
		})

		return fmt.Errorf("error for rollback")
	})

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := newService(ctx, t)

		t.Run("second reply trips the slot", func(t *testing.T) {
			review := &models.Review{
				RID:        uuid.New(),
				ServiceID:  svc.ID,
				ReviewerID: uuid.New(),
				Type:       models.ReviewPositive,
				CreatedAt:  time.Now(),
			}
			require.NoError(t, repo.Create(ctx, review))

			reply := &models.Reply{
				ReviewID:  review.RID,
				OwnerID:   svc.OwnerID,
				Comment:   "first",
				CreatedAt: time.Now(),
			}
			require.NoError(t, repo.CreateReply(ctx, reply))

			again := &models.Reply{
				ReviewID:  review.RID,
				OwnerID:   svc.OwnerID,
				Comment:   "second",
				CreatedAt: time.Now(),
			}
			err := repo.CreateReply(ctx, again)
			require.ErrorIs(t, err, repository.ErrDuplicate)
		})

		return fmt.Errorf("error for rollback")
	})
}
