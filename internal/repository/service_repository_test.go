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

func TestServiceRepository(t *testing.T) {
	ctx := t.Context()

	trManager := manager.Must(trmpgx.NewDefaultFactory(db))

	repo := repository.NewServiceRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		ownerID := uuid.New()
		svc := &models.Service{
			ID:          uuid.New(),
			Name:        "Weather API",
			Description: "forecasts",
			OwnerID:     ownerID,
			PayModel:    models.PayModelFree,
			Tags:        []string{"API", "Weather"},
			Status:      models.StatusPending,
			CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
		}

		t.Run("Create", func(t *testing.T) {
			err := repo.Create(ctx, svc)
			require.NoError(t, err)
		})

		t.Run("GetByID", func(t *testing.T) {
			actual, err := repo.GetByID(ctx, svc.ID)
			require.NoError(t, err)
			require.Equal(t, svc.Name, actual.Name)
			require.Equal(t, svc.Tags, actual.Tags)
			require.Equal(t, models.StatusPending, actual.Status)
			require.Empty(t, actual.Versions)
		})

		t.Run("ListByStatus", func(t *testing.T) {
			pending, err := repo.ListByStatus(ctx, models.StatusPending)
			require.NoError(t, err)
			require.Len(t, pending, 1)

			live, err := repo.ListByStatus(ctx, models.StatusLive)
			require.NoError(t, err)
			require.Empty(t, live)
		})

		t.Run("ListByOwner", func(t *testing.T) {
			mine, err := repo.ListByOwner(ctx, ownerID)
			require.NoError(t, err)
			require.Len(t, mine, 1)

			other, err := repo.ListByOwner(ctx, uuid.New())
			require.NoError(t, err)
			require.Empty(t, other)
		})

		t.Run("UpdateStatus keeps live fields", func(t *testing.T) {
			err := repo.UpdateStatus(ctx, svc.ID, models.StatusRejected, "not enough docs")
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, svc.ID)
			require.NoError(t, err)
			require.Equal(t, models.StatusRejected, actual.Status)
			require.Equal(t, "not enough docs", actual.StatusReason)
			require.Equal(t, svc.Name, actual.Name)
			require.Equal(t, svc.Description, actual.Description)
		})

		t.Run("ApplyGeneralInfo overwrites public fields", func(t *testing.T) {
			payload := &models.GeneralInfoPayload{
				Name:        "Weather API v2",
				Description: "now with radar",
				PayModel:    models.PayModelFreemium,
				Icon:        "icon.png",
				Tags:        []string{"API", "Weather", "Radar"},
			}
			err := repo.ApplyGeneralInfo(ctx, svc.ID, payload, models.StatusLive)
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, svc.ID)
			require.NoError(t, err)
			require.Equal(t, payload.Name, actual.Name)
			require.Equal(t, payload.Description, actual.Description)
			require.Equal(t, models.PayModelFreemium, actual.PayModel)
			require.Equal(t, payload.Tags, actual.Tags)
			require.Equal(t, models.StatusLive, actual.Status)
			require.Empty(t, actual.StatusReason)
		})

		t.Run("UpdateStatus on unknown id", func(t *testing.T) {
			err := repo.UpdateStatus(ctx, uuid.New(), models.StatusLive, "")
			require.ErrorIs(t, err, repository.ErrNotFound)
		})

		return fmt.Errorf("error for rollback")
	})

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := &models.Service{
			ID:        uuid.New(),
			Name:      "Geocoding API",
			OwnerID:   uuid.New(),
			PayModel:  models.PayModelFree,
			Status:    models.StatusPending,
			CreatedAt: time.Now(),
		}
		require.NoError(t, repo.Create(ctx, svc))

		t.Run("duplicate name", func(t *testing.T) {
			again := &models.Service{
				ID:        uuid.New(),
				Name:      svc.Name,
				OwnerID:   uuid.New(),
				PayModel:  models.PayModelFree,
				Status:    models.StatusPending,
				CreatedAt: time.Now(),
			}
			err := repo.Create(ctx, again)
			require.ErrorIs(t, err, repository.ErrDuplicate)
		})

		return fmt.Errorf("error for rollback")
	})
}
