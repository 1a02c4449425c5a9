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

func TestVersionRepository(t *testing.T) {
	ctx := t.Context()

	trManager := manager.Must(trmpgx.NewDefaultFactory(db))

	serviceRepo := repository.NewServiceRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)
	repo := repository.NewVersionRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := &models.Service{
			ID:        uuid.New(),
			Name:      "Weather API",
			OwnerID:   uuid.New(),
			PayModel:  models.PayModelFree,
			Tags:      []string{"API"},
			Status:    models.StatusPending,
			CreatedAt: time.Now(),
		}
		require.NoError(t, serviceRepo.Create(ctx, svc))

		version := &models.Version{
			ID:                 uuid.New(),
			ServiceID:          svc.ID,
			VersionName:        "v1",
			VersionDescription: "initial release",
			Docs:               []string{"https://docs.example.com/v1"},
			NewlyCreated:       true,
			Status:             models.StatusPending,
			CreatedAt:          time.Now().UTC().Truncate(time.Microsecond),
			Endpoints: []*models.Endpoint{
				{
					Method:          "GET",
					Link:            "/weather/current",
					MainDescription: "current conditions",
					Parameters: []*models.EndpointParameter{
						{Name: "city", Type: models.ParameterQuery, ValueType: "string", Required: true},
						{Name: "units", Type: models.ParameterQuery, ValueType: "string"},
					},
					Responses: []*models.EndpointResponse{
						{Code: "200", Description: "ok"},
						{Code: "404", Description: "unknown city", Conditions: []string{"city not found"}},
					},
				},
				{
					Method: "GET",
					Link:   "/weather/forecast",
				},
			},
		}

		t.Run("Create with endpoint tree", func(t *testing.T) {
			err := repo.Create(ctx, version)
			require.NoError(t, err)
		})

		t.Run("GetByID returns the tree in order", func(t *testing.T) {
			actual, err := repo.GetByID(ctx, version.ID)
			require.NoError(t, err)
			require.Equal(t, "v1", actual.VersionName)
			require.True(t, actual.NewlyCreated)
			require.Len(t, actual.Endpoints, 2)
			require.Equal(t, "/weather/current", actual.Endpoints[0].Link)
			require.Len(t, actual.Endpoints[0].Parameters, 2)
			require.Equal(t, "city", actual.Endpoints[0].Parameters[0].Name)
			require.Len(t, actual.Endpoints[0].Responses, 2)
			require.Equal(t, "/weather/forecast", actual.Endpoints[1].Link)
		})

		t.Run("GetByName", func(t *testing.T) {
			actual, err := repo.GetByName(ctx, svc.ID, "v1")
			require.NoError(t, err)
			require.Equal(t, version.ID, actual.ID)

			_, err = repo.GetByName(ctx, svc.ID, "v999")
			require.ErrorIs(t, err, repository.ErrNotFound)
		})

		t.Run("UpdateStatus keeps content", func(t *testing.T) {
			err := repo.UpdateStatus(ctx, version.ID, models.StatusUpdatePending, "")
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, version.ID)
			require.NoError(t, err)
			require.Equal(t, models.StatusUpdatePending, actual.Status)
			require.Len(t, actual.Endpoints, 2)
		})

		t.Run("ApplyPayload replaces the endpoint tree", func(t *testing.T) {
			payload := &models.VersionPayload{
				VersionName:        "v1",
				VersionDescription: "current conditions only",
				Endpoints: []*models.EndpointPayload{
					{
						Method: "GET",
						Link:   "/v1/current",
						Responses: []*models.ResponsePayload{
							{Code: "200", Description: "ok"},
						},
					},
				},
			}

			err := repo.ApplyPayload(ctx, version.ID, payload, models.StatusLive)
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, version.ID)
			require.NoError(t, err)
			require.Equal(t, models.StatusLive, actual.Status)
			require.False(t, actual.NewlyCreated)
			require.Equal(t, "current conditions only", actual.VersionDescription)
			require.Len(t, actual.Endpoints, 1)
			require.Equal(t, "/v1/current", actual.Endpoints[0].Link)
		})

		return fmt.Errorf("error for rollback")
	})

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		svc := &models.Service{
			ID:        uuid.New(),
			Name:      "Weather API",
			OwnerID:   uuid.New(),
			PayModel:  models.PayModelFree,
			Tags:      []string{"API"},
			Status:    models.StatusPending,
			CreatedAt: time.Now(),
		}
		require.NoError(t, serviceRepo.Create(ctx, svc))

		t.Run("duplicate name within a service", func(t *testing.T) {
			first := &models.Version{
				ID:          uuid.New(),
				ServiceID:   svc.ID,
				VersionName: "v1",
				Status:      models.StatusPending,
				CreatedAt:   time.Now(),
			}
			require.NoError(t, repo.Create(ctx, first))

			dup := &models.Version{
				ID:          uuid.New(),
				ServiceID:   svc.ID,
				VersionName: "v1",
				Status:      models.StatusPending,
				CreatedAt:   time.Now(),
			}
			err := repo.Create(ctx, dup)
			require.ErrorIs(t, err, repository.ErrDuplicate)
		})

		return fmt.Errorf("error for rollback")
	})
}
