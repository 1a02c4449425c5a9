//go:build integration
// +build integration

package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	ctx := t.Context()

	trManager := manager.Must(trmpgx.NewDefaultFactory(db))

	repo := repository.NewUserRepository(
		db,
		trmpgx.DefaultCtxGetter,
		retrier,
	)

	_ = trManager.Do(ctx, func(ctx context.Context) error {
		user := &models.User{
			Name:     "alice",
			Role:     models.RoleUser,
			IsActive: true,
		}

		t.Run("Create assigns an id", func(t *testing.T) {
			err := repo.Create(ctx, user)
			require.NoError(t, err)
			require.NotEqual(t, uuid.Nil, user.ID)
		})

		t.Run("GetByID", func(t *testing.T) {
			actual, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.Equal(t, user, actual)
		})

		t.Run("GetByName", func(t *testing.T) {
			actual, err := repo.GetByName(ctx, "alice")
			require.NoError(t, err)
			require.Equal(t, user.ID, actual.ID)
		})

		t.Run("UpdateRole", func(t *testing.T) {
			err := repo.UpdateRole(ctx, user.ID, models.RoleAdmin)
			require.NoError(t, err)

			actual, err := repo.GetByID(ctx, user.ID)
			require.NoError(t, err)
			require.Equal(t, models.RoleAdmin, actual.Role)
		})

		t.Run("Not found", func(t *testing.T) {
			_, err := repo.GetByID(ctx, uuid.New())
			require.ErrorIs(t, err, repository.ErrNotFound)
		})

		t.Run("duplicate name", func(t *testing.T) {
			err := repo.Create(ctx, &models.User{Name: "alice", Role: models.RoleUser})
			require.ErrorIs(t, err, repository.ErrDuplicate)
		})

		return fmt.Errorf("error for rollback")
	})
}
