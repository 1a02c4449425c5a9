package auth_test

import (
	"testing"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	userID := uuid.New()

	token, err := issuer.Issue(userID, models.RoleAdmin)
	require.NoError(t, err)

	capability, err := issuer.Parse(token)
	require.NoError(t, err)
	require.Equal(t, userID, capability.UserID)
	require.Equal(t, models.RoleAdmin, capability.Role)
	require.True(t, capability.CanModerate())
}

func TestParse_WrongSecret(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	other := auth.NewIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	_, err = other.Parse(token)
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue(uuid.New(), models.RoleUser)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.ErrorIs(t, err, auth.ErrTokenExpired)
}

func TestParse_Garbage(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)

	_, err := issuer.Parse("not-a-token")
	require.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestCanModerate(t *testing.T) {
	require.False(t, auth.Capability{Role: models.RoleUser}.CanModerate())
	require.True(t, auth.Capability{Role: models.RoleAdmin}.CanModerate())
	require.True(t, auth.Capability{Role: models.RoleSuperAdmin}.CanModerate())
}
