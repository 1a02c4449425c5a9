package service

import (
	"context"
	"errors"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthService hands out capability tokens and manages roles. Token issuing
// is name-based: an unknown username gets a fresh user row, a known one
// gets a token for the role already on record. New users always start as
// regular users; Promote is the only path to moderation rights, except for
// the one configured superadmin name that bootstraps the role chain.
type AuthService struct {
	userRepo   UserRepository
	issuer     *auth.Issuer
	superadmin string

	log *zap.Logger
}

func NewAuthService(userRepo UserRepository, issuer *auth.Issuer, superadmin string, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		issuer:     issuer,
		superadmin: superadmin,
		log:        log,
	}
}

// Token issues a capability token for the named user, creating the user on
// first sight. Callers cannot pick a role: an existing user keeps the role
// on record and a new one starts as a regular user.
func (s *AuthService) Token(ctx context.Context, username string) (string, *models.User, error) {
	user, err := s.userRepo.GetByName(ctx, username)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		role := models.RoleUser
		if s.superadmin != "" && username == s.superadmin {
			role = models.RoleSuperAdmin
		}
		user = &models.User{
			Name:     username,
			Role:     role,
			IsActive: true,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			s.log.Error("failed to create user",
				zap.Error(err),
				zap.String("username", username),
			)
			return "", nil, err
		}
		s.log.Info("user created",
			zap.String("user_id", user.ID.String()),
			zap.String("role", string(user.Role)),
		)
	default:
		return "", nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Promote changes a user's role. Only a superadmin may grant or revoke
// moderation rights.
func (s *AuthService) Promote(ctx context.Context, token auth.Capability, userID uuid.UUID, role models.Role) error {
	if token.Role != models.RoleSuperAdmin {
		return ErrPermissionDenied
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	s.log.Info("role changed",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)),
		zap.String("granted_by", token.UserID.String()),
	)
	return nil
}
