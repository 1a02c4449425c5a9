//go:generate mockgen -source=catalog_service.go -destination=../mocks/catalog_service.go -package=mocks .

package service

import (
	"context"
	"errors"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	// Create a review; one per reviewer per service
	Create(ctx context.Context, review *models.Review) error

	// Get a review with its reply attached
	GetByID(ctx context.Context, rid uuid.UUID) (*models.Review, error)

	// List a service's reviews in creation order
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*models.Review, error)

	// Replace comment and polarity, marking the review edited
	UpdateComment(ctx context.Context, rid uuid.UUID, comment string, reviewType models.ReviewType) error

	// Bump one vote counter
	Vote(ctx context.Context, rid uuid.UUID, up bool) error

	// Fill the single reply slot; a second reply fails
	CreateReply(ctx context.Context, reply *models.Reply) error
}

// CatalogService serves the public, read-mostly side of the marketplace:
// browsing live services and the review thread under each one.
type CatalogService struct {
	serviceRepo ServiceRepository
	versionRepo VersionRepository
	reviewRepo  ReviewRepository

	trManager TxManager

	log *zap.Logger
}

func NewCatalogService(
	serviceRepo ServiceRepository,
	versionRepo VersionRepository,
	reviewRepo ReviewRepository,
	trManager TxManager,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		serviceRepo: serviceRepo,
		versionRepo: versionRepo,
		reviewRepo:  reviewRepo,
		trManager:   trManager,
		log:         log,
	}
}

// GetService returns a service with its versions. Owners and moderators
// can see any status; everyone else only sees LIVE.
func (s *CatalogService) GetService(ctx context.Context, token auth.Capability, id uuid.UUID) (*models.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if svc.Status != models.StatusLive && svc.OwnerID != token.UserID && !token.CanModerate() {
		return nil, ErrNotFound
	}

	return svc, nil
}

// GetVersion returns one version with its full endpoint tree.
func (s *CatalogService) GetVersion(ctx context.Context, serviceID uuid.UUID, versionName string) (*models.Version, error) {
	return s.versionRepo.GetByName(ctx, serviceID, versionName)
}

// ListLive returns the public catalog.
func (s *CatalogService) ListLive(ctx context.Context) ([]*models.Service, error) {
	return s.serviceRepo.ListByStatus(ctx, models.StatusLive)
}

// ListMine returns everything the caller owns, rejected entries and their
// reasons included.
func (s *CatalogService) ListMine(ctx context.Context, token auth.Capability) ([]*models.Service, error) {
	return s.serviceRepo.ListByOwner(ctx, token.UserID)
}

// AddReview attaches a review to a live service.
func (s *CatalogService) AddReview(ctx context.Context, token auth.Capability, serviceID uuid.UUID, comment string, reviewType models.ReviewType) (*models.Review, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.Status != models.StatusLive {
		return nil, ErrNotLive
	}

	review := &models.Review{
		RID:        uuid.New(),
		ServiceID:  serviceID,
		ReviewerID: token.UserID,
		Comment:    comment,
		Type:       reviewType,
		CreatedAt:  time.Now(),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		s.log.Error("failed to create review",
			zap.Error(err),
			zap.String("service_id", serviceID.String()),
			zap.String("reviewer_id", token.UserID.String()),
		)
		return nil, err
	}

	return review, nil
}

// EditReview lets the author rewrite their review; the edited flag sticks.
func (s *CatalogService) EditReview(ctx context.Context, token auth.Capability, rid uuid.UUID, comment string, reviewType models.ReviewType) (*models.Review, error) {
	review := &models.Review{}
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		var err error
		review, err = s.reviewRepo.GetByID(ctx, rid)
		if err != nil {
			return err
		}
		if review.ReviewerID != token.UserID {
			return ErrPermissionDenied
		}

		if err := s.reviewRepo.UpdateComment(ctx, rid, comment, reviewType); err != nil {
			return err
		}

		review.Comment = comment
		review.Type = reviewType
		review.Edited = true
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return review, nil
}

// ReplyToReview fills the review's single reply slot. Only the service
// owner may reply, and only once.
func (s *CatalogService) ReplyToReview(ctx context.Context, token auth.Capability, rid uuid.UUID, comment string) (*models.Reply, error) {
	reply := &models.Reply{}
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		review, err := s.reviewRepo.GetByID(ctx, rid)
		if err != nil {
			return err
		}

		svc, err := s.serviceRepo.GetByID(ctx, review.ServiceID)
		if err != nil {
			return err
		}
		if svc.OwnerID != token.UserID {
			return ErrPermissionDenied
		}
		if review.Reply != nil {
			return ErrConflict
		}

		reply.ReviewID = rid
		reply.OwnerID = token.UserID
		reply.Comment = comment
		reply.CreatedAt = time.Now()

		if err := s.reviewRepo.CreateReply(ctx, reply); err != nil {
			if errors.Is(err, ErrDuplicate) {
				return ErrConflict
			}
			return err
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("review reply added",
		zap.String("rid", rid.String()),
		zap.String("owner_id", token.UserID.String()),
	)
	return reply, nil
}

// VoteReview bumps the review's upvote or downvote counter.
func (s *CatalogService) VoteReview(ctx context.Context, rid uuid.UUID, up bool) error {
	return s.reviewRepo.Vote(ctx, rid, up)
}

// ListReviews returns a service's reviews in creation order.
func (s *CatalogService) ListReviews(ctx context.Context, serviceID uuid.UUID) ([]*models.Review, error) {
	return s.reviewRepo.ListByService(ctx, serviceID)
}
