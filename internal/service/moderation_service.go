//go:generate mockgen -source=moderation_service.go -destination=../mocks/moderation_service.go -package=mocks .

package service

import (
	"context"
	"errors"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/approval"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/auth"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/repository"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ServiceRepository interface {
	// Create a service row, tags and all
	Create(ctx context.Context, s *models.Service) error

	// Get a service with its versions attached
	GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error)

	// List services in creation order, filtered by status
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Service, error)

	// List everything a user owns, rejected entries included
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Service, error)

	// Flip status and reason, live fields untouched
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, reason string) error

	// Overwrite public fields and status in one statement
	ApplyGeneralInfo(ctx context.Context, id uuid.UUID, p *models.GeneralInfoPayload, status models.Status) error
}

type VersionRepository interface {
	// Create a version with its endpoint tree
	Create(ctx context.Context, v *models.Version) error

	// Get a version with endpoints attached
	GetByID(ctx context.Context, id uuid.UUID) (*models.Version, error)

	// Look a version up by its name within a service
	GetByName(ctx context.Context, serviceID uuid.UUID, versionName string) (*models.Version, error)

	// Flip status and reason, content untouched
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, reason string) error

	// Replace content and flip status together
	ApplyPayload(ctx context.Context, id uuid.UUID, p *models.VersionPayload, status models.Status) error
}

type PendingChangeRepository interface {
	// Stage a pending record; duplicate (target, kind) fails
	Create(ctx context.Context, p *models.PendingChange) error

	// Get a staged record by id
	GetByID(ctx context.Context, id uuid.UUID) (*models.PendingChange, error)

	// List staged records of one kind in insertion order
	ListByKind(ctx context.Context, kind models.ChangeKind) ([]*models.PendingChange, error)

	// Consume a staged record; already consumed fails
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role models.Role) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type TxManagerStub struct{}

func (TxManagerStub) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// ModerationService runs the pending-change pipeline: submissions stage a
// record plus a *_PENDING entity, decisions promote or reject it. Each
// decision happens inside one transaction against the latest persisted
// state, so two racing moderators cannot both land.
type ModerationService struct {
	serviceRepo ServiceRepository
	versionRepo VersionRepository
	pendingRepo PendingChangeRepository

	trManager TxManager

	log *zap.Logger
}

func NewModerationService(
	serviceRepo ServiceRepository,
	versionRepo VersionRepository,
	pendingRepo PendingChangeRepository,
	trManager TxManager,
	log *zap.Logger,
) *ModerationService {
	return &ModerationService{
		serviceRepo: serviceRepo,
		versionRepo: versionRepo,
		pendingRepo: pendingRepo,
		trManager:   trManager,
		log:         log,
	}
}

// SubmitNewService stages a brand-new service. The service rows are created
// immediately with status PENDING so the owner can see them; the public
// listing only ever shows LIVE. A name already taken by any service, live
// or staged, conflicts. Returns the pending record's id.
func (s *ModerationService) SubmitNewService(ctx context.Context, token auth.Capability, payload *models.ServicePayload) (uuid.UUID, error) {
	if err := validation.Service(payload); err != nil {
		return uuid.Nil, err
	}

	pendingID := uuid.New()
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		svc := &models.Service{
			ID:          uuid.New(),
			Name:        payload.Name,
			Description: payload.Description,
			OwnerID:     token.UserID,
			PayModel:    payload.PayModel,
			Icon:        payload.Icon,
			Tags:        payload.Tags,
			Status:      models.StatusPending,
			CreatedAt:   time.Now(),
		}
		if err := s.serviceRepo.Create(ctx, svc); err != nil {
			s.log.Error("failed to create service",
				zap.Error(err),
				zap.String("service_name", payload.Name),
			)
			return err
		}

		record := &models.PendingChange{
			ID:          pendingID,
			Kind:        models.KindNewService,
			ServiceID:   svc.ID,
			SubmitterID: token.UserID,
			CreatedAt:   time.Now(),
			NewService:  payload,
		}

		if payload.Version != nil {
			version := &models.Version{
				ID:                 uuid.New(),
				ServiceID:          svc.ID,
				VersionName:        payload.Version.VersionName,
				VersionDescription: payload.Version.VersionDescription,
				Docs:               payload.Version.Docs,
				NewlyCreated:       true,
				Status:             models.StatusPending,
				CreatedAt:          time.Now(),
			}
			for _, ep := range payload.Version.Endpoints {
				version.Endpoints = append(version.Endpoints, endpointFromPayload(ep))
			}
			if err := s.versionRepo.Create(ctx, version); err != nil {
				s.log.Error("failed to create initial version",
					zap.Error(err),
					zap.String("service_id", svc.ID.String()),
				)
				return err
			}
			record.VersionID = &version.ID
		}

		if err := s.pendingRepo.Create(ctx, record); err != nil {
			s.log.Error("failed to stage pending record",
				zap.Error(err),
				zap.String("service_id", svc.ID.String()),
			)
			return err
		}

		s.log.Info("new service submitted",
			zap.String("pending_id", pendingID.String()),
			zap.String("service_id", svc.ID.String()),
			zap.String("submitter_id", token.UserID.String()),
		)
		return nil
	})
	if txErr != nil {
		return uuid.Nil, translateSubmitErr(txErr)
	}

	return pendingID, nil
}

// SubmitNewVersion stages a new version of an existing service, or an
// update to one of its versions when the name already exists. At most one
// version change per service may be outstanding.
func (s *ModerationService) SubmitNewVersion(ctx context.Context, token auth.Capability, serviceID uuid.UUID, payload *models.VersionPayload) (uuid.UUID, error) {
	if err := validation.Version(payload); err != nil {
		return uuid.Nil, err
	}

	pendingID := uuid.New()
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		svc, err := s.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if err := s.requireOwner(token, svc); err != nil {
			return err
		}

		record := &models.PendingChange{
			ID:          pendingID,
			Kind:        models.KindNewVersion,
			ServiceID:   serviceID,
			SubmitterID: token.UserID,
			CreatedAt:   time.Now(),
			NewVersion:  payload,
		}

		existing, err := s.versionRepo.GetByName(ctx, serviceID, payload.VersionName)
		switch {
		case err == nil:
			// Staged update: the live content stays put, only the status
			// moves. The proposed content travels in the pending payload.
			next, stErr := approval.Resubmit(existing.Status)
			if stErr != nil {
				return ErrConflict
			}
			if upErr := s.versionRepo.UpdateStatus(ctx, existing.ID, next, ""); upErr != nil {
				return upErr
			}
			record.VersionID = &existing.ID
		case errors.Is(err, repository.ErrNotFound):
			version := &models.Version{
				ID:                 uuid.New(),
				ServiceID:          serviceID,
				VersionName:        payload.VersionName,
				VersionDescription: payload.VersionDescription,
				Docs:               payload.Docs,
				NewlyCreated:       true,
				Status:             models.StatusPending,
				CreatedAt:          time.Now(),
			}
			for _, ep := range payload.Endpoints {
				version.Endpoints = append(version.Endpoints, endpointFromPayload(ep))
			}
			if crErr := s.versionRepo.Create(ctx, version); crErr != nil {
				return crErr
			}
			record.VersionID = &version.ID
		default:
			return err
		}

		if err := s.pendingRepo.Create(ctx, record); err != nil {
			s.log.Error("failed to stage pending version",
				zap.Error(err),
				zap.String("service_id", serviceID.String()),
			)
			return err
		}

		s.log.Info("version submitted",
			zap.String("pending_id", pendingID.String()),
			zap.String("service_id", serviceID.String()),
			zap.String("version_name", payload.VersionName),
		)
		return nil
	})
	if txErr != nil {
		return uuid.Nil, translateSubmitErr(txErr)
	}

	return pendingID, nil
}

// SubmitGeneralInfo stages a replacement of a live service's public fields.
// The live snapshot is kept untouched for display and revert-on-reject.
func (s *ModerationService) SubmitGeneralInfo(ctx context.Context, token auth.Capability, serviceID uuid.UUID, payload *models.GeneralInfoPayload) (uuid.UUID, error) {
	if err := validation.GeneralInfo(payload); err != nil {
		return uuid.Nil, err
	}

	pendingID := uuid.New()
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		svc, err := s.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if err := s.requireOwner(token, svc); err != nil {
			return err
		}

		switch svc.Status {
		case models.StatusLive, models.StatusUpdateRejected:
		case models.StatusPending, models.StatusUpdatePending:
			return ErrConflict
		default:
			return ErrNotLive
		}

		if err := s.serviceRepo.UpdateStatus(ctx, serviceID, models.StatusUpdatePending, ""); err != nil {
			return err
		}

		record := &models.PendingChange{
			ID:          pendingID,
			Kind:        models.KindGeneralInfo,
			ServiceID:   serviceID,
			SubmitterID: token.UserID,
			CreatedAt:   time.Now(),
			GeneralInfo: payload,
		}
		if err := s.pendingRepo.Create(ctx, record); err != nil {
			s.log.Error("failed to stage general-info update",
				zap.Error(err),
				zap.String("service_id", serviceID.String()),
			)
			return err
		}

		s.log.Info("general-info update submitted",
			zap.String("pending_id", pendingID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return nil
	})
	if txErr != nil {
		return uuid.Nil, translateSubmitErr(txErr)
	}

	return pendingID, nil
}

// ListPendingServices returns staged new services in insertion order.
func (s *ModerationService) ListPendingServices(ctx context.Context) ([]*models.PendingChange, error) {
	return s.pendingRepo.ListByKind(ctx, models.KindNewService)
}

// ListPendingVersions returns staged version changes in insertion order.
func (s *ModerationService) ListPendingVersions(ctx context.Context) ([]*models.PendingChange, error) {
	return s.pendingRepo.ListByKind(ctx, models.KindNewVersion)
}

// ListPendingGeneralInfo returns staged general-info updates in insertion order.
func (s *ModerationService) ListPendingGeneralInfo(ctx context.Context) ([]*models.PendingChange, error) {
	return s.pendingRepo.ListByKind(ctx, models.KindGeneralInfo)
}

// Decide resolves a pending record. Approval copies the proposed payload
// into the live entity atomically with the status flip; rejection records
// the reason and leaves live fields alone. The consumed record is deleted
// inside the same transaction, so a racing second decision deletes zero
// rows and fails with ErrNotFound instead of double-applying. Returns the
// refreshed pending list for the record's kind; the refresh runs after the
// decision committed, so a refresh failure yields a nil list, not an error.
func (s *ModerationService) Decide(ctx context.Context, token auth.Capability, pendingID uuid.UUID, approve bool, reason string) ([]*models.PendingChange, error) {
	if !token.CanModerate() {
		return nil, ErrPermissionDenied
	}
	if err := validation.Reason(reason); err != nil {
		return nil, err
	}

	var kind models.ChangeKind
	txErr := s.trManager.Do(ctx, func(ctx context.Context) error {
		record, err := s.pendingRepo.GetByID(ctx, pendingID)
		if err != nil {
			return err
		}
		kind = record.Kind

		if err := s.apply(ctx, record, approve, reason); err != nil {
			return err
		}

		return s.pendingRepo.Delete(ctx, pendingID)
	})
	if txErr != nil {
		s.log.Warn("decision failed",
			zap.Error(txErr),
			zap.String("pending_id", pendingID.String()),
			zap.Bool("approve", approve),
		)
		if errors.Is(txErr, approval.ErrTerminalStatus) {
			return nil, ErrConflict
		}
		return nil, txErr
	}

	s.log.Info("pending change resolved",
		zap.String("pending_id", pendingID.String()),
		zap.String("kind", string(kind)),
		zap.Bool("approve", approve),
		zap.String("moderator_id", token.UserID.String()),
	)

	records, err := s.pendingRepo.ListByKind(ctx, kind)
	if err != nil {
		s.log.Warn("pending list refresh failed",
			zap.Error(err),
			zap.String("kind", string(kind)),
		)
		return nil, nil
	}

	return records, nil
}

func (s *ModerationService) apply(ctx context.Context, record *models.PendingChange, approve bool, reason string) error {
	// status_reason holds the rejection justification; approved entities
	// carry none.
	if approve {
		reason = ""
	}

	switch record.Kind {
	case models.KindNewService:
		svc, err := s.serviceRepo.GetByID(ctx, record.ServiceID)
		if err != nil {
			return err
		}
		next, err := approval.Next(svc.Status, approve)
		if err != nil {
			return err
		}
		if err := s.serviceRepo.UpdateStatus(ctx, svc.ID, next, reason); err != nil {
			return err
		}
		if record.VersionID != nil {
			return s.versionRepo.UpdateStatus(ctx, *record.VersionID, next, reason)
		}
		return nil

	case models.KindNewVersion:
		if record.VersionID == nil {
			return repository.ErrNotFound
		}
		version, err := s.versionRepo.GetByID(ctx, *record.VersionID)
		if err != nil {
			return err
		}
		next, err := approval.Next(version.Status, approve)
		if err != nil {
			return err
		}
		if approve && version.Status == models.StatusUpdatePending {
			// Staged update to an existing version: promote the proposed
			// content over the old snapshot.
			return s.versionRepo.ApplyPayload(ctx, version.ID, record.NewVersion, next)
		}
		return s.versionRepo.UpdateStatus(ctx, version.ID, next, reason)

	case models.KindGeneralInfo:
		svc, err := s.serviceRepo.GetByID(ctx, record.ServiceID)
		if err != nil {
			return err
		}
		next, err := approval.Next(svc.Status, approve)
		if err != nil {
			return err
		}
		if approve {
			return s.serviceRepo.ApplyGeneralInfo(ctx, svc.ID, record.GeneralInfo, next)
		}
		return s.serviceRepo.UpdateStatus(ctx, svc.ID, next, reason)

	default:
		return repository.ErrNotFound
	}
}

func (s *ModerationService) requireOwner(token auth.Capability, svc *models.Service) error {
	if token.UserID == svc.OwnerID || token.CanModerate() {
		return nil
	}
	return ErrPermissionDenied
}

func translateSubmitErr(err error) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return ErrConflict
	}
	return err
}

func endpointFromPayload(p *models.EndpointPayload) *models.Endpoint {
	ep := &models.Endpoint{
		Method:          p.Method,
		Link:            p.Link,
		MainDescription: p.MainDescription,
		Tab:             p.Tab,
	}
	for _, param := range p.Parameters {
		ep.Parameters = append(ep.Parameters, &models.EndpointParameter{
			Name:      param.Name,
			Type:      param.Type,
			ValueType: param.ValueType,
			Required:  param.Required,
			Example:   param.Example,
		})
	}
	for _, resp := range p.Responses {
		ep.Responses = append(ep.Responses, &models.EndpointResponse{
			Code:        resp.Code,
			Description: resp.Description,
			Example:     resp.Example,
			Conditions:  resp.Conditions,
		})
	}
	return ep
}
