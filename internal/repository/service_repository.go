package repository

import (
	"context"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceRepository struct {
	db      *pgxpool.Pool
	getter  *trmpgx.CtxGetter
	psql    sq.StatementBuilderType
	retrier retry.Retrier
}

func NewServiceRepository(db *pgxpool.Pool, c *trmpgx.CtxGetter, r retry.Retrier) *ServiceRepository {
	return &ServiceRepository{
		db:      db,
		getter:  c,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		retrier: r,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	query := r.psql.Insert("services").
		Columns("id", "name", "description", "owner_id", "pay_model", "icon", "tags", "status", "status_reason", "created_at").
		Values(s.ID, s.Name, s.Description, s.OwnerID, s.PayModel, s.Icon, s.Tags, s.Status, s.StatusReason, s.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)

	err = r.retrier.Do(ctx, func() error {
		_, retryErr := conn.Exec(ctx, sql, args...)
		return retryErr
	})

	return wrapDBError(err)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	query := r.psql.Select(
		"id", "name", "description", "owner_id", "pay_model",
		"icon", "tags", "status", "status_reason", "created_at",
	).From("services").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	s := &models.Service{}

	err = r.retrier.Do(ctx, func() error {
		return conn.QueryRow(ctx, sql, args...).Scan(
			&s.ID, &s.Name, &s.Description, &s.OwnerID, &s.PayModel,
			&s.Icon, &s.Tags, &s.Status, &s.StatusReason, &s.CreatedAt,
		)
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	versions, err := r.getVersionsByService(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Versions = versions

	return s, nil
}

// ListByStatus returns services in creation order, versions not attached.
func (r *ServiceRepository) ListByStatus(ctx context.Context, status models.Status) ([]*models.Service, error) {
	return r.listBy(ctx, sq.Eq{"status": status})
}

func (r *ServiceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Service, error) {
	return r.listBy(ctx, sq.Eq{"owner_id": ownerID})
}

func (r *ServiceRepository) listBy(ctx context.Context, where sq.Eq) ([]*models.Service, error) {
	query := r.psql.Select(
		"id", "name", "description", "owner_id", "pay_model",
		"icon", "tags", "status", "status_reason", "created_at",
	).From("services").
		Where(where).
		OrderBy("created_at", "id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	services := make([]*models.Service, 0)

	err = r.retrier.Do(ctx, func() error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		s := &models.Service{}
		for rows.Next() {
			if err := rows.Scan(
				&s.ID, &s.Name, &s.Description, &s.OwnerID, &s.PayModel,
				&s.Icon, &s.Tags, &s.Status, &s.StatusReason, &s.CreatedAt,
			); err != nil {
				return err
			}
			services = append(services, s)
			s = &models.Service{}
		}

		return rows.Err()
	})

	return services, wrapDBError(err)
}

// UpdateStatus flips only the moderation status and its reason. Live
// fields stay untouched, which is what a rejection relies on.
func (r *ServiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, reason string) error {
	query := r.psql.Update("services").
		Set("status", status).
		Set("status_reason", reason).
		Where(sq.Eq{"id": id})

	return r.execAffectingOne(ctx, query)
}

// ApplyGeneralInfo overwrites the service's public fields and flips the
// status in the same statement, so a partially applied approval is never
// observable.
func (r *ServiceRepository) ApplyGeneralInfo(ctx context.Context, id uuid.UUID, p *models.GeneralInfoPayload, status models.Status) error {
	query := r.psql.Update("services").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("pay_model", p.PayModel).
		Set("icon", p.Icon).
		Set("tags", p.Tags).
		Set("status", status).
		Set("status_reason", "").
		Where(sq.Eq{"id": id})

	return r.execAffectingOne(ctx, query)
}

func (r *ServiceRepository) execAffectingOne(ctx context.Context, query sq.UpdateBuilder) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)

	err = r.retrier.Do(ctx, func() error {
		tag, retryErr := conn.Exec(ctx, sql, args...)
		if retryErr != nil {
			return retryErr
		}
		if tag.RowsAffected() == 0 {
			return ErrNotFound
		}
		return nil
	})

	return wrapDBError(err)
}

func (r *ServiceRepository) getVersionsByService(ctx context.Context, serviceID uuid.UUID) ([]*models.Version, error) {
	query := r.psql.Select(
		"id", "service_id", "version_name", "version_description",
		"docs", "newly_created", "status", "status_reason", "created_at",
	).From("versions").
		Where(sq.Eq{"service_id": serviceID}).
		OrderBy("created_at", "id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	versions := make([]*models.Version, 0)

	err = r.retrier.Do(ctx, func() error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		v := &models.Version{}
		for rows.Next() {
			if err := rows.Scan(
				&v.ID, &v.ServiceID, &v.VersionName, &v.VersionDescription,
				&v.Docs, &v.NewlyCreated, &v.Status, &v.StatusReason, &v.CreatedAt,
			); err != nil {
				return err
			}
			versions = append(versions, v)
			v = &models.Version{}
		}

		return rows.Err()
	})

	return versions, wrapDBError(err)
}
