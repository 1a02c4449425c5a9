package repository

import (
	"context"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VersionRepository struct {
	db      *pgxpool.Pool
	getter  *trmpgx.CtxGetter
	psql    sq.StatementBuilderType
	retrier retry.Retrier
}

func NewVersionRepository(db *pgxpool.Pool, c *trmpgx.CtxGetter, r retry.Retrier) *VersionRepository {
	return &VersionRepository{
		db:      db,
		getter:  c,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		retrier: r,
	}
}

// Create inserts a version together with its endpoints, parameters and
// responses. Endpoint ordering is preserved through the position column.
func (r *VersionRepository) Create(ctx context.Context, v *models.Version) error {
	query := r.psql.Insert("versions").
		Columns("id", "service_id", "version_name", "version_description",
			"docs", "newly_created", "status", "status_reason", "created_at").
		Values(v.ID, v.ServiceID, v.VersionName, v.VersionDescription,
			v.Docs, v.NewlyCreated, v.Status, v.StatusReason, v.CreatedAt)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)

	err = r.retrier.Do(ctx, func() error {
		if _, retryErr := conn.Exec(ctx, sql, args...); retryErr != nil {
			return retryErr
		}
		return r.insertEndpoints(ctx, conn, v.ID, v.Endpoints)
	})

	return wrapDBError(err)
}

func (r *VersionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Version, error) {
	query := r.psql.Select(
		"id", "service_id", "version_name", "version_description",
		"docs", "newly_created", "status", "status_reason", "created_at",
	).From("versions").
		Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	v := &models.Version{}

	err = r.retrier.Do(ctx, func() error {
		if scanErr := conn.QueryRow(ctx, sql, args...).Scan(
			&v.ID, &v.ServiceID, &v.VersionName, &v.VersionDescription,
			&v.Docs, &v.NewlyCreated, &v.Status, &v.StatusReason, &v.CreatedAt,
		); scanErr != nil {
			return scanErr
		}

		endpoints, epErr := r.getEndpoints(ctx, conn, v.ID)
		if epErr != nil {
			return epErr
		}
		v.Endpoints = endpoints
		return nil
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	return v, nil
}

func (r *VersionRepository) GetByName(ctx context.Context, serviceID uuid.UUID, versionName string) (*models.Version, error) {
	query := r.psql.Select("id").
		From("versions").
		Where(sq.Eq{"service_id": serviceID, "version_name": versionName})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	var id uuid.UUID

	err = r.retrier.Do(ctx, func() error {
		return conn.QueryRow(ctx, sql, args...).Scan(&id)
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	return r.GetByID(ctx, id)
}

// UpdateStatus flips only the moderation status and its reason.
func (r *VersionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.Status, reason string) error {
	query := r.psql.Update("versions").
		Set("status", status).
		Set("status_reason", reason).
		Where(sq.Eq{"id": id})

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

// ApplyPayload replaces a version's content and flips the status in one
// transaction-scoped sequence: update the row, drop the old endpoint tree
// (cascade), re-insert the proposed one.
func (r *VersionRepository) ApplyPayload(ctx context.Context, id uuid.UUID, p *models.VersionPayload, status models.Status) error {
	query := r.psql.Update("versions").
		Set("version_name", p.VersionName).
		Set("version_description", p.VersionDescription).
		Set("docs", p.Docs).
		Set("newly_created", false).
		Set("status", status).
		Set("status_reason", "").
		Where(sq.Eq{"id": id})

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

		delSQL, delArgs, delErr := r.psql.
			Delete("endpoints").
			Where(sq.Eq{"version_id": id}).
			ToSql()
		if delErr != nil {
			return delErr
		}
		if _, delErr = conn.Exec(ctx, delSQL, delArgs...); delErr != nil {
			return delErr
		}

		endpoints := make([]*models.Endpoint, len(p.Endpoints))
		for i, ep := range p.Endpoints {
			endpoints[i] = endpointFromPayload(ep)
		}
		return r.insertEndpoints(ctx, conn, id, endpoints)
	})

	return wrapDBError(err)
}

func (r *VersionRepository) insertEndpoints(ctx context.Context, conn trmpgx.Tr, versionID uuid.UUID, endpoints []*models.Endpoint) error {
	if len(endpoints) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for pos, ep := range endpoints {
		if ep.ID == uuid.Nil {
			ep.ID = uuid.New()
		}

		sql, args, err := r.psql.
			Insert("endpoints").
			Columns("id", "version_id", "method", "link", "main_description", "tab", "position").
			Values(ep.ID, versionID, ep.Method, ep.Link, ep.MainDescription, ep.Tab, pos).
			ToSql()
		if err != nil {
			return err
		}
		batch.Queue(sql, args...)

		for i, param := range ep.Parameters {
			sql, args, err = r.psql.
				Insert("endpoint_parameters").
				Columns("id", "endpoint_id", "name", "type", "value_type", "required", "example", "position").
				Values(uuid.New(), ep.ID, param.Name, param.Type, param.ValueType, param.Required, param.Example, i).
				ToSql()
			if err != nil {
				return err
			}
			batch.Queue(sql, args...)
		}

		for i, resp := range ep.Responses {
			sql, args, err = r.psql.
				Insert("endpoint_responses").
				Columns("id", "endpoint_id", "code", "description", "example", "conditions", "position").
				Values(uuid.New(), ep.ID, resp.Code, resp.Description, resp.Example, resp.Conditions, i).
				ToSql()
			if err != nil {
				return err
			}
			batch.Queue(sql, args...)
		}
	}

	br := conn.SendBatch(ctx, batch)
	return br.Close()
}

func (r *VersionRepository) getEndpoints(ctx context.Context, conn trmpgx.Tr, versionID uuid.UUID) ([]*models.Endpoint, error) {
	sql, args, err := r.psql.Select(
		"id", "method", "link", "main_description", "tab",
	).From("endpoints").
		Where(sq.Eq{"version_id": versionID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	endpoints := make([]*models.Endpoint, 0)
	ep := &models.Endpoint{}
	for rows.Next() {
		if err := rows.Scan(&ep.ID, &ep.Method, &ep.Link, &ep.MainDescription, &ep.Tab); err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
		ep = &models.Endpoint{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, ep := range endpoints {
		if ep.Parameters, err = r.getParameters(ctx, conn, ep.ID); err != nil {
			return nil, err
		}
		if ep.Responses, err = r.getResponses(ctx, conn, ep.ID); err != nil {
			return nil, err
		}
	}

	return endpoints, nil
}

func (r *VersionRepository) getParameters(ctx context.Context, conn trmpgx.Tr, endpointID uuid.UUID) ([]*models.EndpointParameter, error) {
	sql, args, err := r.psql.Select(
		"id", "name", "type", "value_type", "required", "example",
	).From("endpoint_parameters").
		Where(sq.Eq{"endpoint_id": endpointID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	params := make([]*models.EndpointParameter, 0)
	p := &models.EndpointParameter{}
	for rows.Next() {
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.ValueType, &p.Required, &p.Example); err != nil {
			return nil, err
		}
		params = append(params, p)
		p = &models.EndpointParameter{}
	}

	return params, rows.Err()
}

func (r *VersionRepository) getResponses(ctx context.Context, conn trmpgx.Tr, endpointID uuid.UUID) ([]*models.EndpointResponse, error) {
	sql, args, err := r.psql.Select(
		"id", "code", "description", "example", "conditions",
	).From("endpoint_responses").
		Where(sq.Eq{"endpoint_id": endpointID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]*models.EndpointResponse, 0)
	resp := &models.EndpointResponse{}
	for rows.Next() {
		if err := rows.Scan(&resp.ID, &resp.Code, &resp.Description, &resp.Example, &resp.Conditions); err != nil {
			return nil, err
		}
		responses = append(responses, resp)
		resp = &models.EndpointResponse{}
	}

	return responses, rows.Err()
}

func endpointFromPayload(p *models.EndpointPayload) *models.Endpoint {
	ep := &models.Endpoint{
		ID:              uuid.New(),
		Method:          p.Method,
		Link:            p.Link,
		MainDescription: p.MainDescription,
		Tab:             p.Tab,
	}
	for _, param := range p.Parameters {
		ep.Parameters = append(ep.Parameters, &models.EndpointParameter{
			ID:        uuid.New(),
			Name:      param.Name,
			Type:      param.Type,
			ValueType: param.ValueType,
			Required:  param.Required,
			Example:   param.Example,
		})
	}
	for _, resp := range p.Responses {
		ep.Responses = append(ep.Responses, &models.EndpointResponse{
			ID:          uuid.New(),
			Code:        resp.Code,
			Description: resp.Description,
			Example:     resp.Example,
			Conditions:  resp.Conditions,
		})
	}
	return ep
}
