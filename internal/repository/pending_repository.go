package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pendingPayload is the jsonb envelope for the tagged variant. Exactly one
// member is set, matching the record's kind column.
type pendingPayload struct {
	NewService  *models.ServicePayload     `json:"new_service,omitempty"`
	NewVersion  *models.VersionPayload     `json:"new_version,omitempty"`
	GeneralInfo *models.GeneralInfoPayload `json:"general_info,omitempty"`
}

type PendingChangeRepository struct {
	db      *pgxpool.Pool
	getter  *trmpgx.CtxGetter
	psql    sq.StatementBuilderType
	retrier retry.Retrier
}

func NewPendingChangeRepository(db *pgxpool.Pool, c *trmpgx.CtxGetter, r retry.Retrier) *PendingChangeRepository {
	return &PendingChangeRepository{
		db:      db,
		getter:  c,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		retrier: r,
	}
}

// Create stages a pending change. A second outstanding change for the same
// (service, kind) pair trips the unique index and surfaces as ErrDuplicate.
func (r *PendingChangeRepository) Create(ctx context.Context, p *models.PendingChange) error {
	payload, err := json.Marshal(pendingPayload{
		NewService:  p.NewService,
		NewVersion:  p.NewVersion,
		GeneralInfo: p.GeneralInfo,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	query := r.psql.Insert("pending_changes").
		Columns("id", "kind", "service_id", "version_id", "submitter_id", "payload", "created_at").
		Values(p.ID, p.Kind, p.ServiceID, p.VersionID, p.SubmitterID, payload, p.CreatedAt)

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

func (r *PendingChangeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PendingChange, error) {
	query := r.selectQuery().Where(sq.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	p := &models.PendingChange{}

	err = r.retrier.Do(ctx, func() error {
		var raw []byte
		if scanErr := conn.QueryRow(ctx, sql, args...).Scan(
			&p.ID, &p.Kind, &p.ServiceID, &p.VersionID, &p.SubmitterID, &raw, &p.CreatedAt,
		); scanErr != nil {
			return scanErr
		}
		return unmarshalPayload(raw, p)
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	return p, nil
}

// ListByKind returns pending records in insertion order. It never mutates
// state and is safe to call concurrently with Delete.
func (r *PendingChangeRepository) ListByKind(ctx context.Context, kind models.ChangeKind) ([]*models.PendingChange, error) {
	query := r.selectQuery().
		Where(sq.Eq{"kind": kind}).
		OrderBy("created_at", "id")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	records := make([]*models.PendingChange, 0)

	err = r.retrier.Do(ctx, func() error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		p := &models.PendingChange{}
		for rows.Next() {
			var raw []byte
			if err := rows.Scan(
				&p.ID, &p.Kind, &p.ServiceID, &p.VersionID, &p.SubmitterID, &raw, &p.CreatedAt,
			); err != nil {
				return err
			}
			if err := unmarshalPayload(raw, p); err != nil {
				return err
			}
			records = append(records, p)
			p = &models.PendingChange{}
		}

		return rows.Err()
	})

	return records, wrapDBError(err)
}

// Delete consumes a pending record. Deleting a record that was already
// consumed reports ErrNotFound, which is what makes resolution at-most-once
// even when two moderators race.
func (r *PendingChangeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.psql.Delete("pending_changes").
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

func (r *PendingChangeRepository) selectQuery() sq.SelectBuilder {
	return r.psql.Select(
		"id", "kind", "service_id", "version_id", "submitter_id", "payload", "created_at",
	).From("pending_changes")
}

func unmarshalPayload(raw []byte, p *models.PendingChange) error {
	envelope := pendingPayload{}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}
	p.NewService = envelope.NewService
	p.NewVersion = envelope.NewVersion
	p.GeneralInfo = envelope.GeneralInfo
	return nil
}
