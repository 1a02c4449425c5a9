package repository

import (
	"context"
	"time"

	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/models"
	"github.com/unsw-cse-comp99-3900/APIOverflow-sub000/internal/retry"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewRepository struct {
	db      *pgxpool.Pool
	getter  *trmpgx.CtxGetter
	psql    sq.StatementBuilderType
	retrier retry.Retrier
}

func NewReviewRepository(db *pgxpool.Pool, c *trmpgx.CtxGetter, r retry.Retrier) *ReviewRepository {
	return &ReviewRepository{
		db:      db,
		getter:  c,
		psql:    sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		retrier: r,
	}
}

// Create inserts a review. One review per reviewer per service; a second
// one trips the unique index and comes back as ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := r.psql.Insert("reviews").
		Columns("rid", "service_id", "reviewer_id", "comment", "type", "upvotes", "downvotes", "edited", "created_at").
		Values(review.RID, review.ServiceID, review.ReviewerID, review.Comment, review.Type,
			review.Upvotes, review.Downvotes, review.Edited, review.CreatedAt)

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

func (r *ReviewRepository) GetByID(ctx context.Context, rid uuid.UUID) (*models.Review, error) {
	query := r.selectQuery().Where(sq.Eq{"r.rid": rid})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	review := &models.Review{}

	err = r.retrier.Do(ctx, func() error {
		return scanReview(conn.QueryRow(ctx, sql, args...), review)
	})
	if err != nil {
		return nil, wrapDBError(err)
	}

	return review, nil
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*models.Review, error) {
	query := r.selectQuery().
		Where(sq.Eq{"r.service_id": serviceID}).
		OrderBy("r.created_at", "r.rid")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	conn := r.getter.DefaultTrOrDB(ctx, r.db)
	reviews := make([]*models.Review, 0)

	err = r.retrier.Do(ctx, func() error {
		rows, err := conn.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		review := &models.Review{}
		for rows.Next() {
			if err := scanReview(rows, review); err != nil {
				return err
			}
			reviews = append(reviews, review)
			review = &models.Review{}
		}

		return rows.Err()
	})

	return reviews, wrapDBError(err)
}

// UpdateComment edits a review's body and marks it edited.
func (r *ReviewRepository) UpdateComment(ctx context.Context, rid uuid.UUID, comment string, reviewType models.ReviewType) error {
	query := r.psql.Update("reviews").
		Set("comment", comment).
		Set("type", reviewType).
		Set("edited", true).
		Where(sq.Eq{"rid": rid})

	return r.execAffectingOne(ctx, query)
}

// Vote bumps one of the counters.
func (r *ReviewRepository) Vote(ctx context.Context, rid uuid.UUID, up bool) error {
	column := "downvotes"
	if up {
		column = "upvotes"
	}

	query := r.psql.Update("reviews").
		Set(column, sq.Expr(column+" + 1")).
		Where(sq.Eq{"rid": rid})

	return r.execAffectingOne(ctx, query)
}

// CreateReply fills the review's single reply slot. A second reply trips
// the primary key and comes back as ErrDuplicate.
func (r *ReviewRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	query := r.psql.Insert("review_replies").
		Columns("review_id", "owner_id", "comment", "created_at").
		Values(reply.ReviewID, reply.OwnerID, reply.Comment, reply.CreatedAt)

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

func (r *ReviewRepository) execAffectingOne(ctx context.Context, query sq.UpdateBuilder) error {
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

func (r *ReviewRepository) selectQuery() sq.SelectBuilder {
	return r.psql.Select(
		"r.rid", "r.service_id", "r.reviewer_id", "r.comment", "r.type",
		"r.upvotes", "r.downvotes", "r.edited", "r.created_at",
		"rr.owner_id", "rr.comment", "rr.created_at",
	).From("reviews r").
		LeftJoin("review_replies rr ON rr.review_id = r.rid")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner, review *models.Review) error {
	var replyOwner *uuid.UUID
	var replyComment *string
	var replyCreatedAt *time.Time

	if err := row.Scan(
		&review.RID, &review.ServiceID, &review.ReviewerID, &review.Comment, &review.Type,
		&review.Upvotes, &review.Downvotes, &review.Edited, &review.CreatedAt,
		&replyOwner, &replyComment, &replyCreatedAt,
	); err != nil {
		return err
	}

	if replyOwner != nil && replyComment != nil && replyCreatedAt != nil {
		review.Reply = &models.Reply{
			ReviewID:  review.RID,
			OwnerID:   *replyOwner,
			Comment:   *replyComment,
			CreatedAt: *replyCreatedAt,
		}
	}

	return nil
}
