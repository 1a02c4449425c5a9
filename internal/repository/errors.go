package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicate           = errors.New("duplicate record")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrInvalidID           = errors.New("invalid id")
	ErrTxAborted           = errors.New("transaction aborted")
)

// wrapDBError maps driver errors onto the repository sentinels so the
// service layer never has to import pgx.
func wrapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicate
		case "23503":
			return ErrForeignKeyViolation
		case "22P02":
			return ErrInvalidID
		case "25P02":
			return ErrTxAborted
		}
	}

	return err
}

// IsRetryable reports whether another attempt at the failed call could
// succeed. Lookup misses, constraint violations and aborted transactions
// stay failed no matter how often they are replayed, so the retrier must
// give up on them immediately.
func IsRetryable(err error) bool {
	switch err = wrapDBError(err); {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrForeignKeyViolation),
		errors.Is(err, ErrTxAborted):
		return false
	}

	return true
}
