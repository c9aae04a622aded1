package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agencydesk/agency_management_app/internal/apperrors"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx. Every
// repository runs against it, so the same repository code serves both direct
// pool access and calls bound to an atomic unit.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SQLSTATE codes the repositories care about.
const (
	pgUniqueViolation      = "23505"
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translatePgError maps driver errors onto the typed sentinels the services
// branch on. Unknown errors pass through unchanged.
func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.ErrTimeout
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.ErrDuplicate
		case pgLockNotAvailable:
			return apperrors.ErrTimeout
		case pgSerializationFailure, pgDeadlockDetected:
			return apperrors.ErrConcurrentModification
		}
	}
	return err
}
