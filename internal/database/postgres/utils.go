package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/CaseDrop_Go/internal/domain"
)

// isBusy reports whether err is a lock wait that gave up rather than a real failure.
func isBusy(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case PgErrorCodeLockNotAvailable, PgErrorCodeDeadlockDetected,
		PgErrorCodeSerializationFailure, PgErrorCodeQueryCanceled:
		return true
	}
	return false
}

// wrapErr annotates err with msg and maps lock wait failures to domain.ErrBusy.
func wrapErr(msg string, err error) error {
	if isBusy(err) {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrBusy, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// notFound maps pgx.ErrNoRows to sentinel and wraps everything else.
func notFound(msg string, err error, sentinel error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel
	}
	return wrapErr(msg, err)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
