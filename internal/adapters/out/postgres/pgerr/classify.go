// Package pgerr turns driver and gorm failures into the core's error kinds.
package pgerr

import (
	"context"
	"errors"
	"fmt"

	"cafe/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// Classify wraps err as an errs.StorageUnavailableError for operation op.
//
// Errors that already carry a core kind (not found, invalid input and the like) are
// returned unchanged, so repositories can classify every error they see. For
// PostgreSQL errors the SQLSTATE is added to the operation.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isCoreError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		op = fmt.Sprintf("%s [sqlstate %s]", op, pgErr.Code)
	case pgconn.Timeout(err), errors.Is(err, context.DeadlineExceeded):
		op += " [timeout]"
	case errors.Is(err, context.Canceled):
		op += " [canceled]"
	}

	return errs.NewStorageUnavailableErrorWithCause(op, err)
}

// SQLState returns the PostgreSQL error code carried by err, or "".
func SQLState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isCoreError(err error) bool {
	for _, kind := range []error{
		errs.ErrStorageUnavailable,
		errs.ErrObjectNotFound,
		errs.ErrInvalidInput,
		errs.ErrAllocationFailed,
		errs.ErrItemNotFound,
		errs.ErrForbidden,
		errs.ErrOrderClosed,
		errs.ErrLocked,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
