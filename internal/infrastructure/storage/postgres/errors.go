package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"storeboard/internal/core/apperror"
)

const uniqueViolation = "23505"

// wrapStoreErr maps driver failures to the error kinds the domain
// distinguishes. Unique violations become duplicates; everything else
// surfaces as a store-unavailable error wrapping the cause.
func wrapStoreErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperror.NewDuplicate("already exists").WithDetail("constraint", pgErr.ConstraintName)
	}
	return apperror.NewStoreUnavailable(fmt.Errorf("%s: %w", op, err))
}
