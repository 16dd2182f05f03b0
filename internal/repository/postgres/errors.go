package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baharkarakas/blogpost-backend/internal/apperr"
)

// mapErr translates pgx errors into the shared taxonomy: no rows becomes
// ErrNotFound, unique violations become ErrValidation, anything else is
// treated as the store being unreachable.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: duplicate value", apperr.ErrValidation)
	}
	return fmt.Errorf("%w: %v", apperr.ErrStoreUnavailable, err)
}
