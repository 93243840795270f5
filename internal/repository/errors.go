package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/roeev/docuchat/internal/entity"
)

const (
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNotNullViolation    = "23502"
)

// wrapWriteError maps constraint violations and store failures to the
// domain persistence error so callers match with errors.Is.
func wrapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s: referenced chat does not exist", entity.ErrPersistence, op)
		case pgCheckViolation, pgNotNullViolation:
			return fmt.Errorf("%w: %s: required field is empty", entity.ErrPersistence, op)
		}
	}

	return fmt.Errorf("%w: %s: %v", entity.ErrPersistence, op, err)
}
