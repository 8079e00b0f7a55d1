package postgres

import (
	"errors"
	"fmt"

	"go-inquiry-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// wrapStorageError tags every failure as ErrStorageUnavailable, and unique
// violations on quote_number additionally as ErrDuplicateQuoteNumber.
func wrapStorageError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && isQuoteNumberConstraint(pgErr) {
		return fmt.Errorf("%w: %w: %s: %w", domain.ErrStorageUnavailable, domain.ErrDuplicateQuoteNumber, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStorageUnavailable, op, err)
}

func isQuoteNumberConstraint(pgErr *pgconn.PgError) bool {
	return pgErr.ConstraintName == "" || pgErr.ConstraintName == "idx_quote_requests_quote_number" ||
		pgErr.ColumnName == "quote_number"
}
