package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgExclusionViolation  = "23P01"
)

func pgCode(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// FromPostgres turns constraint violations raised by the database into the
// domain taxonomy. Anything else becomes a RemoteError for operation.
func FromPostgres(operation string, err error) error {
	if err == nil {
		return nil
	}
	if pgErr, ok := pgCode(err); ok {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			field := pgErr.ColumnName
			if field == "" {
				field = pgErr.ConstraintName
			}
			return Validation(field, "references a missing row")
		case pgUniqueViolation, pgExclusionViolation:
			return ErrBusiness(CodeConflict)
		}
	}
	return Remote(operation, err)
}
