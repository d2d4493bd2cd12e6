package postgres

import (
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"todoboard/internal/core/domain"
)

const (
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// Detail reads like: Key (user_id)=(42) is not present in table "users".
var detailValuePattern = regexp.MustCompile(`=\((\d+)\)`)

// TranslateError maps driver errors onto the domain error taxonomy so
// handlers never see pgconn types.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			return domain.ForeignKeyError{
				Table: pgErr.TableName,
				Value: extractDetailValue(pgErr.Detail),
			}
		case checkViolation:
			return domain.CheckConstraintError{Err: err}
		}
	}

	return err
}

func extractDetailValue(detail string) string {
	match := detailValuePattern.FindStringSubmatch(detail)

	if len(match) < 2 {
		return ""
	}

	return match[1]
}
