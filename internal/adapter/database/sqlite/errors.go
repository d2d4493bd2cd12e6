package sqlite

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"todoboard/internal/core/domain"
)

// TranslateError maps driver errors onto the domain error taxonomy. SQLite
// constraint errors carry no row detail, so callers fill in the offending
// value themselves.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var sqliteErr sqlite3.Error

	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return domain.ForeignKeyError{}
		case sqlite3.ErrConstraintCheck:
			return domain.CheckConstraintError{Err: err}
		}
	}

	return err
}
