package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("record not found")

// ForeignKeyError is a referential-integrity rejection from the store.
// Value holds the offending key when the driver exposes it.
type ForeignKeyError struct {
	Table string
	Value string
}

func (e ForeignKeyError) Error() string {
	return fmt.Sprintf("foreign key violation on %s (%s)", e.Table, e.Value)
}

// CheckConstraintError is a check-constraint rejection from the store.
type CheckConstraintError struct {
	Err error
}

func (e CheckConstraintError) Error() string {
	return "check constraint violation: " + e.Err.Error()
}

func (e CheckConstraintError) Unwrap() error {
	return e.Err
}
