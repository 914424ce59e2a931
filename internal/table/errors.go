package table

import (
	"errors"
	"fmt"
)

var (
	// ErrTableNotFound means the document has no table with the requested id,
	// usually because the site markup changed.
	ErrTableNotFound = errors.New("table not found")

	// ErrSchemaMismatch means a table's header row differs from the first
	// table merged into the same record set.
	ErrSchemaMismatch = errors.New("table schema mismatch")

	// ErrColumnNotFound means a column the assembler depends on is missing.
	ErrColumnNotFound = errors.New("column not found")
)

// NotFoundError names the table that could not be located.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("table %q not found in document or its comments", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}
