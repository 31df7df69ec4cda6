// Package clinicerr defines the error taxonomy shared by the domain layer and
// the boundary adapters. Every failure surfaced out of the core is one of these
// types so callers can branch with errors.As without string matching.
package clinicerr

import "fmt"

// ValidationError reports a required field that is missing or malformed input.
// It is raised before any storage call, so no partial state exists.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NewValidation builds a ValidationError for a single field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a lookup that matched nothing. Absence is a normal
// outcome for the flows that use it. ID is zero for non-id lookups, such as a
// missing import file.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for an entity lookup.
func NewNotFound(entity string, id int64) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// StorageError wraps a failed persistence operation with enough context to
// identify it. The wrapped driver error is reachable through Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorage wraps err as a StorageError for the named operation.
func NewStorage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// ImportError reports a failure inside the spreadsheet import boundary.
type ImportError struct {
	Path string
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s: %v", e.Path, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ExportError reports a failure inside the document export boundary.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
