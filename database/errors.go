package database

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// Error kinds. Callers match them with errors.Is.
var (
	ErrNotFound   = errors.New("record not found")
	ErrValidation = errors.New("validation failed")
	ErrConstraint = errors.New("constraint violation")
	ErrInternal   = errors.New("internal storage error")
)

// OpError describes a failed step of a composite repository operation.
type OpError struct {
	Op   string
	Step string
	Kind error
	Err  error
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Step, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v: %v", e.Op, e.Step, e.Kind, e.Err)
}

func (e *OpError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(op, step string, err error) *OpError {
	return &OpError{Op: op, Step: step, Kind: kindOf(err), Err: err}
}

// kindOf maps an error to one of the error kinds.
func kindOf(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrConstraint), isConstraint(err):
		return ErrConstraint
	default:
		return ErrInternal
	}
}

func isConstraint(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint
	}
	return false
}

// classify wraps a raw driver error so that its kind is matchable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if isConstraint(err) {
		return fmt.Errorf("%w: %w", ErrConstraint, err)
	}
	return err
}
