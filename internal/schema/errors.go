package schema

import (
	"errors"
	"fmt"
)

var (
	ErrUndeclaredEntity    = errors.New("reference to undeclared entity")
	ErrUndeclaredField     = errors.New("reference to undeclared field")
	ErrDuplicateEntity     = errors.New("entity already declared")
	ErrDependencyCycle     = errors.New("circular dependency")
	ErrConstraintViolation = errors.New("constraint violation")
)

// ConstraintError describes a single value rejected by a column constraint.
type ConstraintError struct {
	Table  string
	Column string
	Value  interface{}
	Reason string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s.%s: %s (value: %v)", e.Table, e.Column, e.Reason, e.Value)
}

func (e *ConstraintError) Unwrap() error {
	return ErrConstraintViolation
}
