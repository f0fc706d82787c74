package core

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNoSecret is returned when signing is attempted without a secret key.
	ErrNoSecret = errors.New("no secret key configured")
)

// ConfigError reports an invalid static configuration: a classification
// registry whose field sets overlap, or a malformed order schema. It is
// fatal at startup and never recoverable at runtime.
type ConfigError struct {
	// Exchange identifies the registry or schema owner.
	Exchange string `json:"exchange"`
	// Reason describes the configuration defect.
	Reason string `json:"reason"`
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("[%s] invalid configuration: %s", e.Exchange, e.Reason)
}

// NewConfigError creates a ConfigError with a formatted reason.
func NewConfigError(exchange, format string, args ...any) *ConfigError {
	return &ConfigError{Exchange: exchange, Reason: fmt.Sprintf(format, args...)}
}

// ConversionError reports a classified column value that could not be
// parsed as its declared kind. It identifies the column, row, and
// offending value so the registry drift can be located without re-running
// the pipeline.
type ConversionError struct {
	// Exchange identifies which registry classified the column.
	Exchange string `json:"exchange"`
	// Column is the column whose value failed to convert.
	Column string `json:"column"`
	// Row is the zero-based row index of the offending value.
	Row int `json:"row"`
	// Value is the raw value rendered as text.
	Value string `json:"value"`
	// Want names the declared kind the value failed to satisfy.
	Want string `json:"want"`
}

// Error implements the error interface for ConversionError.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("[%s] column %q row %d: cannot convert %q to %s",
		e.Exchange, e.Column, e.Row, e.Value, e.Want)
}

// UnknownFieldError reports order columns that do not appear in the
// exchange's accepted field set.
type UnknownFieldError struct {
	// Exchange identifies the schema that rejected the fields.
	Exchange string `json:"exchange"`
	// Fields lists every offending column name.
	Fields []string `json:"fields"`
}

// Error implements the error interface for UnknownFieldError.
func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("[%s] unknown order fields: %s", e.Exchange, strings.Join(e.Fields, ", "))
}

// MissingFieldError reports required schema fields absent from an order table.
type MissingFieldError struct {
	// Exchange identifies the schema whose required fields are missing.
	Exchange string `json:"exchange"`
	// Fields lists every missing required field.
	Fields []string `json:"fields"`
}

// Error implements the error interface for MissingFieldError.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("[%s] missing required order fields: %s", e.Exchange, strings.Join(e.Fields, ", "))
}

// Violation describes a single cell that failed a schema constraint.
type Violation struct {
	// Row is the zero-based row index of the failing order.
	Row int `json:"row"`
	// Field is the schema field whose constraint was violated.
	Field string `json:"field"`
	// Constraint describes the violated rule (type, range, allowed set, nullability).
	Constraint string `json:"constraint"`
	// Value is the offending value rendered as text.
	Value string `json:"value"`
}

// String renders the violation for inclusion in error messages.
func (v Violation) String() string {
	return fmt.Sprintf("row %d field %q: %s (got %q)", v.Row, v.Field, v.Constraint, v.Value)
}

// ConstraintError aggregates every cell-level constraint violation found
// in a single validation pass, so callers can fix all defects at once
// instead of resubmitting iteratively.
type ConstraintError struct {
	// Exchange identifies the schema that produced the violations.
	Exchange string `json:"exchange"`
	// Violations lists every failing cell in row order.
	Violations []Violation `json:"violations"`
}

// Error implements the error interface for ConstraintError.
func (e *ConstraintError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("[%s] %d constraint violation(s): %s",
		e.Exchange, len(e.Violations), strings.Join(parts, "; "))
}

// IsValidationError reports whether the error is one of the order
// validation failures: unknown fields, missing fields, or constraint
// violations. Validation failures surface before any network transmission.
func IsValidationError(err error) bool {
	var unknown *UnknownFieldError
	var missing *MissingFieldError
	var constraint *ConstraintError
	return errors.As(err, &unknown) || errors.As(err, &missing) || errors.As(err, &constraint)
}

// IsConfigError reports whether the error is a fatal configuration defect.
func IsConfigError(err error) bool {
	var cfg *ConfigError
	return errors.As(err, &cfg)
}
