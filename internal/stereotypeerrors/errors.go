// Package stereotypeerrors defines the typed error kinds of the
// classification engine's error model (spec §7): a malformed archive or a
// missing primitive table for a language are fatal, while an unknown
// language tag or an XPath query returning nothing are recoverable and
// merely narrow the result.
package stereotypeerrors

import (
	"fmt"
	"time"

	"github.com/standardbeagle/stereotype/internal/types"
)

// ErrorType classifies the fatal/non-fatal kinds of §7.
type ErrorType string

const (
	ErrorTypeMalformedArchive    ErrorType = "malformed_archive"
	ErrorTypeUnknownLanguage     ErrorType = "unknown_language"
	ErrorTypeMissingClassName    ErrorType = "missing_class_name"
	ErrorTypeXPathFailure        ErrorType = "xpath_failure"
	ErrorTypePrimitiveTable      ErrorType = "primitive_table_missing"
	ErrorTypeConfig              ErrorType = "config"
)

// ClassificationError carries context about where in the archive an error
// occurred: which unit, and which class XPath if the error is scoped to a
// single class.
type ClassificationError struct {
	Type        ErrorType
	Unit        types.UnitIndex
	ClassXPath  string
	Operation   string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewClassificationError creates an error rooted in the given operation.
// Callers narrow it further with WithUnit / WithClass / WithRecoverable.
func NewClassificationError(errType ErrorType, op string, err error) *ClassificationError {
	return &ClassificationError{
		Type:       errType,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ClassificationError) WithUnit(unit types.UnitIndex) *ClassificationError {
	e.Unit = unit
	return e
}

func (e *ClassificationError) WithClass(classXPath string) *ClassificationError {
	e.ClassXPath = classXPath
	return e
}

func (e *ClassificationError) WithRecoverable(recoverable bool) *ClassificationError {
	e.Recoverable = recoverable
	return e
}

func (e *ClassificationError) Error() string {
	if e.ClassXPath != "" {
		return fmt.Sprintf("%s %s failed for unit %d class %s: %v", e.Type, e.Operation, e.Unit, e.ClassXPath, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed for unit %d: %v", e.Type, e.Operation, e.Unit, e.Underlying)
}

func (e *ClassificationError) Unwrap() error {
	return e.Underlying
}

func (e *ClassificationError) IsRecoverable() bool {
	return e.Recoverable
}

// IsFatal reports whether the error kind is fatal per spec §7 — malformed
// archives and a missing primitive table always abort the run; everything
// else is a per-unit or per-class skip.
func (e *ClassificationError) IsFatal() bool {
	switch e.Type {
	case ErrorTypeMalformedArchive, ErrorTypePrimitiveTable:
		return true
	default:
		return false
	}
}

// NewConfigError wraps a configuration validation failure.
func NewConfigError(field string, err error) *ClassificationError {
	return NewClassificationError(ErrorTypeConfig, "config:"+field, err).WithRecoverable(false)
}
