package stereotypeerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/stereotype/internal/types"
)

func TestClassificationErrorFatality(t *testing.T) {
	tests := []struct {
		name  string
		typ   ErrorType
		fatal bool
	}{
		{"malformed archive is fatal", ErrorTypeMalformedArchive, true},
		{"missing primitive table is fatal", ErrorTypePrimitiveTable, true},
		{"unknown language is recoverable", ErrorTypeUnknownLanguage, false},
		{"xpath failure is recoverable", ErrorTypeXPathFailure, false},
		{"missing class name is recoverable", ErrorTypeMissingClassName, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewClassificationError(tt.typ, "op", errors.New("boom"))
			assert.Equal(t, tt.fatal, err.IsFatal())
		})
	}
}

func TestClassificationErrorBuilders(t *testing.T) {
	underlying := errors.New("boom")
	err := NewClassificationError(ErrorTypeXPathFailure, "locate-classes", underlying).
		WithUnit(3).
		WithClass("//src:class[1]").
		WithRecoverable(true)

	assert.Equal(t, types.UnitIndex(3), err.Unit)
	assert.Equal(t, "//src:class[1]", err.ClassXPath)
	assert.True(t, err.IsRecoverable())
	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "unit 3")
	assert.Contains(t, err.Error(), "//src:class[1]")
}

func TestClassificationErrorWithoutClassXPath(t *testing.T) {
	err := NewClassificationError(ErrorTypeUnknownLanguage, "detect-language", errors.New("boom")).WithUnit(1)
	assert.NotContains(t, err.Error(), "class")
}

func TestNewConfigError(t *testing.T) {
	err := NewConfigError("input", errors.New("required"))
	require.NotNil(t, err)
	assert.Equal(t, ErrorTypeConfig, err.Type)
	assert.False(t, err.IsFatal())
	assert.Equal(t, "config:input", err.Operation)
}
