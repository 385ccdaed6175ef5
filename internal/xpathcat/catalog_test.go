package xpathcat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/stereotype/internal/types"
)

func TestGetKnownEntries(t *testing.T) {
	cat := New()

	tests := []struct {
		lang types.Language
		kind types.XPathKind
	}{
		{types.CPP, types.KindClassName},
		{types.CPP, types.KindMethod},
		{types.CSharp, types.KindProperty},
		{types.CSharp, types.KindPropertyMethod},
		{types.Java, types.KindParentName},
	}
	for _, tt := range tests {
		xpath, ok := cat.Get(tt.lang, tt.kind)
		assert.True(t, ok)
		assert.NotEmpty(t, xpath)
	}
}

func TestGetMissingKind(t *testing.T) {
	cat := New()
	_, ok := cat.Get(types.Java, types.KindProperty)
	assert.False(t, ok, "Java has no property accessor concept")
}

func TestGetUnknownLanguage(t *testing.T) {
	cat := New()
	_, ok := cat.Get(types.Unknown, types.KindClassName)
	assert.False(t, ok)
}
