package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		tag  string
		want Language
	}{
		{"C++", CPP},
		{"C#", CSharp},
		{"Java", Java},
		{"Python", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLanguage(tt.tag))
	}
}

func TestLanguageKnown(t *testing.T) {
	assert.True(t, CPP.Known())
	assert.True(t, CSharp.Known())
	assert.True(t, Java.Known())
	assert.False(t, Unknown.Known())
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "C++", CPP.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestUnsupportedLanguageError(t *testing.T) {
	err := &UnsupportedLanguageError{Language: Java}
	assert.Contains(t, err.Error(), "Java")
}
