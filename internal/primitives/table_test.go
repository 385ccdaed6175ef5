package primitives

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/stereotype/internal/types"
)

func TestDefaultTableKnownPrimitives(t *testing.T) {
	tab := New()
	assert.True(t, tab.IsPrimitive("int", types.CPP))
	assert.True(t, tab.IsPrimitive("bool", types.CPP))
	assert.True(t, tab.IsPrimitive("string", types.CSharp))
	assert.True(t, tab.IsPrimitive("boolean", types.Java))
	assert.False(t, tab.IsPrimitive("MyClass", types.CPP))
}

func TestIsPrimitiveUnknownLanguage(t *testing.T) {
	tab := New()
	assert.False(t, tab.IsPrimitive("int", types.Unknown))
}

func TestHasLanguage(t *testing.T) {
	tab := New()
	assert.True(t, tab.HasLanguage(types.CPP))
	assert.False(t, tab.HasLanguage(types.Unknown))
}

func TestLoadOverridesLanguageWholesale(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "primitives.txt")
	content := "# comment\n[C++]\nmyint\n\n[Java]\nmyprim\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tab, err := Load(path)
	require.NoError(t, err)

	assert.True(t, tab.IsPrimitive("myint", types.CPP))
	assert.False(t, tab.IsPrimitive("int", types.CPP), "loading a section replaces built-in defaults wholesale")
	assert.True(t, tab.IsPrimitive("myprim", types.Java))
	assert.True(t, tab.IsPrimitive("string", types.CSharp), "an untouched language keeps its built-in defaults")
}

func TestLoadRejectsEntryOutsideSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("orphan\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownLanguageSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("[Python]\nint\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
