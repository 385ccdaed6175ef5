// Package primitives implements C1, the per-language primitive type table:
// a set of base identifiers considered primitive for a given language,
// consulted by the normaliser and the method analyser whenever a type must
// be classified as primitive or non-primitive (spec §3, §4.1).
package primitives

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/standardbeagle/stereotype/internal/types"
)

// Table answers IsPrimitive(baseIdentifier, language) by per-language set
// membership. void is primitive in every language; void* is deliberately
// NOT special-cased here — the void*-is-non-primitive-return distinction
// belongs to the method analyser (spec §4.1, §4.7), not the table.
type Table struct {
	byLanguage map[types.Language]map[string]struct{}
}

// defaultEntries mirrors the closed built-in primitive vocabulary of the
// three supported languages when no --primitives file overrides it.
var defaultEntries = map[types.Language][]string{
	types.CPP: {
		"void", "bool", "char", "char8_t", "char16_t", "char32_t", "wchar_t",
		"int", "short", "long", "long long", "unsigned", "unsigned int",
		"unsigned short", "unsigned long", "unsigned long long",
		"signed", "signed int", "float", "double", "long double", "size_t",
		"int8_t", "int16_t", "int32_t", "int64_t",
		"uint8_t", "uint16_t", "uint32_t", "uint64_t", "auto",
	},
	types.CSharp: {
		"void", "bool", "byte", "sbyte", "char", "decimal", "double", "float",
		"int", "uint", "long", "ulong", "short", "ushort", "string", "object",
		"var", "Boolean", "Byte", "SByte", "Char", "Decimal", "Double",
		"Single", "Int16", "Int32", "Int64", "UInt16", "UInt32", "UInt64",
		"String", "Object", "Void",
	},
	types.Java: {
		"void", "boolean", "byte", "char", "short", "int", "long", "float",
		"double", "String", "Boolean", "Byte", "Character", "Short",
		"Integer", "Long", "Float", "Double", "Object", "var",
	},
}

// New builds a table seeded with the built-in defaults for all three
// languages. Loading a --primitives file (Load) replaces a language's set
// wholesale rather than merging, matching how a side file is meant to be
// authoritative for the languages it lists.
func New() *Table {
	t := &Table{byLanguage: make(map[types.Language]map[string]struct{})}
	for lang, names := range defaultEntries {
		t.byLanguage[lang] = toSet(names)
	}
	return t
}

func toSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Load reads a primitive type file: a plain-text file whose sections are
// introduced by a "[Language]" header line (e.g. "[C++]") followed by one
// base identifier per line, blank lines and "#"-prefixed comments ignored.
// A language absent from the file keeps its built-in defaults.
func Load(path string) (*Table, error) {
	t := New()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("stereotype: opening primitives file: %w", err)
	}
	defer f.Close()

	var current types.Language
	seen := map[types.Language]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			tag := strings.TrimSpace(line[1 : len(line)-1])
			current = types.ParseLanguage(tag)
			if !current.Known() {
				return nil, fmt.Errorf("stereotype: primitives file: unknown language section %q", tag)
			}
			if !seen[current] {
				// First time we see this language's section, replace the
				// built-in defaults rather than appending to them.
				t.byLanguage[current] = map[string]struct{}{}
				seen[current] = true
			}
			continue
		}
		if current == types.Unknown {
			return nil, fmt.Errorf("stereotype: primitives file: entry %q outside of a language section", line)
		}
		t.byLanguage[current][line] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stereotype: reading primitives file: %w", err)
	}

	return t, nil
}

// IsPrimitive reports whether base (already normalised — no generics, no
// pointer/reference sigils, no namespace qualifier) is primitive for lang.
// An unknown language always answers false: the caller treats the type as
// non-primitive, which is the conservative choice per spec §7's "unknown
// language" handling (the unit itself is skipped upstream, but analyses
// that still run over its methods must not crash on the empty table).
func (t *Table) IsPrimitive(base string, lang types.Language) bool {
	set, ok := t.byLanguage[lang]
	if !ok {
		return false
	}
	_, ok = set[base]
	return ok
}

// HasLanguage reports whether the table has any entries for lang — used by
// the driver to raise the fatal "primitive table missing a language" error
// of spec §7 before processing that language's units.
func (t *Table) HasLanguage(lang types.Language) bool {
	set, ok := t.byLanguage[lang]
	return ok && len(set) > 0
}
