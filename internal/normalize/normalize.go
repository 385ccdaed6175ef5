// Package normalize implements C3, the name/type normaliser: the small
// set of pure string functions the rest of the engine uses to turn raw
// srcML-style text into comparable identifiers (spec §4.3).
package normalize

import (
	"strings"

	"github.com/standardbeagle/stereotype/internal/types"
)

// Trim strips surrounding whitespace.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// RTrim strips trailing whitespace only.
func RTrim(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}

// separator returns the namespace/package separator for a language: "::"
// for C++, "." for C#/Java.
func separator(lang types.Language) string {
	if lang == types.CPP {
		return "::"
	}
	return "."
}

// RemoveNamespace drops everything up to and including the last namespace
// separator, preserving any generic argument list that follows the bare
// name. "std::vector<int>" -> "vector<int>"; "Foo.Bar" -> "Bar".
func RemoveNamespace(s string, lang types.Language) string {
	sep := separator(lang)
	generics := strings.IndexByte(s, '<')
	head := s
	tail := ""
	if generics >= 0 {
		head = s[:generics]
		tail = s[generics:]
	}
	if idx := strings.LastIndex(head, sep); idx >= 0 {
		head = head[idx+len(sep):]
	}
	return head + tail
}

// RemoveBetweenCommas strips the contents of a generic argument list while
// preserving the surrounding angle brackets: "Map<string, int>" ->
// "Map<>". Used to build the generics-stripped name form.
func RemoveBetweenCommas(s string) string {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return s
	}
	closeIdx := strings.LastIndexByte(s, '>')
	if closeIdx < open {
		return s
	}
	return s[:open+1] + s[closeIdx:]
}

// StripArraySuffix truncates a C++ declarator at its first '[', used when
// an attribute or parameter name carries an array suffix ("buf[16]" ->
// "buf"). No-op for C#/Java, whose array brackets live in the type, not
// the declarator name.
func StripArraySuffix(s string, lang types.Language) string {
	if lang != types.CPP {
		return s
	}
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		return RTrim(s[:idx])
	}
	return s
}

// BareName reduces a class name to the identifier used to recognise
// constructor/destructor and copy-constructor parameter types: namespace
// and generics stripped entirely (no preserved "<>" — a copy-constructor
// parameter of type "Stack<int>" still needs to match bare name "Stack").
func BareName(trimmed string, lang types.Language) string {
	noNamespace := RemoveNamespace(trimmed, lang)
	if idx := strings.IndexByte(noNamespace, '<'); idx >= 0 {
		return noNamespace[:idx]
	}
	return noNamespace
}

// StripGenericArgs removes a "<...>" suffix entirely, returning the base
// identifier used for primitive-table lookups and external-type
// comparisons. Also strips trailing C++/C# reference and pointer sigils
// and any array brackets, since those never affect base-type identity.
func StripGenericArgs(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '['); idx >= 0 {
		s = strings.TrimSpace(s[:idx])
	}
	s = strings.TrimRight(s, "&* \t")
	if idx := strings.IndexByte(s, '<'); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// BaseType reduces a raw declared type to the identifier used for
// primitive-table and external-type comparisons: namespace-qualifiers,
// generic arguments, and pointer/reference sigils are all stripped, e.g.
// "const std::vector<Foo>&" -> "vector".
func BaseType(raw string, lang types.Language) string {
	s := Trim(raw)
	s = strings.TrimPrefix(s, "const ")
	s = strings.TrimSuffix(s, " const")
	s = StripGenericArgs(s)
	s = RemoveNamespace(s, lang)
	return Trim(s)
}

// ResolvePrev substitutes the last concrete type for a "prev"-tagged
// srcML <type ref="prev"/> element, used for multi-declarator statements
// like "int a, b;" where only the first declarator carries a real <type>.
// raw is the just-parsed candidate type text and isRef reports whether the
// underlying AST node was a ref="prev" placeholder; previous is the type
// text carried over from the prior declarator in the same result sequence.
func ResolvePrev(raw string, isRef bool, previous string) (resolved string, carry string) {
	if isRef {
		return previous, previous
	}
	return raw, raw
}
