// Package types holds the small shared value types used across the
// stereotype classification engine: the source-language tag, the unit
// index the driver and model packages key on, and the structure-kind,
// inheritance-visibility and XPath-kind enumerations.
package types

import "fmt"

// Language identifies the source language of a compilation unit.
type Language string

const (
	CPP     Language = "C++"
	CSharp  Language = "C#"
	Java    Language = "Java"
	Unknown Language = ""
)

// ParseLanguage maps the raw language attribute found on an archive unit
// to a Language. An unrecognised tag yields Unknown, not an error — the
// caller (the archive driver) decides whether that is fatal.
func ParseLanguage(tag string) Language {
	switch tag {
	case string(CPP):
		return CPP
	case string(CSharp):
		return CSharp
	case string(Java):
		return Java
	default:
		return Unknown
	}
}

func (l Language) Known() bool {
	switch l {
	case CPP, CSharp, Java:
		return true
	default:
		return false
	}
}

func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return string(l)
}

// UnitIndex is the ordinal position of a compilation unit within an archive.
type UnitIndex int

// StructureKind is the syntactic class/struct/interface distinction that
// affects default inheritance visibility in C++.
type StructureKind string

const (
	KindClass     StructureKind = "class"
	KindStruct    StructureKind = "struct"
	KindInterface StructureKind = "interface"
)

// InheritanceVisibility is the C++ parent-class access specifier; C#/Java
// parents are always Public.
type InheritanceVisibility string

const (
	Public    InheritanceVisibility = "public"
	Protected InheritanceVisibility = "protected"
	Private   InheritanceVisibility = "private"
)

// XPathKind enumerates the query roles recognised by the XPath catalog (C2).
type XPathKind string

const (
	KindClassName                  XPathKind = "class_name"
	KindParentName                 XPathKind = "parent_name"
	KindAttributeName              XPathKind = "attribute_name"
	KindAttributeType              XPathKind = "attribute_type"
	KindNonPrivateAttributeName    XPathKind = "non_private_attribute_name"
	KindNonPrivateAttributeType    XPathKind = "non_private_attribute_type"
	KindMethod                     XPathKind = "method"
	KindProperty                   XPathKind = "property"
	KindPropertyType               XPathKind = "property_type"
	KindPropertyMethod             XPathKind = "property_method"
)

func (k XPathKind) String() string { return string(k) }

// UnsupportedLanguageError describes a language that has no registered
// catalog queries. Catalog lookups do not return it: xpathcat.Catalog.Get
// reports a missing language with ok=false.
type UnsupportedLanguageError struct {
	Language Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("stereotype: no xpath catalog entries for language %q", e.Language)
}
