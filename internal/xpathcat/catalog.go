// Package xpathcat implements C2, the XPath catalog: the sole point where
// language-specific AST schema knowledge is encoded (spec §4.2). It is laid
// out the way the teacher's internal/parser/parser_language_setup.go
// registers one tree-sitter query set per file extension — generalised
// here from "extension -> query" to "language -> named XPath expressions",
// with one setup function per language instead of one per grammar binding.
package xpathcat

import (
	"github.com/standardbeagle/stereotype/internal/types"
)

// Catalog is the static (language, kind) -> XPath expression map.
type Catalog struct {
	entries map[types.Language]map[types.XPathKind]string
}

// New builds the catalog with the built-in expressions for C++, C#, and
// Java, following the srcML element vocabulary (src:class, src:function,
// src:decl, and so on) that the reference stereotype tool queries against.
func New() *Catalog {
	c := &Catalog{entries: map[types.Language]map[types.XPathKind]string{}}
	c.setupCPP()
	c.setupCSharp()
	c.setupJava()
	return c
}

func (c *Catalog) register(lang types.Language, kind types.XPathKind, xpath string) {
	if c.entries[lang] == nil {
		c.entries[lang] = map[types.XPathKind]string{}
	}
	c.entries[lang][kind] = xpath
}

// Get returns the XPath expression for (lang, kind). ok is false if the
// language or kind has no registered entry — the caller (the class model
// builder) treats that as "no results" per spec §7, never as a crash.
func (c *Catalog) Get(lang types.Language, kind types.XPathKind) (string, bool) {
	langEntries, ok := c.entries[lang]
	if !ok {
		return "", false
	}
	xpath, ok := langEntries[kind]
	return xpath, ok
}

// setupCPP registers the C++ query set. C++ classes and structs share the
// same src:class / src:struct hierarchy; the class model builder tells them
// apart from the element's own tag name, not an XPath entry here.
func (c *Catalog) setupCPP() {
	lang := types.CPP
	c.register(lang, types.KindClassName, "./src:name")
	// The whole src:super element, not just its src:name child: findParentClassName
	// needs the sibling src:specifier text to resolve C++ inheritance visibility.
	c.register(lang, types.KindParentName, "./src:super_list/src:super")
	c.register(lang, types.KindAttributeName, "./src:block/src:private[not(@type='default')]/src:decl_stmt/src:decl/src:name | ./src:block/src:public/src:decl_stmt/src:decl/src:name | ./src:block/src:protected/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindAttributeType, "./src:block/src:private[not(@type='default')]/src:decl_stmt/src:decl/src:type | ./src:block/src:public/src:decl_stmt/src:decl/src:type | ./src:block/src:protected/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindNonPrivateAttributeName, "./src:block/src:public/src:decl_stmt/src:decl/src:name | ./src:block/src:protected/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindNonPrivateAttributeType, "./src:block/src:public/src:decl_stmt/src:decl/src:type | ./src:block/src:protected/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindMethod, ".//src:function | .//src:constructor | .//src:destructor")
}

// setupCSharp registers the C# query set, plus the property-specific
// kinds: C# accessors (get/set) are synthesised into methods whose return
// type comes from the enclosing property, not the accessor body.
func (c *Catalog) setupCSharp() {
	lang := types.CSharp
	c.register(lang, types.KindClassName, "./src:name")
	c.register(lang, types.KindParentName, "./src:super_list/src:super/src:name | ./src:super_list/src:super")
	c.register(lang, types.KindAttributeName, "./src:block/src:private/src:decl_stmt/src:decl/src:name | ./src:block/src:default/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindAttributeType, "./src:block/src:private/src:decl_stmt/src:decl/src:type | ./src:block/src:default/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindNonPrivateAttributeName, "./src:block/src:public/src:decl_stmt/src:decl/src:name | ./src:block/src:protected/src:decl_stmt/src:decl/src:name | ./src:block/src:internal/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindNonPrivateAttributeType, "./src:block/src:public/src:decl_stmt/src:decl/src:type | ./src:block/src:protected/src:decl_stmt/src:decl/src:type | ./src:block/src:internal/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindMethod, ".//src:function | .//src:constructor | .//src:destructor")
	c.register(lang, types.KindProperty, ".//src:property")
	c.register(lang, types.KindPropertyType, "./src:type")
	c.register(lang, types.KindPropertyMethod, ".//src:function")
}

// setupJava registers the Java query set. Package-private fields (the
// src:default section) are collected with the private attributes, as in
// C#; only public and protected fields count as non-private.
func (c *Catalog) setupJava() {
	lang := types.Java
	c.register(lang, types.KindClassName, "./src:name")
	c.register(lang, types.KindParentName, "./src:super_list/src:extends/src:name | ./src:super_list/src:implements/src:name")
	c.register(lang, types.KindAttributeName, "./src:block/src:private/src:decl_stmt/src:decl/src:name | ./src:block/src:default/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindAttributeType, "./src:block/src:private/src:decl_stmt/src:decl/src:type | ./src:block/src:default/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindNonPrivateAttributeName, "./src:block/src:public/src:decl_stmt/src:decl/src:name | ./src:block/src:protected/src:decl_stmt/src:decl/src:name")
	c.register(lang, types.KindNonPrivateAttributeType, "./src:block/src:public/src:decl_stmt/src:decl/src:type | ./src:block/src:protected/src:decl_stmt/src:decl/src:type")
	c.register(lang, types.KindMethod, ".//src:function | .//src:constructor")
}
