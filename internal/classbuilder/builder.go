// Package classbuilder implements C6, the class model builder: given an
// archive unit and a class element, it runs the XPath catalog's class_name,
// parent_name, attribute_name/type, non_private_attribute_name/type,
// method, and (C#) property/property_type/property_method queries to
// assemble one *model.Class (spec §4.5). Structure kind (class/struct/
// interface) comes from the element's own tag name, not a catalog query.
package classbuilder

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/analyzer"
	"github.com/standardbeagle/stereotype/internal/model"
	"github.com/standardbeagle/stereotype/internal/normalize"
	"github.com/standardbeagle/stereotype/internal/primitives"
	"github.com/standardbeagle/stereotype/internal/types"
	"github.com/standardbeagle/stereotype/internal/xpathcat"
)

// Builder assembles class models for one language, backed by the XPath
// catalog and primitive table shared across the whole run.
type Builder struct {
	Catalog    *xpathcat.Catalog
	Primitives *primitives.Table
}

func New(catalog *xpathcat.Catalog, prims *primitives.Table) *Builder {
	return &Builder{Catalog: catalog, Primitives: prims}
}

// query runs a catalog-registered XPath kind against node, returning no
// results (not an error) if the language has no such entry or the query
// itself finds nothing — spec §7 treats both as "absence", not failure.
func (b *Builder) query(node *xmlquery.Node, lang types.Language, kind types.XPathKind) []*xmlquery.Node {
	xpath, ok := b.Catalog.Get(lang, kind)
	if !ok {
		return nil
	}
	nodes, err := xmlquery.QueryAll(node, xpath)
	if err != nil {
		return nil
	}
	return nodes
}

func (b *Builder) queryOne(node *xmlquery.Node, lang types.Language, kind types.XPathKind) *xmlquery.Node {
	nodes := b.query(node, lang, kind)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// text flattens a subtree back to its source text rather than serializing
// its markup: a srcML name or type is frequently a compound element
// (<type><name>int</name></type>, <name><name>a</name><operator>.</operator>
// <name>b</name></name>), and OutputXML would render those child tags
// verbatim instead of the identifier they spell.
func text(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return normalize.Trim(n.InnerText())
}

// Build constructs the class model rooted at classNode, found via
// classXPath in the given unit.
func (b *Builder) Build(classNode *xmlquery.Node, lang types.Language, unit types.UnitIndex, classXPath string) *model.Class {
	c := model.NewClass(unit)
	c.Node = classNode
	c.XPathsByUnit[unit] = append(c.XPathsByUnit[unit], classXPath)

	b.findClassName(c, classNode, lang)
	if lang == types.CPP {
		b.findStructureType(c, classNode, lang)
	}
	b.findParentClassName(c, classNode, lang)

	var attrOrdered []model.Variable
	b.findAttributeName(&attrOrdered, classNode, lang)
	b.findAttributeType(&attrOrdered, classNode, lang, c)

	// The reserved "this" sentinel — see spec §3, §9 "this"-as-attribute.
	c.Attributes["this"] = model.NewVariable("this")

	var nonPrivOrdered []model.Variable
	b.findNonPrivateAttributeName(&nonPrivOrdered, classNode, lang)
	b.findNonPrivateAttributeType(&nonPrivOrdered, classNode, lang, c)

	methodNames := b.collectMethodNames(classNode, lang)

	b.findMethods(c, classNode, lang, unit, classXPath, methodNames)
	if lang == types.CSharp {
		b.findMethodsInProperties(c, classNode, lang, unit, classXPath, methodNames)
	}

	for _, m := range c.Methods {
		if m.IsConstructorDtor {
			c.ConstructorDestructorCount++
		}
	}

	return c
}

func (b *Builder) findClassName(c *model.Class, node *xmlquery.Node, lang types.Language) {
	n := b.queryOne(node, lang, types.KindClassName)
	if n == nil {
		c.Names = model.ClassNames{}
		return
	}
	trimmed := text(n)

	if idx := strings.IndexByte(trimmed, '<'); idx >= 0 {
		left := trimmed[:idx]
		right := trimmed[idx:]
		genericsStripped := normalize.RemoveNamespace(left, lang) + normalize.RemoveBetweenCommas(right)
		bare := normalize.RemoveNamespace(left, lang)
		c.Names = model.ClassNames{Raw: trimmed, Trimmed: trimmed, GenericsStripped: genericsStripped, Bare: bare}
		return
	}
	bare := normalize.RemoveNamespace(trimmed, lang)
	c.Names = model.ClassNames{Raw: trimmed, Trimmed: trimmed, GenericsStripped: bare, Bare: bare}
}

// findStructureType tells src:class apart from src:struct/src:interface by
// the element's own tag name — the structure kind is the tag, not text to
// extract from it.
func (b *Builder) findStructureType(c *model.Class, node *xmlquery.Node, lang types.Language) {
	switch node.Data {
	case "struct":
		c.StructureKind = types.KindStruct
	case "interface":
		c.StructureKind = types.KindInterface
	default:
		c.StructureKind = types.KindClass
	}
}

func (b *Builder) findParentClassName(c *model.Class, node *xmlquery.Node, lang types.Language) {
	for _, n := range b.query(node, lang, types.KindParentName) {
		raw := text(n)
		visibility := types.Public
		if lang == types.CPP {
			if nameNode := xmlquery.FindOne(n, "./src:name"); nameNode != nil {
				raw = text(nameNode)
			}
			switch specifierText(n) {
			case "public":
				visibility = types.Public
			case "protected":
				visibility = types.Protected
			case "private":
				visibility = types.Private
			default:
				if c.StructureKind != types.KindStruct {
					visibility = types.Private
				}
			}
		}
		name := normalize.RemoveNamespace(raw, lang)
		if name == "" {
			continue
		}
		c.Parents[name] = visibility
	}
}

// specifierText returns the trimmed text of n's direct src:specifier child,
// or "" if it has none — used to resolve C++ inheritance visibility without
// depending on how the underlying XML library renders namespaced markup.
func specifierText(n *xmlquery.Node) string {
	return text(xmlquery.FindOne(n, "./src:specifier"))
}

func (b *Builder) findAttributeName(ordered *[]model.Variable, node *xmlquery.Node, lang types.Language) {
	for _, n := range b.query(node, lang, types.KindAttributeName) {
		name := normalize.StripArraySuffix(text(n), lang)
		*ordered = append(*ordered, model.NewVariable(normalize.Trim(name)))
	}
}

func (b *Builder) findAttributeType(ordered *[]model.Variable, node *xmlquery.Node, lang types.Language, c *model.Class) {
	nodes := b.query(node, lang, types.KindAttributeType)
	var prev string
	for i, n := range nodes {
		if i >= len(*ordered) {
			break
		}
		typ := text(n)
		if isPrevRef(n) {
			typ = prev
		} else {
			prev = typ
		}
		v := &(*ordered)[i]
		v.Type = typ
		markExternal(v, typ, lang, c.Names.Bare, b.Primitives)
		c.Attributes[v.Name] = *v
	}
}

func (b *Builder) findNonPrivateAttributeName(ordered *[]model.Variable, node *xmlquery.Node, lang types.Language) {
	for _, n := range b.query(node, lang, types.KindNonPrivateAttributeName) {
		name := normalize.StripArraySuffix(text(n), lang)
		*ordered = append(*ordered, model.NewVariable(normalize.Trim(name)))
	}
}

func (b *Builder) findNonPrivateAttributeType(ordered *[]model.Variable, node *xmlquery.Node, lang types.Language, c *model.Class) {
	nodes := b.query(node, lang, types.KindNonPrivateAttributeType)
	var prev string
	for i, n := range nodes {
		if i >= len(*ordered) {
			break
		}
		typ := text(n)
		if isPrevRef(n) {
			typ = prev
		} else {
			prev = typ
		}
		v := &(*ordered)[i]
		v.Type = typ
		markExternal(v, typ, lang, c.Names.Bare, b.Primitives)
		c.NonPrivateAndInheritedAttributes[v.Name] = *v
	}
}

// isPrevRef detects the srcML back-reference marker <type ref="prev"/>
// used for multi-declarator statements sharing one type (spec §4.3).
func isPrevRef(n *xmlquery.Node) bool {
	return n.Data == "type" && n.SelectAttr("ref") == "prev"
}

func markExternal(v *model.Variable, rawType string, lang types.Language, classBareName string, prims *primitives.Table) {
	base := normalize.BaseType(rawType, lang)
	if base == "" {
		return
	}
	if prims.IsPrimitive(base, lang) {
		return
	}
	v.IsNonPrimitive = true
	if base != classBareName {
		v.IsExternalNonPrimitive = true
	}
}

func (b *Builder) collectMethodNames(node *xmlquery.Node, lang types.Language) map[string]struct{} {
	names := map[string]struct{}{}
	for _, n := range b.query(node, lang, types.KindMethod) {
		nameNode := xmlquery.FindOne(n, "./src:name")
		if nameNode == nil {
			continue
		}
		names[text(nameNode)] = struct{}{}
	}
	return names
}

func (b *Builder) findMethods(c *model.Class, node *xmlquery.Node, lang types.Language, unit types.UnitIndex, classXPath string, methodNames map[string]struct{}) {
	nodes := b.query(node, lang, types.KindMethod)
	for i, n := range nodes {
		// Property accessors also match the method query; they are built
		// once, by findMethodsInProperties, with the property's declared type.
		inProperty := false
		for p := n.Parent; p != nil && p != node; p = p.Parent {
			if p.Data == "property" {
				inProperty = true
				break
			}
		}
		if inProperty {
			continue
		}
		xpath := fmt.Sprintf("(%s%s)[%d]", classXPath, mustCatalogXPath(b.Catalog, lang, types.KindMethod), i+1)
		in := analyzer.Input{
			Language:      lang,
			ClassBareName: c.Names.Bare,
			Attributes:    c.Attributes,
			MethodNames:   methodNames,
			Primitives:    b.Primitives,
		}
		m := analyzer.Analyze(n, xpath, unit, in)
		c.Methods = append(c.Methods, m)
	}
}

// findMethodsInProperties collects C# property accessors as synthetic
// methods whose return type is the property's declared type (spec §4.5).
func (b *Builder) findMethodsInProperties(c *model.Class, node *xmlquery.Node, lang types.Language, unit types.UnitIndex, classXPath string, methodNames map[string]struct{}) {
	props := b.query(node, lang, types.KindProperty)
	propXPath, _ := b.Catalog.Get(lang, types.KindProperty)
	for i, p := range props {
		typeNode := b.queryOne(p, lang, types.KindPropertyType)
		if typeNode == nil {
			continue
		}
		propType := text(typeNode)
		accessors := b.query(p, lang, types.KindPropertyMethod)
		for j, acc := range accessors {
			xpath := fmt.Sprintf("((%s%s)[%d]//src:function)[%d]", classXPath, propXPath, i+1, j+1)
			in := analyzer.Input{
				Language:           lang,
				ClassBareName:      c.Names.Bare,
				Attributes:         c.Attributes,
				MethodNames:        methodNames,
				Primitives:         b.Primitives,
				PropertyReturnType: propType,
			}
			m := analyzer.Analyze(acc, xpath, unit, in)
			c.Methods = append(c.Methods, m)
		}
	}
}

func mustCatalogXPath(cat *xpathcat.Catalog, lang types.Language, kind types.XPathKind) string {
	x, _ := cat.Get(lang, kind)
	return x
}
