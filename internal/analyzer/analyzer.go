// Package analyzer implements C5, the method analyser: for one method
// subtree it derives every field of spec §3's Method record by running
// XPath sub-queries against the subtree and classifying each call site,
// return expression, and attribute reference (spec §4.4).
package analyzer

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/model"
	"github.com/standardbeagle/stereotype/internal/normalize"
	"github.com/standardbeagle/stereotype/internal/primitives"
	"github.com/standardbeagle/stereotype/internal/types"
)

// Input bundles everything the analyser needs beyond the method subtree
// itself: language, the enclosing class's bare name (for constructor and
// external-type detection), the class's attribute set, the names of the
// class's own methods (for intra-class call detection), and the primitive
// table.
type Input struct {
	Language      types.Language
	ClassBareName string
	Attributes    map[string]model.Variable
	MethodNames   map[string]struct{}
	Primitives    *primitives.Table

	// PropertyReturnType overrides the return type for a C# property
	// accessor, per spec §4.5: property accessors return the declared
	// property type, not their own (absent) return type.
	PropertyReturnType string
}

// Analyze derives a *model.Method from a method (or property-accessor)
// subtree.
func Analyze(node *xmlquery.Node, xpath string, unit types.UnitIndex, in Input) *model.Method {
	m := &model.Method{
		Node:  node,
		XPath: xpath,
		Unit:  unit,
	}

	m.Name = text(xmlquery.FindOne(node, "./src:name"))
	if m.Name == "" {
		m.Name = text(xmlquery.FindOne(node, "src:name"))
	}

	m.IsDestructor = node.Data == "destructor" || node.Data == "destructor_decl"
	isConstructor := node.Data == "constructor" || node.Data == "constructor_decl"
	m.IsConstructorDtor = m.IsDestructor || isConstructor
	if m.IsConstructorDtor {
		m.ParametersList = text(xmlquery.FindOne(node, "./src:parameter_list"))
		return m
	}

	m.ParametersList = text(xmlquery.FindOne(node, "./src:parameter_list"))

	if in.PropertyReturnType != "" {
		m.ReturnTypeRaw = in.PropertyReturnType
	} else {
		m.ReturnTypeRaw = text(xmlquery.FindOne(node, "./src:type"))
	}
	m.ReturnTypeParsed = normalize.BaseType(m.ReturnTypeRaw, in.Language)
	m.ReturnsVoidPointer = strings.Contains(m.ReturnTypeRaw, "void") && strings.Contains(m.ReturnTypeRaw, "*")

	m.IsConstMethod = in.Language == types.CPP && hasSpecifier(node, "const")

	analyzeParameters(node, in, m)
	analyzeLocals(node, in, m)

	body := findBody(node)
	m.IsEmpty = isEmptyBody(body)

	attrNames := attributeNameSet(in.Attributes)
	analyzeAttributeUse(body, attrNames, m)
	analyzeAssignments(body, attrNames, m)
	analyzeReturns(body, attrNames, m, in)
	analyzeCalls(body, in, m)
	analyzeFactory(m)
	analyzeExternalTypes(m, in)

	return m
}

func findBody(node *xmlquery.Node) *xmlquery.Node {
	if b := xmlquery.FindOne(node, "./src:block"); b != nil {
		return b
	}
	return node
}

func isEmptyBody(body *xmlquery.Node) bool {
	if body == nil {
		return true
	}
	content := xmlquery.FindOne(body, "./src:block_content")
	if content == nil {
		return true
	}
	for c := content.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != xmlquery.ElementNode {
			continue
		}
		if c.Data == "comment" {
			continue
		}
		return false
	}
	return true
}

func attributeNameSet(attrs map[string]model.Variable) map[string]struct{} {
	s := make(map[string]struct{}, len(attrs))
	for name := range attrs {
		s[name] = struct{}{}
	}
	return s
}

func analyzeParameters(node *xmlquery.Node, in Input, m *model.Method) {
	for _, p := range xmlquery.Find(node, "./src:parameter_list/src:parameter/src:decl") {
		name := text(xmlquery.FindOne(p, "./src:name"))
		rawType := text(xmlquery.FindOne(p, "./src:type"))
		v := model.Variable{Name: name, Type: rawType}
		markNonPrimitive(&v, rawType, in)
		m.Parameters = append(m.Parameters, v)

		if in.Language == types.CPP && isNonConstReference(rawType) && assignsToName(node, name) {
			m.ParameterRefChangedNonConst = true
		}
	}
}

func analyzeLocals(node *xmlquery.Node, in Input, m *model.Method) {
	for _, d := range xmlquery.Find(node, ".//src:decl_stmt/src:decl") {
		name := text(xmlquery.FindOne(d, "./src:name"))
		rawType := text(xmlquery.FindOne(d, "./src:type"))
		if name == "" {
			continue
		}
		v := model.Variable{Name: name, Type: rawType}
		markNonPrimitive(&v, rawType, in)
		m.Locals = append(m.Locals, v)
	}
}

func markNonPrimitive(v *model.Variable, rawType string, in Input) {
	base := normalize.BaseType(rawType, in.Language)
	if base == "" {
		return
	}
	if in.Primitives.IsPrimitive(base, in.Language) {
		return
	}
	v.IsNonPrimitive = true
	if base != in.ClassBareName {
		v.IsExternalNonPrimitive = true
	}
}

func isNonConstReference(rawType string) bool {
	return strings.Contains(rawType, "&") && !strings.Contains(rawType, "const")
}

// hasSpecifier reports whether node has a direct src:specifier child whose
// text is value — used for the "const" method qualifier rather than
// substring-matching serialized markup, which is sensitive to how the
// underlying XML library renders namespaced tags.
func hasSpecifier(node *xmlquery.Node, value string) bool {
	for _, n := range xmlquery.Find(node, "./src:specifier") {
		if text(n) == value {
			return true
		}
	}
	return false
}

// text flattens a subtree back to its source text, the analyser's analog
// of srcml_unit_unparse_memory: it concatenates descendant text-node
// content only, so a nested <type><name>int</name></type> yields "int"
// rather than the markup OutputXML would serialize.
func text(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}
	return normalize.Trim(n.InnerText())
}
