package analyzer

import (
	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/model"
)

// analyzeExternalTypes fills in the nonPrimitive*External booleans and the
// non-primitive local/parameter mutation flag used by rule 9 (spec §4.6)
// to tell collaborator/controller/wrapper apart.
func analyzeExternalTypes(m *model.Method, in Input) {
	for _, p := range m.Parameters {
		if p.IsExternalNonPrimitive {
			m.NonPrimitiveParameterExternal = true
		}
	}
	for _, l := range m.Locals {
		if l.IsExternalNonPrimitive {
			m.NonPrimitiveLocalExternal = true
		}
	}
	base := m.ReturnTypeParsed
	if base != "" && !in.Primitives.IsPrimitive(base, in.Language) && base != in.ClassBareName {
		m.NonPrimitiveReturnExternal = true
	}

	body := findBody(m.Node)
	if body == nil {
		return
	}
	attrs := in.Attributes
	for _, n := range xmlquery.Find(body, ".//src:expr//src:name") {
		if hasChildName(n) {
			continue
		}
		nm := text(n)
		if v, ok := attrs[nm]; ok && v.IsExternalNonPrimitive {
			m.NonPrimitiveAttributeExternal = true
		}
	}

	for _, expr := range xmlquery.Find(body, ".//src:expr_stmt/src:expr") {
		first := firstElementChild(expr)
		if first == nil || first.Data != "name" {
			continue
		}
		op := nextElementSibling(first)
		if op == nil || op.Data != "operator" {
			continue
		}
		opText := text(op)
		if opText == "==" || !assignmentOperators[opText] {
			continue
		}
		target := simpleTarget(text(first))
		if v, ok := lookupVariable(m, target); ok && v.IsNonPrimitive {
			m.NonPrimitiveLocalOrParamChanged = true
		}
	}
}
