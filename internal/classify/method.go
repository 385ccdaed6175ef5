// Package classify implements C7 and C8, the method and class stereotype
// classifiers: rule tables that turn the fields C5/C6 already computed
// into ordered label lists (spec §4.6, §4.7).
package classify

import (
	"github.com/standardbeagle/stereotype/internal/model"
	"github.com/standardbeagle/stereotype/internal/types"
)

// Method runs the thirteen ordered rules of spec §4.6 against m, appending
// labels to m.Stereotypes in evaluation order. Rules 2-12 are skipped for a
// method already flagged constructor/destructor.
func Method(m *model.Method, classBareName string, lang types.Language) {
	if m.IsConstructorDtor {
		classifyConstructorDtor(m, classBareName)
		return
	}

	getter(m)
	predicate(m, lang)
	property(m, lang)
	voidAccessor(m)
	setter(m)
	command(m, lang)
	factory(m)
	wrapperControllerCollaborator(m, lang)
	incidental(m)
	stateless(m)
	empty(m)

	if len(m.Stereotypes) == 0 {
		m.AddStereotype("unclassified")
	}
}

func classifyConstructorDtor(m *model.Method, classBareName string) {
	switch {
	case m.IsDestructor:
		m.AddStereotype("destructor")
	case containsBareName(m.ParametersList, classBareName):
		m.AddStereotype("copy-constructor")
	default:
		m.AddStereotype("constructor")
	}
}

// containsBareName checks whether a rendered parameter list mentions the
// class's own bare name — the copy-constructor signal ("Foo(const Foo&)").
func containsBareName(parametersList, classBareName string) bool {
	if classBareName == "" {
		return false
	}
	return indexOfWord(parametersList, classBareName) >= 0
}

func indexOfWord(haystack, word string) int {
	if word == "" {
		return -1
	}
	for i := 0; i+len(word) <= len(haystack); i++ {
		if haystack[i:i+len(word)] != word {
			continue
		}
		if i > 0 && isIdentChar(haystack[i-1]) {
			continue
		}
		if end := i + len(word); end < len(haystack) && isIdentChar(haystack[end]) {
			continue
		}
		return i
	}
	return -1
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// getter is rule 2: at least one simple attribute return, return type not
// void.
func getter(m *model.Method) {
	if !m.AttributeReturned {
		return
	}
	if isVoidType(m.ReturnTypeParsed) {
		return
	}
	m.AddStereotype("get")
}

func isVoidType(t string) bool {
	return t == "void" || t == "Void"
}

func isBooleanType(t string) bool {
	switch t {
	case "bool", "boolean", "Boolean":
		return true
	default:
		return false
	}
}

func usesAttributeOrIntraClassCall(m *model.Method) bool {
	return m.AttributesUsed || len(m.FunctionCalls) > 0
}

// predicate is rule 3.
func predicate(m *model.Method, lang types.Language) {
	if !isBooleanType(m.ReturnTypeParsed) {
		return
	}
	if !hasComplexReturn(m) {
		return
	}
	if !usesAttributeOrIntraClassCall(m) {
		return
	}
	m.AddStereotype("predicate")
}

func hasComplexReturn(m *model.Method) bool {
	for _, r := range m.Returns {
		if !r.Simple {
			return true
		}
	}
	return false
}

// property is rule 4. void* qualifies as non-void/non-bool; skipped when
// isStrictFactory.
func property(m *model.Method, lang types.Language) {
	if m.IsStrictFactory {
		return
	}
	if m.ReturnTypeParsed == "" {
		return
	}
	if isVoidType(m.ReturnTypeParsed) && !m.ReturnsVoidPointer {
		return
	}
	if isBooleanType(m.ReturnTypeParsed) {
		return
	}
	if !hasComplexReturn(m) {
		return
	}
	if !usesAttributeOrIntraClassCall(m) {
		return
	}
	m.AddStereotype("property")
}

// voidAccessor is rule 5: void (not void*) return, a non-const reference
// parameter that gets assigned, and attribute/intra-class use.
func voidAccessor(m *model.Method) {
	if !isVoidType(m.ReturnTypeParsed) || m.ReturnsVoidPointer {
		return
	}
	if !m.ParameterRefChangedNonConst {
		return
	}
	if !usesAttributeOrIntraClassCall(m) {
		return
	}
	m.AddStereotype("void-accessor")
}

// setter is rule 6: exactly one attribute modified, total intra-class +
// on-attribute calls at most one.
func setter(m *model.Method) {
	if m.NumAttributesModified != 1 {
		return
	}
	if len(m.FunctionCalls)+len(m.MethodCalls) > 1 {
		return
	}
	m.AddStereotype("set")
}

// command is rule 7.
func command(m *model.Method, lang types.Language) {
	calls := len(m.FunctionCalls) + len(m.MethodCalls)
	a := m.NumAttributesModified >= 2
	b := m.NumAttributesModified == 1 && calls >= 2
	c := m.NumAttributesModified == 0 && calls >= 1
	if !a && !b && !c {
		return
	}

	mutableCase := lang == types.CPP && m.IsConstMethod && m.NumAttributesModified >= 2
	if m.IsConstMethod && !mutableCase {
		return
	}

	if isVoidType(m.ReturnTypeParsed) && !m.ReturnsVoidPointer {
		m.AddStereotype("command")
		return
	}
	if lang == types.CPP || lang == types.CSharp {
		m.AddStereotype("non-void-command")
	}
}

// factory is rule 8.
func factory(m *model.Method) {
	if m.IsFactory || m.IsStrictFactory {
		m.AddStereotype("factory")
	}
}

// wrapperControllerCollaborator is rule 9, evaluated only for non-empty
// methods.
func wrapperControllerCollaborator(m *model.Method, lang types.Language) {
	if m.IsEmpty {
		return
	}
	noState := m.NumAttributesModified == 0 && len(m.FunctionCalls) == 0 && len(m.MethodCalls) == 0

	if noState && m.NumExternalMethodCalls == 0 && m.NumExternalFunctionCalls >= 1 {
		m.AddStereotype("wrapper")
		return
	}
	if noState && (m.NumExternalMethodCalls >= 1 || m.NonPrimitiveLocalOrParamChanged) {
		m.AddStereotype("controller")
		return
	}

	external := m.NonPrimitiveAttributeExternal || m.NonPrimitiveLocalExternal ||
		m.NonPrimitiveParameterExternal || m.NonPrimitiveReturnExternal ||
		(m.ReturnsVoidPointer && lang != types.Java)
	if external {
		m.AddStereotype("collaborator")
	}
}

// incidental is rule 10: not empty, no attribute use (including bare
// this), no calls of any kind.
func incidental(m *model.Method) {
	if m.IsEmpty {
		return
	}
	if m.AttributesUsed {
		return
	}
	if hasAnyCall(m) {
		return
	}
	m.AddStereotype("incidental")
}

// stateless is rule 11: not empty, no attribute use, no intra-class or
// on-attribute calls, but at least one external/free/constructor call.
func stateless(m *model.Method) {
	if m.IsEmpty {
		return
	}
	if m.AttributesUsed {
		return
	}
	if len(m.FunctionCalls) > 0 || len(m.MethodCalls) > 0 {
		return
	}
	if m.NumExternalMethodCalls == 0 && m.NumExternalFunctionCalls == 0 && len(m.ConstructorCalls) == 0 {
		return
	}
	m.AddStereotype("stateless")
}

func hasAnyCall(m *model.Method) bool {
	return len(m.FunctionCalls) > 0 || len(m.MethodCalls) > 0 || len(m.ConstructorCalls) > 0 ||
		m.NumExternalMethodCalls > 0 || m.NumExternalFunctionCalls > 0
}

// empty is rule 12: body contains only comments.
func empty(m *model.Method) {
	if m.IsEmpty {
		m.AddStereotype("empty")
	}
}
