package analyzer

import (
	"unicode"

	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/model"
)

// analyzeCalls implements the call-categorisation decision function of
// spec §4.4: constructor syntax first, then receiver-based dispatch
// against the attribute set, then type-based dispatch against
// local/parameter declarations, then free-function fallback. Ignored-call
// filtering happens before any counter is touched.
func analyzeCalls(body *xmlquery.Node, in Input, m *model.Method) {
	if body == nil {
		return
	}
	attrNames := attributeNameSet(in.Attributes)

	for _, call := range xmlquery.Find(body, ".//src:call") {
		nameNode := xmlquery.FindOne(call, "./src:name")
		calleeText := text(nameNode)
		if calleeText == "" {
			continue
		}
		if IsIgnored(calleeText, in.Language) {
			continue
		}

		simple := lastSegment(calleeText)
		receiver := receiverPrefix(calleeText)

		if isConstructorCallSite(call, simple, receiver, in) {
			m.ConstructorCalls = append(m.ConstructorCalls, model.Call{Target: simple, Kind: model.CallConstructor})
			continue
		}

		if receiver == "" || receiver == "this" {
			if _, ok := in.MethodNames[simple]; ok {
				m.FunctionCalls = append(m.FunctionCalls, model.Call{Target: simple, Kind: model.CallFunction})
				continue
			}
			m.NumExternalFunctionCalls++
			continue
		}

		recvSimple := lastSegment(receiver)
		if _, ok := attrNames[recvSimple]; ok {
			m.MethodCalls = append(m.MethodCalls, model.Call{Target: simple, Kind: model.CallOnAttribute})
			continue
		}

		if v, ok := lookupVariable(m, recvSimple); ok && v.IsExternalNonPrimitive {
			m.NumExternalMethodCalls++
			continue
		}

		m.NumExternalFunctionCalls++
	}

	scanDirectInitConstructorCalls(body, in, m)
}

// isConstructorCallSite recognises "new T(...)" (preceding `new` operator
// sibling, C#/Java/C++) and the C++ "T(...)" functional-cast/temporary
// construction form, matched by the receiver-less callee naming a type
// (capitalised identifier convention) that isn't one of the class's own
// methods.
func isConstructorCallSite(call *xmlquery.Node, simple, receiver string, in Input) bool {
	if precededByNew(call) {
		return true
	}
	if receiver != "" {
		return false
	}
	if _, isMethod := in.MethodNames[simple]; isMethod {
		return false
	}
	return looksLikeTypeName(simple)
}

func precededByNew(call *xmlquery.Node) bool {
	prev := prevElementSibling(call)
	return prev != nil && prev.Data == "operator" && text(prev) == "new"
}

func looksLikeTypeName(name string) bool {
	if name == "" {
		return false
	}
	r := []rune(name)[0]
	return unicode.IsUpper(r)
}

func prevElementSibling(n *xmlquery.Node) *xmlquery.Node {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func lookupVariable(m *model.Method, name string) (model.Variable, bool) {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	for _, l := range m.Locals {
		if l.Name == name {
			return l, true
		}
	}
	return model.Variable{}, false
}

// scanDirectInitConstructorCalls covers the C++ direct-initialisation form
// "Foo f(args);", which srcML represents as a <decl> carrying its own
// <argument_list> rather than a <call> element, so it never reaches the
// generic call walk above.
func scanDirectInitConstructorCalls(body *xmlquery.Node, in Input, m *model.Method) {
	for _, decl := range xmlquery.Find(body, ".//src:decl_stmt/src:decl") {
		if xmlquery.FindOne(decl, "./src:argument_list") == nil {
			continue
		}
		typeName := lastSegment(text(xmlquery.FindOne(decl, "./src:type")))
		if typeName == "" {
			continue
		}
		m.ConstructorCalls = append(m.ConstructorCalls, model.Call{Target: typeName, Kind: model.CallConstructor})
	}
}
