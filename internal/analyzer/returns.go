package analyzer

import (
	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/model"
)

// analyzeReturns classifies every return statement in the method body as a
// simple attribute return or a complex one (spec §4.4), and separately
// flags whether each return's expression is a constructor-call expression
// (directly, or via a local whose declaration initialises it with one;
// returned attributes are not traced) — the building
// block for isFactory/isStrictFactory (spec §4.7, Open Question resolved
// in SPEC_FULL.md §4).
func analyzeReturns(body *xmlquery.Node, attrNames map[string]struct{}, m *model.Method, in Input) {
	if body == nil {
		return
	}
	ctorLocals := constructorInitializedLocals(body, in)

	for _, ret := range xmlquery.Find(body, ".//src:return") {
		expr := xmlquery.FindOne(ret, "./src:expr")
		if expr == nil {
			continue // bare "return;"
		}
		elems := elementChildren(expr)
		ctorCall := isConstructorCallExpr(expr, in)

		if len(elems) == 1 && elems[0].Data == "name" {
			nm := text(elems[0])
			if !ctorCall {
				if _, isLocal := ctorLocals[nm]; isLocal {
					ctorCall = true
				}
			}
			if nm == "this" {
				m.Returns = append(m.Returns, model.ReturnExpr{Simple: false, ConstructorCall: ctorCall})
				m.AttributeNotReturned = true
				continue
			}
			if _, ok := attrNames[nm]; ok {
				m.Returns = append(m.Returns, model.ReturnExpr{Simple: true, AttributeName: nm})
				m.AttributeReturned = true
				continue
			}
			m.Returns = append(m.Returns, model.ReturnExpr{Simple: false, ConstructorCall: ctorCall})
			m.AttributeNotReturned = true
			continue
		}

		m.Returns = append(m.Returns, model.ReturnExpr{Simple: false, ConstructorCall: ctorCall})
		m.AttributeNotReturned = true
	}
}

func elementChildren(n *xmlquery.Node) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// isConstructorCallExpr reports whether expr's value is itself a
// constructor-call expression: a bare call recognised by
// isConstructorCallSite, or a "new"-prefixed call.
func isConstructorCallExpr(expr *xmlquery.Node, in Input) bool {
	elems := elementChildren(expr)
	for _, e := range elems {
		if e.Data != "call" {
			continue
		}
		nameNode := xmlquery.FindOne(e, "./src:name")
		calleeText := text(nameNode)
		if calleeText == "" {
			continue
		}
		simple := lastSegment(calleeText)
		receiver := receiverPrefix(calleeText)
		if isConstructorCallSite(e, simple, receiver, in) {
			return true
		}
	}
	return false
}

// constructorInitializedLocals finds local variables whose declaration
// initialises them directly from a constructor call: either C++
// direct-init ("Foo f(args);") or an initializer expression that is
// itself a constructor call ("var f = new Foo();").
func constructorInitializedLocals(body *xmlquery.Node, in Input) map[string]struct{} {
	out := map[string]struct{}{}
	for _, decl := range xmlquery.Find(body, ".//src:decl_stmt/src:decl") {
		name := text(xmlquery.FindOne(decl, "./src:name"))
		if name == "" {
			continue
		}
		if xmlquery.FindOne(decl, "./src:argument_list") != nil {
			out[name] = struct{}{}
			continue
		}
		init := xmlquery.FindOne(decl, "./src:init/src:expr")
		if init != nil && isConstructorCallExpr(init, in) {
			out[name] = struct{}{}
		}
	}
	return out
}
