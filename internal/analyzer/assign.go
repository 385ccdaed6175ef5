package analyzer

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/model"
)

var assignmentOperators = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"&=": true, "|=": true, "^=": true, "<<=": true, ">>=": true,
	"++": true, "--": true,
}

// simpleTarget reduces a name expression's rendered text to the trailing
// identifier a plain assignment writes to: "this.x" -> "x", "obj.y" ->
// "y", "z" -> "z". Compound receiver chains collapse to their last hop,
// which is exactly the identifier that needs to be a class attribute (or
// not) for the assignment to count.
func simpleTarget(nameText string) string {
	nameText = strings.TrimSpace(nameText)
	for _, sep := range []string{"->", "::", "."} {
		if idx := strings.LastIndex(nameText, sep); idx >= 0 {
			nameText = nameText[idx+len(sep):]
		}
	}
	return strings.TrimSpace(nameText)
}

// analyzeAttributeUse sets m.AttributesUsed when any leaf name inside an
// expression context matches an attribute (attrNames includes "this" per
// spec's sentinel).
func analyzeAttributeUse(body *xmlquery.Node, attrNames map[string]struct{}, m *model.Method) {
	if body == nil {
		return
	}
	for _, n := range xmlquery.Find(body, ".//src:expr//src:name") {
		if hasChildName(n) {
			continue // compound wrapper; leaves are visited separately
		}
		if _, ok := attrNames[text(n)]; ok {
			m.AttributesUsed = true
			return
		}
	}
}

func hasChildName(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == "name" {
			return true
		}
	}
	return false
}

// analyzeAssignments counts distinct attributes written by a simple
// assignment or increment/decrement expression statement, and records
// whether any such statement targets a class attribute at all.
func analyzeAssignments(body *xmlquery.Node, attrNames map[string]struct{}, m *model.Method) {
	if body == nil {
		return
	}
	modified := map[string]struct{}{}
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
		if target == "" || target == "this" {
			continue
		}
		if _, ok := attrNames[target]; ok {
			modified[target] = struct{}{}
		}
	}
	m.NumAttributesModified = len(modified)
}

// assignsToName reports whether the method body contains a simple
// assignment or increment/decrement targeting exactly name — used for the
// non-const reference parameter check behind void-accessor.
func assignsToName(node *xmlquery.Node, name string) bool {
	for _, expr := range xmlquery.Find(node, ".//src:expr_stmt/src:expr") {
		first := firstElementChild(expr)
		if first == nil || first.Data != "name" {
			continue
		}
		if simpleTarget(text(first)) != name {
			continue
		}
		op := nextElementSibling(first)
		if op == nil || op.Data != "operator" {
			continue
		}
		opText := text(op)
		if opText != "==" && assignmentOperators[opText] {
			return true
		}
	}
	return false
}

func firstElementChild(n *xmlquery.Node) *xmlquery.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func nextElementSibling(n *xmlquery.Node) *xmlquery.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func lastSegment(s string) string {
	for _, sep := range []string{"->", "::", "."} {
		if idx := strings.LastIndex(s, sep); idx >= 0 {
			return s[idx+len(sep):]
		}
	}
	return s
}

// receiverPrefix returns the portion of a compound name expression before
// its final separator: "obj.field.method" -> "obj.field". Empty if s has
// no separator (a bare, receiver-less name).
func receiverPrefix(s string) string {
	best := -1
	for _, sep := range []string{"->", "::", "."} {
		if idx := strings.LastIndex(s, sep); idx > best {
			best = idx
		}
	}
	if best < 0 {
		return ""
	}
	return s[:best]
}
