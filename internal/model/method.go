package model

import (
	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/types"
)

// CallKind classifies a single call site per the decision function of
// spec §4.4: constructor call, intra-class function call, call on a data
// member, call on an external-non-primitive local/parameter, or free
// function call.
type CallKind int

const (
	CallConstructor CallKind = iota
	CallFunction             // intra-class function call
	CallOnAttribute          // call on a data member
	CallExternalMethod       // call on a local/parameter of external non-primitive type
	CallExternalFunction     // free function
)

// Call is one call site as classified by the method analyser.
type Call struct {
	Target string
	Kind   CallKind
}

// ReturnExpr records whether one return statement's expression is a
// "simple attribute return" (its sole subexpression is an attribute name,
// excluding "this") or a "complex" one (spec §4.4).
type ReturnExpr struct {
	Simple        bool
	AttributeName string
	// ConstructorCall is true when the return expression is itself a
	// constructor-call expression, or names a local whose declaration
	// initialises it with one — the building block of isFactory/isStrictFactory.
	// A returned attribute is not traced back to its initialiser.
	ConstructorCall bool
}

// Method is C4's per-method record, built by the method analyser (C5) and
// annotated by the method stereotype classifier (C7).
type Method struct {
	Name             string
	XPath            string
	Unit             types.UnitIndex
	Node             *xmlquery.Node

	ReturnTypeRaw    string
	ReturnTypeParsed string
	ParametersList   string

	IsConstMethod          bool
	IsConstructorDtor      bool
	IsDestructor           bool
	IsEmpty                bool

	Parameters []Variable
	Locals     []Variable

	AttributesUsed        bool
	AttributeReturned      bool
	AttributeNotReturned   bool
	Returns                []ReturnExpr
	NumAttributesModified  int

	FunctionCalls           []Call // intra-class calls
	MethodCalls             []Call // calls on data members
	ConstructorCalls        []Call
	NumExternalFunctionCalls int
	NumExternalMethodCalls   int

	IsFactory       bool
	IsStrictFactory bool

	NonPrimitiveAttributeExternal bool
	NonPrimitiveLocalExternal     bool
	NonPrimitiveParameterExternal bool
	NonPrimitiveReturnExternal    bool
	ReturnsVoidPointer            bool

	ParameterRefChangedNonConst      bool
	NonPrimitiveLocalOrParamChanged  bool

	Stereotypes []string
}

// AddStereotype appends a label if not already present, preserving
// rule-evaluation order (spec §5's ordering guarantee).
func (m *Method) AddStereotype(label string) {
	for _, s := range m.Stereotypes {
		if s == label {
			return
		}
	}
	m.Stereotypes = append(m.Stereotypes, label)
}

// StereotypeString space-joins the ordered label list for the output
// archive's stereotype attribute (spec §6).
func (m *Method) StereotypeString() string {
	return joinSpace(m.Stereotypes)
}
