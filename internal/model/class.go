package model

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/standardbeagle/stereotype/internal/types"
)

// ClassNames is the 4-tuple of spec §3: raw, trimmed, generics-stripped,
// and bare name forms. All four are empty for an anonymous class.
type ClassNames struct {
	Raw             string
	Trimmed         string
	GenericsStripped string
	Bare            string
}

func (n ClassNames) IsAnonymous() bool {
	return n.Raw == "" && n.Trimmed == "" && n.GenericsStripped == "" && n.Bare == ""
}

// Class is C6's per-class record.
type Class struct {
	Names         ClassNames
	StructureKind types.StructureKind
	Unit          types.UnitIndex
	Node          *xmlquery.Node

	// Parents maps parent class name to inheritance visibility.
	Parents map[string]types.InheritanceVisibility

	// Attributes always contains the synthetic "this" entry.
	Attributes map[string]Variable
	// NonPrivateAndInheritedAttributes backs inherited-access analysis.
	NonPrivateAndInheritedAttributes map[string]Variable

	Methods []*Method

	// XPathsByUnit records the class XPath(s) addressing this class within
	// each unit it was found in — a class may recur across partial
	// declarations (C#), always keyed by the same unit index here.
	XPathsByUnit map[types.UnitIndex][]string

	Stereotypes                 []string
	ConstructorDestructorCount int
}

// NewClass creates a class with the "this" sentinel attribute already
// present, per spec §3's invariant that attributes["this"] always exists.
func NewClass(unit types.UnitIndex) *Class {
	return &Class{
		Unit:                             unit,
		Parents:                          map[string]types.InheritanceVisibility{},
		Attributes:                       map[string]Variable{"this": NewVariable("this")},
		NonPrivateAndInheritedAttributes: map[string]Variable{},
		XPathsByUnit:                     map[types.UnitIndex][]string{},
	}
}

// NonCtorDtorMethodCount is M in spec §4.7: total methods minus
// constructor/destructor count.
func (c *Class) NonCtorDtorMethodCount() int {
	return len(c.Methods) - c.ConstructorDestructorCount
}

func (c *Class) AddStereotype(label string) {
	for _, s := range c.Stereotypes {
		if s == label {
			return
		}
	}
	c.Stereotypes = append(c.Stereotypes, label)
}

func (c *Class) StereotypeString() string {
	return joinSpace(c.Stereotypes)
}

func joinSpace(items []string) string {
	return strings.Join(items, " ")
}
