// Package model holds C4 (Variable) and the Method/Class data model
// of spec §3: the structures the class model builder (C6) assembles and
// the method analyser (C5) and stereotype classifiers (C7/C8) operate on.
package model

// Variable is a name/type pair with the non-primitive flags spec §3
// defines: a variable is non-primitive if its normalised base type isn't
// in the primitive table for its method's language, and additionally
// external-non-primitive if that base type also isn't the enclosing
// class's bare name.
type Variable struct {
	Name                    string
	Type                    string
	IsNonPrimitive          bool
	IsExternalNonPrimitive  bool
}

// NewVariable creates a variable with just a name — used for the "this"
// sentinel and for names collected before their type pass has run.
func NewVariable(name string) Variable {
	return Variable{Name: name}
}
