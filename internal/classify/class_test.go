package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/standardbeagle/stereotype/internal/model"
)

func labeled(labels ...string) *model.Method {
	m := &model.Method{}
	for _, l := range labels {
		m.AddStereotype(l)
	}
	return m
}

func TestClassEmptyWhenNoNonCtorDtorMethods(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{{IsConstructorDtor: true}, {IsConstructorDtor: true}}
	Class(c, 21)
	assert.Equal(t, "empty", c.StereotypeString())
}

func TestClassDataClassAndSmallClass(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{labeled("get"), labeled("set")}
	Class(c, 21)
	assert.Contains(t, c.Stereotypes, "data-class")
	assert.Contains(t, c.Stereotypes, "small-class")
}

func TestClassUnclassifiedFallback(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{
		labeled("unclassified"), labeled("unclassified"), labeled("unclassified"),
		labeled("unclassified"), labeled("unclassified"),
	}
	Class(c, 21)
	assert.Equal(t, "unclassified", c.StereotypeString())
}

func TestClassFactory(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{labeled("factory")}
	Class(c, 21)
	assert.Contains(t, c.Stereotypes, "factory")
	assert.Contains(t, c.Stereotypes, "small-class")
}

func TestClassBoundary(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{labeled("collaborator"), labeled("collaborator"), labeled("collaborator")}
	Class(c, 21)
	assert.Equal(t, "boundary", c.StereotypeString())
}

func TestClassLargeClass(t *testing.T) {
	c := model.NewClass(0)
	var methods []*model.Method
	for i := 0; i < 8; i++ {
		methods = append(methods, labeled("get"))
	}
	for i := 0; i < 8; i++ {
		methods = append(methods, labeled("set"))
	}
	for i := 0; i < 8; i++ {
		methods = append(methods, labeled("controller"))
	}
	for i := 0; i < 6; i++ {
		methods = append(methods, labeled("factory"))
	}
	c.Methods = methods
	Class(c, 21)
	assert.Contains(t, c.Stereotypes, "large-class")
}

func TestClassDegenerateAndLazyClass(t *testing.T) {
	c := model.NewClass(0)
	c.Methods = []*model.Method{
		labeled("get"), labeled("set"),
		labeled("incidental"), labeled("incidental"), labeled("incidental"),
	}
	Class(c, 21)
	assert.Contains(t, c.Stereotypes, "degenerate")
	assert.Contains(t, c.Stereotypes, "lazy-class")
}

func TestClassGettersAndSettersWithHeavyCollaborationIsEntity(t *testing.T) {
	// Accessors beyond plain getters, mutators beyond plain setters, no
	// controllers, and collaborators outnumbering everything else by 2x.
	c := model.NewClass(0)
	c.Methods = []*model.Method{
		labeled("get"), labeled("predicate"),
		labeled("set"), labeled("command"),
	}
	for i := 0; i < 8; i++ {
		c.Methods = append(c.Methods, labeled("collaborator"))
	}
	Class(c, 21)
	assert.Contains(t, c.Stereotypes, "entity")
}
