package analyzer

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/stereotype/internal/model"
	"github.com/standardbeagle/stereotype/internal/primitives"
	"github.com/standardbeagle/stereotype/internal/types"
)

const nsAttr = `xmlns:src="http://www.srcML.org/srcML/src"`

func parseFragment(t *testing.T, xml string) *xmlquery.Node {
	t.Helper()
	root, err := xmlquery.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	node := xmlquery.FindOne(root, "/*")
	require.NotNil(t, node)
	return node
}

func baseInput() Input {
	return Input{
		Language:    types.CPP,
		Attributes:  map[string]model.Variable{"this": model.NewVariable("this")},
		MethodNames: map[string]struct{}{},
		Primitives:  primitives.New(),
	}
}

func TestAnalyzeSimpleGetter(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>int</src:name></src:type>
		<src:name>getX</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content>
			<src:return>return <src:expr><src:name>x</src:name></src:expr>;</src:return>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	in := baseInput()
	in.Attributes["x"] = model.Variable{Name: "x", Type: "int"}

	m := Analyze(node, "//function[1]", 0, in)

	assert.Equal(t, "getX", m.Name)
	assert.False(t, m.IsConstructorDtor)
	assert.False(t, m.IsEmpty)
	assert.True(t, m.AttributeReturned)
	require.Len(t, m.Returns, 1)
	assert.True(t, m.Returns[0].Simple)
	assert.Equal(t, "x", m.Returns[0].AttributeName)
	assert.Equal(t, "int", m.ReturnTypeParsed)
}

func TestAnalyzeConstructorStopsEarly(t *testing.T) {
	xml := `<src:constructor ` + nsAttr + `>
		<src:name>Foo</src:name>
		<src:parameter_list><src:parameter><src:decl><src:type><src:name>Foo</src:name></src:type><src:name>other</src:name></src:decl></src:parameter></src:parameter_list>
		<src:block><src:block_content></src:block_content></src:block>
	</src:constructor>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//constructor[1]", 0, baseInput())

	assert.True(t, m.IsConstructorDtor)
	assert.False(t, m.IsDestructor)
	assert.Contains(t, m.ParametersList, "Foo")
	assert.Empty(t, m.ReturnTypeParsed, "constructor/destructor analysis returns before return-type derivation")
}

func TestAnalyzeDestructor(t *testing.T) {
	xml := `<src:destructor ` + nsAttr + `>
		<src:name>~Foo</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content></src:block_content></src:block>
	</src:destructor>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//destructor[1]", 0, baseInput())

	assert.True(t, m.IsConstructorDtor)
	assert.True(t, m.IsDestructor)
}

func TestAnalyzeEmptyBody(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>noop</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content></src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//function[1]", 0, baseInput())
	assert.True(t, m.IsEmpty)
}

func TestAnalyzeEmptyBodyIgnoresComments(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>noop</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content><comment>TODO</comment></src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//function[1]", 0, baseInput())
	assert.True(t, m.IsEmpty)
}

func TestAnalyzeIntraClassCall(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>doWork</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content>
			<src:expr_stmt><src:expr><src:call><src:name>helper</src:name><src:argument_list></src:argument_list></src:call></src:expr></src:expr_stmt>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	in := baseInput()
	in.MethodNames["helper"] = struct{}{}

	m := Analyze(node, "//function[1]", 0, in)
	require.Len(t, m.FunctionCalls, 1)
	assert.Equal(t, "helper", m.FunctionCalls[0].Target)
	assert.Equal(t, model.CallFunction, m.FunctionCalls[0].Kind)
}

func TestAnalyzeIgnoredCallNotCounted(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>doWork</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content>
			<src:expr_stmt><src:expr><src:call><src:name>std::move</src:name><src:argument_list></src:argument_list></src:call></src:expr></src:expr_stmt>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//function[1]", 0, baseInput())
	assert.Empty(t, m.FunctionCalls)
	assert.Empty(t, m.MethodCalls)
	assert.Equal(t, 0, m.NumExternalFunctionCalls)
}

func TestAnalyzeCallOnAttribute(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>doWork</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content>
			<src:expr_stmt><src:expr><src:call><src:name><src:name>logger</src:name><src:operator>.</src:operator><src:name>flush</src:name></src:name><src:argument_list></src:argument_list></src:call></src:expr></src:expr_stmt>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	in := baseInput()
	in.Attributes["logger"] = model.Variable{Name: "logger", Type: "Logger", IsNonPrimitive: true, IsExternalNonPrimitive: true}

	m := Analyze(node, "//function[1]", 0, in)
	require.Len(t, m.MethodCalls, 1)
	assert.Equal(t, "flush", m.MethodCalls[0].Target)
	assert.Equal(t, model.CallOnAttribute, m.MethodCalls[0].Kind)
}

func TestAnalyzeSetterAssignment(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name></src:type>
		<src:name>setX</src:name>
		<src:parameter_list><src:parameter><src:decl><src:type><src:name>int</src:name></src:type><src:name>v</src:name></src:decl></src:parameter></src:parameter_list>
		<src:block><src:block_content>
			<src:expr_stmt><src:expr><src:name>x</src:name><src:operator>=</src:operator><src:name>v</src:name></src:expr></src:expr_stmt>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	in := baseInput()
	in.Attributes["x"] = model.Variable{Name: "x", Type: "int"}

	m := Analyze(node, "//function[1]", 0, in)
	assert.Equal(t, 1, m.NumAttributesModified)
}

func TestAnalyzeConstructorCallExpression(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>Foo</src:name></src:type>
		<src:name>makeFoo</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content>
			<src:return>return <src:expr><src:call><src:name>Foo</src:name><src:argument_list></src:argument_list></src:call></src:expr>;</src:return>
		</src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//function[1]", 0, baseInput())
	require.Len(t, m.Returns, 1)
	assert.True(t, m.Returns[0].ConstructorCall)
	assert.True(t, m.IsFactory)
	assert.True(t, m.IsStrictFactory)
}

func TestAnalyzeReturnVoidPointer(t *testing.T) {
	xml := `<src:function ` + nsAttr + `>
		<src:type><src:name>void</src:name>*</src:type>
		<src:name>rawHandle</src:name>
		<src:parameter_list></src:parameter_list>
		<src:block><src:block_content></src:block_content></src:block>
	</src:function>`
	node := parseFragment(t, xml)

	m := Analyze(node, "//function[1]", 0, baseInput())
	assert.True(t, m.ReturnsVoidPointer)
}

func TestIsIgnoredMatchesBareAndQualified(t *testing.T) {
	assert.True(t, IsIgnored("std::move", types.CPP))
	assert.True(t, IsIgnored("move", types.CPP))
	assert.True(t, IsIgnored("System.out.println", types.Java))
	assert.False(t, IsIgnored("compute", types.CPP))
}
