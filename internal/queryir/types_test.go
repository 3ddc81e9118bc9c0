package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clq/internal/ir"
)

func TestTermConstructors(t *testing.T) {
	tests := []struct {
		name string
		term Term
		kind TermKind
		str  string
	}{
		{"uri resource", Resource("http://ex.org/Person"), TermResource, "<http://ex.org/Person>"},
		{"qname resource", QNameResource("ex:name"), TermResource, "ex:name"},
		{"string literal", Literal("Fred", ""), TermLiteral, `"Fred"`},
		{"quoted literal", Literal(`say "hi"`, ir.XSDString), TermLiteral, `'say "hi"'`},
		{"integer literal", Literal("12", ir.XSDInteger), TermLiteral, "12"},
		{"typed literal", Literal("2024-01-01", ir.XSDDate), TermLiteral, `"2024-01-01"<` + ir.XSDDate + `>`},
		{"variable", Variable("s"), TermVariable, "?s"},
		{"variable with mark", Variable("?o"), TermVariable, "?o"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.term.Kind)
			assert.Equal(t, tt.str, tt.term.String())
		})
	}
}

func TestTermStructuralEquality(t *testing.T) {
	assert.Equal(t, Variable("s"), Variable("?s"))
	assert.True(t, Literal("Fred", "") == Literal("Fred", ir.XSDString))
	assert.False(t, Resource("ex:name") == QNameResource("ex:name"))
	assert.False(t, Literal("1", ir.XSDInteger) == Literal("1", ir.XSDDecimal))
}

func TestTermPredicates(t *testing.T) {
	assert.True(t, Resource("u").IsResource())
	assert.True(t, Literal("x", "").IsLiteral())
	assert.True(t, Variable("x").IsVariable())
	assert.False(t, Variable("x").IsResource())
}

func TestNewPredication(t *testing.T) {
	rel := QNameResource("ex:name")
	p := NewPredication(rel, []Expression{Variable("s"), Variable("o")}, true)

	require.True(t, p.IsPredication())
	assert.Equal(t, OpPredication, p.Operator)
	assert.Equal(t, rel, *p.Predicate)
	assert.True(t, p.IsQuad)
	assert.Len(t, p.Arguments, 2)

	and := NewOperator(OpAnd, p)
	assert.False(t, and.IsPredication())
}

func TestExpressionContexts(t *testing.T) {
	pred := NewPredication(QNameResource("ex:p"), []Expression{Variable("s")}, false)
	tests := []struct {
		name    string
		expr    Expression
		boolean bool
		value   bool
	}{
		{"variable", Variable("x"), true, true},
		{"literal", Literal("1", ir.XSDInteger), false, true},
		{"resource", QNameResource("ex:a"), false, true},
		{"predication", pred, true, false},
		{"and", NewOperator(OpAnd, pred), true, false},
		{"comparison", NewOperator(OpEqual, Variable("x"), Variable("y")), true, false},
		{"in", NewOperator(OpIn, Variable("x"), NewOperator(OpEnumeration)), true, false},
		{"plus", NewOperator(OpPlus, Variable("x"), Variable("y")), false, true},
		{"enumeration", NewOperator(OpEnumeration, Variable("x")), false, true},
		{"true", NewOperator(OpTrue), true, false},
		{"false", NewOperator(OpFalse), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.boolean, IsBooleanExpression(tt.expr), "boolean")
			assert.Equal(t, tt.value, IsValueExpression(tt.expr), "value")
		})
	}
}

func TestExpressionIsSealed(t *testing.T) {
	var _ Expression = Term{}
	var _ Expression = &OperatorExpression{}
}
