package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperatorClasses(t *testing.T) {
	tests := []struct {
		op         Operator
		logical    bool
		comparison bool
		boolean    bool
		value      bool
		connective bool
	}{
		{OpAnd, true, false, true, false, true},
		{OpOr, true, false, true, false, true},
		{OpNot, true, false, true, false, true},
		{OpIn, false, false, true, false, true},
		{OpEqual, false, true, true, false, true},
		{OpNotEqual, false, true, true, false, true},
		{OpLessEq, false, true, true, false, true},
		{OpPlus, false, false, false, true, true},
		{OpMinus, false, false, false, true, true},
		{OpEnumeration, false, false, false, false, false},
		{OpPredication, false, false, false, false, false},
		{OpTrue, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.logical, tt.op.IsLogical(), "logical")
			assert.Equal(t, tt.comparison, tt.op.IsComparison(), "comparison")
			assert.Equal(t, tt.boolean, tt.op.IsBoolean(), "boolean")
			assert.Equal(t, tt.value, tt.op.IsValue(), "value")
			assert.Equal(t, tt.connective, tt.op.IsConnective(), "connective")
		})
	}
}

func TestOperatorKeyword(t *testing.T) {
	assert.Equal(t, "and", OpAnd.Keyword())
	assert.Equal(t, "in", OpIn.Keyword())
	assert.Equal(t, "<=", OpLessEq.Keyword())
	assert.Equal(t, "+", OpPlus.Keyword())
	assert.Equal(t, "-", OpMinus.Keyword())
	assert.Equal(t, "false", OpFalse.Keyword())

	for _, op := range Operators() {
		assert.NotEmpty(t, op.Keyword(), op)
	}
}

func TestParseOperator(t *testing.T) {
	for _, sym := range []string{"AND", "OR", "NOT", "IN", "TRUE", "FALSE", "=", "<", ">", "<=", ">=", "!=", "PLUS", "MINUS"} {
		op, ok := ParseOperator(sym)
		assert.True(t, ok, sym)
		assert.Equal(t, Operator(sym), op)
	}

	for _, sym := range []string{"and", "ENUMERATION", "PREDICATION", "XOR", ""} {
		_, ok := ParseOperator(sym)
		assert.False(t, ok, sym)
	}
}

func TestOperatorArity(t *testing.T) {
	tests := []struct {
		op     Operator
		lo, hi int
	}{
		{OpNot, 1, 1},
		{OpEqual, 2, 2},
		{OpIn, 2, 2},
		{OpAnd, 1, -1},
		{OpPlus, 1, -1},
		{OpTrue, 0, 0},
		{OpEnumeration, 0, -1},
	}
	for _, tt := range tests {
		lo, hi := tt.op.Arity()
		assert.Equal(t, tt.lo, lo, tt.op)
		assert.Equal(t, tt.hi, hi, tt.op)
	}
}

func TestTakesBooleanArguments(t *testing.T) {
	assert.True(t, OpAnd.TakesBooleanArguments())
	assert.True(t, OpNot.TakesBooleanArguments())
	assert.False(t, OpIn.TakesBooleanArguments())
	assert.False(t, OpEqual.TakesBooleanArguments())
	assert.False(t, OpPlus.TakesBooleanArguments())
}
