package queryir

// Operator is the symbol of an OperatorExpression.
type Operator string

const (
	OpAnd         Operator = "AND"
	OpOr          Operator = "OR"
	OpNot         Operator = "NOT"
	OpIn          Operator = "IN"
	OpEqual       Operator = "="
	OpLess        Operator = "<"
	OpGreater     Operator = ">"
	OpLessEq      Operator = "<="
	OpGreaterEq   Operator = ">="
	OpNotEqual    Operator = "!="
	OpPlus        Operator = "PLUS"
	OpMinus       Operator = "MINUS"
	OpEnumeration Operator = "ENUMERATION"
	OpPredication Operator = "PREDICATION"
	OpTrue        Operator = "TRUE"
	OpFalse       Operator = "FALSE"
)

// Operators lists every operator symbol. Renderer tests iterate it to make
// sure each dialect handles each symbol.
func Operators() []Operator {
	return []Operator{
		OpAnd, OpOr, OpNot, OpIn,
		OpEqual, OpLess, OpGreater, OpLessEq, OpGreaterEq, OpNotEqual,
		OpPlus, OpMinus,
		OpEnumeration, OpPredication, OpTrue, OpFalse,
	}
}

var keywords = map[Operator]string{
	OpAnd:         "and",
	OpOr:          "or",
	OpNot:         "not",
	OpIn:          "in",
	OpEqual:       "=",
	OpLess:        "<",
	OpGreater:     ">",
	OpLessEq:      "<=",
	OpGreaterEq:   ">=",
	OpNotEqual:    "!=",
	OpPlus:        "+",
	OpMinus:       "-",
	OpEnumeration: "enumeration",
	OpPredication: "predication",
	OpTrue:        "true",
	OpFalse:       "false",
}

// Keyword returns the lower-case surface keyword of the operator.
func (op Operator) Keyword() string {
	if kw, ok := keywords[op]; ok {
		return kw
	}
	return string(op)
}

// ParseOperator maps a normalized reserved-word symbol to its operator.
func ParseOperator(symbol string) (Operator, bool) {
	op := Operator(symbol)
	if _, ok := keywords[op]; !ok || op == OpEnumeration || op == OpPredication {
		return "", false
	}
	return op, true
}

// IsLogical reports AND, OR and NOT.
func (op Operator) IsLogical() bool {
	return op == OpAnd || op == OpOr || op == OpNot
}

// IsComparison reports the six comparison operators.
func (op Operator) IsComparison() bool {
	switch op {
	case OpEqual, OpLess, OpGreater, OpLessEq, OpGreaterEq, OpNotEqual:
		return true
	default:
		return false
	}
}

// IsBoolean reports connectives that produce a boolean.
func (op Operator) IsBoolean() bool {
	return op.IsLogical() || op.IsComparison() || op == OpIn
}

// IsValue reports connectives that produce a value.
func (op Operator) IsValue() bool {
	return op == OpPlus || op == OpMinus
}

// IsConnective reports operators that may head or join an expression.
func (op Operator) IsConnective() bool {
	return op.IsBoolean() || op.IsValue()
}

// IsConstant reports TRUE and FALSE.
func (op Operator) IsConstant() bool {
	return op == OpTrue || op == OpFalse
}

// TakesBooleanArguments reports whether the operator's arguments must be
// boolean expressions. IN and comparisons take values.
func (op Operator) TakesBooleanArguments() bool {
	return op.IsLogical()
}

// Arity returns the minimum and maximum argument counts. max < 0 means
// unbounded.
func (op Operator) Arity() (lo, hi int) {
	switch {
	case op == OpNot:
		return 1, 1
	case op.IsComparison(), op == OpIn:
		return 2, 2
	case op == OpAnd, op == OpOr, op.IsValue():
		return 1, -1
	case op.IsConstant():
		return 0, 0
	default:
		return 0, -1
	}
}
