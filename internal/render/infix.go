package render

import "github.com/roach88/clq/internal/queryir"

// infix writes infix Common Logic. The top-level AND or OR of the where
// clause is written bare, one operand per line:
//
//	select ?s ?o
//	where (ex:name ?s ?o)
//	and (?o = "Fred")
type infix struct {
	nl string
}

func (c *infix) query(qb *queryir.QueryBlock) string {
	return "select " + joinWith(qb.SelectTerms, " ", termString) + c.nl +
		"where " + c.top(qb.Where)
}

func (c *infix) top(e queryir.Expression) string {
	if op, ok := e.(*queryir.OperatorExpression); ok && !op.IsPredication() &&
		(op.Operator == queryir.OpAnd || op.Operator == queryir.OpOr) {
		return c.chain(op)
	}
	return c.expression(e)
}

func (c *infix) chain(e *queryir.OperatorExpression) string {
	return joinWith(e.Arguments, c.nl+e.Operator.Keyword()+" ", c.expression)
}

func (c *infix) expression(e queryir.Expression) string {
	switch e := e.(type) {
	case queryir.Term:
		return e.String()
	case *queryir.OperatorExpression:
		return c.operator(e)
	default:
		panic("render: unknown expression type")
	}
}

func (c *infix) operator(e *queryir.OperatorExpression) string {
	if e.IsPredication() {
		return applied(e.Predicate.String(), e.Arguments, c.expression)
	}
	switch op := e.Operator; {
	case op == queryir.OpAnd, op == queryir.OpOr:
		return "(" + c.chain(e) + ")"
	case op == queryir.OpNot:
		return applied(op.Keyword(), e.Arguments, c.expression)
	case op == queryir.OpIn, op.IsComparison(), op.IsValue():
		return "(" + joinWith(e.Arguments, " "+op.Keyword()+" ", c.expression) + ")"
	case op == queryir.OpEnumeration:
		return "[" + joinWith(e.Arguments, ", ", c.expression) + "]"
	case op.IsConstant():
		return op.Keyword()
	default:
		return unhandled(Infix, e)
	}
}
