package render

import "github.com/roach88/clq/internal/queryir"

// commonLogic writes canonical prefix Common Logic:
//
//	select (?s ?o)
//	where (and (ex:name ?s ?o)
//	(= ?o "Fred"))
type commonLogic struct {
	nl string
}

func (c *commonLogic) query(qb *queryir.QueryBlock) string {
	return "select (" + joinWith(qb.SelectTerms, " ", termString) + ")" + c.nl +
		"where " + c.expression(qb.Where)
}

func (c *commonLogic) expression(e queryir.Expression) string {
	switch e := e.(type) {
	case queryir.Term:
		return e.String()
	case *queryir.OperatorExpression:
		return c.operator(e)
	default:
		panic("render: unknown expression type")
	}
}

func (c *commonLogic) operator(e *queryir.OperatorExpression) string {
	if e.IsPredication() {
		return applied(e.Predicate.String(), e.Arguments, c.expression)
	}
	switch op := e.Operator; {
	case op == queryir.OpAnd, op == queryir.OpOr:
		return "(" + op.Keyword() + " " + joinWith(e.Arguments, c.nl, c.expression) + ")"
	case op == queryir.OpEnumeration:
		return "[" + joinWith(e.Arguments, ", ", c.expression) + "]"
	case op.IsConstant():
		return op.Keyword()
	case op == queryir.OpNot, op == queryir.OpIn, op.IsComparison(), op.IsValue():
		return applied(op.Keyword(), e.Arguments, c.expression)
	default:
		return unhandled(CommonLogic, e)
	}
}

// applied writes "(head a1 a2 ...)", or "(head)" with no arguments.
func applied(head string, args []queryir.Expression, f func(queryir.Expression) string) string {
	if len(args) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + joinWith(args, " ", f) + ")"
}
