package render

import "github.com/roach88/clq/internal/queryir"

// prolog writes the Prolog select form. A top-level AND becomes the
// implicit conjunction of the query body, and quad predications become
// q goals with resources marked by '!':
//
//	(select (?s ?o)
//	(q ?s !ex:name ?o)
//	(q ?s !rdf:type !<http://www.franz.com/example#Person>))
type prolog struct {
	nl string
}

func (c *prolog) query(qb *queryir.QueryBlock) string {
	return "(select (" + joinWith(qb.SelectTerms, " ", termString) + ")" + c.nl +
		joinWith(conjuncts(qb.Where), c.nl, c.expression) + ")"
}

func (c *prolog) expression(e queryir.Expression) string {
	switch e := e.(type) {
	case queryir.Term:
		return e.String()
	case *queryir.OperatorExpression:
		return c.operator(e)
	default:
		panic("render: unknown expression type")
	}
}

func (c *prolog) operator(e *queryir.OperatorExpression) string {
	if e.IsPredication() {
		if e.IsQuad {
			return c.quad(e)
		}
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
		return unhandled(Prolog, e)
	}
}

// quad writes (q subject !predicate object graph...).
func (c *prolog) quad(e *queryir.OperatorExpression) string {
	parts := make([]queryir.Expression, 0, len(e.Arguments)+1)
	if len(e.Arguments) > 0 {
		parts = append(parts, e.Arguments[0])
	}
	parts = append(parts, *e.Predicate)
	if len(e.Arguments) > 1 {
		parts = append(parts, e.Arguments[1:]...)
	}
	return applied("q", parts, c.quadArgument)
}

func (c *prolog) quadArgument(e queryir.Expression) string {
	if t, ok := e.(queryir.Term); ok && t.IsResource() {
		return "!" + t.String()
	}
	return c.expression(e)
}
