package render

import "github.com/roach88/clq/internal/queryir"

// sparql writes a SPARQL-like select. Each clause of the where body ends
// in " .":
//
//	select ?s ?o
//	where { ?s ex:name ?o .
//	?o = "Fred" . }
type sparql struct {
	nl string
}

func (c *sparql) query(qb *queryir.QueryBlock) string {
	return "select " + joinWith(qb.SelectTerms, " ", termString) + c.nl +
		"where { " + c.clauses(conjuncts(qb.Where)) + " }"
}

func (c *sparql) clauses(exprs []queryir.Expression) string {
	return joinWith(exprs, c.nl, func(e queryir.Expression) string {
		return c.render(e, false) + " ."
	})
}

// group writes a braced graph pattern.
func (c *sparql) group(e queryir.Expression) string {
	return "{ " + c.clauses(conjuncts(e)) + " }"
}

func (c *sparql) expression(e queryir.Expression) string {
	return c.render(e, false)
}

func (c *sparql) nested(e queryir.Expression) string {
	return c.render(e, true)
}

// render writes e. nested is true for operands of another operator, where
// comparisons need parentheses.
func (c *sparql) render(e queryir.Expression, nested bool) string {
	switch e := e.(type) {
	case queryir.Term:
		return e.String()
	case *queryir.OperatorExpression:
		return c.operator(e, nested)
	default:
		panic("render: unknown expression type")
	}
}

func (c *sparql) operator(e *queryir.OperatorExpression, nested bool) string {
	if e.IsPredication() {
		return c.pattern(e)
	}
	switch op := e.Operator; {
	case op == queryir.OpAnd:
		return c.group(e)
	case op == queryir.OpOr:
		return joinWith(e.Arguments, " union ", c.group)
	case op == queryir.OpNot:
		if isPattern(e.Arguments[0]) {
			return "filter not exists " + c.group(e.Arguments[0])
		}
		return "!(" + c.expression(e.Arguments[0]) + ")"
	case op == queryir.OpIn:
		return c.nested(e.Arguments[0]) + " in " + c.list(e.Arguments[1])
	case op.IsComparison():
		s := joinWith(e.Arguments, " "+op.Keyword()+" ", c.nested)
		if nested {
			return "(" + s + ")"
		}
		return s
	case op.IsValue():
		return "(" + joinWith(e.Arguments, " "+op.Keyword()+" ", c.nested) + ")"
	case op == queryir.OpEnumeration:
		return "(" + joinWith(e.Arguments, ", ", c.nested) + ")"
	case op.IsConstant():
		return op.Keyword()
	default:
		return unhandled(SPARQL, e)
	}
}

// pattern writes "subject predicate object ...".
func (c *sparql) pattern(e *queryir.OperatorExpression) string {
	if len(e.Arguments) == 0 {
		return e.Predicate.String()
	}
	s := c.nested(e.Arguments[0]) + " " + e.Predicate.String()
	if len(e.Arguments) > 1 {
		s += " " + joinWith(e.Arguments[1:], " ", c.nested)
	}
	return s
}

// list writes the right-hand side of IN.
func (c *sparql) list(e queryir.Expression) string {
	if op, ok := e.(*queryir.OperatorExpression); ok && op.Operator == queryir.OpEnumeration && !op.IsPredication() {
		return c.nested(e)
	}
	return "(" + c.nested(e) + ")"
}

// isPattern reports expressions that render as graph patterns rather than
// filter expressions.
func isPattern(e queryir.Expression) bool {
	op, ok := e.(*queryir.OperatorExpression)
	if !ok {
		return false
	}
	return op.IsPredication() || op.Operator == queryir.OpAnd || op.Operator == queryir.OpOr
}
