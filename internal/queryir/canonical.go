package queryir

import "github.com/roach88/clq/internal/ir"

// ToIR encodes a query as an ir.Object for canonical marshaling:
//
//	{"select": [term...], "from": [term...], "where": expr}
//
// Terms encode as {"kind", "name"} for variables and {"kind", "value"}
// plus "qname" or "datatype" otherwise. Operator expressions encode as
// {"operator", "arguments"} plus "predicate" and "quad" when set.
// False flags are omitted so the encoding has no optional nulls.
func ToIR(qb *QueryBlock) ir.Object {
	sel := make(ir.Array, len(qb.SelectTerms))
	for i, t := range qb.SelectTerms {
		sel[i] = termToIR(t)
	}
	from := make(ir.Array, len(qb.FromList))
	for i, t := range qb.FromList {
		from[i] = termToIR(t)
	}
	obj := ir.Object{
		"select": sel,
		"from":   from,
	}
	if qb.Where != nil {
		obj["where"] = ExpressionToIR(qb.Where)
	}
	return obj
}

// ExpressionToIR encodes a single expression.
func ExpressionToIR(expr Expression) ir.Value {
	switch e := expr.(type) {
	case Term:
		return termToIR(e)
	case *OperatorExpression:
		args := make(ir.Array, len(e.Arguments))
		for i, a := range e.Arguments {
			args[i] = ExpressionToIR(a)
		}
		obj := ir.Object{
			"operator":  ir.String(e.Operator),
			"arguments": args,
		}
		if e.Predicate != nil {
			obj["predicate"] = termToIR(*e.Predicate)
		}
		if e.IsQuad {
			obj["quad"] = ir.Bool(true)
		}
		return obj
	default:
		panic("queryir: unknown expression type")
	}
}

func termToIR(t Term) ir.Object {
	obj := ir.Object{"kind": ir.String(t.Kind)}
	switch t.Kind {
	case TermVariable:
		obj["name"] = ir.String(t.Value)
	case TermLiteral:
		obj["value"] = ir.String(t.Value)
		obj["datatype"] = ir.String(t.Datatype)
	default:
		obj["value"] = ir.String(t.Value)
		if t.QName {
			obj["qname"] = ir.Bool(true)
		}
	}
	return obj
}

// Canonical returns the RFC 8785 encoding of the query.
func Canonical(qb *QueryBlock) ([]byte, error) {
	return ir.MarshalCanonical(ToIR(qb))
}

// Hash returns the content hash of the query tree. Queries that differ
// only in whitespace, keyword case or prefix/infix form hash the same.
func Hash(qb *QueryBlock) (string, error) {
	return ir.QueryHash(ToIR(qb))
}
