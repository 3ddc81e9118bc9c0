// Package render writes query trees in the four target dialects.
//
// Every renderer is a pure function of the tree: it never mutates the
// tree and always produces the same text for the same input. Rendering a
// tree built by the parser cannot fail.
package render

import (
	"fmt"
	"strings"

	"github.com/roach88/clq/internal/queryir"
)

// Dialect names a target surface syntax.
type Dialect string

const (
	CommonLogic Dialect = "commonlogic"
	Infix       Dialect = "infix"
	SPARQL      Dialect = "sparql"
	Prolog      Dialect = "prolog"
)

// Dialects lists every dialect in presentation order.
func Dialects() []Dialect {
	return []Dialect{CommonLogic, Infix, SPARQL, Prolog}
}

var aliases = map[string]Dialect{
	"commonlogic":  CommonLogic,
	"common-logic": CommonLogic,
	"cl":           CommonLogic,
	"prefix":       CommonLogic,
	"infix":        Infix,
	"infix-cl":     Infix,
	"sparql":       SPARQL,
	"sparql-like":  SPARQL,
	"prolog":       Prolog,
}

// ParseDialect resolves a dialect name or alias, ignoring case.
func ParseDialect(name string) (Dialect, error) {
	if d, ok := aliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return "", fmt.Errorf("unknown dialect %q (want one of %s)", name, dialectNames())
}

func dialectNames() string {
	names := make([]string, 0, len(Dialects()))
	for _, d := range Dialects() {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

// Options controls layout.
type Options struct {
	// Compact puts the whole rendering on one line: line breaks between
	// clauses become single spaces.
	Compact bool
}

func (o Options) newline() string {
	if o.Compact {
		return " "
	}
	return "\n"
}

// emitter renders one dialect.
type emitter interface {
	query(qb *queryir.QueryBlock) string
	expression(e queryir.Expression) string
}

func newEmitter(d Dialect, opts Options) emitter {
	nl := opts.newline()
	switch d {
	case CommonLogic:
		return &commonLogic{nl: nl}
	case Infix:
		return &infix{nl: nl}
	case SPARQL:
		return &sparql{nl: nl}
	case Prolog:
		return &prolog{nl: nl}
	default:
		panic(fmt.Sprintf("render: unknown dialect %q", d))
	}
}

// Render writes a query in dialect d.
func Render(qb *queryir.QueryBlock, d Dialect) string {
	return RenderWith(qb, d, Options{})
}

// RenderWith writes a query in dialect d with layout options.
func RenderWith(qb *queryir.QueryBlock, d Dialect, opts Options) string {
	return newEmitter(d, opts).query(qb)
}

// Expression writes a single expression in dialect d.
func Expression(e queryir.Expression, d Dialect) string {
	return ExpressionWith(e, d, Options{})
}

// ExpressionWith writes a single expression with layout options.
func ExpressionWith(e queryir.Expression, d Dialect, opts Options) string {
	return newEmitter(d, opts).expression(e)
}

// joinWith renders each element with f and joins the results with sep.
func joinWith[T any](items []T, sep string, f func(T) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = f(item)
	}
	return strings.Join(parts, sep)
}

func termString(t queryir.Term) string {
	return t.String()
}

// conjuncts returns the arguments of a top-level AND, or the expression
// itself.
func conjuncts(e queryir.Expression) []queryir.Expression {
	if op, ok := e.(*queryir.OperatorExpression); ok && !op.IsPredication() && op.Operator == queryir.OpAnd {
		return op.Arguments
	}
	return []queryir.Expression{e}
}

func unhandled(d Dialect, e *queryir.OperatorExpression) string {
	panic(fmt.Sprintf("render: %s has no rule for operator %q", d, e.Operator))
}
