package queryir

import (
	"strings"

	"github.com/roach88/clq/internal/ir"
)

// Expression is a node of the where-clause tree.
//
// This is a sealed interface. Only Term and *OperatorExpression implement
// it, which lets renderers switch exhaustively.
type Expression interface {
	expressionNode()
}

// TermKind tags the three term variants.
type TermKind string

const (
	TermResource TermKind = "resource"
	TermLiteral  TermKind = "literal"
	TermVariable TermKind = "variable"
)

// Term is a leaf of the tree.
//
// For a resource, Value holds the URI or, when QName is set, the qualified
// name exactly as written (prefixes are never expanded). For a literal,
// Value holds the label and Datatype the XSD identifier. For a variable,
// Value holds the name without the leading '?'.
//
// Term is comparable; == is structural equality.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	QName    bool
}

func (Term) expressionNode() {}

// Resource creates a resource term from a URI.
func Resource(uri string) Term {
	return Term{Kind: TermResource, Value: uri}
}

// QNameResource creates a resource term recorded by its qualified name.
func QNameResource(qname string) Term {
	return Term{Kind: TermResource, Value: qname, QName: true}
}

// Literal creates a literal term. An empty datatype means xsd:string.
func Literal(label, datatype string) Term {
	if datatype == "" {
		datatype = ir.XSDString
	}
	return Term{Kind: TermLiteral, Value: label, Datatype: datatype}
}

// Variable creates a variable term. A leading '?' is stripped.
func Variable(name string) Term {
	return Term{Kind: TermVariable, Value: strings.TrimPrefix(name, "?")}
}

func (t Term) IsResource() bool { return t.Kind == TermResource }
func (t Term) IsLiteral() bool  { return t.Kind == TermLiteral }
func (t Term) IsVariable() bool { return t.Kind == TermVariable }

// String returns the Common Logic surface form of the term.
func (t Term) String() string {
	switch t.Kind {
	case TermVariable:
		return "?" + t.Value
	case TermResource:
		if t.QName {
			return t.Value
		}
		return "<" + t.Value + ">"
	case TermLiteral:
		if ir.IsNumericDatatype(t.Datatype) {
			return t.Value
		}
		q := `"`
		if strings.Contains(t.Value, `"`) {
			q = "'"
		}
		if t.Datatype == ir.XSDString {
			return q + t.Value + q
		}
		return q + t.Value + q + "<" + t.Datatype + ">"
	default:
		return t.Value
	}
}

// OperatorExpression applies an operator to ordered arguments.
//
// Predicate is set only on predications. IsQuad marks a predication that
// renders as a quad pattern; it is set by the caller, never inferred.
type OperatorExpression struct {
	Operator  Operator
	Arguments []Expression
	Predicate *Term
	IsQuad    bool
}

func (*OperatorExpression) expressionNode() {}

// NewOperator creates an operator expression.
func NewOperator(op Operator, args ...Expression) *OperatorExpression {
	return &OperatorExpression{Operator: op, Arguments: args}
}

// NewPredication creates a predication of relation over args.
func NewPredication(relation Term, args []Expression, quad bool) *OperatorExpression {
	return &OperatorExpression{
		Operator:  OpPredication,
		Arguments: args,
		Predicate: &relation,
		IsQuad:    quad,
	}
}

// IsPredication reports whether the node is a triple or quad pattern.
func (e *OperatorExpression) IsPredication() bool {
	return e.Predicate != nil
}

// QueryBlock is a parsed query.
//
// FromList is always empty: from-clauses are accepted and ignored.
type QueryBlock struct {
	SelectTerms []Term
	FromList    []Term
	Where       Expression
}

// IsBooleanExpression reports whether expr can stand where a boolean is
// required. Variables qualify; other terms do not.
func IsBooleanExpression(expr Expression) bool {
	switch e := expr.(type) {
	case Term:
		return e.IsVariable()
	case *OperatorExpression:
		return e.IsPredication() || e.Operator.IsBoolean() || e.Operator.IsConstant()
	default:
		return false
	}
}

// IsValueExpression reports whether expr can stand where a value is
// required.
func IsValueExpression(expr Expression) bool {
	switch e := expr.(type) {
	case Term:
		return true
	case *OperatorExpression:
		return !e.IsPredication() && (e.Operator.IsValue() || e.Operator == OpEnumeration)
	default:
		return false
	}
}
