// Package lexer splits Common Logic query text into tokens.
//
// The tokenizer is a single left-to-right pass with no backtracking.
// Whitespace and commas separate tokens; brackets are tokens of their own.
// Reserved words are matched case-insensitively and normalized to their
// operator symbol, so "AND", "and" and "And" all yield the token AND.
package lexer

import (
	"strings"

	"github.com/roach88/clq/internal/ir"
	"github.com/roach88/clq/internal/queryir"
)

// Kind classifies a token.
type Kind int

const (
	Variable Kind = iota + 1
	String
	QName
	URI
	Bracket
	ReservedWord
	Number
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case String:
		return "string"
	case QName:
		return "qname"
	case URI:
		return "uri"
	case Bracket:
		return "bracket"
	case ReservedWord:
		return "reserved"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Token is one lexical unit.
//
// Text holds the payload without delimiters: a variable name without '?',
// a string without quotes, a URI without angle brackets, the operator
// symbol for a reserved word, the bracket character for a bracket.
// Offset is the byte offset of the token's first character in the query.
type Token struct {
	Kind   Kind
	Text   string
	Offset int
}

// IsOpen reports an opening bracket token.
func (t Token) IsOpen() bool {
	return t.Kind == Bracket && (t.Text == "(" || t.Text == "[")
}

// IsClose reports a closing bracket token.
func (t Token) IsClose() bool {
	return t.Kind == Bracket && (t.Text == ")" || t.Text == "]")
}

// IsTerm reports tokens that become a Term on their own.
func (t Token) IsTerm() bool {
	switch t.Kind {
	case Variable, String, QName, URI, Number:
		return true
	default:
		return false
	}
}

// Operator returns the operator of a reserved-word token.
func (t Token) Operator() (queryir.Operator, bool) {
	if t.Kind != ReservedWord {
		return "", false
	}
	return queryir.ParseOperator(t.Text)
}

// Is reports whether t is the reserved word for op.
func (t Token) Is(op queryir.Operator) bool {
	got, ok := t.Operator()
	return ok && got == op
}

// Datatype returns the XSD datatype of a number token: integer for plain
// digits, double when an exponent is present, decimal otherwise.
func (t Token) Datatype() string {
	switch {
	case t.Kind == String:
		return ir.XSDString
	case t.Kind != Number:
		return ""
	case strings.ContainsAny(t.Text, "eE"):
		return ir.XSDDouble
	case strings.Contains(t.Text, "."):
		return ir.XSDDecimal
	default:
		return ir.XSDInteger
	}
}

// String re-renders the token's surface form.
func (t Token) String() string {
	switch t.Kind {
	case Variable:
		return "?" + t.Text
	case String:
		if strings.Contains(t.Text, `"`) {
			return "'" + t.Text + "'"
		}
		return `"` + t.Text + `"`
	case URI:
		return "<" + t.Text + ">"
	case ReservedWord:
		return queryir.Operator(t.Text).Keyword()
	default:
		return t.Text
	}
}

// Join renders tokens as normalized text: single spaces between tokens,
// none just inside brackets. The result tokenizes back to the same kinds
// and texts.
func Join(tokens []Token) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 && !tokens[i-1].IsOpen() && !tok.IsClose() {
			b.WriteByte(' ')
		}
		b.WriteString(tok.String())
	}
	return b.String()
}
