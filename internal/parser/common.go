package parser

import (
	"fmt"

	"github.com/roach88/clq/internal/lexer"
	"github.com/roach88/clq/internal/queryir"
)

func (p *parser) fail(code queryir.ErrorCode, offset int, format string, args ...any) error {
	return queryir.NewSyntaxError(code, offset, p.query, format, args...)
}

func (p *parser) checkDepth(depth int, at lexer.Token) error {
	if depth > p.maxDepth() {
		return p.fail(queryir.ErrDepthExceeded, at.Offset, "expression nesting exceeds %d levels", p.maxDepth())
	}
	return nil
}

// checkArity enforces the argument count of op.
func (p *parser) checkArity(op queryir.Operator, n int, at lexer.Token) error {
	lo, hi := op.Arity()
	if n >= lo && (hi < 0 || n <= hi) {
		return nil
	}
	var want string
	switch {
	case hi < 0:
		want = fmt.Sprintf("at least %d", lo)
	case lo == hi:
		want = fmt.Sprintf("exactly %d", lo)
	default:
		want = fmt.Sprintf("%d to %d", lo, hi)
	}
	return p.fail(queryir.ErrArity, at.Offset, "%s takes %s argument(s), found %d", op.Keyword(), want, n)
}

// checkContext fails when expr cannot stand in the required context.
func (p *parser) checkContext(expr queryir.Expression, boolean bool, at lexer.Token) error {
	switch {
	case boolean && !queryir.IsBooleanExpression(expr):
		return p.fail(queryir.ErrValueInBoolean, at.Offset, "value expression found where boolean expression expected")
	case !boolean && !queryir.IsValueExpression(expr):
		return p.fail(queryir.ErrBooleanInValue, at.Offset, "boolean expression found where value expression expected")
	}
	return nil
}

func (p *parser) constantInValue(at lexer.Token) error {
	return p.fail(queryir.ErrBooleanInValue, at.Offset, "boolean constant %s found where term expected", at.String())
}

// matchBracket returns the index of the bracket closing tokens[open], or
// -1. Only brackets of the same shape are counted.
func matchBracket(tokens []lexer.Token, open int) int {
	var closer string
	switch tokens[open].Text {
	case "(":
		closer = ")"
	case "[":
		closer = "]"
	default:
		return -1
	}
	opener := tokens[open].Text

	depth := 0
	for i := open; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != lexer.Bracket {
			continue
		}
		switch tok.Text {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// tokenToTerm converts a term token. The caller checks IsTerm first.
func tokenToTerm(tok lexer.Token) queryir.Term {
	switch tok.Kind {
	case lexer.Variable:
		return queryir.Variable(tok.Text)
	case lexer.QName:
		return queryir.QNameResource(tok.Text)
	case lexer.URI:
		return queryir.Resource(tok.Text)
	default:
		return queryir.Literal(tok.Text, tok.Datatype())
	}
}

// predicateTerm converts the head of a predication, which must name a
// resource or a variable.
func (p *parser) predicateTerm(tok lexer.Token) (queryir.Term, error) {
	switch tok.Kind {
	case lexer.QName, lexer.URI, lexer.Variable:
		return tokenToTerm(tok), nil
	default:
		return queryir.Term{}, p.fail(queryir.ErrIllegalPredicate, tok.Offset, "found %s %q where a resource or variable predicate was expected", tok.Kind, tok.String())
	}
}

func (p *parser) unbalanced(tok lexer.Token) error {
	return p.fail(queryir.ErrUnbalancedBracket, tok.Offset, "unbalanced bracket %q", tok.Text)
}
