package parser

import (
	"github.com/roach88/clq/internal/lexer"
	"github.com/roach88/clq/internal/queryir"
)

// parseExpressions parses a sequence of prefix expressions. boolean is
// the context every expression in the sequence must satisfy.
func (p *parser) parseExpressions(tokens []lexer.Token, boolean bool, depth int) ([]queryir.Expression, error) {
	exprs := []queryir.Expression{}
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		switch {
		case tok.IsTerm():
			if boolean && tok.Kind != lexer.Variable {
				return nil, p.fail(queryir.ErrTermForBoolean, tok.Offset, "term %s found where boolean expression expected", tok.String())
			}
			exprs = append(exprs, tokenToTerm(tok))
			i++

		case tok.Is(queryir.OpTrue), tok.Is(queryir.OpFalse):
			if !boolean {
				return nil, p.constantInValue(tok)
			}
			op, _ := tok.Operator()
			exprs = append(exprs, queryir.NewOperator(op))
			i++

		case tok.Kind == lexer.ReservedWord:
			return nil, p.fail(queryir.ErrOperatorForTerm, tok.Offset, "operator %q found where term expected", tok.String())

		case tok.IsClose():
			return nil, p.unbalanced(tok)

		default:
			end := matchBracket(tokens, i)
			if end < 0 {
				return nil, p.unbalanced(tok)
			}
			expr, err := p.parseBracket(tokens[i:end+1], boolean, depth+1)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)
			i = end + 1
		}
	}
	return exprs, nil
}

// parseBracket parses one bracket group, brackets included.
func (p *parser) parseBracket(group []lexer.Token, boolean bool, depth int) (queryir.Expression, error) {
	open := group[0]
	if err := p.checkDepth(depth, open); err != nil {
		return nil, err
	}
	inner := group[1 : len(group)-1]

	if open.Text == "[" {
		if boolean {
			return nil, p.fail(queryir.ErrEnumerationForBoolean, open.Offset, "enumeration %s found where boolean expression expected", lexer.Join(group))
		}
		elems, err := p.parseExpressions(inner, false, depth)
		if err != nil {
			return nil, err
		}
		return queryir.NewOperator(queryir.OpEnumeration, elems...), nil
	}

	if len(inner) == 0 {
		return nil, p.fail(queryir.ErrEmptyExpression, open.Offset, "empty expression ()")
	}

	head := inner[0]
	switch {
	case head.IsOpen():
		end := matchBracket(inner, 0)
		switch {
		case end < 0:
			return nil, p.unbalanced(head)
		case end == len(inner)-1:
			return p.parseBracket(inner, boolean, depth+1)
		default:
			return nil, p.fail(queryir.ErrNestedExpression, inner[end+1].Offset, "expression cannot be applied to arguments")
		}

	case head.IsClose():
		return nil, p.unbalanced(head)

	case head.Kind == lexer.ReservedWord:
		return p.parseConnective(head, inner[1:], boolean, depth)

	case !boolean:
		return nil, p.fail(queryir.ErrUnsupportedFunction, head.Offset, "function expressions are not supported: %s", lexer.Join(group))

	default:
		relation, err := p.predicateTerm(head)
		if err != nil {
			return nil, err
		}
		args, err := p.parseExpressions(inner[1:], false, depth)
		if err != nil {
			return nil, err
		}
		return queryir.NewPredication(relation, args, p.opts.AllQuads), nil
	}
}

// parseConnective parses "(op args...)" once the head is known to be a
// reserved word.
func (p *parser) parseConnective(head lexer.Token, rest []lexer.Token, boolean bool, depth int) (queryir.Expression, error) {
	op, _ := head.Operator()

	if op.IsConstant() {
		if !boolean {
			return nil, p.constantInValue(head)
		}
		if len(rest) != 0 {
			return nil, p.fail(queryir.ErrMalformedConstant, rest[0].Offset, "%s takes no arguments", op.Keyword())
		}
		return queryir.NewOperator(op), nil
	}
	if op.IsBoolean() && !boolean {
		return nil, p.fail(queryir.ErrBooleanInValue, head.Offset, "boolean connective %q found where value expression expected", op.Keyword())
	}
	if op.IsValue() && boolean {
		return nil, p.fail(queryir.ErrValueInBoolean, head.Offset, "value connective %q found where boolean expression expected", op.Keyword())
	}

	args, err := p.parseExpressions(rest, op.TakesBooleanArguments(), depth)
	if err != nil {
		return nil, err
	}
	if err := p.checkArity(op, len(args), head); err != nil {
		return nil, err
	}
	return queryir.NewOperator(op, args...), nil
}
