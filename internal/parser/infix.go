package parser

import (
	"github.com/roach88/clq/internal/lexer"
	"github.com/roach88/clq/internal/queryir"
)

// operandLength returns how many tokens the operand at tokens[0] spans:
// a term, true or false, a bracket group, or "not" followed by an operand.
func (p *parser) operandLength(tokens []lexer.Token) (int, error) {
	n := 0
	for n < len(tokens) && tokens[n].Is(queryir.OpNot) {
		n++
	}
	if n == len(tokens) {
		return 0, p.fail(queryir.ErrDanglingConnective, tokens[n-1].Offset, "not expects an operand")
	}

	tok := tokens[n]
	switch {
	case tok.IsTerm(), tok.Is(queryir.OpTrue), tok.Is(queryir.OpFalse):
		return n + 1, nil
	case tok.IsOpen():
		end := matchBracket(tokens, n)
		if end < 0 {
			return 0, p.unbalanced(tok)
		}
		return end + 1, nil
	case tok.IsClose():
		return 0, p.unbalanced(tok)
	default:
		return 0, p.fail(queryir.ErrOperatorForTerm, tok.Offset, "operator %q found where term expected", tok.String())
	}
}

// splitInfix separates tokens into alternating operands and connectives.
func (p *parser) splitInfix(tokens []lexer.Token) ([][]lexer.Token, []lexer.Token, error) {
	var operands [][]lexer.Token
	var conns []lexer.Token

	for i := 0; i < len(tokens); {
		n, err := p.operandLength(tokens[i:])
		if err != nil {
			return nil, nil, err
		}
		operands = append(operands, tokens[i:i+n])
		i += n
		if i == len(tokens) {
			break
		}

		tok := tokens[i]
		op, ok := tok.Operator()
		if !ok || !op.IsConnective() || op == queryir.OpNot {
			return nil, nil, p.fail(queryir.ErrMissingConnective, tok.Offset, "found %q where a connective was expected", tok.String())
		}
		conns = append(conns, tok)
		i++
		if i == len(tokens) {
			return nil, nil, p.fail(queryir.ErrDanglingConnective, tok.Offset, "%s connective expects another operand", op.Keyword())
		}
	}
	return operands, conns, nil
}

// parseInfix parses a connective-separated sequence of operands.
func (p *parser) parseInfix(tokens []lexer.Token, boolean bool, depth int) (queryir.Expression, error) {
	if len(tokens) == 0 {
		return nil, p.fail(queryir.ErrMissingOperand, -1, "found nothing where an operand was expected")
	}
	operands, conns, err := p.splitInfix(tokens)
	if err != nil {
		return nil, err
	}

	if len(conns) == 0 {
		return p.parseOperand(operands[0], boolean, depth)
	}

	ops := make([]queryir.Operator, len(conns))
	for i, c := range conns {
		ops[i], _ = c.Operator()
	}

	// operand i is the right-hand side of conns[i-1]; operand 0 belongs to
	// the first connective.
	exprs := make([]queryir.Expression, len(operands))
	for i, toks := range operands {
		owner := ops[max(i-1, 0)]
		exprs[i], err = p.parseOperand(toks, owner.TakesBooleanArguments(), depth)
		if err != nil {
			return nil, err
		}
	}

	acc := []queryir.Expression{exprs[0], exprs[1]}
	cur, curTok := ops[0], conns[0]
	for i := 1; i < len(ops); i++ {
		if ops[i] != cur {
			node := queryir.NewOperator(cur, acc...)
			if err := p.checkArity(cur, len(acc), curTok); err != nil {
				return nil, err
			}
			if err := p.checkContext(node, ops[i].TakesBooleanArguments(), conns[i]); err != nil {
				return nil, err
			}
			acc = []queryir.Expression{node}
			cur = ops[i]
		}
		curTok = conns[i]
		acc = append(acc, exprs[i+1])
	}

	node := queryir.NewOperator(cur, acc...)
	if err := p.checkArity(cur, len(acc), curTok); err != nil {
		return nil, err
	}
	if err := p.checkContext(node, boolean, curTok); err != nil {
		return nil, err
	}
	return node, nil
}

// parseOperand parses one operand found by operandLength.
func (p *parser) parseOperand(tokens []lexer.Token, boolean bool, depth int) (queryir.Expression, error) {
	tok := tokens[0]
	switch {
	case tok.Is(queryir.OpNot):
		if !boolean {
			return nil, p.fail(queryir.ErrBooleanInValue, tok.Offset, "not found where value expression expected")
		}
		if err := p.checkDepth(depth+1, tok); err != nil {
			return nil, err
		}
		arg, err := p.parseOperand(tokens[1:], true, depth+1)
		if err != nil {
			return nil, err
		}
		return queryir.NewOperator(queryir.OpNot, arg), nil

	case tok.IsTerm():
		if boolean && tok.Kind != lexer.Variable {
			return nil, p.fail(queryir.ErrTermForBoolean, tok.Offset, "term %s found where boolean expression expected", tok.String())
		}
		return tokenToTerm(tok), nil

	case tok.Is(queryir.OpTrue), tok.Is(queryir.OpFalse):
		if !boolean {
			return nil, p.constantInValue(tok)
		}
		op, _ := tok.Operator()
		return queryir.NewOperator(op), nil

	default:
		return p.parseInfixGroup(tokens, boolean, depth+1)
	}
}

// parseValueList parses juxtaposed value operands, as found in
// enumerations and predication arguments.
func (p *parser) parseValueList(tokens []lexer.Token, depth int) ([]queryir.Expression, error) {
	exprs := []queryir.Expression{}
	for i := 0; i < len(tokens); {
		n, err := p.operandLength(tokens[i:])
		if err != nil {
			return nil, err
		}
		expr, err := p.parseOperand(tokens[i:i+n], false, depth)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		i += n
	}
	return exprs, nil
}

// hasTopLevelConnective reports a binary connective outside any bracket.
func hasTopLevelConnective(tokens []lexer.Token) bool {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.IsOpen() {
			if end := matchBracket(tokens, i); end > 0 {
				i = end
			}
			continue
		}
		if op, ok := tok.Operator(); ok && op.IsConnective() && op != queryir.OpNot {
			return true
		}
	}
	return false
}

// parseInfixGroup parses a bracket group inside infix text.
func (p *parser) parseInfixGroup(group []lexer.Token, boolean bool, depth int) (queryir.Expression, error) {
	open := group[0]
	if err := p.checkDepth(depth, open); err != nil {
		return nil, err
	}
	inner := group[1 : len(group)-1]

	if open.Text == "[" {
		if boolean {
			return nil, p.fail(queryir.ErrEnumerationForBoolean, open.Offset, "enumeration %s found where boolean expression expected", lexer.Join(group))
		}
		elems, err := p.parseValueList(inner, depth)
		if err != nil {
			return nil, err
		}
		return queryir.NewOperator(queryir.OpEnumeration, elems...), nil
	}

	if len(inner) == 0 {
		return nil, p.fail(queryir.ErrEmptyExpression, open.Offset, "empty expression ()")
	}

	head := inner[0]
	if hasTopLevelConnective(inner) || head.Is(queryir.OpNot) {
		return p.parseInfix(inner, boolean, depth)
	}

	switch {
	case head.IsOpen():
		end := matchBracket(inner, 0)
		switch {
		case end < 0:
			return nil, p.unbalanced(head)
		case end == len(inner)-1:
			return p.parseInfixGroup(inner, boolean, depth+1)
		default:
			return nil, p.fail(queryir.ErrMissingConnective, inner[end+1].Offset, "found %q where a connective was expected", inner[end+1].String())
		}

	case head.IsClose():
		return nil, p.unbalanced(head)

	case head.Is(queryir.OpTrue), head.Is(queryir.OpFalse):
		op, _ := head.Operator()
		if len(inner) != 1 {
			return nil, p.fail(queryir.ErrMalformedConstant, inner[1].Offset, "%s takes no arguments", op.Keyword())
		}
		return queryir.NewOperator(op), nil

	case head.Kind == lexer.ReservedWord:
		return nil, p.fail(queryir.ErrOperatorForTerm, head.Offset, "operator %q found where term expected", head.String())

	case len(inner) == 1 && !boolean:
		return tokenToTerm(head), nil

	case !boolean:
		return nil, p.fail(queryir.ErrUnsupportedFunction, head.Offset, "function expressions are not supported: %s", lexer.Join(group))

	default:
		relation, err := p.predicateTerm(head)
		if err != nil {
			return nil, err
		}
		args, err := p.parseValueList(inner[1:], depth)
		if err != nil {
			return nil, err
		}
		return queryir.NewPredication(relation, args, p.opts.AllQuads), nil
	}
}
