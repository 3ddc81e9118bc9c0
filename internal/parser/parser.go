package parser

import (
	"strings"

	"github.com/roach88/clq/internal/lexer"
	"github.com/roach88/clq/internal/queryir"
)

// DefaultMaxDepth bounds bracket nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 256

// Options controls parsing.
type Options struct {
	// Infix selects the infix grammar for the where clause.
	Infix bool

	// AllQuads marks every predication as a quad pattern.
	AllQuads bool

	// MaxDepth bounds bracket nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// Parse parses a select query with the prefix or infix grammar.
func Parse(query string, infix bool) (*queryir.QueryBlock, error) {
	return ParseWith(query, Options{Infix: infix})
}

// ParseWith parses a select query.
//
// The query is normalized first: newlines and tabs become spaces and
// surrounding whitespace is trimmed. Error offsets refer to the
// normalized text, which is also what SyntaxError.Query holds.
func ParseWith(query string, opts Options) (*queryir.QueryBlock, error) {
	q := Normalize(query)
	p := &parser{query: q, opts: opts}
	return p.parseQuery()
}

// ParseWhere parses a where-clause expression on its own.
func ParseWhere(text string, opts Options) (queryir.Expression, error) {
	q := Normalize(text)
	p := &parser{query: q, opts: opts}
	tokens, err := lexer.Tokenize(q)
	if err != nil {
		return nil, err
	}
	return p.parseWhereTokens(tokens, 0)
}

// Normalize replaces newlines, carriage returns and tabs with spaces and
// trims surrounding whitespace.
func Normalize(query string) string {
	return strings.TrimSpace(strings.NewReplacer("\n", " ", "\r", " ", "\t", " ").Replace(query))
}

type parser struct {
	query string
	opts  Options
}

func (p *parser) maxDepth() int {
	if p.opts.MaxDepth > 0 {
		return p.opts.MaxDepth
	}
	return DefaultMaxDepth
}

func (p *parser) parseQuery() (*queryir.QueryBlock, error) {
	q := p.query
	if !lexer.IsKeywordAt(q, "select", 0) {
		return nil, p.fail(queryir.ErrMissingSelect, 0, "query must begin with select")
	}
	selectStart := len("select")

	wherePos, err := lexer.FindKeyword(q, "where", selectStart)
	if err != nil {
		return nil, err
	}
	if wherePos < 0 {
		return nil, p.fail(queryir.ErrMissingWhere, -1, "query has no where clause")
	}
	fromPos, err := lexer.FindKeyword(q, "from", selectStart)
	if err != nil {
		return nil, err
	}
	if fromPos > wherePos {
		return nil, p.fail(queryir.ErrFromAfterWhere, fromPos, "from clause must precede where clause")
	}

	selectEnd := wherePos
	if fromPos >= 0 {
		selectEnd = fromPos
	}
	selectTerms, err := p.parseSelectClause(selectStart, selectEnd)
	if err != nil {
		return nil, err
	}

	fromList := []queryir.Term{}
	if fromPos >= 0 {
		fromList, err = p.parseFromClause(fromPos+len("from"), wherePos)
		if err != nil {
			return nil, err
		}
	}

	whereStart := wherePos + len("where")
	tokens, err := lexer.TokenizeRange(q, whereStart, len(q))
	if err != nil {
		return nil, err
	}
	where, err := p.parseWhereTokens(tokens, wherePos)
	if err != nil {
		return nil, err
	}

	return &queryir.QueryBlock{
		SelectTerms: selectTerms,
		FromList:    fromList,
		Where:       where,
	}, nil
}

func (p *parser) parseSelectClause(start, end int) ([]queryir.Term, error) {
	tokens, err := lexer.TokenizeRange(p.query, start, end)
	if err != nil {
		return nil, err
	}

	wrapped := len(tokens) >= 2 && tokens[0].Text == "(" && tokens[0].Kind == lexer.Bracket &&
		matchBracket(tokens, 0) == len(tokens)-1
	switch {
	case wrapped:
		tokens = tokens[1 : len(tokens)-1]
	case !p.opts.Infix:
		offset := start
		if len(tokens) > 0 {
			offset = tokens[0].Offset
		}
		return nil, p.fail(queryir.ErrMissingSelectParens, offset, "select clause arguments must be enclosed in parentheses")
	}

	terms := make([]queryir.Term, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsTerm() {
			return nil, p.fail(queryir.ErrIllegalSelectTerm, tok.Offset, "illegal %s %q in select clause", tok.Kind, tok.String())
		}
		terms = append(terms, tokenToTerm(tok))
	}
	return terms, nil
}

// parseFromClause checks that the from clause tokenizes. Its contents are
// not interpreted and the returned list is always empty.
func (p *parser) parseFromClause(start, end int) ([]queryir.Term, error) {
	if _, err := lexer.TokenizeRange(p.query, start, end); err != nil {
		return nil, err
	}
	return []queryir.Term{}, nil
}

// parseWhereTokens parses a where clause. anchor is the offset reported
// when the clause is empty.
func (p *parser) parseWhereTokens(tokens []lexer.Token, anchor int) (queryir.Expression, error) {
	if len(tokens) == 0 {
		return nil, p.fail(queryir.ErrEmptyWhere, anchor, "query has empty where clause")
	}
	if p.opts.Infix {
		return p.parseInfix(tokens, true, 0)
	}

	exprs, err := p.parseExpressions(tokens, true, 0)
	if err != nil {
		return nil, err
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return queryir.NewOperator(queryir.OpAnd, exprs...), nil
}
