// Package translator drives a query through tokenizing, parsing and
// rendering.
//
// A Translator is immutable after New and safe for concurrent use.
package translator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/clq/internal/lexer"
	"github.com/roach88/clq/internal/parser"
	"github.com/roach88/clq/internal/queryir"
	"github.com/roach88/clq/internal/render"
)

// Translator holds parse and layout options.
type Translator struct {
	parse  parser.Options
	layout render.Options
	logger *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithInfix selects the infix grammar.
func WithInfix(infix bool) Option {
	return func(t *Translator) {
		t.parse.Infix = infix
	}
}

// WithQuads marks every predication as a quad pattern.
func WithQuads(quads bool) Option {
	return func(t *Translator) {
		t.parse.AllQuads = quads
	}
}

// WithMaxDepth sets the nesting ceiling. Values <= 0 keep the default.
func WithMaxDepth(depth int) Option {
	return func(t *Translator) {
		if depth > 0 {
			t.parse.MaxDepth = depth
		}
	}
}

// WithCompact renders every dialect on a single line.
func WithCompact(compact bool) Option {
	return func(t *Translator) {
		t.layout.Compact = compact
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger == nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
		t.logger = logger
	}
}

// New creates a Translator. Defaults: prefix grammar, triple patterns,
// depth ceiling parser.DefaultMaxDepth, multi-line layout, slog.Default().
func New(opts ...Option) *Translator {
	t := &Translator{
		parse:  parser.Options{MaxDepth: parser.DefaultMaxDepth},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Infix reports whether the translator reads the infix grammar.
func (t *Translator) Infix() bool { return t.parse.Infix }

// Compact reports whether renderings are single-line.
func (t *Translator) Compact() bool { return t.layout.Compact }

// Tokens tokenizes expression text. The clause keywords select, from and
// where are not tokens.
func (t *Translator) Tokens(text string) ([]lexer.Token, error) {
	tokens, err := lexer.Tokenize(text)
	if err != nil {
		t.logFailure("tokenize", err)
		return nil, err
	}
	t.logger.Debug("query tokenized", "tokens", len(tokens))
	return tokens, nil
}

// Parse parses query into a tree.
func (t *Translator) Parse(query string) (*queryir.QueryBlock, error) {
	qb, err := parser.ParseWith(query, t.parse)
	if err != nil {
		t.logFailure("parse", err)
		return nil, err
	}
	t.logger.Debug("query parsed",
		"infix", t.parse.Infix,
		"select", len(qb.SelectTerms),
	)
	return qb, nil
}

// Translate parses query and renders it in dialect d.
func (t *Translator) Translate(query string, d render.Dialect) (string, error) {
	result, err := t.Run(query, d)
	if err != nil {
		return "", err
	}
	return result.Outputs[0].Text, nil
}

// TranslateAll parses query once and renders it in every dialect.
func (t *Translator) TranslateAll(query string) (*Result, error) {
	return t.Run(query, render.Dialects()...)
}

// Run parses query once and renders it in each requested dialect, in
// order. With no dialects it renders all of them.
func (t *Translator) Run(query string, dialects ...render.Dialect) (*Result, error) {
	if len(dialects) == 0 {
		dialects = render.Dialects()
	}
	resolved := make([]render.Dialect, len(dialects))
	for i, d := range dialects {
		r, err := render.ParseDialect(string(d))
		if err != nil {
			return nil, err
		}
		resolved[i] = r
	}

	qb, err := t.Parse(query)
	if err != nil {
		return nil, err
	}

	hash, err := queryir.Hash(qb)
	if err != nil {
		return nil, fmt.Errorf("hash query: %w", err)
	}

	result := &Result{
		Query:      query,
		Tree:       qb,
		Hash:       hash,
		Validation: queryir.Validate(qb),
		Outputs:    make([]Output, 0, len(resolved)),
	}
	for _, d := range resolved {
		text := render.RenderWith(qb, d, t.layout)
		t.logger.Debug("query rendered", "dialect", string(d), "bytes", len(text))
		result.Outputs = append(result.Outputs, Output{Dialect: d, Text: text})
	}
	for _, w := range result.Validation.Warnings {
		t.logger.Debug("portability warning", "warning", w)
	}
	return result, nil
}

func (t *Translator) logFailure(stage string, err error) {
	var se *queryir.SyntaxError
	if errors.As(err, &se) {
		t.logger.Info("syntax error",
			"stage", stage,
			"code", string(se.Code),
			"offset", se.Offset,
		)
		return
	}
	t.logger.Info("translation failed", "stage", stage, "error", err)
}
