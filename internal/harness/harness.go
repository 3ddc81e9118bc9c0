package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/clq/internal/queryir"
	"github.com/roach88/clq/internal/render"
	"github.com/roach88/clq/internal/store"
	"github.com/roach88/clq/internal/translator"
)

// Harness executes scenarios against a translator and a history store.
type Harness struct {
	translator *translator.Translator
	store      *store.Store
	logger     *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. A
// non-nil error means the harness itself failed; translation mismatches
// are reported in Result.Errors.
//
// Execution flow:
// 1. Translate the query into every dialect
// 2. On a syntax error, compare it with the expected error
// 3. Record every rendering and read the records back
// 4. Compare expectations and evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	ids := make([]string, 0, len(render.Dialects()))
	for _, d := range render.Dialects() {
		ids = append(ids, scenario.Name+"-"+string(d))
	}

	st, err := store.Open(":memory:", store.WithIDGenerator(store.NewFixedGenerator(ids...)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	h := &Harness{
		translator: translator.New(
			translator.WithInfix(scenario.Infix),
			translator.WithQuads(scenario.Quads),
			translator.WithCompact(scenario.Compact),
			translator.WithLogger(logger),
		),
		store:  st,
		logger: logger,
	}

	return h.run(context.Background(), scenario)
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	translated, err := h.translator.TranslateAll(scenario.Query)
	if err != nil {
		var se *queryir.SyntaxError
		if !errors.As(err, &se) {
			return nil, fmt.Errorf("translate: %w", err)
		}
		result.ErrorCode = string(se.Code)
		result.ErrorOffset = se.Offset
		checkError(scenario, se, result)
		return result, nil
	}

	if scenario.Error != "" {
		result.AddError(fmt.Sprintf("expected error %s, but the query translated", scenario.Error))
	}

	result.Hash = translated.Hash
	result.Warnings = append(result.Warnings, translated.Validation.Warnings...)

	for _, out := range translated.Outputs {
		result.Outputs[string(out.Dialect)] = out.Text

		rec, err := store.NewTranslation(translated.Tree, scenario.Query, scenario.Infix, scenario.Quads,
			string(out.Dialect), scenario.Compact, out.Text)
		if err != nil {
			return nil, err
		}
		if _, _, err := h.store.WriteTranslation(ctx, rec); err != nil {
			return nil, fmt.Errorf("record translation: %w", err)
		}
	}

	if err := h.readRecords(ctx, result); err != nil {
		return nil, err
	}

	checkExpect(scenario, result)
	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// readRecords loads the stored renderings in seq order.
func (h *Harness) readRecords(ctx context.Context, result *Result) error {
	stored, err := h.store.ListTranslations(ctx, 0)
	if err != nil {
		return fmt.Errorf("read records: %w", err)
	}
	for i := len(stored) - 1; i >= 0; i-- {
		t := stored[i]
		if t.QueryHash != result.Hash {
			return fmt.Errorf("record %s: stored hash %s differs from %s", t.ID, t.QueryHash, result.Hash)
		}
		result.Records = append(result.Records, Record{Seq: t.Seq, ID: t.ID, Dialect: t.Dialect})
	}
	h.logger.Debug("records read", "count", len(result.Records))
	return nil
}

func checkError(scenario *Scenario, se *queryir.SyntaxError, result *Result) {
	if scenario.Error == "" {
		result.AddError(fmt.Sprintf("unexpected syntax error: %s", se.Error()))
		return
	}
	if string(se.Code) != scenario.Error {
		result.AddError(fmt.Sprintf("expected error %s, got %s", scenario.Error, se.Code))
		return
	}
	if scenario.ErrorOffset != nil && *scenario.ErrorOffset != se.Offset {
		result.AddError(fmt.Sprintf("expected error offset %d, got %d", *scenario.ErrorOffset, se.Offset))
	}
}

func checkExpect(scenario *Scenario, result *Result) {
	for _, name := range sortedKeys(scenario.Expect) {
		d, _ := render.ParseDialect(name) // validated at load
		want := strings.TrimSuffix(scenario.Expect[name], "\n")
		got := result.Outputs[string(d)]
		if got != want {
			result.AddError(fmt.Sprintf("%s output mismatch\n  Expected: %q\n  Actual:   %q", d, want, got))
		}
	}
}
