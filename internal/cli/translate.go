package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clq/internal/config"
	"github.com/roach88/clq/internal/render"
	"github.com/roach88/clq/internal/store"
	"github.com/roach88/clq/internal/translator"
)

// TranslateOptions holds options for the translate command.
type TranslateOptions struct {
	*RootOptions
	Parse   ParseFlags
	Dialect string
	DB      string
}

// TranslateOutput is the JSON payload of the translate command.
type TranslateOutput struct {
	Hash     string          `json:"hash"`
	Portable bool            `json:"portable"`
	Warnings []string        `json:"warnings"`
	Outputs  []DialectOutput `json:"outputs"`
	Records  []RecordOutput  `json:"records,omitempty"`
}

// DialectOutput is one rendering.
type DialectOutput struct {
	Dialect string `json:"dialect"`
	Text    string `json:"text"`
}

// RecordOutput describes a rendering written to the history database.
type RecordOutput struct {
	Dialect  string `json:"dialect"`
	ID       string `json:"id"`
	Inserted bool   `json:"inserted"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate [query|-]",
		Short: "Translate a query into one or all dialects",
		Long: `Translate a Common Logic select query.

The query is read from the argument, or from stdin when the argument is
"-" or missing. With --dialect all every rendering is printed under a
"# <dialect>" header.

With --db each rendering is recorded in a SQLite history database.
Re-translating the same tree in the same layout reuses the stored row.`,
		Example: `  clq translate 'select (?s) where (ex:name ?s "Fred")' --dialect sparql
  clq translate --infix 'select ?s ?o where (ex:name ?s ?o) and (?o = "Fred")'
  echo 'select (?s ?o) where (ex:p ?s ?o)' | clq translate - --db history.db`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args)
		},
	}

	bindParseFlags(cmd.Flags(), &opts.Parse)
	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "target dialect: commonlogic, infix, sparql, prolog or all")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record renderings in this SQLite database")

	return cmd
}

func runTranslate(cmd *cobra.Command, opts *TranslateOptions, args []string) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}

	tr, cfg := newTranslator(cmd.Flags(), &opts.Parse, opts.Config)
	if cmd.Flags().Changed("dialect") {
		cfg.Dialect = opts.Dialect
	}
	if cmd.Flags().Changed("db") {
		cfg.DB = opts.DB
	}

	dialects, err := selectDialects(cfg.Dialect)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}

	result, err := tr.Run(query, dialects...)
	if err != nil {
		return reportTranslateError(formatter, err)
	}

	var records []RecordOutput
	if cfg.DB != "" {
		records, err = recordResult(cmd.Context(), cfg, result)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore,
				fmt.Sprintf("failed to record translation: %v", err), nil, err)
		}
		for _, r := range records {
			formatter.VerboseLog("recorded %s as %s (new: %t)", r.Dialect, r.ID, r.Inserted)
		}
	}

	if formatter.JSON() {
		return formatter.Success(newTranslateOutput(result, records))
	}

	for _, w := range result.Validation.Warnings {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: %s\n", w)
	}
	return formatter.Success(formatOutputs(result.Outputs))
}

// selectDialects resolves a dialect setting. "all" selects every dialect.
func selectDialects(name string) ([]render.Dialect, error) {
	if name == "" || name == config.DialectAll {
		return render.Dialects(), nil
	}
	d, err := render.ParseDialect(name)
	if err != nil {
		return nil, err
	}
	return []render.Dialect{d}, nil
}

func recordResult(ctx context.Context, cfg config.Config, result *translator.Result) ([]RecordOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(cfg.DB)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	records := make([]RecordOutput, 0, len(result.Outputs))
	for _, out := range result.Outputs {
		t, err := store.NewTranslation(result.Tree, result.Query, cfg.Infix, cfg.Quads,
			string(out.Dialect), cfg.Compact, out.Text)
		if err != nil {
			return nil, err
		}
		id, inserted, err := st.WriteTranslation(ctx, t)
		if err != nil {
			return nil, err
		}
		records = append(records, RecordOutput{Dialect: string(out.Dialect), ID: id, Inserted: inserted})
	}
	return records, nil
}

func newTranslateOutput(result *translator.Result, records []RecordOutput) TranslateOutput {
	out := TranslateOutput{
		Hash:     result.Hash,
		Portable: result.Validation.IsPortable,
		Warnings: result.Validation.Warnings,
		Outputs:  make([]DialectOutput, len(result.Outputs)),
		Records:  records,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	for i, o := range result.Outputs {
		out.Outputs[i] = DialectOutput{Dialect: string(o.Dialect), Text: o.Text}
	}
	return out
}

// formatOutputs prints a single rendering bare and several under headers.
func formatOutputs(outputs []translator.Output) string {
	if len(outputs) == 1 {
		return outputs[0].Text
	}
	sections := make([]string, len(outputs))
	for i, o := range outputs {
		sections[i] = "# " + string(o.Dialect) + "\n" + o.Text
	}
	return strings.Join(sections, "\n\n")
}
