package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// TokensOptions holds options for the tokens command.
type TokensOptions struct {
	*RootOptions
	Parse ParseFlags
}

// TokenOutput is one token in the JSON payload.
type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TokensOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tokens [expression|-]",
		Short: "Tokenize a where-clause expression",
		Long: `Tokenize expression text and print one token per line as
offset, kind and surface form.

The clause keywords select, from and where are not tokens, so pass the
text of a single clause.`,
		Example:       `  clq tokens '(ex:name ?s "Fred") and (?age >= 18)'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, opts, args)
		},
	}

	bindParseFlags(cmd.Flags(), &opts.Parse)
	return cmd
}

func runTokens(cmd *cobra.Command, opts *TokensOptions, args []string) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	text, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}

	tr, _ := newTranslator(cmd.Flags(), &opts.Parse, opts.Config)
	tokens, err := tr.Tokens(text)
	if err != nil {
		return reportTranslateError(formatter, err)
	}

	if formatter.JSON() {
		out := make([]TokenOutput, len(tokens))
		for i, tok := range tokens {
			out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Offset: tok.Offset}
		}
		return formatter.Success(out)
	}

	lines := make([]string, len(tokens))
	for i, tok := range tokens {
		lines[i] = fmt.Sprintf("%d\t%s\t%s", tok.Offset, tok.Kind, tok)
	}
	return formatter.Success(strings.Join(lines, "\n"))
}
