package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clq/internal/queryir"
)

// TreeOptions holds options for the tree command.
type TreeOptions struct {
	*RootOptions
	Parse ParseFlags
}

// TreeOutput is the JSON payload of the tree command.
type TreeOutput struct {
	Hash     string          `json:"hash"`
	Portable bool            `json:"portable"`
	Warnings []string        `json:"warnings"`
	Tree     json.RawMessage `json:"tree"`
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree [query|-]",
		Short: "Print the parsed query tree as canonical JSON",
		Long: `Parse a query and print its tree in canonical JSON, followed by the
tree hash and any portability warnings.

Two queries with the same tree hash render identically in every dialect.`,
		Example:       `  clq tree 'select (?s) where (ex:name ?s "Fred")'`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, opts, args)
		},
	}

	bindParseFlags(cmd.Flags(), &opts.Parse)
	return cmd
}

func runTree(cmd *cobra.Command, opts *TreeOptions, args []string) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	query, err := readQuery(args, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}

	tr, _ := newTranslator(cmd.Flags(), &opts.Parse, opts.Config)
	qb, err := tr.Parse(query)
	if err != nil {
		return reportTranslateError(formatter, err)
	}

	canonical, err := queryir.Canonical(qb)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}
	hash, err := queryir.Hash(qb)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}
	validation := queryir.Validate(qb)
	warnings := validation.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	if formatter.JSON() {
		return formatter.Success(TreeOutput{
			Hash:     hash,
			Portable: validation.IsPortable,
			Warnings: warnings,
			Tree:     json.RawMessage(canonical),
		})
	}

	var b strings.Builder
	b.Write(canonical)
	fmt.Fprintf(&b, "\nhash: %s", hash)
	for _, w := range warnings {
		fmt.Fprintf(&b, "\nwarning: %s", w)
	}
	return formatter.Success(b.String())
}
