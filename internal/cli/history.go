package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/clq/internal/store"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// HistoryEntry is one recorded translation in the JSON payload.
type HistoryEntry struct {
	Seq       int64  `json:"seq"`
	ID        string `json:"id"`
	QueryHash string `json:"query_hash"`
	Dialect   string `json:"dialect"`
	Compact   bool   `json:"compact"`
	Source    string `json:"source"`
	Output    string `json:"output"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded translations",
		Long: `List translations recorded with translate --db, newest first.

Text output prints one line per rendering: sequence number, dialect,
short tree hash and the source query.`,
		Example:       `  clq history --db history.db --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "SQLite history database (default from config)")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "maximum entries to list (0 for all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	formatter := newFormatter(cmd, opts.RootOptions)

	path := opts.Config.DB
	if cmd.Flags().Changed("db") {
		path = opts.DB
	}
	if path == "" {
		err := fmt.Errorf("no history database: pass --db or set db in the config file")
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil, err)
	}

	st, err := store.Open(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore,
			fmt.Sprintf("failed to open history database: %v", err), nil, err)
	}
	defer st.Close()

	translations, err := st.ListTranslations(cmd.Context(), opts.Limit)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore,
			fmt.Sprintf("failed to list translations: %v", err), nil, err)
	}

	if formatter.JSON() {
		entries := make([]HistoryEntry, len(translations))
		for i, t := range translations {
			entries[i] = HistoryEntry{
				Seq:       t.Seq,
				ID:        t.ID,
				QueryHash: t.QueryHash,
				Dialect:   t.Dialect,
				Compact:   t.Compact,
				Source:    t.Source,
				Output:    t.Output,
			}
		}
		return formatter.Success(entries)
	}

	if len(translations) == 0 {
		return formatter.Success("No translations recorded.")
	}
	lines := make([]string, len(translations))
	for i, t := range translations {
		lines[i] = fmt.Sprintf("%d\t%s\t%s\t%s", t.Seq, t.Dialect, shortHash(t.QueryHash), oneLine(t.Source))
	}
	return formatter.Success(strings.Join(lines, "\n"))
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
