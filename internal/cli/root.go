package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/clq/internal/config"
	"github.com/roach88/clq/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded in PersistentPreRunE: the --config file, or the
	// defaults when no file is given.
	Config config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the clq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Config: config.Default()}

	cmd := &cobra.Command{
		Use:     "clq",
		Short:   "clq - Common Logic query translator",
		Long:    "Translate Common Logic select queries (prefix or infix) into Common Logic, infix Common Logic, SPARQL and Prolog.",
		Version: ir.TranslatorVersion,
		// main prints errors that commands did not report.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			setupLogging(cmd, opts.Verbose)
			return loadConfig(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE settings file")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewTokensCommand(opts))
	cmd.AddCommand(NewTreeCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// setupLogging installs a text handler on stderr: Info, or Debug when
// verbose.
func setupLogging(cmd *cobra.Command, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func loadConfig(cmd *cobra.Command, opts *RootOptions) error {
	if opts.ConfigPath == "" {
		opts.Config = config.Default()
		return nil
	}

	formatter := newFormatter(cmd, opts)
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return formatter.Fail(ExitCommandError, ErrCodeNotFound,
				fmt.Sprintf("config file not found: %s", opts.ConfigPath), nil, err)
		}
		var ce *config.ConfigError
		if errors.As(err, &ce) {
			return formatter.Fail(ExitCommandError, ErrCodeConfig, ce.Error(),
				map[string]any{"field": ce.Field}, err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeConfig, err.Error(), nil, err)
	}

	slog.Debug("config loaded", "path", opts.ConfigPath, "dialect", cfg.Dialect)
	opts.Config = cfg
	return nil
}

func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
