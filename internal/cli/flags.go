package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/roach88/clq/internal/config"
	"github.com/roach88/clq/internal/translator"
)

// ParseFlags are the per-command parse and layout flags. Each one
// overrides the config file only when set on the command line.
type ParseFlags struct {
	Infix    bool
	Quads    bool
	Compact  bool
	MaxDepth int
}

func bindParseFlags(fs *pflag.FlagSet, p *ParseFlags) {
	fs.BoolVar(&p.Infix, "infix", false, "parse the query with infix syntax")
	fs.BoolVar(&p.Quads, "quads", false, "mark predications as quads")
	fs.BoolVar(&p.Compact, "compact", false, "render on a single line")
	fs.IntVar(&p.MaxDepth, "max-depth", 0, "maximum expression nesting depth")
}

// apply overlays the flags the user set onto cfg.
func (p *ParseFlags) apply(fs *pflag.FlagSet, cfg config.Config) config.Config {
	if fs.Changed("infix") {
		cfg.Infix = p.Infix
	}
	if fs.Changed("quads") {
		cfg.Quads = p.Quads
	}
	if fs.Changed("compact") {
		cfg.Compact = p.Compact
	}
	if fs.Changed("max-depth") {
		cfg.MaxDepth = p.MaxDepth
	}
	return cfg
}

// newTranslator builds a translator from the loaded config and the
// command's flags.
func newTranslator(fs *pflag.FlagSet, p *ParseFlags, cfg config.Config) (*translator.Translator, config.Config) {
	cfg = p.apply(fs, cfg)
	return translator.New(cfg.TranslatorOptions()...), cfg
}

// readQuery returns the query argument, or stdin when the argument is
// "-" or missing.
func readQuery(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 && args[0] != "-" {
		return args[0], nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read query from stdin: %w", err)
	}
	query := strings.TrimSpace(string(data))
	if query == "" {
		return "", fmt.Errorf("no query given")
	}
	return query, nil
}
