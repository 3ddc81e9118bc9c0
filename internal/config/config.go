// Package config loads clq settings from a CUE file.
//
// A settings file is unified with the closed #Config definition, so unknown
// fields, wrong types and out-of-range values are rejected with the file
// position of the offending value:
//
//	dialect:   "sparql"
//	infix:     true
//	max_depth: 64
//	db:        "history.db"
package config

import (
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/clq/internal/parser"
	"github.com/roach88/clq/internal/translator"
)

// DialectAll selects every dialect.
const DialectAll = "all"

// MaxDepthCeiling bounds max_depth.
const MaxDepthCeiling = 4096

const schemaSource = `
#Config: {
	dialect?:   "commonlogic" | "infix" | "sparql" | "prolog" | "all"
	infix?:     bool
	quads?:     bool
	compact?:   bool
	max_depth?: int & >0 & <=4096
	db?:        string
}
`

// Config holds translator and CLI settings.
type Config struct {
	Dialect  string
	Infix    bool
	Quads    bool
	Compact  bool
	MaxDepth int
	DB       string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Dialect:  DialectAll,
		MaxDepth: parser.DefaultMaxDepth,
	}
}

// Load reads a CUE settings file. Fields the file omits keep their
// Default values.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, src)
}

// Parse validates CUE source against #Config. filename is used in error
// positions.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("clq-schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("compile config schema: %w", err)
	}

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Config")).Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	cfg := Default()
	if err := decode(v, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(v cue.Value, cfg *Config) error {
	if f := v.LookupPath(cue.ParsePath("dialect")); f.Exists() {
		s, err := f.String()
		if err != nil {
			return formatCUEError(err)
		}
		cfg.Dialect = s
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"infix", &cfg.Infix},
		{"quads", &cfg.Quads},
		{"compact", &cfg.Compact},
	}
	for _, flag := range flags {
		f := v.LookupPath(cue.ParsePath(flag.name))
		if !f.Exists() {
			continue
		}
		b, err := f.Bool()
		if err != nil {
			return formatCUEError(err)
		}
		*flag.dst = b
	}

	if f := v.LookupPath(cue.ParsePath("max_depth")); f.Exists() {
		n, err := f.Int64()
		if err != nil {
			return formatCUEError(err)
		}
		cfg.MaxDepth = int(n)
	}

	if f := v.LookupPath(cue.ParsePath("db")); f.Exists() {
		s, err := f.String()
		if err != nil {
			return formatCUEError(err)
		}
		cfg.DB = s
	}
	return nil
}

// TranslatorOptions converts the parse and layout settings.
func (c Config) TranslatorOptions() []translator.Option {
	return []translator.Option{
		translator.WithInfix(c.Infix),
		translator.WithQuads(c.Quads),
		translator.WithCompact(c.Compact),
		translator.WithMaxDepth(c.MaxDepth),
	}
}

// ConfigError reports an invalid settings file.
type ConfigError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *ConfigError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError converts the first CUE error into a *ConfigError.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &ConfigError{Field: "config", Message: err.Error()}
	}

	first := errs[0]
	field := "config"
	if path := errors.Path(first); len(path) > 0 {
		field = strings.TrimPrefix(strings.Join(path, "."), "#Config.")
	}

	ce := &ConfigError{Field: field, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		ce.Pos = positions[0]
	}
	return ce
}
