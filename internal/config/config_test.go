package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/clq/internal/parser"
	"github.com/roach88/clq/internal/render"
	"github.com/roach88/clq/internal/translator"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clq.cue")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DialectAll, cfg.Dialect)
	assert.Equal(t, parser.DefaultMaxDepth, cfg.MaxDepth)
	assert.False(t, cfg.Infix)
	assert.False(t, cfg.Quads)
	assert.False(t, cfg.Compact)
	assert.Empty(t, cfg.DB)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
dialect:   "sparql"
infix:     true
quads:     true
compact:   true
max_depth: 64
db:        "history.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Dialect:  "sparql",
		Infix:    true,
		Quads:    true,
		Compact:  true,
		MaxDepth: 64,
		DB:       "history.db",
	}, cfg)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `infix: true`))
	require.NoError(t, err)

	want := Default()
	want.Infix = true
	assert.Equal(t, want, cfg)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `colour: "blue"`},
		{"wrong type", `infix: "yes"`},
		{"zero depth", `max_depth: 0`},
		{"depth above ceiling", `max_depth: 5000`},
		{"unknown dialect", `dialect: "datalog"`},
		{"syntax error", `dialect: "sparql`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.NotEmpty(t, ce.Field)
			assert.NotEmpty(t, ce.Message)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.cue"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var ce *ConfigError
	assert.False(t, errors.As(err, &ce))
}

func TestConfigErrorFormat(t *testing.T) {
	err := &ConfigError{Field: "max_depth", Message: "out of bound"}
	assert.Equal(t, "max_depth: out of bound", err.Error())
}

func TestTranslatorOptions(t *testing.T) {
	cfg := Default()
	cfg.Infix = true
	cfg.Quads = true
	cfg.Compact = true

	tr := translator.New(append(cfg.TranslatorOptions(), translator.WithLogger(nil))...)
	assert.True(t, tr.Infix())
	assert.True(t, tr.Compact())

	out, err := tr.Translate(`select ?s where (ex:p ?s ?o)`, render.Prolog)
	require.NoError(t, err)
	assert.Equal(t, "(select (?s) (q ?s !ex:p ?o))", out)
}
