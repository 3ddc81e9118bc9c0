package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitExample splits one example line into words, honoring single and
// double quotes the way a shell would for these simple lines.
func splitExample(t *testing.T, line string) []string {
	t.Helper()
	var words []string
	var cur strings.Builder
	inWord := false
	var quote rune
	for _, r := range line {
		switch {
		case quote != 0 && r == quote:
			quote = 0
		case quote != 0:
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ':
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	require.Zero(t, quote, "unbalanced quote in %q", line)
	if inWord {
		words = append(words, cur.String())
	}
	return words
}

// exampleInvocation turns an example line into stdin and root command
// arguments. An "echo ... |" prefix becomes stdin; paths are replaced
// through rewrite.
func exampleInvocation(t *testing.T, line string, rewrite map[string]string) (string, []string) {
	t.Helper()
	stdin := ""
	if before, after, ok := strings.Cut(line, " | "); ok {
		echo := splitExample(t, before)
		require.Equal(t, "echo", echo[0], line)
		stdin = strings.Join(echo[1:], " ") + "\n"
		line = after
	}
	words := splitExample(t, line)
	require.Equal(t, "clq", words[0], line)
	args := words[1:]
	for i, a := range args {
		if r, ok := rewrite[a]; ok {
			args[i] = r
		}
	}
	return stdin, args
}

func TestSplitExample(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{`clq tree 'select (?s) where (ex:name ?s "Fred")'`, []string{"clq", "tree", `select (?s) where (ex:name ?s "Fred")`}},
		{`clq test ./scenarios --filter "query*"`, []string{"clq", "test", "./scenarios", "--filter", "query*"}},
		{`clq  history   --db h.db`, []string{"clq", "history", "--db", "h.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, splitExample(t, tt.line))
		})
	}
}

func TestCommandExamplesRun(t *testing.T) {
	dir := t.TempDir()
	scenarios := filepath.Join(dir, "scenarios")
	require.NoError(t, os.MkdirAll(scenarios, 0755))
	writeFile(t, scenarios, "sparql_single.yaml", passingScenario)
	rewrite := map[string]string{
		"history.db":  filepath.Join(dir, "history.db"),
		"./scenarios": scenarios,
	}

	root := NewRootCommand()
	for _, name := range []string{"translate", "tokens", "tree", "history", "test"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		require.NotEmpty(t, sub.Example, name)

		for _, line := range strings.Split(sub.Example, "\n") {
			line = strings.TrimSpace(line)
			t.Run(line, func(t *testing.T) {
				stdin, args := exampleInvocation(t, line, rewrite)
				out, stderr, err := execute(t, stdin, args...)
				require.NoError(t, err, "stdout: %s\nstderr: %s", out, stderr)
				assert.NotEmpty(t, out)
			})
		}
	}
}

func TestTranslateExamplesRecordHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	root := NewRootCommand()
	sub, _, err := root.Find([]string{"translate"})
	require.NoError(t, err)

	for _, line := range strings.Split(sub.Example, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "--db") {
			continue
		}
		stdin, args := exampleInvocation(t, line, map[string]string{"history.db": db})
		_, _, err := execute(t, stdin, args...)
		require.NoError(t, err)
	}

	out, _, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ex:p")
}
