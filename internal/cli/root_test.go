package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleQuery = `select (?s) where (ex:name ?s "Fred")`

const singleHash = "a0917ef8dcff46c1db93141f97fdeb6f053c06d9d99e1cd3df0d9b792ec91ba6"

// envelope decodes a CLIResponse with the payload left raw.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewRootCommand()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(outBuf)
	cmd.SetErr(errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func decodeEnvelope(t *testing.T, out string) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(out), &env), "output: %s", out)
	return env
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "clq", cmd.Use)
	assert.Contains(t, cmd.Long, "SPARQL")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"translate", "tokens", "tree", "test", "history"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestParseFlagsOnCommands(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"translate", "tokens", "tree"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			for _, flag := range []string{"infix", "quads", "compact", "max-depth"} {
				assert.NotNil(t, sub.Flags().Lookup(flag), "--%s", flag)
			}
		})
	}
}

func TestInvalidFormat(t *testing.T) {
	_, _, err := execute(t, "", "translate", singleQuery, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "clq.cue", "dialect: \"prolog\"\ncompact: true\n")

	t.Run("applies settings", func(t *testing.T) {
		out, _, err := execute(t, "", "translate", singleQuery, "--config", cfgPath)
		require.NoError(t, err)
		assert.Equal(t, "(select (?s) (ex:name ?s \"Fred\"))\n", out)
	})

	t.Run("flags override settings", func(t *testing.T) {
		out, _, err := execute(t, "", "translate", singleQuery, "--config", cfgPath,
			"--dialect", "sparql", "--compact=false")
		require.NoError(t, err)
		assert.Equal(t, "select ?s\nwhere { ?s ex:name \"Fred\" . }\n", out)
	})
}

func TestConfigFileInvalid(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "bad.cue", "max_depth: 0\n")

	out, _, err := execute(t, "", "--format", "json", "translate", singleQuery, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	env := decodeEnvelope(t, out)
	assert.Equal(t, "error", env.Status)
	require.NotNil(t, env.Error)
	assert.Equal(t, ErrCodeConfig, env.Error.Code)
	assert.Contains(t, env.Error.Message, "max_depth")
}

func TestConfigFileMissing(t *testing.T) {
	_, stderr, err := execute(t, "", "translate", singleQuery,
		"--config", filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, ErrCodeNotFound)
}

func TestVerboseLogging(t *testing.T) {
	_, stderr, err := execute(t, "", "translate", singleQuery, "--dialect", "infix", "-v")
	require.NoError(t, err)
	assert.Contains(t, stderr, "level=DEBUG")
	assert.Contains(t, stderr, `msg="query rendered"`)
}
