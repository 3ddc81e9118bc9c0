package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	harnessScenarios = "../harness/testdata/scenarios"
	harnessGolden    = "../harness/testdata/golden"
)

const passingScenario = `name: sparql_single
description: "Single predication in SPARQL"
query: |-
  select (?s) where (ex:name ?s "Fred")
expect:
  sparql: |-
    select ?s
    where { ?s ex:name "Fred" . }
`

const failingScenario = `name: wrong_prolog
description: "Expects the wrong Prolog rendering"
query: |-
  select (?s) where (ex:name ?s "Fred")
expect:
  prolog: |-
    (select (?s) (ex:name ?s "Bob"))
`

func TestTestCommandMissingArgs(t *testing.T) {
	_, _, err := execute(t, "", "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestTestCommandNonExistentScenariosDir(t *testing.T) {
	_, stderr, err := execute(t, "", "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "scenarios directory not found")
}

func TestTestCommandEmptyScenariosDir(t *testing.T) {
	out, _, err := execute(t, "", "test", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandEmptyScenariosDirJSON(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "test", t.TempDir())
	require.NoError(t, err)

	env := decodeEnvelope(t, out)
	assert.Equal(t, "ok", env.Status)
	var result TestResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Scenarios)
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, _, err := execute(t, "", "test", harnessScenarios, "--golden-dir", harnessGolden)
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ query3_sparql")
	assert.Contains(t, out, "✓ unterminated_string")
	assert.Contains(t, out, "Test Summary: 7 passed, 0 failed, 7 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommandFilter(t *testing.T) {
	out, _, err := execute(t, "", "--format", "json", "test", harnessScenarios,
		"--golden-dir", harnessGolden, "--filter", "query*")
	require.NoError(t, err)

	var result TestResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out).Data, &result))
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Passed)
	assert.Equal(t, "query1_quads", result.Scenarios[0].Name)
	assert.Equal(t, "query3_sparql", result.Scenarios[1].Name)
}

func TestTestCommandUpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sparql_single.yaml", passingScenario)

	out, _, err := execute(t, "", "test", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sparql_single (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "sparql_single.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario":"sparql_single"`)

	out, _, err = execute(t, "", "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sparql_single")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{"scenario":"stale"}`), 0644))
	out, _, err = execute(t, "", "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ sparql_single")
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommandFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sparql_single.yaml", passingScenario)
	writeFile(t, dir, "wrong_prolog.yaml", failingScenario)
	writeFile(t, dir, "broken.yaml", "name: [unclosed\n")

	t.Run("text", func(t *testing.T) {
		out, _, err := execute(t, "", "test", dir)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))
		assert.Contains(t, out, "✗ broken.yaml")
		assert.Contains(t, out, "✓ sparql_single")
		assert.Contains(t, out, "✗ wrong_prolog")
		assert.Contains(t, out, "Test Summary: 1 passed, 2 failed, 3 total")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "", "--format", "json", "test", dir)
		require.Error(t, err)
		assert.Equal(t, ExitFailure, GetExitCode(err))

		env := decodeEnvelope(t, out)
		assert.Equal(t, "error", env.Status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "E_TEST_FAILED", env.Error.Code)

		var result TestResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Failed)
		assert.False(t, result.Scenarios[2].Pass)
		assert.NotEmpty(t, result.Scenarios[2].Errors)
	})
}

func TestGoldenFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("scenarios", "golden", "q.golden"),
		goldenFilePath(filepath.Join("scenarios", "golden"), "q"))
}
