package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios(t *testing.T) {
	files, err := FindScenarioFiles("testdata/scenarios", "")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		scenario, err := LoadScenario(file)
		require.NoError(t, err, file)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
		})
	}
}

func TestRun_RecordsEveryDialect(t *testing.T) {
	scenario := &Scenario{
		Name:  "records",
		Query: `select (?s) where (ex:p ?s ?o)`,
		Assertions: []Assertion{
			{Type: AssertPortable, Value: "true"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	require.Len(t, result.Records, 4)
	assert.Equal(t, Record{Seq: 1, ID: "records-commonlogic", Dialect: "commonlogic"}, result.Records[0])
	assert.Equal(t, Record{Seq: 4, ID: "records-prolog", Dialect: "prolog"}, result.Records[3])
	assert.Len(t, result.Outputs, 4)
	assert.Len(t, result.Hash, 64)
}

func TestRun_Mismatches(t *testing.T) {
	offset := 3
	tests := []struct {
		name     string
		scenario Scenario
		contains string
	}{
		{
			name: "wrong output",
			scenario: Scenario{
				Query:  `select (?s) where (ex:p ?s ?o)`,
				Expect: map[string]string{"sparql": "select ?s\nwhere { ?s ex:q ?o . }"},
			},
			contains: "sparql output mismatch",
		},
		{
			name: "unexpected error",
			scenario: Scenario{
				Query:  `select (?s) where (ex:p ?s`,
				Expect: map[string]string{"sparql": "x"},
			},
			contains: "unexpected syntax error",
		},
		{
			name:     "expected error but translated",
			scenario: Scenario{Query: `select (?s) where (ex:p ?s ?o)`, Error: "ARITY"},
			contains: "expected error ARITY, but the query translated",
		},
		{
			name:     "wrong code",
			scenario: Scenario{Query: `select (?s)`, Error: "EMPTY_WHERE"},
			contains: "expected error EMPTY_WHERE, got MISSING_WHERE",
		},
		{
			name:     "wrong offset",
			scenario: Scenario{Query: `select (?s)`, Error: "MISSING_WHERE", ErrorOffset: &offset},
			contains: "expected error offset 3, got -1",
		},
		{
			name: "failed assertion",
			scenario: Scenario{
				Query:      `select (?s) where (ex:p ?s)`,
				Assertions: []Assertion{{Type: AssertPortable, Value: "true"}},
			},
			contains: "Assertion failed: portable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.scenario.Name = "mismatch"
			result, err := Run(&tt.scenario)
			require.NoError(t, err)
			assert.False(t, result.Pass)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, strings.Join(result.Errors, "\n"), tt.contains)
		})
	}
}

func TestRun_ExpectTrailingNewlineIgnored(t *testing.T) {
	scenario := &Scenario{
		Name:    "newline",
		Query:   `select (?s) where (ex:p ?s ?o)`,
		Compact: true,
		Expect:  map[string]string{"cl": "select (?s) where (ex:p ?s ?o)\n"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, result.Errors)
}

func TestEvaluateAssertions(t *testing.T) {
	result := NewResult()
	result.Hash = "abc"
	result.Outputs["sparql"] = "select ?s where { ?s ex:p ?o . }"
	result.Warnings = []string{"Arithmetic '+' - SPARQL allows arithmetic only inside FILTER or BIND"}

	tests := []struct {
		name      string
		assertion Assertion
		pass      bool
	}{
		{"portable false", Assertion{Type: AssertPortable, Value: "false"}, true},
		{"portable true", Assertion{Type: AssertPortable, Value: "true"}, false},
		{"warning found", Assertion{Type: AssertWarningContains, Text: "Arithmetic"}, true},
		{"warning missing", Assertion{Type: AssertWarningContains, Text: "Enumeration"}, false},
		{"output found", Assertion{Type: AssertOutputContains, Dialect: "sparql-like", Text: "ex:p"}, true},
		{"output missing", Assertion{Type: AssertOutputContains, Dialect: "sparql", Text: "union"}, false},
		{"hash match", Assertion{Type: AssertHash, Value: "abc"}, true},
		{"hash mismatch", Assertion{Type: AssertHash, Value: "def"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := EvaluateAssertions(result, []Assertion{tt.assertion})
			if tt.pass {
				assert.Empty(t, failures)
			} else {
				require.Len(t, failures, 1)
				assert.Contains(t, failures[0], "Assertion failed: "+tt.assertion.Type)
			}
		})
	}
}

func TestParseScenario_Valid(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: valid
description: "A valid scenario"
query: select (?s) where (ex:p ?s ?o)
infix: false
expect:
  sparql: "select ?s\nwhere { ?s ex:p ?o . }"
assertions:
  - type: output_contains
    dialect: prolog
    text: "ex:p"
`))
	require.NoError(t, err)
	assert.Equal(t, "valid", scenario.Name)
	assert.Equal(t, "select (?s) where (ex:p ?s ?o)", scenario.Query)
	assert.Len(t, scenario.Expect, 1)
	require.Len(t, scenario.Assertions, 1)
	assert.Equal(t, "prolog", scenario.Assertions[0].Dialect)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{"unknown field", "name: x\nquery: q\nexpected:\n  sparql: y\n", "field expected not found"},
		{"missing name", "query: q\nerror: ARITY\n", "name is required"},
		{"missing query", "name: x\nerror: ARITY\n", "query is required"},
		{"nothing to check", "name: x\nquery: q\n", "one of expect, error or assertions is required"},
		{"error with expect", "name: x\nquery: q\nerror: ARITY\nexpect:\n  sparql: y\n", "error cannot be combined"},
		{"offset without error", "name: x\nquery: q\nerror_offset: 3\nexpect:\n  sparql: y\n", "error_offset requires error"},
		{"unknown error code", "name: x\nquery: q\nerror: OOPS\n", `unknown error code "OOPS"`},
		{"unknown dialect", "name: x\nquery: q\nexpect:\n  datalog: y\n", `unknown dialect "datalog"`},
		{"assertion without type", "name: x\nquery: q\nassertions:\n  - text: y\n", "assertions[0]: type is required"},
		{"bad portable value", "name: x\nquery: q\nassertions:\n  - type: portable\n    value: maybe\n", "value must be true or false"},
		{"unknown assertion", "name: x\nquery: q\nassertions:\n  - type: trace_order\n", `unknown assertion type "trace_order"`},
		{"output without dialect", "name: x\nquery: q\nassertions:\n  - type: output_contains\n    text: y\n", "assertions[0]: unknown dialect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestFindScenarioFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b_query.yaml", "a_query.yml", "notes.txt", "c_other.yaml"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("name: x\n"), 0o644))
	}

	all, err := FindScenarioFiles(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a_query.yml"),
		filepath.Join(dir, "b_query.yaml"),
		filepath.Join(dir, "c_other.yaml"),
	}, all)

	filtered, err := FindScenarioFiles(dir, "*_query")
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	_, err = FindScenarioFiles(dir, "[")
	assert.ErrorContains(t, err, "invalid filter pattern")
}

func TestSnapshot_Deterministic(t *testing.T) {
	scenario := &Scenario{
		Name:       "snapshot",
		Query:      `select (?s ?o) where (and (ex:name ?s ?o) (= ?o "Fred"))`,
		Assertions: []Assertion{{Type: AssertPortable, Value: "true"}},
	}

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.True(t, strings.HasPrefix(string(a), `{"hash":"`))
}
