package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/clq/internal/queryir"
	"github.com/roach88/clq/internal/render"
)

// Scenario defines one translation test.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the source text.
	Query string `yaml:"query"`

	// Infix selects the infix grammar.
	Infix bool `yaml:"infix,omitempty"`

	// Quads marks every predication as a quad pattern.
	Quads bool `yaml:"quads,omitempty"`

	// Compact renders on one line.
	Compact bool `yaml:"compact,omitempty"`

	// Expect maps dialect names (or aliases) to exact expected renderings.
	// A single trailing newline in the expectation is ignored.
	Expect map[string]string `yaml:"expect,omitempty"`

	// Error is the expected syntax error code.
	Error string `yaml:"error,omitempty"`

	// ErrorOffset is the expected error offset. Checked only when set.
	ErrorOffset *int `yaml:"error_offset,omitempty"`

	// Assertions are additional checks on a successful translation.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion checks one property of a translation.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Dialect selects the rendering (output_contains).
	Dialect string `yaml:"dialect,omitempty"`

	// Text is the expected substring (output_contains, warning_contains).
	Text string `yaml:"text,omitempty"`

	// Value is the expected value: "true"/"false" for portable, the
	// hex digest for hash.
	Value string `yaml:"value,omitempty"`
}

// Assertion type constants.
const (
	AssertPortable        = "portable"
	AssertWarningContains = "warning_contains"
	AssertOutputContains  = "output_contains"
	AssertHash            = "hash"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns the .yaml and .yml files under dir whose base
// name (without extension) matches the glob filter, in lexical order. An
// empty filter matches everything.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if strings.TrimSpace(s.Query) == "" {
		return fmt.Errorf("query is required")
	}

	switch {
	case s.Error == "" && len(s.Expect) == 0 && len(s.Assertions) == 0:
		return fmt.Errorf("one of expect, error or assertions is required")
	case s.Error != "" && (len(s.Expect) > 0 || len(s.Assertions) > 0):
		return fmt.Errorf("error cannot be combined with expect or assertions")
	case s.Error == "" && s.ErrorOffset != nil:
		return fmt.Errorf("error_offset requires error")
	}

	if s.Error != "" && !knownErrorCode(s.Error) {
		return fmt.Errorf("unknown error code %q", s.Error)
	}

	for name := range s.Expect {
		if _, err := render.ParseDialect(name); err != nil {
			return fmt.Errorf("expect: %w", err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, a); err != nil {
			return err
		}
	}

	return nil
}

func validateAssertion(index int, a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertPortable:
		if a.Value != "true" && a.Value != "false" {
			return fmt.Errorf("assertions[%d]: value must be true or false for portable", index)
		}
	case AssertWarningContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for warning_contains", index)
		}
	case AssertOutputContains:
		if _, err := render.ParseDialect(a.Dialect); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for output_contains", index)
		}
	case AssertHash:
		if a.Value == "" {
			return fmt.Errorf("assertions[%d]: value is required for hash", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func knownErrorCode(code string) bool {
	for _, c := range queryir.ErrorCodes() {
		if string(c) == code {
			return true
		}
	}
	return false
}
