package harness

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/roach88/clq/internal/render"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion and returns one message per
// failure, in order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertPortable:
		return assertPortable(result, a)
	case AssertWarningContains:
		return assertWarningContains(result, a)
	case AssertOutputContains:
		return assertOutputContains(result, a)
	case AssertHash:
		return assertHash(result, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertPortable(result *Result, a Assertion) error {
	want, err := strconv.ParseBool(a.Value)
	if err != nil {
		return fmt.Errorf("portable: %w", err)
	}
	got := len(result.Warnings) == 0
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     AssertPortable,
		Expected: fmt.Sprintf("portable=%t", want),
		Actual:   fmt.Sprintf("portable=%t, warnings %q", got, result.Warnings),
	}
}

func assertWarningContains(result *Result, a Assertion) error {
	for _, w := range result.Warnings {
		if strings.Contains(w, a.Text) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertWarningContains,
		Expected: fmt.Sprintf("a warning containing %q", a.Text),
		Actual:   fmt.Sprintf("%q", result.Warnings),
	}
}

func assertOutputContains(result *Result, a Assertion) error {
	d, err := render.ParseDialect(a.Dialect)
	if err != nil {
		return err
	}
	got := result.Outputs[string(d)]
	if strings.Contains(got, a.Text) {
		return nil
	}
	return &AssertionError{
		Type:     AssertOutputContains,
		Expected: fmt.Sprintf("%s output containing %q", d, a.Text),
		Actual:   fmt.Sprintf("%q", got),
	}
}

func assertHash(result *Result, a Assertion) error {
	if result.Hash == a.Value {
		return nil
	}
	return &AssertionError{
		Type:     AssertHash,
		Expected: a.Value,
		Actual:   result.Hash,
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
