package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/clq/internal/ir"
)

// Snapshot encodes a scenario outcome as canonical JSON:
//
//	{"scenario": name, "hash": ..., "outputs": {dialect: text},
//	 "warnings": [...], "records": [{"seq", "id", "dialect"}]}
//
// or, for a syntax error, {"scenario": name, "error": {"code", "offset"}}.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snap := ir.Object{"scenario": ir.String(scenario.Name)}

	if result.ErrorCode != "" {
		snap["error"] = ir.NewObject(
			ir.O("code", ir.String(result.ErrorCode)),
			ir.O("offset", ir.Int(result.ErrorOffset)),
		)
		return ir.MarshalCanonical(snap)
	}

	outputs := make(ir.Object, len(result.Outputs))
	for d, text := range result.Outputs {
		outputs[d] = ir.String(text)
	}

	records := make(ir.Array, len(result.Records))
	for i, r := range result.Records {
		records[i] = ir.NewObject(
			ir.O("seq", ir.Int(r.Seq)),
			ir.O("id", ir.String(r.ID)),
			ir.O("dialect", ir.String(r.Dialect)),
		)
	}

	snap["hash"] = ir.String(result.Hash)
	snap["outputs"] = outputs
	snap["warnings"] = ir.Strings(result.Warnings...)
	snap["records"] = records
	return ir.MarshalCanonical(snap)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	data, err := Snapshot(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
