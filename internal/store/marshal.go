package store

import (
	"fmt"

	"github.com/roach88/clq/internal/ir"
)

// marshalTree converts a query tree to canonical JSON TEXT for storage.
func marshalTree(tree ir.Object) (string, error) {
	data, err := ir.MarshalCanonical(tree)
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}
	return string(data), nil
}

// unmarshalTree parses stored tree JSON. Anything other than a JSON object
// is corrupt.
func unmarshalTree(data string) (ir.Object, error) {
	v, err := ir.UnmarshalValue([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal tree: %w", err)
	}
	obj, ok := v.(ir.Object)
	if !ok {
		return nil, fmt.Errorf("unmarshal tree: expected object, got %T", v)
	}
	return obj, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
