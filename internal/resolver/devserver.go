package resolver

import (
	"maps"
	"slices"
	"strings"
)

// flattenDevServer converts the nested option tree into dotted keys. Every
// leaf must be a bool. Raw keys may not contain "." so that no two inputs
// flatten onto the same key.
func flattenDevServer(raw map[string]any) (DevServerOptions, error) {
	out := make(DevServerOptions)
	if err := flattenInto(out, "", raw); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out DevServerOptions, prefix string, tree map[string]any) error {
	// Sorted so the reported error does not depend on map order.
	for _, k := range slices.Sorted(maps.Keys(tree)) {
		v := tree[k]
		if k == "" {
			return &InvalidOptionError{Key: prefix, Reason: "empty key"}
		}
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if strings.Contains(k, ".") {
			return &InvalidOptionError{Key: key, Reason: "key must not contain '.'; nest the option instead"}
		}
		switch val := v.(type) {
		case bool:
			out[key] = val
		case map[string]any:
			if err := flattenInto(out, key, val); err != nil {
				return err
			}
		default:
			return &InvalidOptionError{Key: key, Value: v}
		}
	}
	return nil
}
