package strata

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// flattenDocument converts a decoded structured document into the
// flat colon-path form stored by providers. Nested objects produce
// parent:child keys, nested lists produce parent:<index> keys with
// zero-based numeric segments, scalar leaves are stringified, and
// explicit null leaves are stored as null.
//
// A root document of any shape other than an object is malformed
// input and fails the load rather than producing an empty store.
func flattenDocument(doc any) (map[string]*string, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("top-level configuration value must be an object, got %T", doc)
	}
	values := make(map[string]*string)
	flattenInto(values, "", root)
	return values, nil
}

func flattenInto(values map[string]*string, prefix string, node any) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flattenInto(values, Combine(prefix, key), child)
		}
	case []any:
		for i, child := range v {
			flattenInto(values, Combine(prefix, strconv.Itoa(i)), child)
		}
	case nil:
		values[NormalizeKey(prefix)] = nil
	default:
		values[NormalizeKey(prefix)] = String(stringifyScalar(v))
	}
}

// stringifyScalar renders a scalar leaf as its configuration string.
// json.Number keeps the literal text from the document.
func stringifyScalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
