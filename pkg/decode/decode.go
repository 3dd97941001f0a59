// Package decode converts loosely typed values, such as the result of
// unmarshalling JSON into any, into typed structs by way of their json tags.
package decode

import (
	"encoding/json"
	"fmt"
)

// Into re-encodes v as JSON and decodes it into a T. Unknown fields are
// ignored; type mismatches are reported with the target type.
func Into[T any](v any) (T, error) {
	var out T

	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("encode %T: %w", v, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode into %T: %w", out, err)
	}
	return out, nil
}
