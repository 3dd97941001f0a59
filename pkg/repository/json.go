package repository

import (
	"encoding/json"
	"fmt"
)

// JSON scans a json or jsonb column into the value pointed to by V.
type JSON[T any] struct {
	V *T
}

// Scan implements sql.Scanner.
func (j JSON[T]) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json source type %T", src)
	}
	return json.Unmarshal(data, j.V)
}

// MarshalJSON encodes v as a string parameter suitable for a $n::jsonb
// placeholder.
func MarshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
