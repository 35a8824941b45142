package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrNotObject is returned when a request body is valid JSON but not an object.
var ErrNotObject = errors.New("body must be a JSON object")

// Fields is a decoded JSON object body, keyed by raw member.
// It lets handlers distinguish absent keys from keys set to null, which
// struct unmarshalling alone cannot do.
type Fields map[string]json.RawMessage

// ParseObject decodes a request body into Fields.
// Invalid JSON or a non-object body is an error.
func ParseObject(body []byte) (Fields, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	// Unmarshalling "null" into a map is a no-op, so check the token first.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotObject
	}
	var fields Fields
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, ErrNotObject
	}
	return fields, nil
}

// UnknownKeys returns the members of f that are not in allowed, sorted.
func (f Fields) UnknownKeys(allowed ...string) []string {
	var unknown []string
	for k := range f {
		if !slices.Contains(allowed, k) {
			unknown = append(unknown, k)
		}
	}
	slices.Sort(unknown)
	return unknown
}

// Has reports whether the key was present in the body, even as null.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// IsNull reports whether the key was present and explicitly null.
func (f Fields) IsNull(key string) bool {
	raw, ok := f[key]
	return ok && string(raw) == "null"
}

// Decode unmarshals the whole object into a typed struct.
func (f Fields) Decode(v any) error {
	b, err := json.Marshal(map[string]json.RawMessage(f))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
