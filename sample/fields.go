package sample

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fields is a JSON object that preserves the key order of its source. Values
// are kept as raw JSON so that pass-through fields are copied verbatim.
type Fields struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

// NewFields returns an empty object.
func NewFields() *Fields {
	return &Fields{m: orderedmap.New[string, json.RawMessage]()}
}

func (f *Fields) init() {
	if f.m == nil {
		f.m = orderedmap.New[string, json.RawMessage]()
	}
}

// Len returns the number of keys.
func (f *Fields) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// Has reports whether key is present.
func (f *Fields) Has(key string) bool {
	_, ok := f.Raw(key)
	return ok
}

// Raw returns the raw JSON value stored under key.
func (f *Fields) Raw(key string) (json.RawMessage, bool) {
	if f == nil || f.m == nil {
		return nil, false
	}
	return f.m.Get(key)
}

// Keys returns the keys in insertion order.
func (f *Fields) Keys() []string {
	keys := make([]string, 0, f.Len())
	if f.Len() == 0 {
		return keys
	}
	for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// SetRaw stores a raw JSON value. An existing key keeps its position.
func (f *Fields) SetRaw(key string, value json.RawMessage) {
	f.init()
	f.m.Set(key, value)
}

// Set marshals value and stores it under key.
func (f *Fields) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding field %q: %w", key, err)
	}
	f.SetRaw(key, raw)
	return nil
}

// Decode unmarshals the value stored under key into v. It returns false if the
// key is absent.
func (f *Fields) Decode(key string, v any) (bool, error) {
	raw, ok := f.Raw(key)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("field %q: %w", key, err)
	}
	return true, nil
}

// MarshalJSON encodes the object with keys in insertion order. Keys and
// values are written without HTML escaping, so values keep their source text.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if f != nil && f.m != nil {
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		for pair := f.m.Oldest(); pair != nil; pair = pair.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			if err := enc.Encode(pair.Key); err != nil {
				return nil, fmt.Errorf("encoding key %q: %w", pair.Key, err)
			}
			buf.Truncate(buf.Len() - 1) // Encode terminates with a newline
			buf.WriteByte(':')
			if err := json.Compact(&buf, pair.Value); err != nil {
				return nil, fmt.Errorf("field %q: %w", pair.Key, err)
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording keys in document order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected a JSON object, got %.20q", trimmed)
	}
	f.m = orderedmap.New[string, json.RawMessage]()
	return f.m.UnmarshalJSON(trimmed)
}
