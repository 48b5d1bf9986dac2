package dashspec

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PropBag is an ordered string-keyed bag of loosely typed prop values.
// Iteration follows insertion order, which keeps repair output deterministic
// for identical input. The zero value is an empty, usable bag.
type PropBag struct {
	keys   []string
	values map[string]interface{}
}

// Len returns the number of keys in the bag.
func (b *PropBag) Len() int {
	return len(b.keys)
}

// Keys returns the keys in insertion order.
func (b *PropBag) Keys() []string {
	return append([]string{}, b.keys...)
}

// Get returns the raw value for a key.
func (b *PropBag) Get(key string) (interface{}, bool) {
	if b.values == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// GetString returns the value for a key if it is a string.
func (b *PropBag) GetString(key string) (string, bool) {
	v, ok := b.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetNumber returns the value for a key if it is numeric.
// JSON-decoded numbers arrive as float64; ints set in code are accepted too.
func (b *PropBag) GetNumber(key string) (float64, bool) {
	v, ok := b.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Missing reports whether a key is absent, nil, or an empty string.
func (b *PropBag) Missing(key string) bool {
	v, ok := b.Get(key)
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr && s == "" {
		return true
	}
	return false
}

// Truthy reports whether a key holds a loosely true value: boolean true,
// the string "true", or a non-zero number.
func (b *PropBag) Truthy(key string) bool {
	v, ok := b.Get(key)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return false
}

// Set inserts or overwrites a key. An existing key keeps its position;
// a new key is appended.
func (b *PropBag) Set(key string, value interface{}) {
	if b.values == nil {
		b.values = make(map[string]interface{})
	}
	if _, exists := b.values[key]; !exists {
		b.keys = append(b.keys, key)
	}
	b.values[key] = value
}

// Delete removes a key, preserving the order of the remaining keys.
func (b *PropBag) Delete(key string) {
	if b.values == nil {
		return
	}
	if _, exists := b.values[key]; !exists {
		return
	}
	delete(b.values, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
}

// Clone returns an independent deep copy of the bag.
func (b *PropBag) Clone() PropBag {
	out := PropBag{}
	for _, k := range b.keys {
		out.Set(k, cloneValue(b.values[k]))
	}
	return out
}

// MarshalJSON writes the bag as a JSON object with keys in insertion order.
func (b PropBag) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range b.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(b.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object preserving top-level key order.
// A JSON null yields an empty bag.
func (b *PropBag) UnmarshalJSON(data []byte) error {
	*b = PropBag{}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return fmt.Errorf("props must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid props key: %v", keyTok)
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return err
		}
		b.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
