package contact

import "strings"

// PropMap is an ordered property mapping with case-insensitive keys.
// Keys are normalized to upper case; insertion order is preserved so that
// exports and listings are stable.
type PropMap struct {
	keys   []string
	values map[string]string
}

// NewPropMap returns an empty property map.
func NewPropMap() *PropMap {
	return &PropMap{values: make(map[string]string)}
}

// NormalizeKey upper-cases a property key for comparison.
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// Set stores a value, overwriting any existing value for the key without
// disturbing its position.
func (m *PropMap) Set(key, value string) {
	k := NormalizeKey(key)
	if _, exists := m.values[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.values[k] = value
}

// Get returns the value for key, case-insensitively.
func (m *PropMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[NormalizeKey(key)]
	return v, ok
}

// Has reports whether the key is present with a non-empty value.
func (m *PropMap) Has(key string) bool {
	v, ok := m.Get(key)
	return ok && v != ""
}

// Keys returns the normalized keys in insertion order.
func (m *PropMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of properties.
func (m *PropMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// All calls fn for every property in insertion order, stopping early if fn
// returns false.
func (m *PropMap) All(fn func(key, value string) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}
