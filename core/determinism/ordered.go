// Package determinism provides primitives for deterministic iteration.
// Go maps iterate in random order; anything whose output or first-match
// semantics depend on order goes through these helpers.
package determinism

// OrderedMap is a map that iterates in insertion order.
// It is written during a single-threaded setup phase and then only read,
// so it carries no lock.
type OrderedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// NewOrderedMap creates an empty OrderedMap
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		values: make(map[K]V),
	}
}

// Set adds or updates a key. Updating keeps the original position.
func (m *OrderedMap[K, V]) Set(key K, value V) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get retrieves a value by key
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, ok := m.values[key]
	return val, ok
}

// Has reports whether key is present
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Range iterates in insertion order until fn returns false
func (m *OrderedMap[K, V]) Range(fn func(K, V) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			break
		}
	}
}

// Keys returns all keys in insertion order
func (m *OrderedMap[K, V]) Keys() []K {
	result := make([]K, len(m.keys))
	copy(result, m.keys)
	return result
}

// Len returns the number of entries
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}
